package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummarizeEmptyLedger(t *testing.T) {
	summary := Summarize(nil)
	require.Equal(t, Summary{Recent: []Transaction{}}, summary)

	summary = Summarize([]Transaction{})
	require.Zero(t, summary.TotalTransactions)
	require.Zero(t, summary.TotalPaid)
	require.Zero(t, summary.TotalUnpaid)
	require.Zero(t, summary.TotalAmount)
	require.Empty(t, summary.Recent)
}

func TestSummarizeCaseInsensitiveTypes(t *testing.T) {
	summary := Summarize([]Transaction{
		{Type: "Paid", Amount: 100, Date: day("2024-01-01")},
		{Type: "UNPAID", Amount: 50, Date: day("2024-01-02")},
		{Type: "paid", Amount: 25, Date: day("2024-01-03")},
	})
	require.Equal(t, 3, summary.TotalTransactions)
	require.Equal(t, 125.0, summary.TotalPaid)
	require.Equal(t, 50.0, summary.TotalUnpaid)
	require.Equal(t, 175.0, summary.TotalAmount)
}

func TestSummarizeUnrecognizedTypeCountedButExcluded(t *testing.T) {
	summary := Summarize([]Transaction{
		{Type: "Paid", Amount: 100, Date: day("2024-01-01")},
		{Type: "UNPAID", Amount: 50, Date: day("2024-01-02")},
		{Type: "other", Amount: 999, Date: day("2024-01-03")},
	})
	require.Equal(t, 3, summary.TotalTransactions)
	require.Equal(t, 100.0, summary.TotalPaid)
	require.Equal(t, 50.0, summary.TotalUnpaid)
	// TotalAmount is strictly paid + unpaid, so it excludes the 999.
	require.Equal(t, 150.0, summary.TotalAmount)

	require.Len(t, summary.Recent, 3)
	require.Equal(t, day("2024-01-03"), summary.Recent[0].Date)
	require.Equal(t, day("2024-01-02"), summary.Recent[1].Date)
	require.Equal(t, day("2024-01-01"), summary.Recent[2].Date)
}

func TestSummarizeTotalAmountAlwaysPaidPlusUnpaid(t *testing.T) {
	transactions := []Transaction{
		{Type: "PAID", Amount: 10, Date: day("2024-02-01")},
		{Type: "Unpaid", Amount: 20, Date: day("2024-02-02")},
		{Type: "pending", Amount: 30, Date: day("2024-02-03")},
		{Type: "", Amount: 40, Date: day("2024-02-04")},
	}
	summary := Summarize(transactions)
	require.Equal(t, summary.TotalPaid+summary.TotalUnpaid, summary.TotalAmount)
	require.Equal(t, len(transactions), summary.TotalTransactions)
}

func TestSummarizeRecentTruncatedToFive(t *testing.T) {
	var transactions []Transaction
	for i := 1; i <= 8; i++ {
		transactions = append(transactions, Transaction{
			ID:     string(rune('a' + i - 1)),
			Type:   TypePaid,
			Amount: float64(i),
			Date:   day("2024-01-01").AddDate(0, 0, i),
		})
	}
	summary := Summarize(transactions)
	require.Len(t, summary.Recent, 5)
	require.Equal(t, "h", summary.Recent[0].ID)
	require.Equal(t, "d", summary.Recent[4].ID)
}

func TestSummarizeTiesKeepInputOrder(t *testing.T) {
	same := day("2024-03-01")
	summary := Summarize([]Transaction{
		{ID: "first", Type: TypePaid, Amount: 1, Date: same},
		{ID: "second", Type: TypePaid, Amount: 2, Date: same},
		{ID: "third", Type: TypePaid, Amount: 3, Date: same},
	})
	require.Equal(t, []string{"first", "second", "third"},
		[]string{summary.Recent[0].ID, summary.Recent[1].ID, summary.Recent[2].ID})
}

func TestSummarizeIsPure(t *testing.T) {
	transactions := []Transaction{
		{ID: "1", Type: TypePaid, Amount: 10, Date: day("2024-01-02")},
		{ID: "2", Type: TypeUnpaid, Amount: 20, Date: day("2024-01-01")},
	}
	before := make([]Transaction, len(transactions))
	copy(before, transactions)

	first := Summarize(transactions)
	second := Summarize(transactions)
	require.Equal(t, first, second)
	// Input order untouched despite the recency sort.
	require.Equal(t, before, transactions)
}
