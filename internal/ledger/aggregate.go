package ledger

import (
	"sort"
	"strings"
)

// recentLimit is how many transactions the dashboard shows.
const recentLimit = 5

// Summarize reduces a ledger snapshot into the dashboard summary. It is a
// pure function recomputed wholesale on every call: the source ledger may
// have been mutated externally between calls, so no state is carried over.
func Summarize(transactions []Transaction) Summary {
	summary := Summary{
		TotalTransactions: len(transactions),
		Recent:            []Transaction{},
	}

	for _, tx := range transactions {
		switch {
		case strings.EqualFold(tx.Type, TypePaid):
			summary.TotalPaid += tx.Amount
		case strings.EqualFold(tx.Type, TypeUnpaid):
			summary.TotalUnpaid += tx.Amount
		}
	}
	summary.TotalAmount = summary.TotalPaid + summary.TotalUnpaid

	recent := make([]Transaction, len(transactions))
	copy(recent, transactions)
	// Stable sort keeps input order for equal dates.
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	summary.Recent = recent

	return summary
}
