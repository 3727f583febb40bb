package billing

import "strings"

// FilterByCustomer returns the settled orders whose customer name contains
// the search term, comparing case-insensitively by lower-casing both sides.
// An empty term returns the input unchanged; result order is input order.
func FilterByCustomer(orders []Order, term string) []Order {
	if term == "" {
		return orders
	}
	needle := strings.ToLower(term)
	var matched []Order
	for _, order := range orders {
		if strings.Contains(strings.ToLower(order.CustomerName), needle) {
			matched = append(matched, order)
		}
	}
	return matched
}
