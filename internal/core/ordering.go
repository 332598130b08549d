package core

import "sort"

// ShopNumber extracts the ordering key for a shop id: every decimal
// digit in the id, concatenated in encounter order, parsed as a
// non-negative integer. An id with no digits keys as 0. The whole
// string is scanned, so "Shop 12" and "Unit-12" share a key; ties keep
// their input order.
func ShopNumber(id string) int {
	n := 0
	for _, r := range id {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// SortByShopNumber orders records ascending by ShopNumber, stably, in
// place. Display ordering is deliberately numeric: "Shop 2" sorts
// before "Shop 10".
func SortByShopNumber(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return ShopNumber(records[i].ID) < ShopNumber(records[j].ID)
	})
}
