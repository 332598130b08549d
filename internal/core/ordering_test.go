package core

import "testing"

func TestShopNumber(t *testing.T) {
	cases := []struct {
		id   string
		want int
	}{
		{"Shop 1", 1},
		{"Shop 10", 10},
		{"Shop-01", 1},
		{"Unit-12", 12},
		{"Shop 1 Block 2", 12}, // digits concatenate across the whole id
		{"Annex", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := ShopNumber(tc.id); got != tc.want {
			t.Fatalf("ShopNumber(%q) = %d, want %d", tc.id, got, tc.want)
		}
	}
}

func TestSortByShopNumberIsNumeric(t *testing.T) {
	records := []Record{{ID: "Shop 10"}, {ID: "Shop 2"}, {ID: "Shop 1"}}
	SortByShopNumber(records)
	want := []string{"Shop 1", "Shop 2", "Shop 10"}
	for i, w := range want {
		if records[i].ID != w {
			t.Fatalf("position %d: got %q, want %q", i, records[i].ID, w)
		}
	}
}

func TestSortByShopNumberTieKeepsInputOrder(t *testing.T) {
	// "Shop-01" and "Shop 1" both key to 1; stable sort keeps the
	// insertion order.
	records := []Record{{ID: "Shop-01"}, {ID: "Shop 1"}}
	SortByShopNumber(records)
	if records[0].ID != "Shop-01" || records[1].ID != "Shop 1" {
		t.Fatalf("tie order changed: %q, %q", records[0].ID, records[1].ID)
	}
}
