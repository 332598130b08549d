package core

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw      string
		domain   []Status
		fallback Status
		want     Status
	}{
		{"Paid", UtilityStatuses(), NotApplicable, Paid},
		{"Pending", UtilityStatuses(), NotApplicable, Pending},
		{"NA", UtilityStatuses(), Pending, NotApplicable},
		{" Paid ", UtilityStatuses(), NotApplicable, Paid},
		{"paid", UtilityStatuses(), Pending, Pending},    // case-sensitive domain
		{"Settled", UtilityStatuses(), Pending, Pending}, // unknown token
		{"", UtilityStatuses(), NotApplicable, NotApplicable},
		{"Paid", RentStatuses(), Pending, Paid},
		{"NA", RentStatuses(), Pending, Pending}, // rent has no NA
		{" NA ", RentStatuses(), Pending, Pending},
	}
	for i, tc := range cases {
		if got := ParseStatus(tc.raw, tc.domain, tc.fallback); got != tc.want {
			t.Fatalf("case %d: ParseStatus(%q, %v, %q) = %q, want %q", i, tc.raw, tc.domain, tc.fallback, got, tc.want)
		}
	}
}

func TestStatusIn(t *testing.T) {
	if NotApplicable.In(RentStatuses()) {
		t.Fatal("NA must not be in the rent domain")
	}
	if !NotApplicable.In(UtilityStatuses()) {
		t.Fatal("NA must be in the utility domain")
	}
	if !Paid.In(RentStatuses()) || !Pending.In(RentStatuses()) {
		t.Fatal("Paid and Pending must be in the rent domain")
	}
	if Status("Settled").In(UtilityStatuses()) {
		t.Fatal("unknown token must not be in any domain")
	}
}

func TestRecordValidate(t *testing.T) {
	if err := NewRecord("Shop 1", "Frozen Cups", "", "", "", "").Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := NewRecord("", "Frozen Cups", "", "", "", "").Validate(); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	if err := NewRecord("Shop 1", "  ", "", "", "", "").Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestNewRecordDefaults(t *testing.T) {
	r := NewRecord("Shop 4", "Chaat Cart", "", "", "", "")
	if r.Rent.Amount != "0" || r.Rent.Status != Pending {
		t.Fatalf("rent default wrong: %+v", r.Rent)
	}
	if r.RoomRent.Status != NotApplicable {
		t.Fatalf("room rent default wrong: %+v", r.RoomRent)
	}
	if r.Generator.Status != Pending || r.Electricity.Status != Pending {
		t.Fatalf("utility defaults wrong: %+v %+v", r.Generator, r.Electricity)
	}
}
