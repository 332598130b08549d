package core

import (
	"errors"
	"strings"
)

const (
	Paid          Status = "Paid"
	Pending       Status = "Pending"
	NotApplicable Status = "NA"
)

type (
	// Status is the payment state of a single charge category.
	Status string

	// Charge couples an amount (an opaque display string, never parsed
	// as a number) with its payment status.
	Charge struct {
		Amount string
		Status Status
	}

	// Record is the billing state of one shop. ID is the unique natural
	// key; all other fields are mutable through the store.
	Record struct {
		ID       string
		Name     string
		Owner    string
		Address  string
		Advance  string
		BaseRent string

		Rent        Charge
		RoomRent    Charge
		Generator   Charge
		Electricity Charge
	}
)

var (
	ErrEmptyID   = errors.New("empty shop id")
	ErrEmptyName = errors.New("empty shop name")
)

// DefaultCharges returns the charge set a brand-new record starts with,
// matching what an edited row falls back to when columns are missing.
func DefaultCharges() (rent, roomRent, generator, electricity Charge) {
	rent = Charge{Amount: "0", Status: Pending}
	roomRent = Charge{Amount: "0", Status: NotApplicable}
	generator = Charge{Amount: "0", Status: Pending}
	electricity = Charge{Amount: "0", Status: Pending}
	return
}

// NewRecord builds a record with the given identity fields and default
// charges.
func NewRecord(id, name, owner, address, advance, baseRent string) Record {
	rent, room, gen, eb := DefaultCharges()
	return Record{
		ID:          id,
		Name:        name,
		Owner:       owner,
		Address:     address,
		Advance:     advance,
		BaseRent:    baseRent,
		Rent:        rent,
		RoomRent:    room,
		Generator:   gen,
		Electricity: eb,
	}
}

func (s Status) IsValid() bool {
	switch s {
	case Paid, Pending, NotApplicable:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer; it is also the wire token.
func (s Status) String() string {
	return string(s)
}

// In reports whether the status is a member of the given domain.
func (s Status) In(domain []Status) bool {
	for _, d := range domain {
		if s == d {
			return true
		}
	}
	return false
}

// ParseStatus decodes a stored status token against a category's
// domain. A token outside the domain coerces to fallback rather than
// failing: the store must tolerate hand-edited rows, and "NA" in a
// rent column reads as Pending instead of widening that category's
// domain.
func ParseStatus(raw string, domain []Status, fallback Status) Status {
	s := Status(strings.TrimSpace(raw))
	if s.In(domain) {
		return s
	}
	return fallback
}

// RentStatuses is the status domain for the rent category, which is
// never "NA": a shop always owes rent.
func RentStatuses() []Status {
	return []Status{Paid, Pending}
}

// UtilityStatuses is the status domain for room rent, generator and
// electricity.
func UtilityStatuses() []Status {
	return []Status{Paid, Pending, NotApplicable}
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
