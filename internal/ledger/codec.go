package ledger

import (
	"fmt"
	"strings"

	"foodstreet/internal/core"
)

// Column order of the durable encoding. The file is plain UTF-8 CSV
// with this header as its first row; readers written against older
// layouts rely on the order, so it never changes.
var header = []string{
	"shop_id", "name", "owner", "address", "advance", "base_rent",
	"rent_amt", "rent_status",
	"generator_amt", "generator_status",
	"electricity_amt", "electricity_status",
	"room_rent_amt", "room_rent_status",
}

const (
	colID = iota
	colName
	colOwner
	colAddress
	colAdvance
	colBaseRent
	colRentAmt
	colRentStatus
	colGeneratorAmt
	colGeneratorStatus
	colElectricityAmt
	colElectricityStatus
	colRoomRentAmt
	colRoomRentStatus
)

func encodeRow(r core.Record) []string {
	return []string{
		r.ID, r.Name, r.Owner, r.Address, r.Advance, r.BaseRent,
		r.Rent.Amount, r.Rent.Status.String(),
		r.Generator.Amount, r.Generator.Status.String(),
		r.Electricity.Amount, r.Electricity.Status.String(),
		r.RoomRent.Amount, r.RoomRent.Status.String(),
	}
}

// decodeRow turns one data row into a record. Short rows are padded
// with the category defaults; rows without an id or name are rejected
// so a hand-edited fragment never becomes an anonymous record.
func decodeRow(fields []string) (core.Record, error) {
	if len(fields) <= colName {
		return core.Record{}, fmt.Errorf("row has %d columns, need at least shop_id and name", len(fields))
	}
	id := strings.TrimSpace(fieldAt(fields, colID))
	name := strings.TrimSpace(fieldAt(fields, colName))
	if id == "" {
		return core.Record{}, core.ErrEmptyID
	}
	if name == "" {
		return core.Record{}, core.ErrEmptyName
	}

	r := core.Record{
		ID:       id,
		Name:     name,
		Owner:    fieldAt(fields, colOwner),
		Address:  fieldAt(fields, colAddress),
		Advance:  fieldAt(fields, colAdvance),
		BaseRent: fieldAt(fields, colBaseRent),
		Rent: core.Charge{
			Amount: amountAt(fields, colRentAmt),
			Status: statusAt(fields, colRentStatus, core.RentStatuses(), core.Pending, core.Pending),
		},
		Generator: core.Charge{
			Amount: amountAt(fields, colGeneratorAmt),
			Status: statusAt(fields, colGeneratorStatus, core.UtilityStatuses(), core.Pending, core.NotApplicable),
		},
		Electricity: core.Charge{
			Amount: amountAt(fields, colElectricityAmt),
			Status: statusAt(fields, colElectricityStatus, core.UtilityStatuses(), core.Pending, core.NotApplicable),
		},
		RoomRent: core.Charge{
			Amount: amountAt(fields, colRoomRentAmt),
			Status: statusAt(fields, colRoomRentStatus, core.UtilityStatuses(), core.NotApplicable, core.NotApplicable),
		},
	}
	return r, nil
}

func fieldAt(fields []string, idx int) string {
	if idx >= len(fields) {
		return ""
	}
	return fields[idx]
}

// amountAt defaults a missing amount column to "0". A present-but-empty
// value is kept as typed; amounts are opaque strings.
func amountAt(fields []string, idx int) string {
	if idx >= len(fields) {
		return "0"
	}
	return fields[idx]
}

// statusAt decodes a status column. A missing column takes the category
// default; a present value outside the category's status domain coerces
// to the per-category fallback instead of failing the row.
func statusAt(fields []string, idx int, domain []core.Status, missing, fallback core.Status) core.Status {
	if idx >= len(fields) {
		return missing
	}
	return core.ParseStatus(fields[idx], domain, fallback)
}
