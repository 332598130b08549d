package core

// Placeholder replaces the room-rent amount and status on display when
// the charge does not apply.
const Placeholder = "-"

// AnyPending reports whether any of the four charge categories is
// still pending; it drives row highlighting and the pending-only view.
func AnyPending(r Record) bool {
	return r.Rent.Status == Pending ||
		r.RoomRent.Status == Pending ||
		r.Generator.Status == Pending ||
		r.Electricity.Status == Pending
}

// FilterPending returns the records with at least one pending charge,
// preserving input order.
func FilterPending(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if AnyPending(r) {
			out = append(out, r)
		}
	}
	return out
}

// RoomRentDisplay returns the amount and status to show for the room
// rent column. A zero or empty amount means the charge does not apply
// to this shop: both cells show the placeholder so the row never reads
// as an outstanding charge, whatever the stored status says.
func RoomRentDisplay(r Record) (amount, status string) {
	if r.RoomRent.Amount == "" || r.RoomRent.Amount == "0" {
		return Placeholder, Placeholder
	}
	return r.RoomRent.Amount, r.RoomRent.Status.String()
}
