package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"foodstreet/internal/core"
)

func tempLedger(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "shops.csv")
}

func mustLoad(t *testing.T, path string) *Store {
	t.Helper()
	s := Open(path)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestLoadBootstrapsEmptyLedger(t *testing.T) {
	path := tempLedger(t)
	s := mustLoad(t, path)

	got := s.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 sample shops, got %d", len(got))
	}
	for i, want := range []string{"Shop 1", "Shop 2", "Shop 3"} {
		if got[i].ID != want {
			t.Fatalf("sample %d: got id %q, want %q", i, got[i].ID, want)
		}
	}

	// Bootstrap must persist immediately.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("bootstrap did not persist: %v", err)
	}
}

func TestCreateDuplicateLeavesStoreUnchanged(t *testing.T) {
	s := mustLoad(t, tempLedger(t))
	ctx := context.Background()

	dup := core.NewRecord("Shop 2", "Impostor", "", "", "", "")
	if err := s.Create(ctx, dup); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("store changed after failed create: %d records", s.Len())
	}
	if r, _ := s.Get("Shop 2"); r.Name != "Yum Sandwich" {
		t.Fatalf("existing record overwritten: %q", r.Name)
	}
}

func TestCreateRejectsEmptyRequiredFields(t *testing.T) {
	s := mustLoad(t, tempLedger(t))
	ctx := context.Background()

	cases := []core.Record{
		core.NewRecord("", "Nameless", "", "", "", ""),
		core.NewRecord("Shop 9", "", "", "", "", ""),
		core.NewRecord("   ", "Spaces", "", "", "", ""),
	}
	for i, r := range cases {
		if err := s.Create(ctx, r); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	path := tempLedger(t)
	s := mustLoad(t, path)
	ctx := context.Background()

	r := core.NewRecord("Shop 12", "Dosa Corner", "Mrs. Lakshmi", "12 GST Road", "3L", "25k")
	r.Electricity = core.Charge{Amount: "720", Status: core.Pending}
	if err := s.Create(ctx, r); err != nil {
		t.Fatalf("create: %v", err)
	}

	fresh := mustLoad(t, path)
	want := s.List()
	got := fresh.List()
	if len(got) != len(want) {
		t.Fatalf("round trip count: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d differs after reload:\ngot  %+v\nwant %+v", i, got[i], want[i])
		}
	}
}

func TestPersistIsIdempotent(t *testing.T) {
	path := tempLedger(t)
	s := mustLoad(t, path)

	if err := s.Persist(); err != nil {
		t.Fatalf("first persist: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := s.Persist(); err != nil {
		t.Fatalf("second persist: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("persist not byte-identical:\n%s\nvs\n%s", first, second)
	}
}

func TestDeleteSurvivesRestart(t *testing.T) {
	path := tempLedger(t)
	s := mustLoad(t, path)
	ctx := context.Background()

	if err := s.Delete(ctx, "Shop 2"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	fresh := mustLoad(t, path)
	got := fresh.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 shops after restart, got %d", len(got))
	}
	if got[0].ID != "Shop 1" || got[1].ID != "Shop 3" {
		t.Fatalf("unexpected survivors: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestDeleteMissing(t *testing.T) {
	s := mustLoad(t, tempLedger(t))
	if err := s.Delete(context.Background(), "Shop 99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReplacesFieldsAndKeepsID(t *testing.T) {
	path := tempLedger(t)
	s := mustLoad(t, path)
	ctx := context.Background()

	r, ok := s.Get("Shop 1")
	if !ok {
		t.Fatalf("Shop 1 missing")
	}
	r.Rent = core.Charge{Amount: "25000", Status: core.Paid}
	r.ID = "Shop 1 (renamed)" // must be ignored
	if err := s.Update(ctx, "Shop 1", r); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, ok := s.Get("Shop 1")
	if !ok {
		t.Fatalf("Shop 1 gone after update")
	}
	if got.Rent.Amount != "25000" || got.Rent.Status != core.Paid {
		t.Fatalf("rent not updated: %+v", got.Rent)
	}
	if got.Name != "Frozen Cups" || got.Owner != "Mr. Arun" || got.RoomRent.Amount != "5000" {
		t.Fatalf("unrelated fields changed: %+v", got)
	}

	// Same view from a fresh instance.
	fresh := mustLoad(t, path)
	if again, _ := fresh.Get("Shop 1"); again != got {
		t.Fatalf("update lost across reload:\ngot  %+v\nwant %+v", again, got)
	}
}

func TestUpdateMissing(t *testing.T) {
	s := mustLoad(t, tempLedger(t))
	r := core.NewRecord("Shop 99", "Ghost", "", "", "", "")
	if err := s.Update(context.Background(), "Shop 99", r); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := tempLedger(t)
	content := "shop_id,name,owner,address,advance,base_rent,rent_amt,rent_status,generator_amt,generator_status,electricity_amt,electricity_status,room_rent_amt,room_rent_status\n" +
		"Shop 1,Frozen Cups,Mr. Arun,123 Anna Salai,2L,23k,23000,Paid,1480,Paid,0,NA,5000,Paid\n" +
		",No Id Here,x,x,x,x,0,Pending,0,NA,0,NA,0,NA\n" +
		"Shop 1,Duplicate,x,x,x,x,0,Pending,0,NA,0,NA,0,NA\n" +
		"Shop 2,Yum Sandwich\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := mustLoad(t, path)
	got := s.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 loadable rows, got %d", len(got))
	}
	if got[0].Name != "Frozen Cups" {
		t.Fatalf("first occurrence should win, got %q", got[0].Name)
	}
	// Short row padded with category defaults.
	short := got[1]
	if short.Rent.Amount != "0" || short.Rent.Status != core.Pending {
		t.Fatalf("short row rent defaults wrong: %+v", short.Rent)
	}
	if short.RoomRent.Status != core.NotApplicable {
		t.Fatalf("short row room rent default wrong: %+v", short.RoomRent)
	}
	if short.Generator.Status != core.Pending || short.Electricity.Status != core.Pending {
		t.Fatalf("short row utility defaults wrong: gen=%+v eb=%+v", short.Generator, short.Electricity)
	}
}

func TestFileSourceSnapshot(t *testing.T) {
	path := tempLedger(t)
	ctx := context.Background()

	// Absent ledger: empty listing, no error, no file created.
	src := NewFileSource(path)
	records, err := src.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot of missing ledger: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty snapshot, got %d records", len(records))
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("read-only source must not create the ledger")
	}

	// Writer-side changes are visible on the next snapshot.
	s := mustLoad(t, path)
	if err := s.Delete(ctx, "Shop 3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	records, err = src.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after delete, got %d", len(records))
	}
}
