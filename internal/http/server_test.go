package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"foodstreet/internal/core"
)

type fakeSource struct {
	records []core.Record
	err     error
	calls   int
}

func (f *fakeSource) Snapshot(ctx context.Context) ([]core.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]core.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func sampleRecords() []core.Record {
	paid := func(amt string) core.Charge { return core.Charge{Amount: amt, Status: core.Paid} }
	pending := func(amt string) core.Charge { return core.Charge{Amount: amt, Status: core.Pending} }

	return []core.Record{
		{
			ID: "Shop 10", Name: "Juice Junction",
			Rent: paid("15000"), RoomRent: core.Charge{Amount: "0", Status: core.NotApplicable},
			Generator: paid("930"), Electricity: paid("310"),
		},
		{
			ID: "Shop 2", Name: "Yum Sandwich",
			Rent: pending("18000"), RoomRent: paid("4000"),
			Generator: paid("930"), Electricity: paid("450"),
		},
		{
			ID: "Shop 1", Name: "Frozen Cups",
			Rent: paid("23000"), RoomRent: paid("5000"),
			Generator: paid("1480"), Electricity: core.Charge{Amount: "0", Status: core.NotApplicable},
		},
	}
}

func TestDashboardSortsByShopNumber(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	s := NewServer(":0", src)

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()

	i1 := strings.Index(body, "Frozen Cups")
	i2 := strings.Index(body, "Yum Sandwich")
	i10 := strings.Index(body, "Juice Junction")
	if i1 < 0 || i2 < 0 || i10 < 0 {
		t.Fatalf("expected all shop names in page, got indices %d %d %d", i1, i2, i10)
	}
	if !(i1 < i2 && i2 < i10) {
		t.Errorf("expected Shop 1 < Shop 2 < Shop 10 order, got indices %d %d %d", i1, i2, i10)
	}
}

func TestDashboardFreshSnapshotPerRequest(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	s := NewServer(":0", src)

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		if rr.Code != 200 {
			t.Fatalf("request %d: status = %d", i, rr.Code)
		}
	}
	if src.calls != 3 {
		t.Errorf("snapshot calls = %d, want one per request", src.calls)
	}
}

func TestDashboardPendingFilter(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	s := NewServer(":0", src)

	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/?pending=1", nil))

	body := rr.Body.String()
	if !strings.Contains(body, "Yum Sandwich") {
		t.Error("pending shop missing from filtered page")
	}
	if strings.Contains(body, "Frozen Cups") || strings.Contains(body, "Juice Junction") {
		t.Error("fully settled shops should not appear when filtering to pending")
	}
	if !strings.Contains(body, "1 of 3 shops shown") {
		t.Errorf("expected count summary in page:\n%s", body)
	}
}

func TestDashboardRoomRentPlaceholder(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	s := NewServer(":0", src)

	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	// Shop 10 has zero room rent, so amount and status render as dashes.
	body := rr.Body.String()
	if !strings.Contains(body, "<td>-</td>") {
		t.Error("expected placeholder cell for zero room rent")
	}
}

func TestDashboardSnapshotErrorStillRenders(t *testing.T) {
	src := &fakeSource{err: errors.New("disk gone")}
	s := NewServer(":0", src)

	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200 with warning banner", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Could not load shop data") {
		t.Error("expected warning banner in page")
	}
	if !strings.Contains(body, "No shops to show") {
		t.Error("expected empty listing body")
	}
}

func TestDashboardUnknownPathIs404(t *testing.T) {
	s := NewServer(":0", &fakeSource{})
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/nope", nil))
	if rr.Code != 404 {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestShopsJSON(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	s := NewServer(":0", src)

	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/shops", nil))

	if rr.Code != 200 {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp struct {
		Shops []shopRow `json:"shops"`
		Total int       `json:"total"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 || len(resp.Shops) != 3 {
		t.Fatalf("total = %d, shops = %d, want 3", resp.Total, len(resp.Shops))
	}
	if resp.Shops[0].ID != "Shop 1" || resp.Shops[2].ID != "Shop 10" {
		t.Errorf("unexpected order: %q .. %q", resp.Shops[0].ID, resp.Shops[2].ID)
	}
	if !resp.Shops[1].Pending {
		t.Error("Shop 2 should be flagged pending")
	}
	if resp.Shops[0].RoomRentAmt != "5000" {
		t.Errorf("room rent amt = %q", resp.Shops[0].RoomRentAmt)
	}
}

func TestShopsJSONMethodNotAllowed(t *testing.T) {
	s := NewServer(":0", &fakeSource{})
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("POST", "/api/shops", nil))
	if rr.Code != 405 {
		t.Errorf("status = %d, want 405", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := NewServer(":0", &fakeSource{})
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := NewServer(":0", &fakeSource{})

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		s.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
		if rr.Code != 200 {
			t.Errorf("%s: status = %d", path, rr.Code)
		}
	}
}
