package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"foodstreet/internal/core"
)

// shopRow is one rendered dashboard line. Amounts are the display strings,
// so zero room rent already shows as the placeholder dash.
type shopRow struct {
	ID                string `json:"shop_id"`
	Name              string `json:"name"`
	RentAmt           string `json:"rent_amt"`
	RentStatus        string `json:"rent_status"`
	RoomRentAmt       string `json:"room_rent_amt"`
	RoomRentStatus    string `json:"room_rent_status"`
	GeneratorAmt      string `json:"generator_amt"`
	GeneratorStatus   string `json:"generator_status"`
	ElectricityAmt    string `json:"electricity_amt"`
	ElectricityStatus string `json:"electricity_status"`
	Pending           bool   `json:"pending"`
}

type dashboardData struct {
	Rows        []shopRow
	PendingOnly bool
	Warning     string
	ShownCount  int
	TotalCount  int
}

func rowFromRecord(r core.Record) shopRow {
	roomAmt, roomStatus := core.RoomRentDisplay(r)
	return shopRow{
		ID:                r.ID,
		Name:              r.Name,
		RentAmt:           r.Rent.Amount,
		RentStatus:        r.Rent.Status.String(),
		RoomRentAmt:       roomAmt,
		RoomRentStatus:    roomStatus,
		GeneratorAmt:      r.Generator.Amount,
		GeneratorStatus:   r.Generator.Status.String(),
		ElectricityAmt:    r.Electricity.Amount,
		ElectricityStatus: r.Electricity.Status.String(),
		Pending:           core.AnyPending(r),
	}
}

// loadRecords takes a fresh snapshot and sorts it by shop number. A failed
// snapshot degrades to an empty listing so the page still renders.
func (s *Server) loadRecords(ctx context.Context, pendingOnly bool) (rows []shopRow, total int, warning string) {
	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	records, err := s.source.Snapshot(cctx)
	if err != nil {
		slog.ErrorContext(ctx, "Snapshot failed", "error", err)
		return nil, 0, "Could not load shop data. Showing nothing until the next refresh."
	}

	core.SortByShopNumber(records)
	total = len(records)
	if pendingOnly {
		records = core.FilterPending(records)
	}

	rows = make([]shopRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, rowFromRecord(r))
	}
	return rows, total, ""
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	pendingOnly := r.URL.Query().Get("pending") == "1"
	rows, total, warning := s.loadRecords(r.Context(), pendingOnly)

	data := dashboardData{
		Rows:        rows,
		PendingOnly: pendingOnly,
		Warning:     warning,
		ShownCount:  len(rows),
		TotalCount:  total,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard_page", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleShopsJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	pendingOnly := r.URL.Query().Get("pending") == "1"
	rows, total, warning := s.loadRecords(r.Context(), pendingOnly)

	resp := struct {
		Shops []shopRow `json:"shops"`
		Total int       `json:"total"`
		Error string    `json:"error,omitempty"`
	}{Shops: rows, Total: total, Error: warning}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.ErrorContext(r.Context(), "JSON encode failed", "error", err)
	}
}
