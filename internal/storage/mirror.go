package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"foodstreet/internal/core"
	"foodstreet/internal/ledger"

	_ "modernc.org/sqlite"
)

// Mirror keeps a SQL-queryable copy of the current record set. The
// ledger CSV remains authoritative; the mirror is rebuilt from it by
// the worker and only ever reflects current state, not history.
type Mirror struct {
	db *sql.DB
}

var _ ledger.RecordSource = (*Mirror)(nil)

func NewMirror(dbPath string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Mirror{db: db}, nil
}

func (m *Mirror) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

const upsertSQL = `
INSERT INTO shops (
    shop_id, name, owner, address, advance, base_rent,
    rent_amt, rent_status, generator_amt, generator_status,
    electricity_amt, electricity_status, room_rent_amt, room_rent_status,
    position, synced_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
    COALESCE((SELECT position FROM shops WHERE shop_id = ?),
             (SELECT COALESCE(MAX(position), 0) + 1 FROM shops)),
    CURRENT_TIMESTAMP)
ON CONFLICT(shop_id) DO UPDATE SET
    name = excluded.name,
    owner = excluded.owner,
    address = excluded.address,
    advance = excluded.advance,
    base_rent = excluded.base_rent,
    rent_amt = excluded.rent_amt,
    rent_status = excluded.rent_status,
    generator_amt = excluded.generator_amt,
    generator_status = excluded.generator_status,
    electricity_amt = excluded.electricity_amt,
    electricity_status = excluded.electricity_status,
    room_rent_amt = excluded.room_rent_amt,
    room_rent_status = excluded.room_rent_status,
    synced_at = CURRENT_TIMESTAMP`

// UpsertRecord writes one record into the mirror, keeping its position
// if it already exists and appending it otherwise.
func (m *Mirror) UpsertRecord(ctx context.Context, r core.Record) error {
	_, err := m.db.ExecContext(ctx, upsertSQL,
		r.ID, r.Name, r.Owner, r.Address, r.Advance, r.BaseRent,
		r.Rent.Amount, r.Rent.Status.String(),
		r.Generator.Amount, r.Generator.Status.String(),
		r.Electricity.Amount, r.Electricity.Status.String(),
		r.RoomRent.Amount, r.RoomRent.Status.String(),
		r.ID)
	if err != nil {
		return fmt.Errorf("upsert shop %q: %w", r.ID, err)
	}

	slog.InfoContext(ctx, "Shop mirrored", "shop_id", r.ID)
	return nil
}

// DeleteRecord removes one record from the mirror. Deleting an absent
// id is not an error: the worker may replay a delete it already applied.
func (m *Mirror) DeleteRecord(ctx context.Context, shopID string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM shops WHERE shop_id = ?`, shopID); err != nil {
		return fmt.Errorf("delete shop %q: %w", shopID, err)
	}
	return nil
}

// ReplaceAll swaps the whole mirror content for the given snapshot in
// one transaction, preserving the snapshot's order as position.
func (m *Mirror) ReplaceAll(ctx context.Context, records []core.Record) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shops`); err != nil {
		return fmt.Errorf("clear shops: %w", err)
	}

	const insertSQL = `
INSERT INTO shops (
    shop_id, name, owner, address, advance, base_rent,
    rent_amt, rent_status, generator_amt, generator_status,
    electricity_amt, electricity_status, room_rent_amt, room_rent_status,
    position, synced_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`

	for i, r := range records {
		_, err := tx.ExecContext(ctx, insertSQL,
			r.ID, r.Name, r.Owner, r.Address, r.Advance, r.BaseRent,
			r.Rent.Amount, r.Rent.Status.String(),
			r.Generator.Amount, r.Generator.Status.String(),
			r.Electricity.Amount, r.Electricity.Status.String(),
			r.RoomRent.Amount, r.RoomRent.Status.String(),
			i+1)
		if err != nil {
			return fmt.Errorf("insert shop %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	slog.InfoContext(ctx, "Mirror resynced", "shops", len(records))
	return nil
}

// ListRecords returns all mirrored records in ledger order.
func (m *Mirror) ListRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := m.db.QueryContext(ctx, `
SELECT shop_id, name, owner, address, advance, base_rent,
       rent_amt, rent_status, generator_amt, generator_status,
       electricity_amt, electricity_status, room_rent_amt, room_rent_status
FROM shops ORDER BY position, shop_id`)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var r core.Record
		var rentStatus, genStatus, ebStatus, roomStatus string
		err := rows.Scan(
			&r.ID, &r.Name, &r.Owner, &r.Address, &r.Advance, &r.BaseRent,
			&r.Rent.Amount, &rentStatus,
			&r.Generator.Amount, &genStatus,
			&r.Electricity.Amount, &ebStatus,
			&r.RoomRent.Amount, &roomStatus)
		if err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		// Stored tokens pass through the same coercion as the CSV
		// decoder, so a hand-edited mirror cannot widen the domain.
		r.Rent.Status = core.ParseStatus(rentStatus, core.RentStatuses(), core.Pending)
		r.Generator.Status = core.ParseStatus(genStatus, core.UtilityStatuses(), core.NotApplicable)
		r.Electricity.Status = core.ParseStatus(ebStatus, core.UtilityStatuses(), core.NotApplicable)
		r.RoomRent.Status = core.ParseStatus(roomStatus, core.UtilityStatuses(), core.NotApplicable)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shops: %w", err)
	}
	return out, nil
}

// Snapshot implements ledger.RecordSource so the dashboard can serve
// from the mirror.
func (m *Mirror) Snapshot(ctx context.Context) ([]core.Record, error) {
	return m.ListRecords(ctx)
}
