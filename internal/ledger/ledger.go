// Package ledger owns the shop record set and its durable CSV
// encoding. The Store is the single source of truth for both front
// ends: the manager mutates it, the dashboard re-reads it per request.
package ledger

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"foodstreet/internal/core"
)

var (
	ErrDuplicateID  = errors.New("shop id already exists")
	ErrNotFound     = errors.New("shop not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Store maps shop ids to records and persists the full set to a CSV
// file on every mutation. Insertion order is preserved: it is the
// tie-break input for display ordering and keeps Persist output
// deterministic.
type Store struct {
	mu      sync.Mutex
	path    string
	records map[string]core.Record
	order   []string
}

// Open returns a store bound to the given CSV path. Call Load before
// anything else.
func Open(path string) *Store {
	return &Store{
		path:    path,
		records: make(map[string]core.Record),
	}
}

// Load replaces the in-memory record set with the durable encoding.
// Malformed rows are skipped with a warning; a single corrupted line
// never makes the rest of the file unavailable. If the file does not
// exist yet the store bootstraps the fixed sample set and persists it
// immediately.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, order, skipped, err := readFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.bootstrapLocked()
			if perr := s.persistLocked(); perr != nil {
				return fmt.Errorf("persist bootstrap set: %w", perr)
			}
			slog.Info("Ledger bootstrapped with sample shops", "path", s.path, "shops", len(s.order))
			return nil
		}
		return fmt.Errorf("load ledger: %w", err)
	}

	s.records = records
	s.order = order
	if skipped > 0 {
		slog.Warn("Skipped malformed ledger rows", "path", s.path, "skipped", skipped, "loaded", len(order))
	}
	return nil
}

// Create inserts a new record and persists. The id must be unused and
// id and name must be non-empty; a duplicate id leaves the store
// unchanged.
func (s *Store) Create(ctx context.Context, r core.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[r.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
	}
	s.records[r.ID] = r
	s.order = append(s.order, r.ID)

	if err := s.persistLocked(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Shop created", "shop_id", r.ID, "name", r.Name)
	return nil
}

// Update replaces every mutable field of the record with the given id
// and persists. The id itself is immutable; the one carried in fields
// is ignored.
func (s *Store) Update(ctx context.Context, id string, fields core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	fields.ID = id
	s.records[id] = fields

	if err := s.persistLocked(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Shop updated", "shop_id", id)
	return nil
}

// Delete removes the record with the given id and persists.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if err := s.persistLocked(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Shop deleted", "shop_id", id)
	return nil
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (core.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	return r, ok
}

// List returns copies of all records in insertion order. Ordering for
// display is a separate concern; callers that need cross-process
// freshness call Load first.
func (s *Store) List() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

// Len returns the number of records currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Persist rewrites the full record set. On failure the in-memory state
// stays authoritative; the caller must surface the unsaved-changes
// risk to its user.
func (s *Store) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

// persistLocked writes to a temp file in the target directory and
// renames it over the ledger, so a concurrent reader never observes a
// truncated encoding.
func (s *Store) persistLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(header)
	for _, id := range s.order {
		if writeErr != nil {
			break
		}
		writeErr = w.Write(encodeRow(s.records[id]))
	}
	w.Flush()
	if writeErr == nil {
		writeErr = w.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write ledger: %w", writeErr)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

func (s *Store) bootstrapLocked() {
	s.records = make(map[string]core.Record)
	s.order = nil
	for _, r := range SampleRecords() {
		s.records[r.ID] = r
		s.order = append(s.order, r.ID)
	}
}

// readFile loads and decodes the whole encoding. Rows that fail to
// decode, and rows whose id repeats an earlier one, are counted and
// skipped (first occurrence wins).
func readFile(path string) (map[string]core.Record, []string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records := make(map[string]core.Record)
	var order []string
	skipped := 0
	first := true

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				slog.Warn("Malformed ledger row", "path", path, "line", parseErr.Line, "error", parseErr.Err)
				skipped++
				continue
			}
			return nil, nil, 0, fmt.Errorf("read ledger: %w", err)
		}
		if first {
			first = false
			continue // header row
		}

		r, derr := decodeRow(fields)
		if derr != nil {
			slog.Warn("Malformed ledger row", "path", path, "error", derr)
			skipped++
			continue
		}
		if _, dup := records[r.ID]; dup {
			slog.Warn("Duplicate shop id in ledger, keeping first", "path", path, "shop_id", r.ID)
			skipped++
			continue
		}
		records[r.ID] = r
		order = append(order, r.ID)
	}

	return records, order, skipped, nil
}
