package ledger

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"foodstreet/internal/core"
)

// Ports for the two front-end roles against the shared record set.
type (
	// RecordSource yields a point-in-time view of all records. The
	// dashboard takes one snapshot per request and never caches.
	RecordSource interface {
		Snapshot(ctx context.Context) ([]core.Record, error)
	}

	// RecordWriter is the mutating surface consumed by the manager
	// front end. Every mutation persists before returning.
	RecordWriter interface {
		Create(ctx context.Context, r core.Record) error
		Update(ctx context.Context, id string, fields core.Record) error
		Delete(ctx context.Context, id string) error
	}
)

// FileSource reads the CSV encoding afresh on every Snapshot, so
// writes by the manager process become visible on the next request.
// It never writes: a missing ledger yields an empty snapshot, not a
// bootstrap.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Snapshot(ctx context.Context) ([]core.Record, error) {
	records, order, skipped, err := readFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.WarnContext(ctx, "Ledger file absent, serving empty listing", "path", f.path)
			return nil, nil
		}
		return nil, err
	}
	if skipped > 0 {
		slog.WarnContext(ctx, "Skipped malformed ledger rows", "path", f.path, "skipped", skipped)
	}
	out := make([]core.Record, 0, len(order))
	for _, id := range order {
		out = append(out, records[id])
	}
	return out, nil
}
