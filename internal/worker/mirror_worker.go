package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"foodstreet/internal/amqp"
	"foodstreet/internal/core"
	"foodstreet/internal/ledger"
)

type (
	// MirrorStore is the write surface of the SQLite mirror.
	MirrorStore interface {
		UpsertRecord(ctx context.Context, r core.Record) error
		DeleteRecord(ctx context.Context, shopID string) error
		ReplaceAll(ctx context.Context, records []core.Record) error
	}

	// SnapshotExporter pushes a display-ordered listing somewhere
	// external (the spreadsheet exporter implements this).
	SnapshotExporter interface {
		ExportSnapshot(ctx context.Context, records []core.Record) error
	}

	// Consumer delivers record change messages; satisfied by
	// amqp.Client.
	Consumer interface {
		Consume(ctx context.Context, handler func(context.Context, *amqp.RecordChangeMessage) error) error
	}
)

// MirrorWorker keeps the SQLite mirror in step with the ledger CSV.
// Change events trigger a targeted reconcile; a periodic full resync
// catches anything the events missed. The ledger is always re-read:
// messages carry ids, never field values.
type MirrorWorker struct {
	source   ledger.RecordSource
	mirror   MirrorStore
	exporter SnapshotExporter
}

func NewMirrorWorker(source ledger.RecordSource, mirror MirrorStore, exporter SnapshotExporter) *MirrorWorker {
	return &MirrorWorker{
		source:   source,
		mirror:   mirror,
		exporter: exporter,
	}
}

// HandleChange reconciles one shop against the current ledger content.
// The operation in the message is only a hint: a record that vanished
// between publish and consume is deleted regardless of op.
func (w *MirrorWorker) HandleChange(ctx context.Context, msg *amqp.RecordChangeMessage) error {
	records, err := w.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot ledger: %w", err)
	}

	for _, r := range records {
		if r.ID == msg.ShopID {
			if err := w.mirror.UpsertRecord(ctx, r); err != nil {
				return fmt.Errorf("mirror upsert: %w", err)
			}
			return nil
		}
	}

	if err := w.mirror.DeleteRecord(ctx, msg.ShopID); err != nil {
		return fmt.Errorf("mirror delete: %w", err)
	}
	return nil
}

// Resync rebuilds the whole mirror from the ledger and, when an
// exporter is configured, pushes the display-ordered listing out.
func (w *MirrorWorker) Resync(ctx context.Context) error {
	records, err := w.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot ledger: %w", err)
	}

	if err := w.mirror.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("replace mirror: %w", err)
	}

	if w.exporter != nil {
		ordered := make([]core.Record, len(records))
		copy(ordered, records)
		core.SortByShopNumber(ordered)
		if err := w.exporter.ExportSnapshot(ctx, ordered); err != nil {
			// The mirror is already consistent; the export retries
			// on the next tick.
			slog.ErrorContext(ctx, "Snapshot export failed", "error", err)
		}
	}
	return nil
}

// Run performs a startup resync, then consumes change events and
// resyncs on the given interval until the context is cancelled.
func (w *MirrorWorker) Run(ctx context.Context, consumer Consumer, interval time.Duration) error {
	if err := w.Resync(ctx); err != nil {
		return fmt.Errorf("startup resync: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if consumer != nil {
		g.Go(func() error {
			return consumer.Consume(ctx, w.HandleChange)
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := w.Resync(ctx); err != nil {
					slog.ErrorContext(ctx, "Periodic resync failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
