package services

import (
	"context"
	"fmt"
	"log/slog"

	"foodstreet/internal/amqp"
	"foodstreet/internal/core"
	"foodstreet/internal/ledger"
)

// RecordService orchestrates shop record mutations: the ledger change
// (which persists synchronously) comes first, then a best-effort AMQP
// change event. A publish failure never fails the mutation; the ledger
// already holds the truth and the worker resyncs periodically.
type RecordService struct {
	store      *ledger.Store
	amqpClient *amqp.Client
}

func NewRecordService(store *ledger.Store, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		store:      store,
		amqpClient: amqpClient,
	}
}

func (s *RecordService) Create(ctx context.Context, r core.Record) error {
	if err := s.store.Create(ctx, r); err != nil {
		return fmt.Errorf("create shop: %w", err)
	}
	s.publishUpsert(ctx, r.ID)
	return nil
}

func (s *RecordService) Update(ctx context.Context, id string, fields core.Record) error {
	if err := s.store.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	s.publishUpsert(ctx, id)
	return nil
}

func (s *RecordService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	if s.amqpClient == nil {
		return nil
	}
	if err := s.amqpClient.PublishRecordDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete event", "shop_id", id, "error", err)
	}
	return nil
}

// Get and List pass through to the store; reads publish nothing.
func (s *RecordService) Get(id string) (core.Record, bool) {
	return s.store.Get(id)
}

func (s *RecordService) List() []core.Record {
	return s.store.List()
}

func (s *RecordService) publishUpsert(ctx context.Context, id string) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordUpsert(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish upsert event", "shop_id", id, "error", err)
	}
}

// Close releases the AMQP connection if one was configured.
func (s *RecordService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
