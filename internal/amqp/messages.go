package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// RecordChangeMessage tells consumers that one shop's record changed.
// It carries only the id and operation; the worker re-reads the ledger
// for the current field values, so stale messages are harmless.
type RecordChangeMessage struct {
	ShopID    string    `json:"shop_id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChangeMessage(shopID, op string) *RecordChangeMessage {
	return &RecordChangeMessage{
		ShopID:    shopID,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *RecordChangeMessage) Validate() error {
	if m.ShopID == "" {
		return fmt.Errorf("missing shop_id")
	}
	switch m.Op {
	case OpUpsert, OpDelete:
		return nil
	default:
		return fmt.Errorf("unknown op %q", m.Op)
	}
}

func (m *RecordChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeMessageFromJSON(data []byte) (*RecordChangeMessage, error) {
	var msg RecordChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
