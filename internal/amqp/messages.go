package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecordEvent announces a committed change to one ledger record.
type RecordEvent struct {
	ID          uuid.UUID `json:"id"`
	Operation   string    `json:"operation"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecordEvent creates an event stamped with the current time
func NewRecordEvent(id uuid.UUID, operation, description string) *RecordEvent {
	return &RecordEvent{
		ID:          id,
		Operation:   operation,
		Description: description,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordEventFromJSON creates a message from JSON bytes
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var msg RecordEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
