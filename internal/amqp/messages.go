package amqp

import (
	"encoding/json"
	"time"
)

// Store event actions.
const (
	ActionSaved    = "saved"
	ActionRestored = "restored"
)

// StoreEventMessage announces that one collection changed. It carries only
// the collection key and record count; the worker reads the current state
// from the store when it handles the event.
type StoreEventMessage struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	Count      int       `json:"count"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewStoreEventMessage(collection, action string, count int) *StoreEventMessage {
	return &StoreEventMessage{
		Collection: collection,
		Action:     action,
		Count:      count,
		Timestamp:  time.Now(),
	}
}

func (m *StoreEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StoreEventMessageFromJSON(data []byte) (*StoreEventMessage, error) {
	var msg StoreEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
