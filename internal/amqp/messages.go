package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// LedgerSavedMessage announces that the primary store accepted a new
// transaction. It carries no ledger data; consumers reload from the store.
type LedgerSavedMessage struct {
	// Rows is the number of transactions in the saved ledger.
	Rows int `json:"rows"`
	// Year of the transaction that triggered the save.
	Year      int       `json:"year"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerSavedMessage(rows, year int) *LedgerSavedMessage {
	return &LedgerSavedMessage{
		Rows:      rows,
		Year:      year,
		Timestamp: time.Now(),
	}
}

func (m *LedgerSavedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSavedMessageFromJSON(data []byte) (*LedgerSavedMessage, error) {
	var msg LedgerSavedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Rows < 0 {
		return nil, fmt.Errorf("invalid row count %d", msg.Rows)
	}
	return &msg, nil
}
