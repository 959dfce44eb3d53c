package events

import (
	"encoding/json"
	"time"
)

const (
	TypeRecordCreated = "record_created"
	TypeRecordDeleted = "record_deleted"
)

// RecordChange is the message published whenever the ledger gains or loses a
// record. It carries only the id and the month bucket; consumers refetch
// whatever detail they need, so a stale message can never overwrite newer
// state.
type RecordChange struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChange(typ, id string, month, year int) *RecordChange {
	return &RecordChange{
		Type:      typ,
		ID:        id,
		Month:     month,
		Year:      year,
		Timestamp: time.Now(),
	}
}

func (m *RecordChange) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeFromJSON(data []byte) (*RecordChange, error) {
	var msg RecordChange
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
