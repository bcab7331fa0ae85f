package models

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
)

type Participant struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	ActivityID   string    `json:"activity_id"`
	RegisteredAt time.Time `json:"registered_at"`
	Status       string    `json:"status"` // active, cancelled
}

func ParticipantFromRecord(record *core.Record) Participant {
	return Participant{
		ID:           record.Id,
		Email:        record.GetString("email"),
		ActivityID:   record.GetString("activity"),
		RegisteredAt: record.GetDateTime("registered_at").Time(),
		Status:       record.GetString("status"),
	}
}
