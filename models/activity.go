package models

import (
	"time"

	"github.com/pocketbase/pocketbase/core"
)

type Activity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Schedule    string    `json:"schedule"`
	MaxCapacity int       `json:"max_capacity"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"` // active, archived
}

// ActivityDetail is the per-activity payload of the GET /activities response,
// keyed by activity name.
type ActivityDetail struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func ActivityFromRecord(record *core.Record) Activity {
	return Activity{
		ID:          record.Id,
		Name:        record.GetString("name"),
		Description: record.GetString("description"),
		Schedule:    record.GetString("schedule"),
		MaxCapacity: record.GetInt("max_capacity"),
		Category:    record.GetString("category"),
		CreatedAt:   record.GetDateTime("created_at").Time(),
		Status:      record.GetString("status"),
	}
}
