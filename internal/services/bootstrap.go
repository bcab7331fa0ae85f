package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

const (
	CollectionActivities   = "activities"
	CollectionParticipants = "participants"
)

type seedActivity struct {
	Name        string
	Description string
	Schedule    string
	MaxCapacity int
	Category    string
}

// defaultActivities is the fixed catalog inserted on first run.
var defaultActivities = []seedActivity{
	{
		Name:        "Chess Club",
		Description: "Learn strategies and compete in chess tournaments",
		Schedule:    "Fridays, 3:30 PM - 5:00 PM",
		MaxCapacity: 12,
		Category:    "Academic",
	},
	{
		Name:        "Programming Class",
		Description: "Learn programming fundamentals and build software projects",
		Schedule:    "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
		MaxCapacity: 20,
		Category:    "Technology",
	},
	{
		Name:        "Gym Class",
		Description: "Physical education and sports activities",
		Schedule:    "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
		MaxCapacity: 30,
		Category:    "Sports",
	},
}

// EnsureSchema creates the activities and participants collections when they
// don't exist yet. Safe to call on every startup.
func EnsureSchema(app core.App) error {
	activities, err := app.FindCollectionByNameOrId(CollectionActivities)
	if err != nil {
		activities = core.NewBaseCollection(CollectionActivities)
		activities.Fields.Add(
			&core.TextField{Name: "name", Required: true},
			&core.TextField{Name: "description"},
			&core.TextField{Name: "schedule"},
			&core.NumberField{Name: "max_capacity", Required: true, OnlyInt: true, Min: types.Pointer(1.0)},
			&core.TextField{Name: "category"},
			&core.SelectField{Name: "status", Values: []string{"active", "archived"}, MaxSelect: 1},
			&core.AutodateField{Name: "created_at", OnCreate: true},
		)
		activities.AddIndex("idx_activities_name", false, "name", "")

		if err := app.Save(activities); err != nil {
			return fmt.Errorf("create activities collection: %w", err)
		}
	}

	if _, err := app.FindCollectionByNameOrId(CollectionParticipants); err != nil {
		participants := core.NewBaseCollection(CollectionParticipants)
		participants.Fields.Add(
			&core.TextField{Name: "email", Required: true},
			&core.RelationField{Name: "activity", Required: true, CollectionId: activities.Id, MaxSelect: 1},
			&core.SelectField{Name: "status", Values: []string{"active", "cancelled"}, MaxSelect: 1},
			&core.AutodateField{Name: "registered_at", OnCreate: true},
		)
		// One participant row per (activity, email) pair, enforced by storage
		// in addition to the signup duplicate check.
		participants.AddIndex("idx_participants_activity_email", true, "activity, email", "")

		if err := app.Save(participants); err != nil {
			return fmt.Errorf("create participants collection: %w", err)
		}
	}

	return nil
}

// EnsureDefaultActivities seeds the fixed catalog when the store has no
// activities yet. The count check and the inserts share one transaction so
// concurrent bootstrap runs cannot both seed.
func EnsureDefaultActivities(app core.App) error {
	return app.RunInTransaction(func(txApp core.App) error {
		total, err := txApp.CountRecords(CollectionActivities)
		if err != nil {
			return fmt.Errorf("count activities: %w", err)
		}
		if total > 0 {
			return nil
		}

		collection, err := txApp.FindCollectionByNameOrId(CollectionActivities)
		if err != nil {
			return err
		}

		for _, seed := range defaultActivities {
			record := core.NewRecord(collection)
			record.Set("name", seed.Name)
			record.Set("description", seed.Description)
			record.Set("schedule", seed.Schedule)
			record.Set("max_capacity", seed.MaxCapacity)
			record.Set("category", seed.Category)
			record.Set("status", "active")

			if err := txApp.Save(record); err != nil {
				return fmt.Errorf("seed activity %q: %w", seed.Name, err)
			}
		}

		return nil
	})
}
