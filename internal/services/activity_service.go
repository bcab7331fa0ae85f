package services

import (
	"database/sql"
	"errors"
	"strings"

	"activities-system/internal/status"
	"activities-system/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

type ActivityService struct {
	app core.App
}

func NewActivityService(app core.App) *ActivityService {
	return &ActivityService{app: app}
}

// GetActivities returns the catalog keyed by activity name, each entry with
// the emails of its signed-up participants.
func (s *ActivityService) GetActivities() (map[string]models.ActivityDetail, error) {
	records, err := s.app.FindAllRecords(CollectionActivities)
	if err != nil {
		return nil, err
	}

	result := make(map[string]models.ActivityDetail, len(records))
	for _, record := range records {
		activity := models.ActivityFromRecord(record)

		participants, err := s.app.FindAllRecords(CollectionParticipants, dbx.HashExp{"activity": record.Id})
		if err != nil {
			return nil, err
		}

		emails := make([]string, 0, len(participants))
		for _, participantRecord := range participants {
			participant := models.ParticipantFromRecord(participantRecord)
			emails = append(emails, participant.Email)
		}

		result[activity.Name] = models.ActivityDetail{
			Description:     activity.Description,
			Schedule:        activity.Schedule,
			MaxParticipants: activity.MaxCapacity,
			Participants:    emails,
		}
	}

	return result, nil
}

// Signup registers a student for an activity. The existence, duplicate and
// capacity checks run in the same transaction as the insert, with the unique
// (activity, email) index as a backstop against concurrent signups.
func (s *ActivityService) Signup(activityName, email string) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		activity, err := findActivityByName(txApp, activityName)
		if err != nil {
			return err
		}

		_, err = txApp.FindFirstRecordByFilter(
			CollectionParticipants,
			"activity = {:activity} && email = {:email}",
			dbx.Params{"activity": activity.Id, "email": email},
		)
		if err == nil {
			return status.ErrAlreadySignedUp
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		enrolled, err := txApp.CountRecords(CollectionParticipants, dbx.HashExp{"activity": activity.Id})
		if err != nil {
			return err
		}
		if enrolled >= int64(activity.GetInt("max_capacity")) {
			return status.ErrActivityFull
		}

		collection, err := txApp.FindCollectionByNameOrId(CollectionParticipants)
		if err != nil {
			return err
		}

		participant := core.NewRecord(collection)
		participant.Set("email", email)
		participant.Set("activity", activity.Id)
		participant.Set("status", "active")

		if err := txApp.Save(participant); err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				return status.ErrAlreadySignedUp
			}
			return err
		}
		return nil
	})
}

// Remove unregisters a student from an activity.
func (s *ActivityService) Remove(activityName, email string) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		activity, err := findActivityByName(txApp, activityName)
		if err != nil {
			return err
		}

		participant, err := txApp.FindFirstRecordByFilter(
			CollectionParticipants,
			"activity = {:activity} && email = {:email}",
			dbx.Params{"activity": activity.Id, "email": email},
		)
		if errors.Is(err, sql.ErrNoRows) {
			return status.ErrStudentNotFound
		}
		if err != nil {
			return err
		}

		return txApp.Delete(participant)
	})
}

func findActivityByName(app core.App, name string) (*core.Record, error) {
	activity, err := app.FindFirstRecordByFilter(
		CollectionActivities,
		"name = {:name}",
		dbx.Params{"name": name},
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, status.ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return activity, nil
}
