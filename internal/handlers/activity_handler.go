package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"activities-system/internal/services"
	"activities-system/internal/status"
	"activities-system/monitoring"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type ActivityHandler struct {
	app     core.App
	service *services.ActivityService
	locks   *services.LockService
	monitor *monitoring.Monitor
}

func NewActivityHandler(app core.App, service *services.ActivityService, locks *services.LockService, monitor *monitoring.Monitor) *ActivityHandler {
	return &ActivityHandler{
		app:     app,
		service: service,
		locks:   locks,
		monitor: monitor,
	}
}

// ListActivities - Get the activity catalog with signed-up participants
func (h *ActivityHandler) ListActivities(e *core.RequestEvent) error {
	activities, err := h.service.GetActivities()
	if err != nil {
		h.app.Logger().Error("failed to list activities", "error", err)
		return apis.NewApiError(http.StatusInternalServerError, "Failed to get activities", err)
	}

	return e.JSON(http.StatusOK, activities)
}

// Signup - Sign a student up for an activity
func (h *ActivityHandler) Signup(e *core.RequestEvent) error {
	activityName := e.Request.PathValue("name")
	email := e.Request.URL.Query().Get("email")
	if email == "" {
		return apis.NewBadRequestError("Email is required", nil)
	}

	ctx := e.Request.Context()

	acquired, err := h.locks.AcquireActivityLock(ctx, activityName)
	if err != nil {
		h.app.Logger().Error("failed to acquire signup lock", "activity", activityName, "error", err)
		return apis.NewApiError(http.StatusInternalServerError, "Failed to acquire signup lock", err)
	}
	if !acquired {
		h.monitor.TrackOperation("signup", activityName, "contended")
		return domainError(status.ErrSignupContended)
	}
	defer h.locks.ReleaseActivityLock(ctx, activityName)

	if err := h.service.Signup(activityName, email); err != nil {
		h.monitor.TrackOperation("signup", activityName, "error")
		return domainError(err)
	}

	h.monitor.TrackOperation("signup", activityName, "success")
	return e.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully signed up for %s", activityName),
	})
}

// Unregister - Remove a student from an activity
func (h *ActivityHandler) Unregister(e *core.RequestEvent) error {
	activityName := e.Request.PathValue("name")
	email := e.Request.URL.Query().Get("email")
	if email == "" {
		return apis.NewBadRequestError("Email is required", nil)
	}

	if err := h.service.Remove(activityName, email); err != nil {
		h.monitor.TrackOperation("unregister", activityName, "error")
		return domainError(err)
	}

	h.monitor.TrackOperation("unregister", activityName, "success")
	return e.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully removed from %s", activityName),
	})
}

// domainError translates service errors into API responses.
func domainError(err error) error {
	switch {
	case errors.Is(err, status.ErrActivityNotFound):
		return apis.NewNotFoundError("Activity not found", nil)
	case errors.Is(err, status.ErrAlreadySignedUp):
		return apis.NewBadRequestError("Student already signed up for this activity", nil)
	case errors.Is(err, status.ErrActivityFull):
		return apis.NewBadRequestError("Activity is full", nil)
	case errors.Is(err, status.ErrStudentNotFound):
		return apis.NewNotFoundError("Student not found in this activity", nil)
	case errors.Is(err, status.ErrSignupContended):
		return apis.NewBadRequestError("Another signup for this activity is in progress", nil)
	}
	return apis.NewApiError(http.StatusInternalServerError, "Something went wrong while processing the request", err)
}
