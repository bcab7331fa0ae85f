package status

import "errors"

var (
	ErrActivityNotFound = errors.New("activity: activity not found")
	ErrAlreadySignedUp  = errors.New("signup: student already signed up for this activity")
	ErrActivityFull     = errors.New("signup: activity is full")
	ErrStudentNotFound  = errors.New("signup: student not found in this activity")
	ErrSignupContended  = errors.New("signup: another signup for this activity is in progress")
)
