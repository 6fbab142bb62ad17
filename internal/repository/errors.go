package repository

import "errors"

// Common repository errors
var (
	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrJobSiteNotFound is returned when a job site is not found
	ErrJobSiteNotFound = errors.New("job site not found")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")
)
