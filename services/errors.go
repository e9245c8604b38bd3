package services

import "errors"

var (
	// ErrReportNotFound is returned when a report id does not resolve.
	// Missing records are a normal outcome, not a transport failure.
	ErrReportNotFound = errors.New("report not found")

	// ErrNotOwner is returned when an actor tries to mutate a report
	// created by someone else.
	ErrNotOwner = errors.New("actor is not the report owner")

	// ErrInvalidStatus is returned for a health status outside the
	// known set.
	ErrInvalidStatus = errors.New("invalid health status")

	// ErrInvalidLocation is returned for coordinates outside valid
	// latitude/longitude ranges.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrNoPhotos is returned when a report is created without any photo.
	ErrNoPhotos = errors.New("at least one photo is required")
)
