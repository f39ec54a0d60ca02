package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownQuestion means a question id is not in the catalog.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrInvalidOption means a value is not one of the question's option codes.
	ErrInvalidOption = errors.New("invalid option")
	// ErrInsufficientResponses means a session has too few answers to complete.
	ErrInsufficientResponses = errors.New("insufficient responses")
	// ErrUnknownTrack means a catalog track is missing from a score map.
	// It always indicates a programming error.
	ErrUnknownTrack = errors.New("unknown track")
	// ErrUnknownDifficulty means a declared difficulty is not one of the tiers.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrSessionSealed is returned for mutations on a completed session.
	ErrSessionSealed = errors.New("session already completed")
	// ErrSessionNotCompleted is returned when a completed session is required.
	ErrSessionNotCompleted = errors.New("session not completed")
)
