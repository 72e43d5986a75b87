package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyInput      = errors.New("empty user input")
	ErrNoPendingTurn   = errors.New("no user message awaiting an answer")

	// Backend errors
	ErrChatEngine              = errors.New("chat engine failure")
	ErrMalformedChatResponse   = errors.New("chat response has no answer text")
	ErrIndexedFilesUnavailable = errors.New("indexed files unavailable")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)
