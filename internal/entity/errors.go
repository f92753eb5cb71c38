package entity

import "errors"

var (
	// ErrMissingAPIKey is returned when GEMINI_API_KEY is not set.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is not set")

	// ErrStoreConfigMissing is returned when the chat service starts before
	// the ingestion tool has written the store configuration.
	ErrStoreConfigMissing = errors.New("store configuration not found")

	// ErrSessionNotFound is returned for messages addressed to an unknown or
	// expired chat session.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyMessage is returned for blank user messages.
	ErrEmptyMessage = errors.New("message is empty")

	// Document validation errors.
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file too large")
)
