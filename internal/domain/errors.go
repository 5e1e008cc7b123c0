package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Navigation errors
	ErrMsgOutOfRangeScene = "scene out of range"

	// Storage errors
	ErrMsgPersistenceUnavailable = "persistence unavailable"
	ErrMsgRestoreFailed          = "progress restore failed"

	// Capture errors
	ErrMsgMalformedScanText  = "malformed scan text"
	ErrMsgCaptureUnavailable = "capture unavailable"
	ErrMsgCaptureNotActive   = "no capture session active"

	// Wheel errors
	ErrMsgWheelLocked = "wheel already spun"

	// Quiz errors
	ErrMsgQuizNotFound  = "quiz not found"
	ErrMsgQuizCompleted = "quiz already completed"
	ErrMsgUnknownChoice = "unknown quiz choice"

	// Reward errors
	ErrMsgUnknownToken = "unknown reward token"

	// Player errors
	ErrMsgPlayerNotFound = "player not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrOutOfRangeScene        = errors.New(ErrMsgOutOfRangeScene)
	ErrPersistenceUnavailable = errors.New(ErrMsgPersistenceUnavailable)
	ErrRestoreFailed          = errors.New(ErrMsgRestoreFailed)
	ErrMalformedScanText      = errors.New(ErrMsgMalformedScanText)
	ErrCaptureUnavailable     = errors.New(ErrMsgCaptureUnavailable)
	ErrCaptureNotActive       = errors.New(ErrMsgCaptureNotActive)
	ErrWheelLocked            = errors.New(ErrMsgWheelLocked)
	ErrQuizNotFound           = errors.New(ErrMsgQuizNotFound)
	ErrQuizCompleted          = errors.New(ErrMsgQuizCompleted)
	ErrUnknownChoice          = errors.New(ErrMsgUnknownChoice)
	ErrUnknownToken           = errors.New(ErrMsgUnknownToken)
	ErrPlayerNotFound         = errors.New(ErrMsgPlayerNotFound)
	ErrInvalidInput           = errors.New(ErrMsgInvalidInput)
)
