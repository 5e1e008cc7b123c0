package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidScene          = "Invalid scene"
	ErrMsgInvalidToken          = "Unknown tone"
	ErrMsgUnreadableFrame       = "Frame must be a PNG or JPEG image"
	ErrMsgFrameTooLarge         = "Frame is too large"
	ErrMsgCreatePlayerFailed    = "Failed to create player"
)

// Success messages for API responses
const (
	MsgCaptureStarted = "Scanning started"
	MsgCaptureStopped = "Scanning stopped"
	MsgFrameAccepted  = "Frame accepted"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	ErrMsgPlayerNotFoundError     = "Player not found"
	ErrMsgSceneOutOfRangeError    = "That scene does not exist"
	ErrMsgWheelLockedError        = "The wheel has already been spun"
	ErrMsgQuizNotFoundError       = "This scene has no quiz"
	ErrMsgQuizCompletedError      = "You already answered this quiz"
	ErrMsgUnknownChoiceError      = "That answer is not one of the choices"
	ErrMsgUnknownTokenError       = "Unknown note"
	ErrMsgCaptureUnavailableError = "Camera scanning is not available here"
	ErrMsgCaptureNotActiveError   = "No scan is running for this scene"
)

// Log messages
const (
	LogMsgServiceError     = "Request failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgPlayerCreated    = "Player created via API"
	LogMsgFrameDecodeError = "Failed to decode uploaded frame"
)
