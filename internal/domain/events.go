package domain

// Event type constants used across the application for event bus subscriptions
// and SSE delivery. Event types follow the pattern: <entity>.<action>
const (
	// EventTypeSceneChanged is published after a successful navigation
	EventTypeSceneChanged = "scene.changed"

	// EventTypeNavigationState is published when back/forward availability is recomputed
	EventTypeNavigationState = "navigation.state"

	// EventTypeRewardShown is published on every grant, collected or not
	EventTypeRewardShown = "reward.shown"

	// EventTypeCelebrate is published when the ledger actually grew
	EventTypeCelebrate = "reward.celebrate"

	// EventTypeToneRequested asks the client to play a note
	EventTypeToneRequested = "tone.requested"

	// EventTypeNotice carries a one-off user-visible notice
	EventTypeNotice = "notice"

	// EventTypeCaptureDetected echoes raw decoded scan text
	EventTypeCaptureDetected = "capture.detected"
)
