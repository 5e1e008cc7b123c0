package capture

import "time"

// Debouncer defaults
const (
	DefaultCommitThreshold = 2
	MinCommitThreshold     = 1
)

// Session and upload defaults
const (
	DefaultFrameBuffer  = 8
	DefaultFrameTimeout = 30 * time.Second
	QuerySceneParam     = "scene"
)

// Log messages
const (
	LogMsgSessionStarted   = "Capture session started"
	LogMsgSessionStopped   = "Capture session stopped"
	LogMsgSessionCommitted = "Capture session committed navigation"
	LogMsgFrameDecodeFail  = "Frame decode failed"
	LogMsgUnresolvedText   = "Scanned text did not resolve to a scene"
)
