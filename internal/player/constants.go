package player

import "time"

// Registry defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 2 * time.Hour
)

// Log messages
const (
	LogMsgPlayerCreated  = "Player created"
	LogMsgPlayerRestored = "Player restored"
	LogMsgPlayerEvicted  = "Player evicted"
)
