package progression

// Player-visible notices
const (
	NoticeQuizCorrect        = "Correct!"
	NoticeQuizWrong          = "Try again!"
	NoticeProgressReset      = "Progress reset"
	NoticeCaptureUnavailable = "Camera scanning is not available"
	NoticeRestoreFailed      = "Saved progress could not be loaded. Changes will not be saved."
)

// Log messages
const (
	LogMsgInitialized        = "Progression restored"
	LogMsgNavigated          = "Scene changed"
	LogMsgNavigationRejected = "Navigation rejected"
	LogMsgDebugNavigation    = "Debug navigation"
	LogMsgRewardGranted      = "Reward granted"
	LogMsgRewardDuplicate    = "Reward already collected"
	LogMsgWheelSpun          = "Wheel spun"
	LogMsgQuizAnswered       = "Quiz answered"
	LogMsgProgressReset      = "Progress reset"
	LogMsgPersistFailed      = "Failed to persist progress, continuing in memory"
	LogMsgRestoreFailed      = "Failed to restore progress, changes will not be saved"
)

// Storage operation labels
const (
	opRestore = "restore"
	opStage   = "stage"
	opLedger  = "ledger"
	opFlag    = "flag"
	opSpun    = "spun"
	opReset   = "reset"
)
