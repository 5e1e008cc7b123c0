package terminal

// Notices shown in the status line
const (
	NoticeWheelLocked   = "The wheel has already been spun"
	NoticeNoQuiz        = "There is no question on this scene"
	NoticeQuizDone      = "You already answered this question"
	NoticeUnknownChoice = "No such answer"
	NoticeJumpPrompt    = "Jump to scene: "
)

// Key bindings shown in the help line
const HelpLine = "←/→ move  s spin  r reset  1-9 answer  c camera  g jump  q quit"

const (
	LogMsgActionFailed = "Terminal action failed"
	LogMsgScreenClosed = "Terminal screen closed"
)
