package terminal

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// ActionKind names what a key press asks for
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionBack
	ActionForward
	ActionSpin
	ActionReset
	ActionAnswer
	ActionCamera
	ActionJump
	// ActionPrompt means the jump prompt changed and needs redrawing
	ActionPrompt
)

// Action is a decoded key press. Value holds the answer number for
// ActionAnswer and the target scene for ActionJump.
type Action struct {
	Kind  ActionKind
	Value int
}

// Input decodes key presses. `g` opens a jump prompt that collects digits
// until Enter, Escape cancels it.
type Input struct {
	jumping bool
	digits  string
}

// Prompt returns the jump prompt text and whether it is open
func (in *Input) Prompt() (string, bool) {
	return NoticeJumpPrompt + in.digits, in.jumping
}

// Handle decodes one key event
func (in *Input) Handle(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyCtrlC {
		return Action{Kind: ActionQuit}
	}
	if in.jumping {
		return in.handleJump(ev)
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		return Action{Kind: ActionBack}
	case tcell.KeyRight:
		return Action{Kind: ActionForward}
	case tcell.KeyEscape:
		return Action{Kind: ActionQuit}
	case tcell.KeyRune:
	default:
		return Action{}
	}

	r := ev.Rune()
	switch {
	case r == 'q':
		return Action{Kind: ActionQuit}
	case r == 's':
		return Action{Kind: ActionSpin}
	case r == 'r':
		return Action{Kind: ActionReset}
	case r == 'c':
		return Action{Kind: ActionCamera}
	case r == 'g':
		in.jumping = true
		in.digits = ""
		return Action{Kind: ActionPrompt}
	case r >= '1' && r <= '9':
		return Action{Kind: ActionAnswer, Value: int(r - '0')}
	}
	return Action{}
}

func (in *Input) handleJump(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape:
		in.jumping = false
		in.digits = ""
		return Action{Kind: ActionPrompt}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(in.digits) > 0 {
			in.digits = in.digits[:len(in.digits)-1]
		}
		return Action{Kind: ActionPrompt}
	case tcell.KeyEnter:
		digits := in.digits
		in.jumping = false
		in.digits = ""
		n, err := strconv.Atoi(digits)
		if err != nil {
			return Action{Kind: ActionPrompt}
		}
		return Action{Kind: ActionJump, Value: n}
	case tcell.KeyRune:
		if r := ev.Rune(); r >= '0' && r <= '9' && len(in.digits) < 4 {
			in.digits += string(r)
		}
		return Action{Kind: ActionPrompt}
	}
	return Action{}
}
