package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/progression"
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleEnabled  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDisabled = tcell.StyleDefault.Foreground(tcell.ColorGray).Dim(true)
	styleReward   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleNotice   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// App drives one local player's controller from the keyboard
type App struct {
	screen tcell.Screen
	ctrl   *progression.Controller
	view   *View
	input  Input

	cameraNoticed bool
}

// NewScreenView returns a view that wakes screen's event loop on change
func NewScreenView(screen tcell.Screen) *View {
	return NewView(func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}

// NewApp wires an initialised screen to ctrl. view must be the controller's presenter.
func NewApp(screen tcell.Screen, ctrl *progression.Controller, view *View) *App {
	return &App{screen: screen, ctrl: ctrl, view: view}
}

// Run processes input until the user quits or ctx ends. The caller owns the
// screen and must call Fini afterwards.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		a.Draw()
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quit := a.Apply(ctx, a.input.Handle(ev)); quit {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
		}
	}
}

// Apply performs one decoded action. It reports whether the app should quit.
func (a *App) Apply(ctx context.Context, act Action) bool {
	log := logger.FromContext(ctx)

	var err error
	switch act.Kind {
	case ActionQuit:
		return true
	case ActionBack:
		if a.ctrl.CanGoBack() {
			_, err = a.ctrl.Step(ctx, -1)
		}
	case ActionForward:
		if a.ctrl.CanGoForward() {
			_, err = a.ctrl.Step(ctx, 1)
		}
	case ActionSpin:
		_, err = a.ctrl.Spin(ctx)
	case ActionReset:
		a.view.ClearReward()
		a.ctrl.Reset(ctx)
	case ActionAnswer:
		err = a.answer(ctx, act.Value)
	case ActionCamera:
		if !a.cameraNoticed {
			a.cameraNoticed = true
			a.ctrl.Notify(ctx, progression.NoticeCaptureUnavailable)
		}
	case ActionJump:
		_, err = a.ctrl.ForceNavigate(ctx, act.Value)
	}

	if err != nil {
		log.Debug(LogMsgActionFailed, "action", act.Kind, "error", err)
		a.view.Notice(ctx, noticeFor(err))
	}
	return false
}

func (a *App) answer(ctx context.Context, n int) error {
	scene := a.ctrl.State().CurrentScene
	quiz, ok := a.ctrl.Config().QuizFor(scene)
	if !ok {
		return domain.ErrQuizNotFound
	}
	if n < 1 || n > len(quiz.Choices) {
		return domain.ErrUnknownChoice
	}
	_, err := a.ctrl.AnswerQuiz(ctx, scene, quiz.Choices[n-1].ID)
	return err
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrWheelLocked):
		return NoticeWheelLocked
	case errors.Is(err, domain.ErrQuizNotFound):
		return NoticeNoQuiz
	case errors.Is(err, domain.ErrQuizCompleted):
		return NoticeQuizDone
	case errors.Is(err, domain.ErrUnknownChoice):
		return NoticeUnknownChoice
	default:
		return err.Error()
	}
}

// Draw renders the current view state
func (a *App) Draw() {
	s := a.view.Snapshot()
	cfg := a.ctrl.Config()
	a.screen.Clear()

	y := 0
	a.text(0, y, styleTitle, "MelodyQuest")
	y += 2

	a.text(0, y, styleDefault, fmt.Sprintf("Scene %d / %d  %s", int(s.Scene)+1, cfg.SceneCount, progressBar(int(s.Scene), cfg.SceneCount)))
	y += 2

	a.text(0, y, enabledStyle(s.CanBack), "[< back]")
	a.text(10, y, enabledStyle(s.CanForward), "[forward >]")
	y += 2

	if quiz, ok := cfg.QuizFor(s.Scene); ok {
		a.text(0, y, styleDefault, quiz.Question)
		y++
		for i, c := range quiz.Choices {
			a.text(2, y, styleDefault, fmt.Sprintf("%d) %s", i+1, c.Label))
			y++
		}
		y++
	}

	notes := make([]string, len(s.Ledger))
	for i, t := range s.Ledger {
		notes[i] = string(t)
	}
	a.text(0, y, styleDefault, "Notes: "+strings.Join(notes, " "))
	y++
	if s.LastReward != "" {
		line := "Last note: " + string(s.LastReward)
		if s.Celebrate {
			line += "  * new note! *"
		}
		a.text(0, y, styleReward, line)
	}
	y += 2

	if s.Notice != "" {
		a.text(0, y, styleNotice, s.Notice)
	}
	y++
	if prompt, open := a.input.Prompt(); open {
		a.text(0, y, styleNotice, prompt)
	}

	_, h := a.screen.Size()
	a.text(0, h-1, styleHelp, HelpLine)
	a.screen.Show()
}

func (a *App) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func enabledStyle(enabled bool) tcell.Style {
	if enabled {
		return styleEnabled
	}
	return styleDisabled
}

func progressBar(scene, count int) string {
	var b strings.Builder
	for i := 0; i < count; i++ {
		switch {
		case i == scene:
			b.WriteByte('@')
		case i < scene:
			b.WriteByte('=')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}
