package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	styleOK   = "\033[0;32m"
	styleFail = "\033[0;31m"
	styleWarn = "\033[1;33m"
	styleInfo = "\033[0;34m"
	styleOff  = "\033[0m"
)

// console prints devtool progress, coloured unless NO_COLOR is set
type console struct {
	w     io.Writer
	color bool
}

func newConsole(w io.Writer) *console {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &console{w: w, color: !noColor}
}

func (c *console) line(style, mark, format string, a ...any) {
	msg := mark + " " + fmt.Sprintf(format, a...)
	if c.color {
		msg = style + msg + styleOff
	}
	fmt.Fprintln(c.w, msg)
}

func (c *console) Info(format string, a ...any)    { c.line(styleInfo, "ℹ", format, a...) }
func (c *console) Success(format string, a ...any) { c.line(styleOK, "✓", format, a...) }
func (c *console) Warn(format string, a ...any)    { c.line(styleWarn, "⚠", format, a...) }
func (c *console) Fail(format string, a ...any)    { c.line(styleFail, "✗", format, a...) }

func (c *console) Section(title string) {
	fmt.Fprintln(c.w)
	c.line(styleWarn, "==", "%s ==", title)
}

// validateArgs rejects arguments that could smuggle a second command into a
// shell if they were ever forwarded to one.
func validateArgs(args ...string) error {
	for _, s := range args {
		if strings.ContainsAny(s, "\n\r\x00") {
			return fmt.Errorf("rejected argument %q: control character", s)
		}
		for _, p := range []string{"|", "`", "$(", "&&", ";", ">", "<"} {
			if strings.Contains(s, p) {
				return fmt.Errorf("rejected argument %q: contains %q", s, p)
			}
		}
	}
	return nil
}

// goTool runs the go command with its output attached to the terminal
func goTool(args ...string) error {
	if err := validateArgs(args...); err != nil {
		return err
	}
	cmd := exec.Command("go", args...) // #nosec G204 - arguments validated above
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// goToolOutput runs the go command and returns its trimmed stdout
func goToolOutput(args ...string) (string, error) {
	if err := validateArgs(args...); err != nil {
		return "", err
	}
	out, err := exec.Command("go", args...).Output() // #nosec G204 - arguments validated above
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
