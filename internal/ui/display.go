package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the width assumed when stdout is not a terminal.
const DefaultTermWidth = 120

// DisplayContext captures the terminal geometry output renders against.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext probes stdout for the active terminal size.
func NewDisplayContext() *DisplayContext {
	ctx := &DisplayContext{TermWidth: DefaultTermWidth}
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return ctx
	}
	ctx.IsTTY = true
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		ctx.TermWidth = w
	}
	return ctx
}
