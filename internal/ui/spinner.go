package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a braille spinner next to a message while a scan
// walks the project. Off-terminal it degrades to printing the message
// once.
type Spinner struct {
	message string
	ticking bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewSpinner creates a spinner labelled with message.
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message, done: make(chan struct{})}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("%s...\n", s.message)
		return
	}

	s.ticking = true
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for frame := 0; ; frame++ {
			select {
			case <-s.done:
				fmt.Print("\r\033[K")
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", Bold.Render(spinnerFrames[frame%len(spinnerFrames)]), s.message)
			}
		}
	}()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	if !s.ticking {
		return
	}
	close(s.done)
	s.wg.Wait()
	s.ticking = false
}

// Progress paints "(n/total)" batch progress on one line, rewritten in
// place. Off-terminal it stays silent; the run summary reports the
// outcome instead.
type Progress struct {
	message string
	total   int
	count   int
	tty     bool
}

// NewProgress creates a progress line for total counted steps.
func NewProgress(message string, total int) *Progress {
	return &Progress{message: message, total: total, tty: isatty.IsTerminal(os.Stdout.Fd())}
}

// Increment advances the counter and repaints.
func (p *Progress) Increment() {
	p.count++
	if p.tty {
		fmt.Printf("\r%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d)", p.count, p.total)))
	}
}

// Done clears the progress line.
func (p *Progress) Done() {
	if p.tty && p.count > 0 {
		fmt.Print("\r\033[K")
	}
}
