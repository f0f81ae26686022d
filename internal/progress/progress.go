// Package progress renders a busy indicator on stderr while a blocking
// call runs, so a long wait on an external process doesn't look like a
// hang. Output goes to stderr to keep stdout clean for piping, and TTY
// detection means it's silent under redirection.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// tickInterval is how often the animation advances.
const tickInterval = 120 * time.Millisecond

// tagfs has no notion of item counts for the operations it spins on
// (waiting on $EDITOR, waiting on a store transaction), so the frames
// read as a pulse rather than a percentage.
var defaultFrames = []string{"◐", "◓", "◑", "◒"}

// Spinner animates an indeterminate busy indicator for the duration of
// a single blocking call.
type Spinner struct {
	w      io.Writer
	label  string
	frames []string
	isTTY  bool
}

// NewSpinner creates a spinner labeled for stderr output.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:      os.Stderr,
		label:  label,
		frames: defaultFrames,
		isTTY:  term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Run executes fn, animating the spinner for its duration on a TTY and
// clearing the line once fn returns. On a non-TTY it just runs fn: there's
// no terminal to animate, and the animation goroutine would be pure
// overhead.
func (s *Spinner) Run(fn func() error) error {
	if !s.isTTY {
		return fn()
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go s.animate(stop, done)

	err := fn()
	close(stop)
	<-done
	return err
}

func (s *Spinner) animate(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	frame := 0
	fmt.Fprintf(s.w, "%s %s...", s.frames[frame], s.label)
	for {
		select {
		case <-ticker.C:
			frame = (frame + 1) % len(s.frames)
			fmt.Fprintf(s.w, "\r%s %s...", s.frames[frame], s.label)
		case <-stop:
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.label)+8))
			return
		}
	}
}
