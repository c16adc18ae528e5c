package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner draws a one-line progress indicator until stopped or until its
// context is cancelled. The message may change while it spins.
type Spinner struct {
	w      io.Writer
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	once   sync.Once

	mu    sync.Mutex
	msg   string
	drawn int // widest line written, for clearing
}

// newSpinner creates a spinner on stderr.
func newSpinner(ctx context.Context, msg string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, msg)
}

func newSpinnerTo(ctx context.Context, w io.Writer, msg string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{w: w, ctx: sctx, cancel: cancel, exited: make(chan struct{}), msg: msg}
}

// Start begins drawing in the background.
func (s *Spinner) Start() {
	go func() {
		defer close(s.exited)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-tick.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the animation and clears the line. Extra calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.exited
	})
}

// Cancelled reports whether the parent context ended before Stop.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.msg)
	pad := max(s.drawn-len(s.msg)-2, 0)
	fmt.Fprintf(s.w, "\r%s%s", line, strings.Repeat(" ", pad))
	s.drawn = max(s.drawn, len(s.msg)+2)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", max(s.drawn, len(s.msg)+2)))
}
