// Package pager is the interactive document viewer: it clips styled lines to
// the terminal, owns the scroll state and runs the raw-mode key loop.
package pager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/kk-code-lab/shadowops/internal/logging"
)

var (
	// ErrNotTerminal means the session could not take over the terminal.
	// Callers fall back to printing the document.
	ErrNotTerminal = errors.New("pager: input is not an interactive terminal")
	// ErrInterrupted is returned when a termination signal ends the session.
	ErrInterrupted = errors.New("pager: interrupted")
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

var (
	termMakeRaw = term.MakeRaw
	termRestore = term.Restore
	termGetSize = term.GetSize
	isTerminal  = func(fd uintptr) bool {
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// Options configures a Session. Input must be the terminal the keys come
// from; Output defaults to stdout.
type Options struct {
	Input        *os.File
	Output       io.Writer
	ChordTimeout time.Duration
	SearchWrap   bool
}

// Session is one run of the pager over a document.
type Session struct {
	doc   *Document
	state *State
	opts  Options

	width    int
	height   int
	rawState *term.State
	resized  bool
}

// New prepares a session. Nothing touches the terminal until Run.
func New(doc Document, opts Options) *Session {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ChordTimeout <= 0 {
		opts.ChordTimeout = DefaultChordTimeout
	}
	return &Session{
		doc:   &doc,
		state: NewState(doc.Len(), fallbackHeight-1),
		opts:  opts,
	}
}

// State exposes the scroll state, mainly for tests and callers that want to
// report where the reader stopped.
func (s *Session) State() *State { return s.state }

// Run blocks until the user quits, the input ends, ctx is cancelled or a
// termination signal arrives. The terminal is restored on every path.
func (s *Session) Run(ctx context.Context) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	done := make(chan struct{})
	defer close(done)
	bytesCh, errCh, stop := startKeyReader(s.opts.Input, done)
	defer stop()

	resize := make(chan os.Signal, 1)
	if sigs := resizeSignals(); len(sigs) > 0 {
		signal.Notify(resize, sigs...)
		defer signal.Stop(resize)
	}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, interruptSignals()...)
	defer signal.Stop(interrupt)

	in := &keyInput{
		bytes:     bytesCh,
		errs:      errCh,
		done:      ctx.Done(),
		resize:    resize,
		interrupt: interrupt,
	}
	dispatcher := newDispatcher(in, s.opts.ChordTimeout, s.echoQuery)

	log := logging.L()
	log.Debug("pager session start", "lines", s.doc.Len())

	s.resized = true
	for {
		if in.takeResize() || s.resized {
			s.resized = false
			s.applyResize()
		}
		if err := s.draw(); err != nil {
			return err
		}

		b, ev, err := in.await(nil, true)
		if err == nil && ev == eventResize {
			s.resized = in.takeResize()
			continue
		}
		var action Action
		if err == nil {
			action, err = dispatcher.Decode(b)
		}
		if err != nil {
			return s.inputError(ctx, err)
		}

		log.Debug("pager action", "action", action.Kind.String(), "top", s.state.Top)
		if !s.state.Apply(action, s.doc, s.opts.SearchWrap) {
			return nil
		}
	}
}

func (s *Session) inputError(ctx context.Context, err error) error {
	if errors.Is(err, ErrInterrupted) {
		logging.L().Debug("pager interrupted")
		return ErrInterrupted
	}
	if errors.Is(err, errInputClosed) && ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("pager: read input: %w", err)
}

func (s *Session) acquire() error {
	in := s.opts.Input
	if in == nil || !isTerminal(in.Fd()) {
		return ErrNotTerminal
	}
	raw, err := termMakeRaw(int(in.Fd()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	s.rawState = raw
	// Alternate screen, no autowrap, hidden cursor.
	_, err = io.WriteString(s.opts.Output, "\x1b[?1049h\x1b[?7l\x1b[?25l")
	return err
}

func (s *Session) release() {
	if s.rawState != nil && s.opts.Input != nil {
		_ = termRestore(int(s.opts.Input.Fd()), s.rawState)
		s.rawState = nil
	}
	_, _ = io.WriteString(s.opts.Output, "\x1b[?25h\x1b[?7h\x1b[?1049l")
	logging.L().Debug("pager session end", "top", s.state.Top)
}

// applyResize re-reads the viewport size. A failed query keeps the last
// known size.
func (s *Session) applyResize() {
	width, height, err := termGetSize(int(s.opts.Input.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		if s.width == 0 {
			s.width, s.height = fallbackWidth, fallbackHeight
		}
	} else {
		s.width, s.height = width, height
	}
	s.state.Apply(Action{Kind: ActionResize, Height: s.height - 1}, s.doc, false)
}

func (s *Session) draw() error {
	frame := Compose(s.doc, s.state, s.width)
	_, err := frame.WriteTo(s.opts.Output)
	return err
}

func (s *Session) echoQuery(query string) {
	_ = writePrompt(s.opts.Output, max(s.height, 1), s.width, query)
}
