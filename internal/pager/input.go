package pager

import (
	"errors"
	"io"
	"os"
	"time"
	"unicode/utf8"
)

const (
	DefaultChordTimeout = 250 * time.Millisecond
	escapeTimeout       = 25 * time.Millisecond
	maxCSILength        = 8

	keyCtrlB     = 0x02
	keyCtrlC     = 0x03
	keyCtrlF     = 0x06
	keyBackspace = 0x08
	keyCtrlU     = 0x15
	keyDelete    = 0x7f
)

var errInputClosed = errors.New("pager input closed")

// keyInput is the byte source behind the dispatcher. Bytes arrive on a
// channel fed by the key reader; pending holds bytes pushed back after an
// abandoned chord or sequence so the next read sees them first. The signal
// channels are watched by every read, so a chord or an open search prompt
// never holds back an interrupt. A resize seen mid-key is latched in resized.
type keyInput struct {
	bytes     <-chan byte
	errs      <-chan error
	done      <-chan struct{}
	resize    <-chan os.Signal
	interrupt <-chan os.Signal
	pending   []byte
	err       error
	resized   bool
}

type inputEvent int

const (
	eventKey inputEvent = iota
	eventResize
	eventTimeout
)

func (in *keyInput) unread(b byte) {
	in.pending = append([]byte{b}, in.pending...)
}

func (in *keyInput) read() (byte, error) {
	b, _, err := in.await(nil, false)
	return b, err
}

// readWithin waits at most d for a byte; ok is false on timeout.
func (in *keyInput) readWithin(d time.Duration) (byte, bool, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	b, ev, err := in.await(timer.C, false)
	if err != nil {
		return 0, false, err
	}
	return b, ev == eventKey, nil
}

// takeResize reports and clears a latched resize.
func (in *keyInput) takeResize() bool {
	r := in.resized
	in.resized = false
	return r
}

// await blocks until a byte, a signal or the timeout. An interrupt yields
// ErrInterrupted. A resize returns eventResize only when wakeOnResize is
// set; otherwise it is latched and the wait goes on. Bytes already queued win
// over a reader error so input typed just before EOF is never lost.
func (in *keyInput) await(timeout <-chan time.Time, wakeOnResize bool) (byte, inputEvent, error) {
	if len(in.pending) > 0 {
		b := in.pending[0]
		in.pending = in.pending[1:]
		return b, eventKey, nil
	}
	if in.err != nil {
		select {
		case b, ok := <-in.bytes:
			if ok {
				return b, eventKey, nil
			}
		default:
		}
		return 0, eventKey, in.err
	}

	for {
		select {
		case b, ok := <-in.bytes:
			if !ok {
				in.err = io.EOF
				return 0, eventKey, in.err
			}
			return b, eventKey, nil
		case err := <-in.errs:
			if err == nil {
				err = io.EOF
			}
			in.err = err
			return in.await(timeout, wakeOnResize)
		case <-in.done:
			return 0, eventKey, errInputClosed
		case <-in.interrupt:
			return 0, eventKey, ErrInterrupted
		case <-in.resize:
			in.resized = true
			if wakeOnResize {
				return 0, eventResize, nil
			}
		case <-timeout:
			return 0, eventTimeout, nil
		}
	}
}

// Dispatcher turns raw key bytes into pager actions.
type Dispatcher struct {
	in           *keyInput
	chordTimeout time.Duration
	escTimeout   time.Duration
	echo         func(query string)
}

func newDispatcher(in *keyInput, chordTimeout time.Duration, echo func(string)) *Dispatcher {
	if chordTimeout <= 0 {
		chordTimeout = DefaultChordTimeout
	}
	return &Dispatcher{
		in:           in,
		chordTimeout: chordTimeout,
		escTimeout:   escapeTimeout,
		echo:         echo,
	}
}

// Next reads one key (more for chords, escape sequences and search input)
// and decodes it.
func (d *Dispatcher) Next() (Action, error) {
	b, err := d.in.read()
	if err != nil {
		return Action{}, err
	}
	return d.Decode(b)
}

// Decode maps the first byte of a key press to an action, reading follow-up
// bytes when the key needs them.
func (d *Dispatcher) Decode(b byte) (Action, error) {
	switch b {
	case 'j', '\r', '\n':
		return Action{Kind: ActionLineDown}, nil
	case 'k':
		return Action{Kind: ActionLineUp}, nil
	case ' ', 'f', keyCtrlF:
		return Action{Kind: ActionPageDown}, nil
	case 'b', keyCtrlB:
		return Action{Kind: ActionPageUp}, nil
	case 'g':
		return d.chord()
	case 'G':
		return Action{Kind: ActionBottom}, nil
	case 'h', '?':
		return Action{Kind: ActionToggleHelp}, nil
	case '/':
		return d.readQuery()
	case 'n':
		return Action{Kind: ActionSearchNext}, nil
	case 'q', 'Q', keyCtrlC:
		return Action{Kind: ActionQuit}, nil
	case esc:
		return d.escapeSequence()
	}

	if b >= utf8.RuneSelf {
		return Action{}, d.skipContinuation(b)
	}
	return Action{}, nil
}

// chord completes "gg". Any other byte inside the window is pushed back for
// the next iteration; silence past the window abandons the chord.
func (d *Dispatcher) chord() (Action, error) {
	next, ok, err := d.in.readWithin(d.chordTimeout)
	if err != nil || !ok {
		return Action{}, err
	}
	if next == 'g' {
		return Action{Kind: ActionTop}, nil
	}
	d.in.unread(next)
	return Action{}, nil
}

func (d *Dispatcher) escapeSequence() (Action, error) {
	next, ok, err := d.in.readWithin(d.escTimeout)
	if err != nil {
		return Action{}, err
	}
	if !ok {
		return Action{Kind: ActionQuit}, nil
	}

	switch next {
	case '[':
		return d.parseCSI()
	case 'O':
		final, ok, err := d.in.readWithin(d.escTimeout)
		if err != nil || !ok {
			return Action{}, err
		}
		switch final {
		case 'A':
			return Action{Kind: ActionLineUp}, nil
		case 'B':
			return Action{Kind: ActionLineDown}, nil
		case 'H':
			return Action{Kind: ActionTop}, nil
		case 'F':
			return Action{Kind: ActionBottom}, nil
		}
		return Action{}, nil
	default:
		d.in.unread(next)
		return Action{Kind: ActionQuit}, nil
	}
}

func (d *Dispatcher) parseCSI() (Action, error) {
	seq := make([]byte, 0, maxCSILength)
	for len(seq) < maxCSILength {
		b, ok, err := d.in.readWithin(d.escTimeout)
		if err != nil {
			return Action{}, err
		}
		if !ok {
			return Action{}, nil
		}
		seq = append(seq, b)
		if b >= 0x40 && b <= 0x7e {
			break
		}
	}
	if len(seq) == 0 {
		return Action{}, nil
	}

	switch seq[len(seq)-1] {
	case 'A':
		return Action{Kind: ActionLineUp}, nil
	case 'B':
		return Action{Kind: ActionLineDown}, nil
	case 'H':
		return Action{Kind: ActionTop}, nil
	case 'F':
		return Action{Kind: ActionBottom}, nil
	case '~':
		switch string(seq[:len(seq)-1]) {
		case "5":
			return Action{Kind: ActionPageUp}, nil
		case "6":
			return Action{Kind: ActionPageDown}, nil
		case "1", "7":
			return Action{Kind: ActionTop}, nil
		case "4", "8":
			return Action{Kind: ActionBottom}, nil
		}
	}
	return Action{}, nil
}

// readQuery runs the "/" line editor. Enter submits, Backspace removes one
// rune, Ctrl-U clears, Esc or Ctrl-C cancels.
func (d *Dispatcher) readQuery() (Action, error) {
	var buf []byte
	d.echoQuery(buf)
	for {
		b, err := d.in.read()
		if err != nil {
			return Action{}, err
		}
		switch b {
		case '\r', '\n':
			if len(buf) == 0 {
				return Action{}, nil
			}
			return Action{Kind: ActionSearch, Query: string(buf)}, nil
		case keyDelete, keyBackspace:
			if len(buf) > 0 {
				_, size := utf8.DecodeLastRune(buf)
				buf = buf[:len(buf)-size]
			}
		case keyCtrlU:
			buf = buf[:0]
		case keyCtrlC:
			return Action{}, nil
		case esc:
			d.drain()
			return Action{}, nil
		default:
			if b < 0x20 {
				continue
			}
			buf = append(buf, b)
		}
		d.echoQuery(buf)
	}
}

func (d *Dispatcher) echoQuery(buf []byte) {
	if d.echo != nil {
		d.echo(string(buf))
	}
}

// drain discards the tail of an escape sequence typed during search.
func (d *Dispatcher) drain() {
	for {
		if _, ok, err := d.in.readWithin(d.escTimeout); err != nil || !ok {
			return
		}
	}
}

// skipContinuation consumes the remaining bytes of a multi-byte rune that has
// no binding.
func (d *Dispatcher) skipContinuation(lead byte) error {
	var want int
	switch {
	case lead&0xe0 == 0xc0:
		want = 1
	case lead&0xf0 == 0xe0:
		want = 2
	case lead&0xf8 == 0xf0:
		want = 3
	}
	for i := 0; i < want; i++ {
		b, ok, err := d.in.readWithin(d.escTimeout)
		if err != nil || !ok {
			return err
		}
		if b&0xc0 != 0x80 {
			d.in.unread(b)
			return nil
		}
	}
	return nil
}
