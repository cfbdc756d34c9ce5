package pager

import (
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type fakeKeys struct {
	bytes chan byte
	errs  chan error
	done  chan struct{}
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{
		bytes: make(chan byte, 64),
		errs:  make(chan error, 1),
		done:  make(chan struct{}),
	}
}

func (f *fakeKeys) send(s string) {
	for i := 0; i < len(s); i++ {
		f.bytes <- s[i]
	}
}

func (f *fakeKeys) input() *keyInput {
	return &keyInput{bytes: f.bytes, errs: f.errs, done: f.done}
}

func newTestDispatcher(f *fakeKeys, chord time.Duration) *Dispatcher {
	d := newDispatcher(f.input(), chord, nil)
	d.escTimeout = 10 * time.Millisecond
	return d
}

func collectKinds(t *testing.T, d *Dispatcher, n int) []ActionKind {
	t.Helper()
	kinds := make([]ActionKind, 0, n)
	for i := 0; i < n; i++ {
		action, err := d.Next()
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		kinds = append(kinds, action.Kind)
	}
	return kinds
}

func TestDispatcherKeyMap(t *testing.T) {
	tests := []struct {
		keys string
		want ActionKind
	}{
		{"j", ActionLineDown},
		{"\r", ActionLineDown},
		{"\n", ActionLineDown},
		{"k", ActionLineUp},
		{" ", ActionPageDown},
		{"f", ActionPageDown},
		{"\x06", ActionPageDown},
		{"b", ActionPageUp},
		{"\x02", ActionPageUp},
		{"G", ActionBottom},
		{"h", ActionToggleHelp},
		{"?", ActionToggleHelp},
		{"n", ActionSearchNext},
		{"q", ActionQuit},
		{"Q", ActionQuit},
		{"\x03", ActionQuit},
		{"\x1b[A", ActionLineUp},
		{"\x1b[B", ActionLineDown},
		{"\x1b[5~", ActionPageUp},
		{"\x1b[6~", ActionPageDown},
		{"\x1b[H", ActionTop},
		{"\x1b[F", ActionBottom},
		{"\x1b[1~", ActionTop},
		{"\x1b[4~", ActionBottom},
		{"\x1bOH", ActionTop},
		{"\x1bOF", ActionBottom},
		{"x", ActionNone},
		{"\x1b[C", ActionNone},
		{"é", ActionNone},
	}
	for _, tt := range tests {
		f := newFakeKeys()
		d := newTestDispatcher(f, 20*time.Millisecond)
		f.send(tt.keys)
		action, err := d.Next()
		if err != nil {
			t.Fatalf("%q: %v", tt.keys, err)
		}
		if action.Kind != tt.want {
			t.Fatalf("%q decoded to %s, want %s", tt.keys, action.Kind, tt.want)
		}
		if len(f.bytes) != 0 || len(d.in.pending) != 0 {
			t.Fatalf("%q left unread input behind", tt.keys)
		}
	}
}

func TestDispatcherLoneEscapeQuits(t *testing.T) {
	f := newFakeKeys()
	d := newTestDispatcher(f, 20*time.Millisecond)
	f.send("\x1b")
	action, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if action.Kind != ActionQuit {
		t.Fatalf("expected lone Esc to quit, got %s", action.Kind)
	}
}

func TestChordWithinTimeoutGoesToTop(t *testing.T) {
	f := newFakeKeys()
	d := newTestDispatcher(f, 200*time.Millisecond)
	f.send("gg")
	action, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if action.Kind != ActionTop {
		t.Fatalf("expected top, got %s", action.Kind)
	}
}

func TestChordTimeoutAbandonsFirstG(t *testing.T) {
	f := newFakeKeys()
	d := newTestDispatcher(f, 20*time.Millisecond)
	doc := fillerDoc(100)
	s := NewState(100, 10)
	s.Top = 42

	f.send("g")
	start := time.Now()
	action, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatalf("chord wait returned before the timeout")
	}
	s.Apply(action, doc, false)
	if s.Top != 42 {
		t.Fatalf("abandoned chord moved top to %d", s.Top)
	}

	f.send("k")
	action, err = d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	s.Apply(action, doc, false)
	if s.Top != 41 {
		t.Fatalf("expected only the second key to apply, top=%d", s.Top)
	}
}

func TestChordPushesBackOtherKey(t *testing.T) {
	f := newFakeKeys()
	d := newTestDispatcher(f, 200*time.Millisecond)
	f.send("gjG")
	got := collectKinds(t, d, 3)
	want := []ActionKind{ActionNone, ActionLineDown, ActionBottom}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchLineEdit(t *testing.T) {
	f := newFakeKeys()
	var echoed []string
	d := newDispatcher(f.input(), 20*time.Millisecond, func(q string) { echoed = append(echoed, q) })
	f.send("/tarx\x7fget\r")

	action, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if diff := cmp.Diff(Action{Kind: ActionSearch, Query: "target"}, action); diff != "" {
		t.Fatalf("action mismatch (-want +got):\n%s", diff)
	}
	if echoed[0] != "" || echoed[len(echoed)-1] != "target" {
		t.Fatalf("unexpected prompt echoes %q", echoed)
	}
}

func TestSearchLineEditBackspaceRemovesWholeRune(t *testing.T) {
	f := newFakeKeys()
	d := newTestDispatcher(f, 20*time.Millisecond)
	f.send("/añ\x7f\x08b\r")
	action, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if action.Query != "b" {
		t.Fatalf("expected query %q, got %q", "b", action.Query)
	}
}

func TestSearchCancel(t *testing.T) {
	for _, keys := range []string{"/abc\x03", "/\r", "/abc\x1b"} {
		f := newFakeKeys()
		d := newTestDispatcher(f, 20*time.Millisecond)
		f.send(keys)
		action, err := d.Next()
		if err != nil {
			t.Fatalf("%q: %v", keys, err)
		}
		if action.Kind != ActionNone {
			t.Fatalf("%q: expected cancelled search, got %s", keys, action.Kind)
		}

		f.send("j")
		action, err = d.Next()
		if err != nil {
			t.Fatalf("%q: %v", keys, err)
		}
		if action.Kind != ActionLineDown {
			t.Fatalf("%q: expected keys after cancel to dispatch normally, got %s", keys, action.Kind)
		}
	}
}

func TestKeyInputDrainsBytesBeforeError(t *testing.T) {
	f := newFakeKeys()
	f.send("jq")
	f.errs <- io.EOF
	in := f.input()

	var got []byte
	for {
		b, err := in.read()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("expected EOF, got %v", err)
			}
			break
		}
		got = append(got, b)
	}
	if string(got) != "jq" {
		t.Fatalf("expected buffered bytes before EOF, got %q", got)
	}
}

func TestKeyInputDoneUnblocksRead(t *testing.T) {
	f := newFakeKeys()
	in := f.input()
	close(f.done)
	if _, err := in.read(); !errors.Is(err, errInputClosed) {
		t.Fatalf("expected errInputClosed, got %v", err)
	}
}

func TestSearchPromptInterrupted(t *testing.T) {
	keys := newFakeKeys()
	interrupt := make(chan os.Signal, 1)
	in := keys.input()
	in.interrupt = interrupt
	d := newDispatcher(in, 0, nil)

	keys.send("/ab")
	go func() {
		time.Sleep(20 * time.Millisecond)
		interrupt <- os.Interrupt
	}()
	if _, err := d.Next(); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Next = %v, want ErrInterrupted", err)
	}
}

func TestResizeDuringSearchPromptIsLatched(t *testing.T) {
	keys := newFakeKeys()
	resize := make(chan os.Signal, 1)
	in := keys.input()
	in.resize = resize
	d := newDispatcher(in, 0, nil)

	keys.send("/a")
	go func() {
		time.Sleep(20 * time.Millisecond)
		resize <- os.Interrupt
		time.Sleep(20 * time.Millisecond)
		keys.send("b\r")
	}()
	action, err := d.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if action.Kind != ActionSearch || action.Query != "ab" {
		t.Fatalf("got %v %q", action.Kind, action.Query)
	}
	if !in.takeResize() {
		t.Fatalf("resize during the prompt was dropped")
	}
	if in.takeResize() {
		t.Fatalf("resize latch not cleared")
	}
}
