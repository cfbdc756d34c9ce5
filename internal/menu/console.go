// Package menu draws selection menus with tcell and falls back to numbered
// prompts when stdin or stdout is not a terminal.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"

	"github.com/kk-code-lab/shadowops/internal/logging"
)

// ScreenFactory creates an uninitialised tcell screen.
type ScreenFactory func() (tcell.Screen, error)

// Console is the shared terminal for menus and prompts. With a nil screen
// factory every choice is read as a number from In.
type Console struct {
	In        *bufio.Reader
	Out       io.Writer
	NewScreen ScreenFactory
}

// NewConsole uses tcell when both streams are terminals.
func NewConsole(in, out *os.File) *Console {
	c := &Console{In: bufio.NewReader(in), Out: out}
	if isTerminal(in) && isTerminal(out) {
		c.NewScreen = tcell.NewScreen
	}
	return c
}

// NewTextConsole never uses a full-screen UI.
func NewTextConsole(in io.Reader, out io.Writer) *Console {
	return &Console{In: bufio.NewReader(in), Out: out}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether choices are made on a full-screen menu.
func (c *Console) Interactive() bool { return c.NewScreen != nil }

// Printf writes to the console output.
func (c *Console) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the console output.
func (c *Console) Println(args ...any) {
	_, _ = fmt.Fprintln(c.Out, args...)
}

// Select asks for one of options and returns its index. ok is false when
// the user backs out or gives an unusable answer.
func (c *Console) Select(title string, options []string) (int, bool) {
	if len(options) == 0 {
		return -1, false
	}
	if c.NewScreen != nil {
		idx, ok, err := c.selectScreen(title, options)
		if err == nil {
			return idx, ok
		}
		logging.L().Debug("menu screen unavailable, using prompt", "err", err)
	}
	return c.selectPrompt(title, options)
}

func (c *Console) selectPrompt(title string, options []string) (int, bool) {
	c.Println(title)
	for i, option := range options {
		c.Printf("%d. %s\n", i+1, option)
	}
	raw, err := c.readLine("Select an option (blank to exit): ")
	if err != nil || raw == "" {
		return -1, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.Println("Invalid selection. Please enter a number.")
		return -1, false
	}
	if value < 1 || value > len(options) {
		c.Println("Selection out of range.")
		return -1, false
	}
	return value - 1, true
}

// readLine prints prompt and returns the trimmed reply. A final line without
// a newline is still returned; io.EOF only comes back with nothing read.
func (c *Console) readLine(prompt string) (string, error) {
	if prompt != "" {
		c.Printf("%s", prompt)
	}
	line, err := c.In.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			c.Println()
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
