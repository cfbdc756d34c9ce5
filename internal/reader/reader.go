// Package reader is the e-reader entry point: it decides between the
// interactive pager and a plain dump and renders documents for either.
package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/kk-code-lab/shadowops/internal/config"
	"github.com/kk-code-lab/shadowops/internal/document"
	"github.com/kk-code-lab/shadowops/internal/logging"
	"github.com/kk-code-lab/shadowops/internal/pager"
	"github.com/kk-code-lab/shadowops/internal/textutil"
)

var (
	termGetSize = term.GetSize
	isTerminal  = func(fd uintptr) bool {
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	runPager = func(ctx context.Context, doc pager.Document, opts pager.Options) error {
		return pager.New(doc, opts).Run(ctx)
	}
)

const fallbackWidth = 80

// Reader shows documents according to a resolved Mode.
type Reader struct {
	Mode         Mode
	Style        string
	SearchWrap   bool
	ChordTimeout time.Duration

	Stdin  *os.File
	Stdout *os.File
	// Out receives plain dumps; defaults to Stdout.
	Out io.Writer

	LookupEnv func(string) (string, bool)
	// NewRenderer builds the renderer for a style; defaults to glamour.
	NewRenderer func(style string) document.Renderer
}

// New builds a reader from the effective configuration.
func New(cfg config.Config, mode Mode) *Reader {
	return &Reader{
		Mode:         mode,
		Style:        cfg.Reader.Style,
		SearchWrap:   cfg.Reader.SearchWrap,
		ChordTimeout: cfg.ChordTimeout(),
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
	}
}

// Terminal inspects stdin, stdout and the colour-related environment.
func (r *Reader) Terminal() Terminal {
	lookup := r.lookup()
	t := Terminal{
		Interactive: r.Stdin != nil && r.Stdout != nil &&
			isTerminal(r.Stdin.Fd()) && isTerminal(r.Stdout.Fd()),
		Color: true,
	}
	if v, ok := lookup("TERM"); ok && v == "dumb" {
		t.Color = false
	}
	if _, ok := lookup("NO_COLOR"); ok {
		t.Color = false
	}
	if v, ok := lookup(envForceANSI); ok {
		t.ForceANSI = truthy(v)
	}
	return t
}

// Plan reports what Display would do right now.
func (r *Reader) Plan() Plan {
	return Decide(r.Mode, r.Terminal(), r.Style)
}

// Display shows src. When the pager cannot take the terminal the document
// is printed instead.
func (r *Reader) Display(ctx context.Context, src document.Source) error {
	plan := r.Plan()
	log := logging.L()
	log.Debug("display document", "name", src.Name, "mode", string(r.Mode), "pager", plan.Pager, "style", plan.Style)

	if plan.Pager {
		err := r.page(ctx, src, plan.Style)
		if err == nil || !errors.Is(err, pager.ErrNotTerminal) {
			return err
		}
		log.Debug("pager unavailable, dumping document", "err", err)
	}
	return r.Dump(src)
}

func (r *Reader) page(ctx context.Context, src document.Source, style string) error {
	width := fallbackWidth
	if r.Stdout != nil {
		if w, _, err := termGetSize(int(r.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	lines, err := r.renderer(style).RenderLines(src, width)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", src.Name, err)
	}
	return runPager(ctx, pager.NewDocument(lines), pager.Options{
		Input:        r.Stdin,
		Output:       r.out(),
		ChordTimeout: r.ChordTimeout,
		SearchWrap:   r.SearchWrap,
	})
}

// Dump prints the whole document without styling.
func (r *Reader) Dump(src document.Source) error {
	lines, err := r.renderer(document.StyleNoTTY).RenderLines(src, textutil.TextWidth())
	if err != nil {
		return fmt.Errorf("rendering %s: %w", src.Name, err)
	}
	w := bufio.NewWriter(r.out())
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, ansi.Strip(line)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (r *Reader) renderer(style string) document.Renderer {
	if r.NewRenderer != nil {
		return r.NewRenderer(style)
	}
	return document.GlamourRenderer{Style: style}
}

func (r *Reader) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Reader) lookup() func(string) (string, bool) {
	if r.LookupEnv != nil {
		return r.LookupEnv
	}
	return os.LookupEnv
}
