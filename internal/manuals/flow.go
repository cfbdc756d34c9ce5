package manuals

import (
	"context"
	"errors"

	"github.com/kk-code-lab/shadowops/internal/document"
	"github.com/kk-code-lab/shadowops/internal/menu"
)

// Viewer opens a document for reading.
type Viewer interface {
	Display(ctx context.Context, src document.Source) error
}

// Browser is the interactive side of a Library.
type Browser struct {
	Library Library
	Console *menu.Console
	Viewer  Viewer
}

// ShowOpsManual opens the operations manual, or says why it cannot.
func (b *Browser) ShowOpsManual(ctx context.Context) error {
	src, err := b.Library.OpsManual()
	if errors.Is(err, ErrNotFound) {
		b.Console.Printf("Operations manual not found at %s\n", b.Library.OpsPath)
		return nil
	}
	if err != nil {
		return err
	}
	return b.Viewer.Display(ctx, src)
}

// Run lets the user pick a manual, then a section to read.
func (b *Browser) Run(ctx context.Context) error {
	manuals, err := b.Library.Manuals()
	if err != nil {
		return err
	}
	if len(manuals) == 0 {
		b.Console.Printf("Manual data directory not found at %s\n", b.Library.Root)
		return nil
	}

	items := make([]menu.Item, 0, len(manuals))
	for _, m := range manuals {
		items = append(items, menu.Item{
			Label:   m.Title(),
			Handler: func(ctx context.Context) error { return b.sections(ctx, m) },
		})
	}
	return menu.Menu{Title: "Manuals Library", Items: items, ExitLabel: "Back"}.Show(ctx, b.Console)
}

func (b *Browser) sections(ctx context.Context, m Manual) error {
	if len(m.Sections) == 0 {
		b.Console.Printf("%s has no sections.\n", m.Title())
		return nil
	}
	items := make([]menu.Item, 0, len(m.Sections))
	for _, s := range m.Sections {
		items = append(items, menu.Item{
			Label: s,
			Handler: func(ctx context.Context) error {
				src, err := b.Library.Read(m.ID, s)
				if err != nil {
					return err
				}
				return b.Viewer.Display(ctx, src)
			},
		})
	}
	return menu.Menu{Title: m.Title(), Items: items, ExitLabel: "Back"}.Show(ctx, b.Console)
}
