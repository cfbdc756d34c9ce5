package menu

import (
	"context"
	"errors"

	"github.com/kk-code-lab/shadowops/internal/logging"
	"github.com/kk-code-lab/shadowops/internal/pager"
)

// Item is one menu entry.
type Item struct {
	Label   string
	Handler func(ctx context.Context) error
}

// Menu repeats a choice until the user picks the exit entry or backs out.
type Menu struct {
	Title     string
	Items     []Item
	ExitLabel string
}

// Show runs the menu on c. Handler errors are reported and the menu comes
// back; only cancellation and termination signals end it early.
func (m Menu) Show(ctx context.Context, c *Console) error {
	exit := m.ExitLabel
	if exit == "" {
		exit = "Exit"
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		options := make([]string, 0, len(m.Items)+1)
		for _, item := range m.Items {
			options = append(options, item.Label)
		}
		options = append(options, exit)

		idx, ok := c.Select(m.Title, options)
		if !ok || idx == len(options)-1 {
			return nil
		}

		item := m.Items[idx]
		logging.L().Debug("menu choice", "menu", m.Title, "item", item.Label)
		if item.Handler == nil {
			continue
		}
		if err := item.Handler(ctx); err != nil {
			if errors.Is(err, pager.ErrInterrupted) || errors.Is(err, context.Canceled) {
				return err
			}
			c.Printf("error: %v\n", err)
		}
	}
}
