package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/kk-code-lab/shadowops/internal/archive"
	"github.com/kk-code-lab/shadowops/internal/audio"
	"github.com/kk-code-lab/shadowops/internal/catalog"
	"github.com/kk-code-lab/shadowops/internal/manuals"
	"github.com/kk-code-lab/shadowops/internal/menu"
	"github.com/kk-code-lab/shadowops/internal/reader"
	"github.com/kk-code-lab/shadowops/internal/rv"
)

func (a *app) browser() *manuals.Browser {
	return &manuals.Browser{Library: a.library, Console: a.console, Viewer: a.reader}
}

func (a *app) archiveFlow() *archive.Flow {
	return &archive.Flow{Console: a.console, Viewer: a.reader, User: catalog.DemoUser}
}

func (a *app) audioLab() *audio.Lab {
	return &audio.Lab{Console: a.console, StorageDir: a.storage, Now: a.now}
}

func (a *app) trainer() *rv.Trainer {
	return &rv.Trainer{Console: a.console, Store: rv.NewStore(a.storage), Now: a.now}
}

// modules are the content entries of the main menu, in order.
func (a *app) modules() []menu.Item {
	return []menu.Item{
		{Label: "Operations Manual", Handler: a.browser().ShowOpsManual},
		{Label: "Manuals Library", Handler: a.browser().Run},
		{Label: "Research Archive", Handler: func(ctx context.Context) error { return a.archiveFlow().Run(ctx) }},
		{Label: "Audio Frequency Lab", Handler: func(ctx context.Context) error { return a.audioLab().Run(ctx) }},
		{Label: "Remote Viewing Training", Handler: func(ctx context.Context) error { return a.trainer().Run(ctx) }},
	}
}

func (a *app) mainMenu() menu.Menu {
	items := []menu.Item{{Label: "Run all modules", Handler: a.runAll}}
	items = append(items, a.modules()...)
	items = append(items, menu.Item{Label: "Settings", Handler: a.settingsMenu})
	return menu.Menu{Title: "ShadowOps Offline Toolkit", Items: items}
}

// runAll visits every module in turn. A module error is reported and the
// tour continues.
func (a *app) runAll(ctx context.Context) error {
	for _, m := range a.modules() {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.console.Printf("\n=== %s ===\n\n", strings.ToUpper(m.Label))
		if err := m.Handler(ctx); err != nil {
			if ctx.Err() != nil {
				return err
			}
			a.console.Printf("error: %v\n", err)
		}
	}
	return nil
}

func (a *app) settingsMenu(context.Context) error {
	options := make([]string, 0, len(reader.Modes))
	for _, m := range reader.Modes {
		label := string(m)
		if m == a.reader.Mode {
			label += " (current)"
		}
		options = append(options, label)
	}
	idx, ok := a.console.Select("Reader mode", options)
	if !ok {
		return nil
	}
	mode := reader.Modes[idx]
	if err := a.setMode(mode); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	a.console.Printf("Reader mode set to %s (saved to %s).\n", mode, a.configPath)
	return nil
}
