package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/shadowops/internal/archive"
	"github.com/kk-code-lab/shadowops/internal/audio"
	"github.com/kk-code-lab/shadowops/internal/catalog"
	"github.com/kk-code-lab/shadowops/internal/document"
	"github.com/kk-code-lab/shadowops/internal/reader"
	"github.com/kk-code-lab/shadowops/internal/rv"
)

const opsManualArg = "ops-manual"

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "shadowops",
		Short:         "Offline ShadowOps training toolkit",
		Long:          "Menu-driven offline toolkit: operations manual, manuals library, research archive, audio lab and remote-viewing training.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mainMenu().Show(cmd.Context(), a.console)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.mode, "mode", "", "reader mode: auto, styled or plain (default from config)")
	pf.StringVar(&a.flags.style, "style", "", "glamour style: auto, dark, light, notty, dracula, pink, ascii, tokyo-night, or a JSON style file path")
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.shadowops/config.toml, or $SHADOWOPS_CONFIG)")

	root.AddCommand(
		newReadCommand(a),
		newManualsCommand(a),
		newArchiveCommand(a),
		newAudioCommand(a),
		newRVCommand(a),
		newSettingsCommand(a),
	)
	return root
}

func newReadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <file.md|ops-manual>",
		Short: "Open a markdown file, or the operations manual, in the reader",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				src document.Source
				err error
			)
			if args[0] == opsManualArg {
				src, err = a.library.OpsManual()
			} else {
				src, err = document.FromFile(args[0])
			}
			if err != nil {
				return err
			}
			return a.reader.Display(cmd.Context(), src)
		},
	}
}

func newManualsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manuals",
		Short: "Browse the manuals library",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show the manuals and their sections as a tree",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				lines, err := a.library.Tree()
				if err != nil {
					return err
				}
				if len(lines) == 1 {
					fmt.Fprintf(a.out, "Manual data directory not found at %s\n", a.library.Root)
					return nil
				}
				fmt.Fprintln(a.out, strings.Join(lines, "\n"))
				fmt.Fprintln(a.out, "\nUse `shadowops manuals read <manual> <section>` to open a document.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "read <manual> <section>",
			Short: "Open one manual section in the reader",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				src, err := a.library.Read(args[0], args[1])
				if err != nil {
					return err
				}
				return a.reader.Display(cmd.Context(), src)
			},
		},
	)
	return cmd
}

func newArchiveCommand(a *app) *cobra.Command {
	var filter archive.Filter
	list := &cobra.Command{
		Use:   "list",
		Short: "List research documents available to the demo user",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))
			if filter.Category == "" || filter.Category == "any" {
				filter.Category = ""
				return nil
			}
			if !slices.Contains(catalog.Categories(), filter.Category) {
				return fmt.Errorf("invalid --category %q (use %s or any)", filter.Category, strings.Join(catalog.Categories(), ", "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.out, filter.Describe())
			fmt.Fprintln(a.out, archive.ListTable(filter.Apply(catalog.ByTier(catalog.DemoUser.Tier))))
			return nil
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "match text in titles, summaries and tags")
	list.Flags().StringVar(&filter.Category, "category", "", "only show one category")

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Research archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.archiveFlow().Run(cmd.Context())
		},
	}
	cmd.AddCommand(list)
	return cmd
}

type toneFlags struct {
	freq     float64
	beat     float64
	duration float64
	volume   float64
	play     bool
	out      string
}

func newAudioCommand(a *app) *cobra.Command {
	presets := &cobra.Command{
		Use:   "presets",
		Short: "List frequency presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, audio.PresetTable(catalog.Presets()))
			return nil
		},
	}

	var tf toneFlags
	tone := &cobra.Command{
		Use:   "tone",
		Short: "Render a tone to a WAV file",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case tf.freq <= 0:
				return fmt.Errorf("invalid --freq: %g (must be above 0)", tf.freq)
			case tf.beat < 0:
				return fmt.Errorf("invalid --beat: %g (must not be negative)", tf.beat)
			case tf.beat/2 >= tf.freq:
				return fmt.Errorf("invalid --beat: %g (must be under twice the carrier)", tf.beat)
			case !(tf.duration > 0 && tf.duration <= audio.MaxSeconds):
				return fmt.Errorf("invalid --duration: %g (must be above 0 and at most %d)", tf.duration, audio.MaxSeconds)
			case tf.volume < 0 || tf.volume > 1:
				return fmt.Errorf("invalid --volume: %g (use 0.0 to 1.0)", tf.volume)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := audio.Tone(tf.freq, tf.beat, tf.duration, tf.volume)
			if err != nil {
				return err
			}
			path := tf.out
			if path == "" {
				path = filepath.Join(audio.Dir(a.storage), audio.CustomFile(a.now()))
			}
			if err := audio.SaveWAV(path, buf); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "WAV file saved to %s\n", path)
			if !tf.play {
				return nil
			}
			if err := audio.Play(cmd.Context(), path); errors.Is(err, audio.ErrNoPlayer) {
				fmt.Fprintln(a.out, "No audio player found (tried afplay, paplay, aplay, ffplay). The WAV file has been generated instead.")
				return nil
			} else if err != nil {
				return err
			}
			return nil
		},
	}
	fl := tone.Flags()
	fl.Float64Var(&tf.freq, "freq", 220, "carrier frequency in Hz")
	fl.Float64Var(&tf.beat, "beat", 0, "binaural beat in Hz (0 for a single mono tone)")
	fl.Float64Var(&tf.duration, "duration", 180, "length in seconds")
	fl.Float64Var(&tf.volume, "volume", 0.4, "volume from 0.0 to 1.0")
	fl.BoolVar(&tf.play, "play", false, "play the file after writing it")
	fl.StringVar(&tf.out, "out", "", "output path (default under the storage directory)")

	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Audio frequency lab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.audioLab().Run(cmd.Context())
		},
	}
	cmd.AddCommand(presets, tone)
	return cmd
}

func newRVCommand(a *app) *cobra.Command {
	var difficulty string
	targets := &cobra.Command{
		Use:   "targets",
		Short: "List remote-viewing targets",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if difficulty == "" {
				return nil
			}
			d, err := catalog.ParseDifficulty(difficulty)
			if err != nil {
				return fmt.Errorf("invalid --difficulty: %w", err)
			}
			difficulty = string(d)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, rv.TargetTable(catalog.Targets(catalog.Difficulty(difficulty))))
			return nil
		},
	}
	targets.Flags().StringVar(&difficulty, "difficulty", "", "novice, intermediate or advanced")

	history := &cobra.Command{
		Use:   "history",
		Short: "Show completed training sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := rv.NewStore(a.storage).Load()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, rv.HistoryTable(records))
			return nil
		},
	}

	cmd := &cobra.Command{
		Use:   "rv",
		Short: "Remote viewing training",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.trainer().Run(cmd.Context())
		},
	}
	cmd.AddCommand(targets, history)
	return cmd
}

func newSettingsCommand(a *app) *cobra.Command {
	mode := &cobra.Command{
		Use:       "mode [auto|styled|plain]",
		Short:     "Show or save the default reader mode",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(reader.ModeAuto), string(reader.ModeStyled), string(reader.ModePlain)},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			_, err := reader.ParseMode(args[0])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintf(a.out, "Reader mode: %s (from %s)\n", a.reader.Mode, a.modeSource())
				return nil
			}
			m, _ := reader.ParseMode(args[0])
			if err := a.setMode(m); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Reader mode set to %s (saved to %s).\n", m, a.configPath)
			return nil
		},
	}
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Toolkit settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.settingsMenu(cmd.Context())
		},
	}
	cmd.AddCommand(mode)
	return cmd
}
