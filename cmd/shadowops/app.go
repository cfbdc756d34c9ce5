package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/shadowops/internal/config"
	"github.com/kk-code-lab/shadowops/internal/document"
	"github.com/kk-code-lab/shadowops/internal/logging"
	"github.com/kk-code-lab/shadowops/internal/manuals"
	"github.com/kk-code-lab/shadowops/internal/menu"
	"github.com/kk-code-lab/shadowops/internal/reader"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	mode       string
	style      string
	configPath string
}

// app carries what every command needs once flags and config are resolved.
type app struct {
	stdin  *os.File
	stdout *os.File
	out    io.Writer

	flags globalFlags

	configPath string
	// fileCfg is what the config file says; cfg adds environment overrides.
	fileCfg config.Config
	cfg     config.Config
	storage string

	console *menu.Console
	reader  *reader.Reader
	library manuals.Library
	now     func() time.Time
}

func newApp(stdin, stdout *os.File) *app {
	return &app{
		stdin:   stdin,
		stdout:  stdout,
		library: manuals.Embedded(),
		now:     time.Now,
	}
}

// setup loads configuration and builds the reader and console. It runs
// before every command.
func (a *app) setup(cmd *cobra.Command) error {
	if a.out == nil {
		a.out = cmd.OutOrStdout()
	}
	if a.flags.style != "" && !document.ValidStyle(a.flags.style) {
		return fmt.Errorf("invalid --style %q (use auto, dark, light, notty, dracula, pink, ascii, tokyo-night or a JSON style file)", a.flags.style)
	}

	path, err := config.ResolvePath(a.flags.configPath)
	if err != nil {
		return err
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg, err := fileCfg.WithEnv(os.LookupEnv)
	if err != nil {
		return err
	}
	if a.flags.style != "" {
		cfg.Reader.Style = a.flags.style
	}
	mode, err := reader.ResolveMode(a.flags.mode, cfg.Reader.Mode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	storage, err := cfg.StorageDir()
	if err != nil {
		return err
	}

	a.configPath, a.fileCfg, a.cfg, a.storage = path, fileCfg, cfg, storage
	if err := logging.Init(storage); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: debug log unavailable: %v\n", err)
	}
	logging.L().Debug("startup", "config", path, "mode", string(mode), "storage", storage)

	if a.console == nil {
		a.console = menu.NewConsole(a.stdin, a.stdout)
		a.console.Out = a.out
	}
	if a.reader == nil {
		a.reader = reader.New(cfg, mode)
		a.reader.Stdin, a.reader.Stdout = a.stdin, a.stdout
	}
	a.reader.Out = a.out
	return nil
}

// setMode saves mode as the configured default and applies it to this run.
func (a *app) setMode(mode reader.Mode) error {
	cfg := a.fileCfg
	cfg.Reader.Mode = string(mode)
	if err := config.Save(a.configPath, cfg); err != nil {
		return err
	}
	a.fileCfg = cfg
	a.cfg.Reader.Mode = string(mode)
	a.reader.Mode = mode
	logging.L().Debug("reader mode saved", "mode", string(mode), "path", a.configPath)
	return nil
}

// modeSource says where the effective reader mode comes from.
func (a *app) modeSource() string {
	switch {
	case strings.TrimSpace(a.flags.mode) != "":
		return "--mode flag"
	case a.cfg.Reader.Mode != a.fileCfg.Reader.Mode:
		return config.EnvPrefix + "READER_MODE"
	default:
		return a.configPath
	}
}
