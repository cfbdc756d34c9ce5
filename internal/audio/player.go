package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ErrNoPlayer means none of the known command-line players is installed.
var ErrNoPlayer = errors.New("no audio player found")

var (
	playerLookPath = exec.LookPath
	runCommand     = func(cmd *exec.Cmd) error { return cmd.Run() }
)

// players in preference order, with the flags that make them exit when the
// file ends.
var players = [][]string{
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

func detectPlayer(lookPath func(string) (string, error)) ([]string, bool) {
	for _, candidate := range players {
		if resolved, err := lookPath(candidate[0]); err == nil && resolved != "" {
			args := append([]string{resolved}, candidate[1:]...)
			return args, true
		}
	}
	return nil, false
}

// Play blocks until the file has played or ctx is cancelled.
func Play(ctx context.Context, path string) error {
	args, ok := detectPlayer(playerLookPath)
	if !ok {
		return ErrNoPlayer
	}
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	if err := runCommand(cmd); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("play %s: %w", path, err)
	}
	return nil
}
