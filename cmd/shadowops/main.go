package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/shadowops/internal/logging"
)

func main() {
	// UTF-8 fallback so box drawing and block glyphs render on minimal locales.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	cmd := newRootCommand(newApp(os.Stdin, os.Stdout))
	err := cmd.ExecuteContext(ctx)
	stop()
	logging.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
