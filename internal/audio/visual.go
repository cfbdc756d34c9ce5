package audio

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

var barFrames = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█", "▇", "▆", "▅", "▄", "▃", "▂"}

const barWidth = 40

// Visualiser animates a bar of block glyphs pulsing at a frequency.
type Visualiser struct {
	Out   io.Writer
	Now   func() time.Time
	After func(time.Duration) <-chan time.Time
}

// StepFor is the frame time for freq: one period, held between 50ms and
// 250ms.
func StepFor(freq float64) time.Duration {
	step := 1 / math.Max(freq, 1)
	step = math.Max(0.05, math.Min(0.25, step))
	return time.Duration(step * float64(time.Second))
}

// Run draws frames for d and returns the number drawn. Cancelling ctx
// stops early with ctx.Err().
func (v Visualiser) Run(ctx context.Context, freq float64, d time.Duration) (int, error) {
	now, after := v.Now, v.After
	if now == nil {
		now = time.Now
	}
	if after == nil {
		after = time.After
	}

	fmt.Fprintf(v.Out, "Visualising frequency %.2f Hz for %g seconds...\n", freq, d.Seconds())
	step := StepFor(freq)
	end := now().Add(d)
	frames := 0
	for now().Before(end) {
		fmt.Fprint(v.Out, "\r"+strings.Repeat(barFrames[frames%len(barFrames)], barWidth))
		frames++
		select {
		case <-ctx.Done():
			fmt.Fprint(v.Out, "\r"+strings.Repeat(" ", barWidth)+"\r")
			return frames, ctx.Err()
		case <-after(step):
		}
	}
	fmt.Fprint(v.Out, "\r"+strings.Repeat(" ", barWidth)+"\rVisualisation complete.\n")
	return frames, nil
}
