package audio

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kk-code-lab/shadowops/internal/catalog"
	"github.com/kk-code-lab/shadowops/internal/logging"
	"github.com/kk-code-lab/shadowops/internal/menu"
	"github.com/kk-code-lab/shadowops/internal/textutil"
)

const (
	visualDuration  = 5 * time.Second
	defaultVolume   = 0.4
	defaultCarrier  = 220.0
	defaultCustom   = 180.0
	defaultBinaural = 300.0
	defaultMono     = 120.0
	defaultVisualHz = 8.0
)

// Lab is the interactive audio frequency lab.
type Lab struct {
	Console    *menu.Console
	StorageDir string

	Now        func() time.Time
	Play       func(ctx context.Context, path string) error
	Visualiser Visualiser
}

// Run shows the lab menu until the user leaves it.
func (l *Lab) Run(ctx context.Context) error {
	m := menu.Menu{
		Title: "Audio Frequency Lab",
		Items: []menu.Item{
			{Label: "List frequency presets", Handler: l.listPresets},
			{Label: "Play preset", Handler: l.playPreset},
			{Label: "Design custom tone", Handler: l.customTone},
			{Label: "Visualise frequency", Handler: l.visualise},
		},
		ExitLabel: "Back",
	}
	return m.Show(ctx, l.Console)
}

// PresetTable renders the presets as a Name/Carrier/Beat/Description table.
func PresetTable(presets []catalog.Preset) string {
	rows := make([][]string, 0, len(presets))
	for _, p := range presets {
		beat := "—"
		if p.Binaural() {
			beat = hz(p.Beat)
		}
		rows = append(rows, []string{p.Name, hz(p.Carrier), beat, p.Description})
	}
	return textutil.FormatTable([]string{"Name", "Carrier", "Beat", "Description"}, rows)
}

func hz(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + " Hz"
}

func (l *Lab) listPresets(context.Context) error {
	l.Console.Println(PresetTable(catalog.Presets()))
	return nil
}

func (l *Lab) playPreset(ctx context.Context) error {
	presets := catalog.Presets()
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	idx, ok := l.Console.Select("Choose preset", names)
	if !ok {
		return nil
	}
	preset := presets[idx]

	duration := defaultMono
	if preset.Binaural() {
		duration = defaultBinaural
	}
	duration = l.Console.Float(promptWithDefault("Duration (seconds)", duration), duration)
	volume := l.Console.Float(promptWithDefault("Volume (0.0 – 1.0)", defaultVolume), defaultVolume)

	path := filepath.Join(Dir(l.StorageDir), PresetFile(l.now(), preset.Name))
	return l.generate(ctx, path, preset.Carrier, preset.Beat, duration, volume)
}

func (l *Lab) customTone(ctx context.Context) error {
	carrier := l.Console.Float(promptWithDefault("Carrier frequency (Hz)", defaultCarrier), defaultCarrier)
	beat := l.Console.Float(promptWithDefault("Binaural beat (Hz, 0 for single tone)", 0), 0)
	duration := l.Console.Float(promptWithDefault("Duration (seconds)", defaultCustom), defaultCustom)
	volume := l.Console.Float(promptWithDefault("Volume (0.0 – 1.0)", defaultVolume), defaultVolume)

	path := filepath.Join(Dir(l.StorageDir), CustomFile(l.now()))
	return l.generate(ctx, path, carrier, beat, duration, volume)
}

func (l *Lab) generate(ctx context.Context, path string, carrier, beat, seconds, volume float64) error {
	buf, err := Tone(carrier, beat, seconds, volume)
	if err != nil {
		return err
	}
	if err := SaveWAV(path, buf); err != nil {
		return err
	}
	logging.L().Debug("tone written", "path", path, "carrier", carrier, "beat", beat, "seconds", seconds)
	l.Console.Printf("WAV file saved to %s\n", path)

	play := l.Play
	if play == nil {
		play = Play
	}
	switch err := play(ctx, path); {
	case errors.Is(err, ErrNoPlayer):
		l.Console.Println("No audio player found (tried afplay, paplay, aplay, ffplay). The WAV file has been generated instead.")
	case err != nil:
		return err
	}
	return nil
}

func (l *Lab) visualise(ctx context.Context) error {
	freq := l.Console.Float(promptWithDefault("Frequency (Hz)", defaultVisualHz), defaultVisualHz)
	v := l.Visualiser
	if v.Out == nil {
		v.Out = l.Console.Out
	}
	_, err := v.Run(ctx, freq, visualDuration)
	return err
}

func (l *Lab) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func promptWithDefault(label string, def float64) string {
	return label + " [" + strconv.FormatFloat(def, 'f', -1, 64) + "]: "
}
