package audio

import (
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "20060102-150405"

// Dir is where generated tones are written under the storage directory.
func Dir(storageDir string) string {
	return filepath.Join(storageDir, "audio")
}

// PresetFile names the WAV for a preset rendered at now (UTC).
func PresetFile(now time.Time, name string) string {
	return now.UTC().Format(timestampLayout) + "-" + slug(name) + ".wav"
}

// CustomFile names the WAV for a hand-designed tone.
func CustomFile(now time.Time) string {
	return "custom-" + now.UTC().Format(timestampLayout) + ".wav"
}

func slug(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
