package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/text/encoding/unicode"
)

func TestSourceTextDecodesUTF16LE(t *testing.T) {
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("# Notes\n\ncol\tvalue")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !IsText("notes.md", []byte(encoded)) {
		t.Fatalf("expected UTF-16 content to be detected as text")
	}
	got := FromString("notes.md", encoded).Text()
	if got != "# Notes\n\ncol value" {
		t.Fatalf("unexpected decoded text %q", got)
	}
}

func TestSourceTextStripsUTF8BOMAndNormalises(t *testing.T) {
	src := Source{Name: "bom.md", Data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("cafe\u0301\r\nline")...)}
	if got := src.Text(); got != "caf\u00e9\nline" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestIsTextRejectsBinary(t *testing.T) {
	tests := []struct {
		name string
		path string
		data []byte
		want bool
	}{
		{"empty", "empty.md", nil, true},
		{"markdown", "a.md", []byte("# Title\n"), true},
		{"nul byte", "a.md", []byte("ab\x00cd"), false},
		{"binary extension", "tone.wav", []byte("RIFF"), false},
		{"latin1", "a.txt", []byte("caf\xe9 au lait"), true},
		{"control noise", "", []byte{0x01, 0x02, 0x03, 0x04, 'a'}, false},
		{"utf-8 with control run", "notes.md", []byte("ok \x01\x02\x03\x04\x05\x06\x07\x0e\x0f"), false},
		{"utf-8 with stray control", "notes.md", []byte("café \x01 with plenty of ordinary prose"), true},
		{"utf-8 with escapes", "notes.md", []byte("\x1b[1mbold\x1b[0m"), true},
	}
	for _, tt := range tests {
		if got := IsText(tt.path, tt.data); got != tt.want {
			t.Fatalf("%s: IsText = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ops-manual.md": {Data: []byte("# Ops\n")},
		"image.png":     {Data: []byte{0x89, 'P', 'N', 'G'}},
	}

	src, err := FromFS(fsys, "ops-manual.md")
	if err != nil {
		t.Fatalf("FromFS: %v", err)
	}
	if src.Name != "ops-manual.md" || src.Text() != "# Ops\n" {
		t.Fatalf("unexpected source %+v", src)
	}

	if _, err := FromFS(fsys, "image.png"); !errors.Is(err, ErrBinary) {
		t.Fatalf("expected ErrBinary, got %v", err)
	}
	if _, err := FromFS(fsys, "missing.md"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "guide.md")
	if err := os.WriteFile(textPath, []byte("# Guide\n\nBody"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	binPath := filepath.Join(dir, "blob.dat")
	if err := os.WriteFile(binPath, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := FromFile(textPath)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if !strings.Contains(src.Text(), "Body") {
		t.Fatalf("unexpected text %q", src.Text())
	}
	if _, err := FromFile(binPath); !errors.Is(err, ErrBinary) {
		t.Fatalf("expected ErrBinary, got %v", err)
	}
	if _, err := FromFile(filepath.Join(dir, "nope.md")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
