package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"

	"github.com/kk-code-lab/shadowops/internal/textutil"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
	maxSourceSize                = 8 << 20
	tabWidth                     = 4
)

// ErrBinary is returned when a file does not look like text.
var ErrBinary = errors.New("document: not a text file")

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

var binaryExtensions = map[string]struct{}{
	".7z":   {},
	".bin":  {},
	".exe":  {},
	".gif":  {},
	".gz":   {},
	".jpeg": {},
	".jpg":  {},
	".mp3":  {},
	".ogg":  {},
	".pdf":  {},
	".png":  {},
	".so":   {},
	".tar":  {},
	".wav":  {},
	".zip":  {},
}

// Source is a named markdown document before rendering.
type Source struct {
	Name string
	Data []byte
}

// FromString wraps text already held in memory.
func FromString(name, text string) Source {
	return Source{Name: name, Data: []byte(text)}
}

// FromFS loads name from an embedded or otherwise virtual filesystem.
func FromFS(fsys fs.FS, name string) (Source, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Source{}, err
	}
	if !IsText(name, data) {
		return Source{}, fmt.Errorf("%s: %w", name, ErrBinary)
	}
	return Source{Name: name, Data: data}, nil
}

// FromFile loads a document from disk, refusing binary files and anything
// larger than the pager is meant to hold.
func FromFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return Source{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(f, maxSourceSize+1))
	if err != nil {
		return Source{}, err
	}
	if len(data) > maxSourceSize {
		return Source{}, fmt.Errorf("%s: file larger than %d bytes", path, maxSourceSize)
	}
	if !IsText(path, data) {
		return Source{}, fmt.Errorf("%s: %w", path, ErrBinary)
	}
	return Source{Name: path, Data: data}, nil
}

// Text returns the document as NFC-normalised UTF-8 with tabs expanded.
func (s Source) Text() string {
	text := decodeText(s.Data)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = norm.NFC.String(text)
	return textutil.ExpandTabs(text, tabWidth)
}

// IsText determines if content is text or binary. The path, when given,
// short-circuits obvious binary extensions before sniffing.
func IsText(path string, content []byte) bool {
	if path != "" {
		if _, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			return false
		}
	}
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}
	if detectUnicodeEncoding(sample) != encodingUnknown {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}

	// C0 controls are valid UTF-8, so the ratio decides even for UTF-8 input.
	nonPrintable := 0
	for _, b := range sample {
		if !isCommonTextByte(b) {
			nonPrintable++
		}
	}
	return nonPrintable*100/len(sample) < nonPrintableThresholdPercent
}

func isCommonTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	case b == 0x1B:
		return true
	default:
		return b >= 0x80
	}
}

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

func decodeText(content []byte) string {
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:])
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	out, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
