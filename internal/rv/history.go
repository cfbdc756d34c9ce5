package rv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// HistoryFile is the history file name under the storage directory.
const HistoryFile = "rv-history.json"

// ErrCorruptHistory means the history file is not valid JSON.
var ErrCorruptHistory = errors.New("corrupt session history")

var emptyHistory = []byte(`{"sessions":[]}`)

// Store is the append-only session history.
type Store struct {
	Path string
}

// NewStore keeps the history in dir.
func NewStore(dir string) Store {
	return Store{Path: filepath.Join(dir, HistoryFile)}
}

func (s Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyHistory, nil
	}
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: %s", ErrCorruptHistory, s.Path)
	}
	return data, nil
}

// Load returns every stored session, oldest first. A missing file is an
// empty history.
func (s Store) Load() ([]Record, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []Record
	gjson.GetBytes(data, "sessions").ForEach(func(_, item gjson.Result) bool {
		out = append(out, recordFrom(item))
		return true
	})
	return out, nil
}

func recordFrom(item gjson.Result) Record {
	rec := Record{
		TargetID:    item.Get("target_id").String(),
		TargetName:  item.Get("target_name").String(),
		StartedAt:   item.Get("started_at").String(),
		CompletedAt: item.Get("completed_at").String(),
		Accuracy:    item.Get("accuracy").Float(),
		Perceptions: map[string][]string{},
		Matches:     []string{},
	}
	item.Get("perceptions").ForEach(func(stage, responses gjson.Result) bool {
		lines := []string{}
		for _, r := range responses.Array() {
			lines = append(lines, r.String())
		}
		rec.Perceptions[stage.String()] = lines
		return true
	})
	for _, m := range item.Get("matches").Array() {
		rec.Matches = append(rec.Matches, m.String())
	}
	return rec
}

// Append adds rec to the end of the history. The file is replaced
// atomically so a failed write leaves the previous history intact.
func (s Store) Append(rec Record) error {
	data, err := s.read()
	if err != nil {
		return err
	}
	if !gjson.GetBytes(data, "sessions").IsArray() {
		data, err = sjson.SetRawBytes(data, "sessions", []byte("[]"))
		if err != nil {
			return err
		}
	}
	data, err = sjson.SetBytes(data, "sessions.-1", rec)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return writeAtomic(s.Path, pretty.Pretty(data))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".rv-history-*.json")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
