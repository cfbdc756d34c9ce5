// Package manuals serves the operations manual and the manuals library
// from an embedded (or any other) filesystem.
package manuals

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/kk-code-lab/shadowops/content"
	"github.com/kk-code-lab/shadowops/internal/document"
)

// ErrNotFound is returned for a manual or section that does not exist.
var ErrNotFound = errors.New("manual not found")

const sectionExt = ".md"

// Manual is one directory of the library.
type Manual struct {
	ID       string
	Sections []string
}

// Title is the manual ID with underscores shown as spaces.
func (m Manual) Title() string { return strings.ReplaceAll(m.ID, "_", " ") }

// Library reads manuals stored as Root/<manual>/<section>.md in FS.
type Library struct {
	FS      fs.FS
	Root    string
	OpsPath string
}

// Embedded is the library shipped inside the binary.
func Embedded() Library {
	return Library{FS: content.FS, Root: content.ManualsRoot, OpsPath: content.OpsManual}
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// Manuals lists every manual with its sections, both sorted ignoring case.
// A missing library directory is an empty library.
func (l Library) Manuals() ([]Manual, error) {
	entries, err := fs.ReadDir(l.FS, l.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Manual
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sections, err := l.sections(e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Manual{ID: e.Name(), Sections: sections})
	}
	sort.Slice(out, func(i, j int) bool { return lessFold(out[i].ID, out[j].ID) })
	return out, nil
}

func (l Library) sections(manual string) ([]string, error) {
	entries, err := fs.ReadDir(l.FS, path.Join(l.Root, manual))
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), sectionExt) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Slice(out, func(i, j int) bool { return lessFold(out[i], out[j]) })
	return out, nil
}

// Sections returns every section path, relative to the library root, in
// manual then section order.
func (l Library) Sections() ([]string, error) {
	manuals, err := l.Manuals()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, m := range manuals {
		for _, s := range m.Sections {
			out = append(out, m.ID+"/"+s)
		}
	}
	return out, nil
}

// Tree draws the library as an indented tree, one line per entry.
func (l Library) Tree() ([]string, error) {
	manuals, err := l.Manuals()
	if err != nil {
		return nil, err
	}
	lines := []string{l.Root}
	for i, m := range manuals {
		lastManual := i == len(manuals)-1
		branch, indent := "├── ", "│   "
		if lastManual {
			branch, indent = "└── ", "    "
		}
		lines = append(lines, branch+m.ID+"  •  "+m.Title())
		for j, s := range m.Sections {
			leaf := "├── "
			if j == len(m.Sections)-1 {
				leaf = "└── "
			}
			lines = append(lines, indent+leaf+s)
		}
	}
	return lines, nil
}

// Read loads one section. The ".md" suffix is optional.
func (l Library) Read(manual, section string) (document.Source, error) {
	if !validName(manual) || !validName(section) {
		return document.Source{}, fmt.Errorf("%w: %s/%s", ErrNotFound, manual, section)
	}
	if !strings.EqualFold(path.Ext(section), sectionExt) {
		section += sectionExt
	}
	name := path.Join(l.Root, manual, section)
	src, err := document.FromFS(l.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return document.Source{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return src, err
}

// OpsManual loads the operations manual.
func (l Library) OpsManual() (document.Source, error) {
	src, err := document.FromFS(l.FS, l.OpsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return document.Source{}, fmt.Errorf("%w: %s", ErrNotFound, l.OpsPath)
	}
	return src, err
}

// validName rejects anything that could step outside one directory level.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
