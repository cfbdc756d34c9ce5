package document

import (
	"fmt"
	"strings"
)

// Field is one bold label line in a composed document header.
type Field struct {
	Label string
	Value string
}

// Compose builds a markdown document from a title, metadata fields and a
// body. Empty fields are skipped.
func Compose(title string, fields []Field, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(title))

	wrote := false
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		// Two trailing spaces force a markdown line break.
		fmt.Fprintf(&b, "**%s:** %s  \n", f.Label, f.Value)
		wrote = true
	}
	if wrote {
		b.WriteString("\n")
	}

	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")
	return b.String()
}
