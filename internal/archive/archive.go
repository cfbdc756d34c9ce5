// Package archive is the research archive: filtering the catalogue,
// listing it, summarising tags and opening documents in the reader.
package archive

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kk-code-lab/shadowops/internal/catalog"
	"github.com/kk-code-lab/shadowops/internal/document"
	"github.com/kk-code-lab/shadowops/internal/textutil"
)

// Filter narrows the archive. Zero values match everything.
type Filter struct {
	Search   string
	Category string
}

// Match reports whether doc passes the filter. Category must match exactly;
// Search is a case-insensitive substring of the title, summary or tags.
func (f Filter) Match(doc catalog.Document) bool {
	if f.Category != "" && doc.Category != f.Category {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		doc.Title,
		doc.Summary,
		strings.Join(doc.Tags, " "),
	}, " "))
	return strings.Contains(haystack, needle)
}

// Apply returns the documents that pass the filter, in order.
func (f Filter) Apply(docs []catalog.Document) []catalog.Document {
	var out []catalog.Document
	for _, doc := range docs {
		if f.Match(doc) {
			out = append(out, doc)
		}
	}
	return out
}

// Describe is the filter summary printed above a listing.
func (f Filter) Describe() string {
	search := f.Search
	if search == "" {
		search = "—"
	}
	category := f.Category
	if category == "" {
		category = "Any"
	}
	return "Current filters:\n  Search: " + search + "\n  Category: " + category + "\n"
}

// TagCount is one row of a tag cloud.
type TagCount struct {
	Tag   string
	Count int
}

// TagCloud counts tags across docs, most frequent first and then by name.
func TagCloud(docs []catalog.Document) []TagCount {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, tag := range doc.Tags {
			counts[tag]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

const noMatches = "No documents match the current filters. Adjust your search criteria."

// ListTable renders docs as a Title/Category/Tier/Date table.
func ListTable(docs []catalog.Document) string {
	if len(docs) == 0 {
		return noMatches
	}
	rows := make([][]string, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, []string{
			doc.Title,
			titleCase(doc.Category),
			doc.Access.Upper(),
			doc.CreatedAt.Format("2006-01-02"),
		})
	}
	return textutil.FormatTable([]string{"Title", "Category", "Tier", "Date"}, rows)
}

// TagTable renders a tag cloud.
func TagTable(tags []TagCount) string {
	if len(tags) == 0 {
		return "No tags in current selection."
	}
	rows := make([][]string, 0, len(tags))
	for _, tc := range tags {
		rows = append(rows, []string{tc.Tag, strconv.Itoa(tc.Count)})
	}
	return textutil.FormatTable([]string{"Tag", "Count"}, rows)
}

// Markdown composes the reader view of doc.
func Markdown(doc catalog.Document) string {
	return document.Compose(doc.Title, []document.Field{
		{Label: "Classification", Value: doc.Classification},
		{Label: "Access", Value: string(doc.Access)},
		{Label: "Author", Value: doc.Author},
	}, doc.Content)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
