package archive

import (
	"context"

	"github.com/kk-code-lab/shadowops/internal/catalog"
	"github.com/kk-code-lab/shadowops/internal/document"
	"github.com/kk-code-lab/shadowops/internal/logging"
	"github.com/kk-code-lab/shadowops/internal/menu"
)

// Viewer opens a document for reading. *reader.Reader satisfies it.
type Viewer interface {
	Display(ctx context.Context, src document.Source) error
}

// Flow is the interactive archive session for one user.
type Flow struct {
	Console *menu.Console
	Viewer  Viewer
	User    catalog.User

	filter Filter
}

// Filter returns the filter currently applied.
func (f *Flow) Filter() Filter { return f.filter }

func (f *Flow) documents() []catalog.Document {
	return f.filter.Apply(catalog.ByTier(f.User.Tier))
}

// Run shows the archive menu until the user leaves it.
func (f *Flow) Run(ctx context.Context) error {
	f.Console.Printf("Research Archive — %s-tier access granted to %s.\n\n",
		titleCase(string(f.User.Tier)), f.User.FirstName)

	m := menu.Menu{
		Title: "Research Archive",
		Items: []menu.Item{
			{Label: "List documents", Handler: f.list},
			{Label: "Set search text", Handler: f.setSearch},
			{Label: "Choose category", Handler: f.chooseCategory},
			{Label: "View document", Handler: f.view},
			{Label: "Tag cloud", Handler: f.tagCloud},
		},
		ExitLabel: "Back",
	}
	return m.Show(ctx, f.Console)
}

func (f *Flow) list(context.Context) error {
	f.Console.Printf("%s", f.filter.Describe())
	f.Console.Println(ListTable(f.documents()))
	return nil
}

func (f *Flow) setSearch(context.Context) error {
	f.filter.Search = f.Console.Line("Enter search text: ")
	return nil
}

func (f *Flow) chooseCategory(context.Context) error {
	options := append(catalog.Categories(), "Any")
	idx, ok := f.Console.Select("Select category", options)
	if !ok {
		return nil
	}
	if options[idx] == "Any" {
		f.filter.Category = ""
	} else {
		f.filter.Category = options[idx]
	}
	return nil
}

func (f *Flow) view(ctx context.Context) error {
	docs := f.documents()
	if len(docs) == 0 {
		f.Console.Println("No documents available for current selection.")
		return nil
	}
	items := make([]menu.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, menu.Item{
			Label: doc.Title,
			Handler: func(ctx context.Context) error {
				return f.open(ctx, doc)
			},
		})
	}
	return menu.Menu{Title: "Select document", Items: items, ExitLabel: "Back"}.Show(ctx, f.Console)
}

func (f *Flow) open(ctx context.Context, doc catalog.Document) error {
	logging.L().Debug("archive open", "id", doc.ID)
	return f.Viewer.Display(ctx, document.FromString(doc.ID+".md", Markdown(doc)))
}

func (f *Flow) tagCloud(context.Context) error {
	f.Console.Println(TagTable(TagCloud(f.documents())))
	return nil
}
