package rv

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/kk-code-lab/shadowops/internal/catalog"
	"github.com/kk-code-lab/shadowops/internal/logging"
	"github.com/kk-code-lab/shadowops/internal/menu"
	"github.com/kk-code-lab/shadowops/internal/textutil"
)

// Trainer is the interactive training menu.
type Trainer struct {
	Console *menu.Console
	Store   Store

	Now  func() time.Time
	Intn func(int) int
}

// Run shows the training menu until the user leaves it.
func (t *Trainer) Run(ctx context.Context) error {
	m := menu.Menu{
		Title: "Remote Viewing Training",
		Items: []menu.Item{
			{Label: "Start training session", Handler: t.start},
			{Label: "List available targets", Handler: t.listTargets},
			{Label: "Review history", Handler: t.history},
		},
		ExitLabel: "Back",
	}
	return m.Show(ctx, t.Console)
}

// chooseDifficulty returns "" when the user backs out, which draws from
// every target.
func (t *Trainer) chooseDifficulty() catalog.Difficulty {
	options := make([]string, 0, len(catalog.Difficulties)+1)
	for _, d := range catalog.Difficulties {
		options = append(options, titleCase(string(d)))
	}
	options = append(options, "Random")

	idx, ok := t.Console.Select("Select difficulty", options)
	if !ok {
		return ""
	}
	if idx == len(catalog.Difficulties) {
		return catalog.Difficulties[t.intn(len(catalog.Difficulties))]
	}
	return catalog.Difficulties[idx]
}

func (t *Trainer) start(context.Context) error {
	target, err := catalog.ChooseTarget(t.chooseDifficulty(), t.intn)
	if err != nil {
		return err
	}
	session := NewSession(target, t.now())
	logging.L().Debug("rv session start", "target", target.TargetID)

	t.Console.Printf("\nTarget assigned — difficulty: %s. Stage prompts will guide your data capture.\n\n",
		strings.ToUpper(string(target.Difficulty)))
	for i, st := range Stages {
		session.Record(i, t.Console.Multiline(textutil.WrapParagraphs(st.Name+"\n"+st.Prompt, 0)+"\n"))
	}

	rec := session.Complete(t.now())
	if err := t.Store.Append(rec); err != nil {
		return err
	}

	t.Console.Println("\nSession complete!")
	t.Console.Println()
	t.Console.Printf("Target: %s (%s)\n", rec.TargetName, rec.TargetID)
	t.Console.Printf("Accuracy: %s%%\n", formatAccuracy(rec.Accuracy))
	if len(rec.Matches) > 0 {
		t.Console.Println("Matched elements: " + strings.Join(rec.Matches, ", "))
	} else {
		t.Console.Println("No direct element matches this time — review perceptions and repeat training.")
	}
	return nil
}

// TargetTable renders targets as a Name/ID/Category/Difficulty/Elements table.
func TargetTable(targets []catalog.Target) string {
	rows := make([][]string, 0, len(targets))
	for _, tg := range targets {
		rows = append(rows, []string{
			tg.Name,
			tg.TargetID,
			titleCase(tg.Category),
			titleCase(string(tg.Difficulty)),
			strings.Join(tg.Elements, ", "),
		})
	}
	return textutil.FormatTable([]string{"Name", "ID", "Category", "Difficulty", "Elements"}, rows)
}

// HistoryTable renders stored sessions, or a hint when there are none.
func HistoryTable(records []Record) string {
	if len(records) == 0 {
		return "No sessions recorded yet. Complete a run to build history."
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		date, _, _ := strings.Cut(r.CompletedAt, "T")
		rows = append(rows, []string{r.TargetName, r.TargetID, formatAccuracy(r.Accuracy) + "%", date})
	}
	return textutil.FormatTable([]string{"Target", "ID", "Accuracy", "Date"}, rows)
}

func (t *Trainer) listTargets(context.Context) error {
	t.Console.Println(TargetTable(catalog.Targets("")))
	return nil
}

func (t *Trainer) history(context.Context) error {
	records, err := t.Store.Load()
	if err != nil {
		return err
	}
	t.Console.Println(HistoryTable(records))
	return nil
}

func (t *Trainer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Trainer) intn(n int) int {
	if t.Intn != nil {
		return t.Intn(n)
	}
	return rand.IntN(n)
}

func formatAccuracy(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
