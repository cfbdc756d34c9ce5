// Package rv runs remote-viewing practice: staged perception capture,
// scoring against a target's elements and a JSON session history.
package rv

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/kk-code-lab/shadowops/internal/catalog"
)

// Stage is one capture step of a session.
type Stage struct {
	Name   string
	Prompt string
}

// Stages are recorded in order.
var Stages = []Stage{
	{Name: "Stage 1 — Signal Line", Prompt: "Capture immediate impressions without censoring."},
	{Name: "Stage 2 — Sensory Expansion", Prompt: "Describe textures, temperatures, sounds, and movements."},
	{Name: "Stage 3 — Analytic Sketch", Prompt: "Summarise structures, geometry, and notable features."},
}

// Session is an in-progress training run.
type Session struct {
	Target      catalog.Target
	Perceptions map[string][]string
	StartedAt   time.Time
}

// NewSession starts a run on target with every stage empty.
func NewSession(target catalog.Target, started time.Time) *Session {
	perceptions := make(map[string][]string, len(Stages))
	for _, st := range Stages {
		perceptions[st.Name] = []string{}
	}
	return &Session{Target: target, Perceptions: perceptions, StartedAt: started}
}

// Record appends responses to stage i.
func (s *Session) Record(i int, responses []string) {
	name := Stages[i].Name
	s.Perceptions[name] = append(s.Perceptions[name], responses...)
}

// Score matches responses against the target's elements. A response counts
// only when it equals an element, ignoring case and surrounding space.
func (s *Session) Score() ([]string, float64) {
	noted := make(map[string]struct{})
	for _, responses := range s.Perceptions {
		for _, r := range responses {
			noted[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
		}
	}

	matches := []string{}
	seen := make(map[string]struct{})
	for _, el := range s.Target.Elements {
		if _, ok := noted[strings.ToLower(el)]; !ok {
			continue
		}
		if _, dup := seen[el]; dup {
			continue
		}
		seen[el] = struct{}{}
		matches = append(matches, el)
	}
	sort.Strings(matches)

	if len(s.Target.Elements) == 0 {
		return matches, 0
	}
	pct := float64(len(matches)) / float64(len(s.Target.Elements)) * 100
	return matches, math.Round(pct*100) / 100
}

// Record is a finished session as stored in the history file.
type Record struct {
	TargetID    string              `json:"target_id"`
	TargetName  string              `json:"target_name"`
	StartedAt   string              `json:"started_at"`
	CompletedAt string              `json:"completed_at"`
	Perceptions map[string][]string `json:"perceptions"`
	Matches     []string            `json:"matches"`
	Accuracy    float64             `json:"accuracy"`
}

// Complete scores the session and builds its history record.
func (s *Session) Complete(completed time.Time) Record {
	matches, accuracy := s.Score()
	return Record{
		TargetID:    s.Target.TargetID,
		TargetName:  s.Target.Name,
		StartedAt:   s.StartedAt.UTC().Format(time.RFC3339),
		CompletedAt: completed.UTC().Format(time.RFC3339),
		Perceptions: s.Perceptions,
		Matches:     matches,
		Accuracy:    accuracy,
	}
}
