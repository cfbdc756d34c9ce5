package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Difficulty grades a remote-viewing target.
type Difficulty string

const (
	Novice       Difficulty = "novice"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists every difficulty from easiest.
var Difficulties = []Difficulty{Novice, Intermediate, Advanced}

// ParseDifficulty accepts a difficulty name in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want novice, intermediate or advanced)", s)
}

// Target is a remote-viewing practice target.
type Target struct {
	ID          string
	TargetID    string
	Name        string
	Description string
	Category    string
	Difficulty  Difficulty
	Elements    []string
}

var targets = []Target{
	{
		ID:          "rv-target-001",
		TargetID:    "2031-ALPHA",
		Name:        "Washington Monument",
		Description: "Tall marble obelisk within a landscaped park and reflecting pool.",
		Category:    "structure",
		Difficulty:  Novice,
		Elements:    []string{"obelisk", "stone", "tall", "monument", "reflecting pool", "washington"},
	},
	{
		ID:          "rv-target-002",
		TargetID:    "5072-BETA",
		Name:        "Stonehenge",
		Description: "Circular arrangement of massive standing stones under open sky.",
		Category:    "geographic",
		Difficulty:  Novice,
		Elements:    []string{"stones", "circle", "ancient", "field", "monolith"},
	},
	{
		ID:          "rv-target-003",
		TargetID:    "7410-THETA",
		Name:        "Santorini Caldera",
		Description: "Cliffside island village overlooking a blue volcanic caldera.",
		Category:    "geographic",
		Difficulty:  Intermediate,
		Elements:    []string{"water", "cliff", "island", "white buildings", "caldera"},
	},
	{
		ID:          "rv-target-004",
		TargetID:    "9923-GAMMA",
		Name:        "Yin Yang Symbol",
		Description: "Black and white circular glyph representing balance and duality.",
		Category:    "symbol",
		Difficulty:  Intermediate,
		Elements:    []string{"circle", "black", "white", "symbol", "balance"},
	},
	{
		ID:          "rv-target-005",
		TargetID:    "8844-PHI",
		Name:        "International Space Station",
		Description: "Modular spacecraft orbiting Earth with solar panel arrays.",
		Category:    "structure",
		Difficulty:  Advanced,
		Elements:    []string{"space", "station", "solar panels", "orbit", "metal"},
	},
}

// Targets returns the targets of difficulty d, or all of them when d is "".
func Targets(d Difficulty) []Target {
	var out []Target
	for _, t := range targets {
		if d == "" || t.Difficulty == d {
			out = append(out, t)
		}
	}
	return out
}

// ChooseTarget picks a random target of difficulty d (any when ""). intn
// defaults to math/rand.
func ChooseTarget(d Difficulty, intn func(int) int) (Target, error) {
	candidates := Targets(d)
	if len(candidates) == 0 {
		return Target{}, fmt.Errorf("no targets for difficulty %q", d)
	}
	if intn == nil {
		intn = rand.IntN
	}
	return candidates[intn(len(candidates))], nil
}
