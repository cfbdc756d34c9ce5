package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTierOrdering(t *testing.T) {
	order := []Tier{TierNone, TierAlpha, TierBeta, TierTheta, TierGamma}
	for i, have := range order {
		for j, need := range order {
			if got, want := have.Allows(need), j <= i; got != want {
				t.Fatalf("%s.Allows(%s) = %v, want %v", have, need, got, want)
			}
		}
	}
	if Tier("platinum").Allows(TierNone) {
		t.Fatalf("unknown tier must not grant access")
	}
}

func TestByTier(t *testing.T) {
	ids := func(docs []Document) []string {
		var out []string
		for _, d := range docs {
			out = append(out, d.ID)
		}
		return out
	}
	if got := ByTier(TierNone); len(got) != 0 {
		t.Fatalf("tier none should see nothing, got %v", ids(got))
	}
	if diff := cmp.Diff([]string{"cc-podcast-offensive-001"}, ids(ByTier(TierAlpha))); diff != "" {
		t.Fatalf("alpha documents (-want +got):\n%s", diff)
	}
	if got := len(ByTier(TierTheta)); got != 5 {
		t.Fatalf("theta should see 5 documents, got %d", got)
	}
	if got := len(ByTier(DemoUser.Tier)); got != 6 {
		t.Fatalf("demo user should see every document, got %d", got)
	}
}

func TestCategories(t *testing.T) {
	if diff := cmp.Diff([]string{"operational", "research"}, Categories()); diff != "" {
		t.Fatalf("categories (-want +got):\n%s", diff)
	}
}

func TestParseTierAndDifficulty(t *testing.T) {
	if got, err := ParseTier(" GAMMA "); err != nil || got != TierGamma {
		t.Fatalf("ParseTier = %q, %v", got, err)
	}
	if _, err := ParseTier("omega"); err == nil {
		t.Fatalf("expected error for unknown tier")
	}
	if got, err := ParseDifficulty("Advanced"); err != nil || got != Advanced {
		t.Fatalf("ParseDifficulty = %q, %v", got, err)
	}
	if _, err := ParseDifficulty("expert"); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
}

func TestTargetsAndChoose(t *testing.T) {
	if got := len(Targets("")); got != 5 {
		t.Fatalf("expected 5 targets, got %d", got)
	}
	if got := len(Targets(Intermediate)); got != 2 {
		t.Fatalf("expected 2 intermediate targets, got %d", got)
	}

	target, err := ChooseTarget(Novice, func(n int) int { return n - 1 })
	if err != nil {
		t.Fatalf("ChooseTarget: %v", err)
	}
	if target.Name != "Stonehenge" {
		t.Fatalf("expected last novice target, got %q", target.Name)
	}
	if _, err := ChooseTarget("impossible", nil); err == nil {
		t.Fatalf("expected error when no target matches")
	}
}

func TestPresets(t *testing.T) {
	p := Presets()
	if len(p) != 5 || p[0].Name != "Delta Deep Calm" || p[4].Carrier != 480 {
		t.Fatalf("unexpected presets %+v", p)
	}
	for _, preset := range p {
		if !preset.Binaural() {
			t.Fatalf("%s should be binaural", preset.Name)
		}
	}
	p[0].Name = "mutated"
	if Presets()[0].Name != "Delta Deep Calm" {
		t.Fatalf("Presets must return a copy")
	}
}
