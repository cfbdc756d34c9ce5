package catalog

import (
	"sort"
	"time"
)

// Document is one entry of the research archive.
type Document struct {
	ID             string
	Title          string
	Content        string
	Classification string
	Access         Tier
	FileType       string
	FileSize       int
	Category       string
	Tags           []string
	Author         string
	Summary        string
	CreatedAt      time.Time
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

var documents = []Document{
	{
		ID:    "cc-defensive-strategies-001",
		Title: "Analyzing Citizen Cipher's Defensive Strategies",
		Content: "A deep dive into the Citizen Cipher curriculum's KSAO framework, bias targeting mechanisms, and verification" +
			" architectures for defensive proficiency.",
		Classification: "RESEARCH ARCHIVE",
		Access:         TierBeta,
		FileType:       "md",
		FileSize:       18_432,
		Category:       "research",
		Tags:           []string{"cognitive-biases", "defensive-strategies", "verification"},
		Author:         "Citizen Cipher Research Team",
		Summary:        "Deep-dive analysis of defensive countermeasures that harden perception, decision-making, and verification workflows.",
		CreatedAt:      date("2024-01-05"),
	},
	{
		ID:    "cc-brand-identity-001",
		Title: "Designing Brand Identity and PR Kit for Citizen Cipher",
		Content: "Strategic launch architecture for external visual identity and public relations kit built on design psychology and" +
			" zero-trust principles.",
		Classification: "OPERATIONAL",
		Access:         TierBeta,
		FileType:       "md",
		FileSize:       14_208,
		Category:       "operational",
		Tags:           []string{"branding", "marketing", "psychology"},
		Author:         "Citizen Cipher Marketing Division",
		Summary:        "Launch playbook covering narrative framing, trust scaffolding, and psychological signaling for the Citizen Cipher platform.",
		CreatedAt:      date("2024-01-10"),
	},
	{
		ID:    "cc-historic-heists-001",
		Title: "Historic Heists: Psychological Breakdown",
		Content: "Forensic analysis of historic deception operations with emphasis on cognitive openings, bias exploitation, and defensive" +
			" countermeasures.",
		Classification: "RESEARCH ARCHIVE",
		Access:         TierBeta,
		FileType:       "md",
		FileSize:       20_992,
		Category:       "research",
		Tags:           []string{"case-studies", "social-engineering", "analysis"},
		Author:         "Citizen Cipher Research Team",
		Summary:        "Forensic profiles of high-yield attacks mapped to defensive countermeasures and verification protocols.",
		CreatedAt:      date("2024-01-18"),
	},
	{
		ID:             "cc-persuasive-heuristics-001",
		Title:          "Persuasion, Biases, and Game Theory",
		Content:        "Game-theoretic framework synthesising behavioral economics, social psychology, and persuasion tactics for cognitive hardening.",
		Classification: "RESEARCH ARCHIVE",
		Access:         TierTheta,
		FileType:       "md",
		FileSize:       17_664,
		Category:       "research",
		Tags:           []string{"persuasion", "game-theory", "heuristics"},
		Author:         "Citizen Cipher Research Team",
		Summary:        "Extended exploration of bias exploitation patterns with counter-bias conditioning exercises.",
		CreatedAt:      date("2024-01-22"),
	},
	{
		ID:             "cc-podcast-offensive-001",
		Title:          "Podcast Scripting for Offensive Defense",
		Content:        "Voice operations blueprint translating research-grade doctrine into high-fidelity broadcast scripts for cognitive priming.",
		Classification: "OPERATIONAL",
		Access:         TierAlpha,
		FileType:       "md",
		FileSize:       12_256,
		Category:       "operational",
		Tags:           []string{"audio", "content", "pedagogy"},
		Author:         "Citizen Cipher Media Division",
		Summary:        "Script architecture for mission briefings, cadence patterns, and mental imagery reinforcement.",
		CreatedAt:      date("2024-01-28"),
	},
	{
		ID:             "cc-project-blueprint-ii-001",
		Title:          "Project Blueprint II: Grid Expansion & Systemic Resilience",
		Content:        "Advanced operational security protocols covering cognitive hardening, digital ghost operations, and resilient archive design.",
		Classification: "OPERATIONAL - CLASSIFIED",
		Access:         TierGamma,
		FileType:       "md",
		FileSize:       24_576,
		Category:       "operational",
		Tags:           []string{"opsec", "resilience", "shadow-state"},
		Author:         "Omega Integration Protocol",
		Summary:        "High-tier operational blueprint for maintaining continuity under contested environments.",
		CreatedAt:      date("2024-02-02"),
	},
}

// Documents returns every archive document in catalogue order.
func Documents() []Document {
	out := make([]Document, len(documents))
	copy(out, documents)
	return out
}

// ByTier returns the documents a holder of tier may open.
func ByTier(tier Tier) []Document {
	var out []Document
	for _, d := range documents {
		if tier.Allows(d.Access) {
			out = append(out, d)
		}
	}
	return out
}

// Categories lists the distinct document categories, sorted.
func Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range documents {
		if _, ok := seen[d.Category]; ok {
			continue
		}
		seen[d.Category] = struct{}{}
		out = append(out, d.Category)
	}
	sort.Strings(out)
	return out
}
