// Package catalog holds the static content shown by the toolkit: research
// documents, frequency presets, remote-viewing targets and the demo user.
package catalog

import (
	"fmt"
	"strings"
)

// Tier is a subscription level. Tiers are ordered none < alpha < beta <
// theta < gamma.
type Tier string

const (
	TierNone  Tier = "none"
	TierAlpha Tier = "alpha"
	TierBeta  Tier = "beta"
	TierTheta Tier = "theta"
	TierGamma Tier = "gamma"
)

var tierRank = map[Tier]int{
	TierNone:  0,
	TierAlpha: 1,
	TierBeta:  2,
	TierTheta: 3,
	TierGamma: 4,
}

// ParseTier accepts a tier name in any case.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tierRank[t]; !ok {
		return "", fmt.Errorf("unknown tier %q", s)
	}
	return t, nil
}

// Allows reports whether a holder of t may open content at level.
func (t Tier) Allows(level Tier) bool {
	have, ok := tierRank[t]
	if !ok {
		return false
	}
	need, ok := tierRank[level]
	return ok && need <= have
}

// Upper is the tier label as shown in tables.
func (t Tier) Upper() string { return strings.ToUpper(string(t)) }

// User is the demo profile.
type User struct {
	ID              string
	Status          string
	Tier            Tier
	DiscordUsername string
	FirstName       string
	LastName        string
}

// DemoUser has gamma access, so every archive document is visible.
var DemoUser = User{
	ID:              "demo-user",
	Status:          "active",
	Tier:            TierGamma,
	DiscordUsername: "ShadowOpsDemo",
	FirstName:       "Shadow",
	LastName:        "Operative",
}
