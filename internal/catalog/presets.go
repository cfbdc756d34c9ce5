package catalog

// Preset is a named tone for the audio lab. A zero Beat means a single
// mono tone at Carrier.
type Preset struct {
	Name        string
	Description string
	Carrier     float64
	Beat        float64
}

// Binaural reports whether the preset plays a beat between two ears.
func (p Preset) Binaural() bool { return p.Beat > 0 }

var presets = []Preset{
	{Name: "Delta Deep Calm", Description: "Grounding and recovery", Carrier: 120, Beat: 2.5},
	{Name: "Theta Memory Weave", Description: "Hypnagogic rehearsal and imagery", Carrier: 180, Beat: 6},
	{Name: "Alpha Flow State", Description: "Focused studying and relaxed alertness", Carrier: 220, Beat: 10},
	{Name: "Beta Activation", Description: "Task execution and rapid recall", Carrier: 340, Beat: 18},
	{Name: "Gamma Burst", Description: "High-integration synthesis", Carrier: 480, Beat: 40},
}

// Presets returns the frequency presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}
