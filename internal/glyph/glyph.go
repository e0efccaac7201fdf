// Package glyph maps a (valence, intensity) pair to one of seven symbolic
// emotional categories.
package glyph

import (
	"fmt"
	"strings"
)

// Glyph is one of the seven emotional categories.
type Glyph int

const (
	GentleAche Glyph = iota + 1
	ResonantResponsibility
	SilentIntimacy
	FiercePassion
	SparkWonder
	GrowthNurture
	SpiralMystery
)

// All lists every glyph in declaration order.
var All = []Glyph{
	GentleAche,
	ResonantResponsibility,
	SilentIntimacy,
	FiercePassion,
	SparkWonder,
	GrowthNurture,
	SpiralMystery,
}

var names = map[Glyph]string{
	GentleAche:             "gentle_ache",
	ResonantResponsibility: "resonant_responsibility",
	SilentIntimacy:         "silent_intimacy",
	FiercePassion:          "fierce_passion",
	SparkWonder:            "spark_wonder",
	GrowthNurture:          "growth_nurture",
	SpiralMystery:          "spiral_mystery",
}

var symbols = map[Glyph]string{
	GentleAche:             "🜂",
	ResonantResponsibility: "⚖",
	SilentIntimacy:         "☾",
	FiercePassion:          "🔥",
	SparkWonder:            "✨",
	GrowthNurture:          "🌱",
	SpiralMystery:          "🌀",
}

// String returns the snake_case name, or "unknown" for values outside the enum.
func (g Glyph) String() string {
	if n, ok := names[g]; ok {
		return n
	}
	return "unknown"
}

// Symbol returns the glyph's emoji rendering.
func (g Glyph) Symbol() string {
	if s, ok := symbols[g]; ok {
		return s
	}
	return "?"
}

// Valid reports whether g is one of the seven glyphs.
func (g Glyph) Valid() bool {
	_, ok := names[g]
	return ok
}

// Parse accepts a glyph name or its emoji.
func Parse(s string) (Glyph, error) {
	s = strings.TrimSpace(s)
	for g, n := range names {
		if strings.EqualFold(s, n) || s == symbols[g] {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown glyph %q", s)
}

func (g Glyph) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid glyph %d", int(g))
	}
	return []byte(g.String()), nil
}

func (g *Glyph) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Vulnerable reports whether g signals vulnerability or intimacy.
func Vulnerable(g Glyph) bool {
	return g == GentleAche || g == SilentIntimacy
}
