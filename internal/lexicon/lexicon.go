// Package lexicon scores free text against a fixed table of weighted phrases.
//
// Matching is plain case-insensitive substring containment: there is no
// tokenization, so overlapping phrases ("trust" and "sacred trust") both fire.
package lexicon

import (
	"strings"
	"unicode/utf8"
)

// BaselineIntensity is the intensity reported when no phrase matches.
const BaselineIntensity = 0.1

// boosterValenceFactor scales a matched entry's valence each time a booster applies.
const boosterValenceFactor = 1.2

// Entry is one weighted phrase. Valence is in [-1,1], intensity in [0,1].
type Entry struct {
	Phrase    string  `json:"phrase"`
	Valence   float64 `json:"valence"`
	Intensity float64 `json:"intensity"`
}

// Booster is an intensifier word ("very", "extremely") that raises the
// intensity of every matched entry when present anywhere in the text.
type Booster struct {
	Word  string  `json:"word"`
	Boost float64 `json:"boost"`
}

// Amplifier adds intensity once per text when its token appears in the raw input.
type Amplifier struct {
	Token string  `json:"token"`
	Amp   float64 `json:"amp"`
}

// BoosterMode selects how multiple present boosters combine.
type BoosterMode string

const (
	// BoostStacked applies every present booster in table order: each adds its
	// boost (intensity capped at 1.0 per step) and multiplies valence by 1.2.
	BoostStacked BoosterMode = "stacked"
	// BoostLast applies only the last present booster in table order.
	BoostLast BoosterMode = "last"
	// BoostOnce applies the largest present boost exactly once.
	BoostOnce BoosterMode = "once"
)

// ParseBoosterMode maps a config string to a mode. Unknown values yield BoostStacked.
func ParseBoosterMode(s string) BoosterMode {
	switch BoosterMode(strings.ToLower(strings.TrimSpace(s))) {
	case BoostLast:
		return BoostLast
	case BoostOnce:
		return BoostOnce
	default:
		return BoostStacked
	}
}

// ScoreResult is the aggregate outcome of scoring one text.
type ScoreResult struct {
	Valence    float64  `json:"valence"`
	Intensity  float64  `json:"intensity"`
	Matched    []string `json:"matched_phrases"`
	MatchCount int      `json:"match_count"`
}

// Lexicon is an immutable phrase table plus scoring options. Build it once and
// share it; Score is safe for concurrent use.
type Lexicon struct {
	entries     []Entry
	boosters    []Booster
	amplifiers  []Amplifier
	mode        BoosterMode
	maxInputLen int
	matchCap    int
}

// Option configures a Lexicon at construction.
type Option func(*Lexicon)

// WithBoosterMode sets how boosters combine.
func WithBoosterMode(m BoosterMode) Option {
	return func(l *Lexicon) { l.mode = m }
}

// WithMaxInputLen truncates input to the first n runes before scanning. Zero means unlimited.
func WithMaxInputLen(n int) Option {
	return func(l *Lexicon) {
		if n > 0 {
			l.maxInputLen = n
		}
	}
}

// WithMatchCap limits how many phrases are reported in ScoreResult.Matched.
// Valence and intensity are still computed from every match.
func WithMatchCap(n int) Option {
	return func(l *Lexicon) {
		if n > 0 {
			l.matchCap = n
		}
	}
}

// WithAmplifiers replaces the punctuation amplifier table.
func WithAmplifiers(amps []Amplifier) Option {
	return func(l *Lexicon) {
		l.amplifiers = append([]Amplifier(nil), amps...)
	}
}

// Default returns the built-in lexicon.
func Default(opts ...Option) *Lexicon {
	return New(defaultEntries, defaultBoosters, append([]Option{WithAmplifiers(defaultAmplifiers)}, opts...)...)
}

// New builds a lexicon from the given tables. Phrases are lowercased and
// weights clamped into their declared ranges; the input slices are copied.
func New(entries []Entry, boosters []Booster, opts ...Option) *Lexicon {
	l := &Lexicon{
		entries:  make([]Entry, 0, len(entries)),
		boosters: make([]Booster, 0, len(boosters)),
		mode:     BoostStacked,
	}
	for _, e := range entries {
		if e.Phrase == "" {
			continue
		}
		l.entries = append(l.entries, Entry{
			Phrase:    strings.ToLower(e.Phrase),
			Valence:   clamp(e.Valence, -1, 1),
			Intensity: clamp(e.Intensity, 0, 1),
		})
	}
	for _, b := range boosters {
		if b.Word == "" {
			continue
		}
		l.boosters = append(l.boosters, Booster{Word: strings.ToLower(b.Word), Boost: b.Boost})
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Entries returns a copy of the phrase table in scan order.
func (l *Lexicon) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Mode reports the configured booster mode.
func (l *Lexicon) Mode() BoosterMode {
	return l.mode
}

// Score scans text against the table. It is total: every string, including
// the empty string, yields a result.
func (l *Lexicon) Score(text string) ScoreResult {
	raw := l.truncate(text)
	lower := strings.ToLower(raw)

	boostSteps := l.boostSteps(lower)

	var sumValence, sumIntensity float64
	var matched []string
	count := 0
	for _, e := range l.entries {
		if !strings.Contains(lower, e.Phrase) {
			continue
		}
		v, in := e.Valence, e.Intensity
		for _, b := range boostSteps {
			in = min(1.0, in+b)
			v *= boosterValenceFactor
		}
		sumValence += v
		sumIntensity += in
		count++
		if l.matchCap == 0 || len(matched) < l.matchCap {
			matched = append(matched, e.Phrase)
		}
	}

	amp := 0.0
	for _, a := range l.amplifiers {
		if strings.Contains(raw, a.Token) {
			amp += a.Amp
		}
	}

	res := ScoreResult{Matched: matched, MatchCount: count}
	if count > 0 {
		res.Valence = sumValence / float64(count)
		res.Intensity = min(1.0, (sumIntensity+amp)/float64(count))
	} else {
		res.Valence = 0.0
		res.Intensity = BaselineIntensity + amp
	}
	res.Valence = clamp(res.Valence, -1, 1)
	res.Intensity = clamp(res.Intensity, 0, 1)
	if res.Matched == nil {
		res.Matched = []string{}
	}
	return res
}

// boostSteps returns the boosts applied, in order, to each matched entry under
// the configured mode.
func (l *Lexicon) boostSteps(lower string) []float64 {
	var present []float64
	for _, b := range l.boosters {
		if strings.Contains(lower, b.Word) {
			present = append(present, b.Boost)
		}
	}
	if len(present) == 0 {
		return nil
	}
	switch l.mode {
	case BoostLast:
		return present[len(present)-1:]
	case BoostOnce:
		best := present[0]
		for _, p := range present[1:] {
			best = max(best, p)
		}
		return []float64{best}
	default:
		return present
	}
}

func (l *Lexicon) truncate(text string) string {
	if l.maxInputLen == 0 || utf8.RuneCountInString(text) <= l.maxInputLen {
		return text
	}
	n := 0
	for i := range text {
		if n == l.maxInputLen {
			return text[:i]
		}
		n++
	}
	return text
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
