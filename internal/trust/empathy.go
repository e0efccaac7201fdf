package trust

import (
	"strings"

	"github.com/MikeSquared-Agency/resonance/internal/lexicon"
)

// Component weights sum to 1.0.
const (
	weightResonance     = 0.25
	weightSupport       = 0.25
	weightVulnerability = 0.35
	weightGrowth        = 0.10
	weightPresence      = 0.05
)

var (
	highEmpathyWords = []string{"struggling", "lost", "vulnerable", "trust", "understand", "ache", "longing",
		"connection", "intimate", "sacred", "feel", "emotion", "heart", "soul", "experience", "moment", "deep"}
	selfDisclosurePhrases = []string{"i feel", "i am", "this is", "it feels", "emotionally", "personally"}

	supportWords = []string{"help", "support", "understand", "here for you", "guidance", "care", "assist", "aid", "nurture"}
	supportAsks  = []string{"can you help", "please help", "i need", "guide me", "support me"}

	vulnerabilityWords = []string{"vulnerable", "struggling", "trust", "share", "open", "difficult", "hard to",
		"personal", "intimate", "sacred", "deep", "feel", "emotional", "sensitive"}
	vulnerabilityPhrases = []string{"hard to share", "difficult to", "trust you", "vulnerable sharing", "open up",
		"personal struggle", "feel vulnerable", "struggling with", "difficult for me"}
	vulnerableEmotions = []string{"miss", "longing", "aching", "yearning", "vulnerable", "trust", "intimate",
		"struggling", "lost", "difficult"}
	feelingWords = []string{"feel", "feels", "feeling", "emotion", "emotional", "heart", "soul", "deep", "deeply"}

	growthWords   = []string{"learn", "grow", "develop", "evolve", "improve", "progress", "understanding", "experience", "wisdom"}
	growthPhrases = []string{"want to learn", "help me grow", "want to develop", "improve my", "learn from"}

	presenceWords = []string{"focus", "attention", "present", "aware", "conscious", "mindful", "moment", "here",
		"now", "listen", "listening", "understand", "engaged", "attentive"}
	mindfulPhrases = []string{"in this moment", "present and", "conscious in", "mindfully on", "focusing my",
		"paying attention", "fully engaged", "deeply aware", "present with"}
	engagementWords = []string{"engage", "engaged", "connection", "connected", "understanding", "listening", "aware", "consciousness"}
)

// EmpathyGrowth estimates how much an interaction deepens the relationship,
// in [MinEmpathy, 1]. complexity is the message complexity in [0,1]; prior is
// the relationship before this interaction and may be nil.
func EmpathyGrowth(text string, score lexicon.ScoreResult, complexity float64, prior *RelationshipState) float64 {
	lower := strings.ToLower(text)
	intensity := score.Intensity
	emotions := score.MatchCount

	baseResonance := intensity * min(1.0, float64(emotions+2)/3.5)
	resonance := min(1.0, baseResonance+
		0.18*float64(countPresent(lower, highEmpathyWords))+
		0.12*float64(countPresent(lower, selfDisclosurePhrases)))

	support := min(1.0, 0.3*float64(countPresent(lower, supportWords))+
		0.4*float64(countPresent(lower, supportAsks)))

	matched := make(map[string]bool, len(score.Matched))
	for _, m := range score.Matched {
		matched[m] = true
	}
	emotionVulnerability := 0.0
	for _, e := range vulnerableEmotions {
		if matched[e] {
			emotionVulnerability += 0.2
		}
	}
	intensityBonus := intensity * 0.2
	if intensity > 0.5 {
		intensityBonus = intensity * 0.4
	}
	vulnerability := min(1.0, 0.25*float64(countPresent(lower, vulnerabilityWords))+
		0.5*float64(countPresent(lower, vulnerabilityPhrases))+
		emotionVulnerability+intensityBonus+
		0.1*float64(countPresent(lower, feelingWords)))

	growth := min(1.0, 0.25*float64(countPresent(lower, growthWords))+
		0.4*float64(countPresent(lower, growthPhrases)))

	presence := min(1.0, 0.35*float64(countPresent(lower, presenceWords))+
		0.55*float64(countPresent(lower, mindfulPhrases))+
		clampRange(complexity, 0, 1)*0.5+
		0.15*float64(countPresent(lower, engagementWords)))

	total := resonance*weightResonance +
		support*weightSupport +
		vulnerability*weightVulnerability +
		growth*weightGrowth +
		presence*weightPresence

	if prior != nil {
		total += min(0.15, clamp(prior.RelationshipDepth)*0.08)
	}

	words := len(strings.Fields(text))
	if float64(emotions)/float64(max(1, words)) > 0.2 {
		total *= 1.15
	}

	return clampRange(total, MinEmpathy, 1.0)
}

// countPresent counts how many of the phrases occur in lower.
func countPresent(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			n++
		}
	}
	return n
}
