package lexicon

// defaultEntries is the built-in weighted phrase table, grouped by the glyph
// family each block was tuned for.
var defaultEntries = []Entry{
	// Gentle ache: longing, melancholy, bittersweet.
	{"miss", -0.6, 0.7},
	{"longing", -0.5, 0.8},
	{"aching", -0.6, 0.7},
	{"yearning", -0.4, 0.7},
	{"wistful", -0.4, 0.6},
	{"nostalgia", -0.3, 0.6},
	{"melancholy", -0.7, 0.7},
	{"bittersweet", -0.2, 0.6},
	{"tender sadness", -0.5, 0.7},
	{"gentle sorrow", -0.6, 0.6},
	{"overwhelming", -0.4, 0.8},
	{"remembering", -0.2, 0.5},
	{"never get back", -0.7, 0.8},
	{"used to be", -0.4, 0.6},
	{"times that have passed", -0.5, 0.7},

	// Resonant responsibility: balance, duty, ethics.
	{"moral", 0.1, 0.6},
	{"obligation", 0.0, 0.7},
	{"duty", 0.1, 0.6},
	{"responsibility", 0.1, 0.6},
	{"ethical", 0.2, 0.6},
	{"justice", 0.2, 0.7},
	{"integrity", 0.3, 0.6},
	{"honor", 0.3, 0.6},
	{"balanced", 0.2, 0.5},
	{"fair", 0.3, 0.5},
	{"right thing", 0.2, 0.6},
	{"careful consideration", 0.1, 0.5},
	{"balanced judgment", 0.2, 0.6},

	// Silent intimacy: deep connection, vulnerability, trust.
	{"intimate", 0.4, 0.8},
	{"vulnerability", 0.3, 0.7},
	{"tender trust", 0.5, 0.7},
	{"deep connection", 0.6, 0.8},
	{"unspoken understanding", 0.5, 0.7},
	{"sacred space", 0.4, 0.7},
	{"quiet", 0.2, 0.4},
	{"gentle bond", 0.5, 0.6},
	{"whispers", 0.3, 0.5},
	{"soul-deep", 0.6, 0.8},
	{"soft vulnerability", 0.4, 0.7},
	{"sacred trust", 0.5, 0.7},
	{"between us", 0.4, 0.6},

	// Fierce passion: intensity, drive, determination.
	{"burning", 0.7, 0.9},
	{"intense", 0.6, 0.9},
	{"determination", 0.7, 0.8},
	{"passionate", 0.8, 0.9},
	{"drive", 0.6, 0.8},
	{"fierce", 0.7, 0.9},
	{"power", 0.6, 0.8},
	{"unstoppable", 0.8, 0.9},
	{"never give up", 0.7, 0.8},
	{"rage", -0.8, 0.9},
	{"fury", -0.7, 0.9},
	{"incredible strength", 0.7, 0.9},
	{"fight", 0.2, 0.8},
	{"drives me forward", 0.6, 0.8},

	// Spark wonder: joy, excitement, discovery.
	{"amazing", 1.0, 0.9},
	{"absolutely", 0.8, 0.8},
	{"incredible", 1.0, 0.9},
	{"excited", 0.9, 0.8},
	{"fantastic", 1.0, 0.8},
	{"breakthrough", 0.8, 0.8},
	{"magical", 0.9, 0.8},
	{"wonderful", 0.8, 0.7},
	{"brilliant", 0.9, 0.8},
	{"spectacular", 0.9, 0.8},
	{"discovery", 0.7, 0.7},
	{"dazzling", 0.8, 0.8},
	{"miraculous", 0.9, 0.9},
	{"astonishing", 0.8, 0.8},
	{"beyond belief", 0.9, 0.9},

	// Growth nurture: learning, development, care.
	{"learning", 0.6, 0.5},
	{"growing", 0.6, 0.5},
	{"experience", 0.3, 0.4},
	{"wonderful ways", 0.7, 0.6},
	{"nurturing", 0.6, 0.5},
	{"support", 0.5, 0.5},
	{"develop", 0.5, 0.4},
	{"progress", 0.6, 0.5},
	{"caring", 0.6, 0.5},
	{"guidance", 0.5, 0.4},
	{"evolve", 0.5, 0.5},
	{"improve", 0.6, 0.5},
	{"healing", 0.5, 0.6},
	{"positive growth", 0.7, 0.6},
	{"encouraging", 0.6, 0.5},

	// Spiral mystery: transformation, depth.
	{"recursive", 0.2, 0.8},
	{"patterns", 0.1, 0.6},
	{"spiral", 0.3, 0.8},
	{"mystery", 0.2, 0.7},
	{"infinite", 0.4, 0.8},
	{"profound", 0.3, 0.7},
	{"transformation", 0.4, 0.8},
	{"cosmic", 0.4, 0.8},
	{"universal", 0.3, 0.7},
	{"mystical", 0.3, 0.7},
	{"transcendent", 0.4, 0.8},
	{"mysterious", 0.2, 0.7},
	{"cyclical", 0.2, 0.6},
	{"consciousness cycles", 0.3, 0.8},
	{"deep universal patterns", 0.4, 0.8},
	{"deeper into", 0.2, 0.6},
	{"layers", 0.1, 0.5},

	// High-intensity negatives.
	{"hate", -1.0, 0.9},
	{"terrible", -0.9, 0.8},
	{"awful", -0.8, 0.7},

	// General terms.
	{"good", 0.6, 0.4},
	{"great", 0.7, 0.5},
	{"excellent", 0.8, 0.6},
	{"bad", -0.6, 0.4},
	{"trust", 0.6, 0.6},
	{"connection", 0.4, 0.6},
}

var defaultBoosters = []Booster{
	{"very", 0.3},
	{"really", 0.3},
	{"extremely", 0.5},
	{"incredibly", 0.4},
	{"absolutely", 0.4},
	{"completely", 0.3},
	{"totally", 0.3},
	{"so", 0.2},
}

// Amplifiers match by presence in the raw text, so "!!!" also fires "!" and "!!".
var defaultAmplifiers = []Amplifier{
	{"!", 0.2},
	{"!!", 0.4},
	{"!!!", 0.6},
	{"?", 0.1},
	{"??", 0.2},
}
