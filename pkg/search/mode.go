package search

import "strings"

// Mode is the matching strategy applied to a search request.
type Mode int

const (
	// Contains is the default full-text mode.
	Contains Mode = iota
	StartsWith
	EndsWith
	Exact
	// WholeSentence matches the query as a complete sentence bounded by word
	// boundaries. Selected automatically for double-quoted queries.
	WholeSentence
	// Wildcard matches single-word queries containing * or ?.
	Wildcard
)

// Mode tokens as they appear in the search form.
const (
	LabelContains      = "conté"
	LabelStartsWith    = "comença"
	LabelEndsWith      = "acaba"
	LabelExact         = "coincident"
	LabelWholeSentence = "frase"
	LabelWildcard      = "comodins"
)

var modeLabels = map[Mode]string{
	Contains:      LabelContains,
	StartsWith:    LabelStartsWith,
	EndsWith:      LabelEndsWith,
	Exact:         LabelExact,
	WholeSentence: LabelWholeSentence,
	Wildcard:      LabelWildcard,
}

// Modes lists every mode in the order the search form offers them.
var Modes = []Mode{Contains, StartsWith, EndsWith, Exact, WholeSentence, Wildcard}

var modeTitles = map[Mode]string{
	Contains:      "Conté",
	StartsWith:    "Comença per",
	EndsWith:      "Acaba en",
	Exact:         "Coincident",
	WholeSentence: "Frase sencera",
	Wildcard:      "Comodins",
}

// Title is the human readable name of the mode.
func (m Mode) Title() string {
	if t, ok := modeTitles[m]; ok {
		return t
	}
	return modeTitles[Contains]
}

// String returns the form token for the mode.
func (m Mode) String() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return LabelContains
}

// ParseMode maps a form token to a Mode. Unknown or empty tokens yield Contains.
func ParseMode(token string) Mode {
	for m, l := range modeLabels {
		if l == token {
			return m
		}
	}
	return Contains
}

// ResolveMode returns the effective mode for a request. Only Contains is ever
// upgraded: a double-quoted query becomes WholeSentence, and a single word
// carrying * or ? and at least one letter or digit becomes Wildcard.
func ResolveMode(rawMode, rawQuery string) Mode {
	mode := ParseMode(rawMode)
	if mode != Contains {
		return mode
	}

	q := strings.TrimSpace(rawQuery)
	if len(q) >= 2 && strings.HasPrefix(q, `"`) && strings.HasSuffix(q, `"`) {
		return WholeSentence
	}
	if !strings.Contains(q, " ") && strings.ContainsAny(q, "*?") && hasWordChar(q) {
		return Wildcard
	}
	return Contains
}
