package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  Mode
		want  string
	}{
		{"single word contains", "fera", Contains, "+fera"},
		{"excluded word", "-mot altra", Contains, "-mot +altra"},
		{"hyphenated word is quoted", "cap-gros", Contains, `+"cap-gros"`},
		{"excluded hyphenated word", "-cap-gros llop", Contains, `-"cap-gros" +llop`},
		{"stray hyphen operator", "llop - xai", Contains, "+llop +xai"},
		{"punctuation removed", "«Qui dia passa, any empeny!»", Contains, "+Qui +dia +passa +any +empeny"},
		{"brackets removed", "(hola) [adeu]", Contains, "+hola +adeu"},
		{"wildcards dropped in contains", "fe*ra?", Contains, "+fera"},
		{"only wildcard", "*", Contains, ""},
		{"only stripped characters", `"().%"`, Contains, ""},
		{"exact keeps accents", "Val més un boig conegut", Exact, "Val més un boig conegut"},
		{"whole sentence drops quotes", `"Val més un boig conegut que un savi per conèixer"`, WholeSentence, "Val més un boig conegut que un savi per conèixer"},
		{"whole sentence drops wildcards", "fe*ra?", WholeSentence, "fera"},
		{"whole sentence keeps inner spacing", "a * b", WholeSentence, "a  b"},
		{"wildcard to regex", "f*ra?", Wildcard, "f.*ra."},
		{"double hyphen removed", "a--b", Exact, "ab"},
		{"single hyphen kept", "a-b", StartsWith, "a-b"},
		{"triple hyphen leaves one", "a---b", EndsWith, "a-b"},
		{"removal is sequential", "-.-", Exact, ""},
		{"typographic apostrophe", "l’home", Exact, "l'home"},
		{"whitespace collapsed and trimmed", "  molt \t  soroll  ", StartsWith, "molt soroll"},
		{"single character", "a", Exact, "a"},
		{"single character contains", "a", Contains, "+a"},
		{"lone hyphen", "-", Contains, "-"},
		{"only wildcards in wildcard mode", "*", Wildcard, ""},
		{"only wildcards in starts with", "* ?", StartsWith, ""},
		{"only wildcards in exact", "?*", Exact, ""},
		{"no-break space separates words", "fera\u00a0llop", Contains, "+fera +llop"},
		{"thin space collapsed", "molt\u2009 soroll", Exact, "molt soroll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input, tt.mode))
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{"fera", "-mot altra", "cap-gros", `"frase"`, "f*?", "l’aigua", "  ", "a -- b"}
	modes := []Mode{Contains, StartsWith, EndsWith, Exact, WholeSentence, Wildcard}

	for _, in := range inputs {
		for _, m := range modes {
			assert.Equal(t, Normalize(in, m), Normalize(in, m), "input %q mode %s", in, m)
		}
	}
}

func TestNormalizeQuotesHyphenatedWordsOnce(t *testing.T) {
	words := []string{"cap-gros", "mig-dia", "a-b-c", "bon-dia", "porta-avions"}
	for _, w := range words {
		for _, prefix := range []string{"", "-"} {
			got := Normalize(prefix+w+" final", Contains)
			quoted := `"` + w + `"`
			assert.Equal(t, 1, strings.Count(got, quoted), "input %q gave %q", prefix+w, got)
			assert.Equal(t, 2, strings.Count(got, `"`), "input %q gave %q", prefix+w, got)
		}
	}
}

func TestNormalizeOperators(t *testing.T) {
	got := Normalize("-mot altra", Contains)
	assert.Contains(t, got, "-mot")
	assert.NotContains(t, got, "+mot")
	assert.Contains(t, got, "+altra")
}

func TestNormalizeStored(t *testing.T) {
	assert.Equal(t, "Qui no té feina, el gat pentina.", NormalizeStored("  Qui no té   feina,\n el gat pentina. "))
	assert.Equal(t, "L'hàbit no fa el monjo", NormalizeStored("L’hàbit no fa el monjo"))
}
