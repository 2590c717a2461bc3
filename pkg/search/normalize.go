package search

import (
	"regexp"
	"strings"
)

// Removed from every query. The list is applied sequentially, so removing one
// entry can join characters that a later entry then matches; "--" is a two
// character sequence, a lone hyphen survives.
var strippedSequences = []string{
	`"`, "+", ".", "%", "--", "_", "(", ")", "[", "]", "{", "}",
	"^", ">", "<", "~", "@", "$", "|", "/", `\`,
}

// Punctuation that breaks the full-text parser.
var fullTextPunctuation = []string{
	"“", "”", "«", "»", "…", ",", ":", ";", "!", "¡", "¿", "–", "—", "―", "─",
}

// Unicode spaces (NBSP, thin space...) count as separators too.
var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// Normalize turns raw user input into the canonical search key for mode.
//
// Contains yields a boolean-mode expression such as `+llop -"cap-gros"`,
// Wildcard yields a regex fragment (* becomes .*, ? becomes .) and the other
// modes yield the cleaned text. An empty result means "no filter".
//
// Normalize is not idempotent for Contains: feed it raw input only once.
func Normalize(raw string, mode Mode) string {
	s := raw
	for _, seq := range strippedSequences {
		s = strings.ReplaceAll(s, seq, "")
	}
	s = strings.ReplaceAll(s, "’", "'")
	s = whitespaceRun.ReplaceAllString(s, " ")

	// Only wildcards left: every mode lists everything.
	if strings.Trim(s, "*? ") == "" {
		return ""
	}

	switch mode {
	case WholeSentence:
		s = stripWildcards(s)
	case Wildcard:
		s = strings.ReplaceAll(s, "*", ".*")
		s = strings.ReplaceAll(s, "?", ".")
	case Contains:
		s = booleanExpression(s)
	}

	return strings.TrimSpace(s)
}

func stripWildcards(s string) string {
	s = strings.ReplaceAll(s, "*", "")
	return strings.ReplaceAll(s, "?", "")
}

// booleanExpression marks every word as required (+) unless it starts with a
// hyphen, in which case it is excluded (-). Words with an inner hyphen are
// quoted so the hyphen is not read as an operator.
func booleanExpression(s string) string {
	s = stripWildcards(s)
	// A hyphen between spaces is a stray operator, not a hyphenated word.
	s = strings.ReplaceAll(s, " - ", " ")
	for _, p := range fullTextPunctuation {
		s = strings.ReplaceAll(s, p, "")
	}

	var b strings.Builder
	for _, word := range strings.Split(s, " ") {
		if word == "" {
			continue
		}
		if strings.HasPrefix(word, "-") {
			b.WriteByte('-')
			word = word[1:]
		} else {
			b.WriteByte('+')
		}
		if strings.Contains(word, "-") {
			b.WriteString(`"` + word + `"`)
		} else {
			b.WriteString(word)
		}
		b.WriteByte(' ')
	}
	return b.String()
}

// NormalizeStored applies the storage-time subset of the query rules to
// catalog text: typographic apostrophes become straight ones and whitespace
// runs collapse. Punctuation is kept since stored text is also displayed.
func NormalizeStored(text string) string {
	text = strings.ReplaceAll(text, "’", "'")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
