package search

import (
	"fmt"
	"strings"
	"unicode"
)

// Table and full-text index the predicates are written against.
const (
	TableAlias = "p"
	FTSTable   = "paremiotipus_fts"
)

// Unicode word boundaries around the REGEXP argument. Go's \b only knows
// ASCII word characters, which would break on accented Catalan letters.
const (
	boundaryOpen  = `(?i)(?:^|[^\p{L}\p{N}_])`
	boundaryClose = `(?:[^\p{L}\p{N}_]|$)`
)

// Predicate is a parameterized WHERE clause and its ordered bind arguments.
// The zero value means "no filter".
type Predicate struct {
	Where string
	Args  []any
}

// IsEmpty reports whether the predicate filters nothing.
func (p Predicate) IsEmpty() bool {
	return p.Where == ""
}

// Key identifies the predicate for caching. Equal inputs to BuildPredicate
// always produce equal keys.
func (p Predicate) Key() string {
	var b strings.Builder
	b.WriteString(p.Where)
	for _, a := range p.Args {
		b.WriteByte(0)
		fmt.Fprint(&b, a)
	}
	return b.String()
}

// matchNothing is used for boolean expressions without any required term,
// which select no rows in boolean mode.
var matchNothing = Predicate{Where: "0"}

// BuildPredicate maps a normalized query to a predicate. When mode is
// Contains and font is set, the result lists every entry of that source and
// the query is ignored. An empty query yields the empty predicate.
func BuildPredicate(normalized string, mode Mode, fields Fields, font string) Predicate {
	if mode == Contains && font != "" {
		return Predicate{
			Where: column(ColumnFont) + " = ?",
			Args:  []any{font},
		}
	}
	if normalized == "" {
		return Predicate{}
	}

	if mode == Contains {
		match := FullTextQuery(normalized, append([]string{ColumnTitle}, fields.Columns()...))
		if match == "" {
			return matchNothing
		}
		return Predicate{
			Where: fmt.Sprintf("%s IN (SELECT rowid FROM %s WHERE %s MATCH ?)", column("id"), FTSTable, FTSTable),
			Args:  []any{match},
		}
	}

	cols := append([]string{ColumnTitle}, fields.Columns()...)
	clauses := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		clauses = append(clauses, column(c)+" "+shape(mode))
		args = append(args, normalized)
	}

	where := strings.Join(clauses, " OR ")
	if len(clauses) > 1 {
		where = "(" + where + ")"
	}
	return Predicate{Where: where, Args: args}
}

// shape returns the per-mode comparison that follows the column name.
func shape(mode Mode) string {
	switch mode {
	case StartsWith:
		return "LIKE ? || '%'"
	case EndsWith:
		return "LIKE '%' || ?"
	case Exact:
		// LIKE without wildcards is a case-insensitive equality; the
		// normalizer strips % and _ so the argument carries none.
		return "LIKE ?"
	default:
		return "REGEXP '" + boundaryOpen + "' || ? || '" + boundaryClose + "'"
	}
}

func column(name string) string {
	return TableAlias + "." + name
}

// FullTextQuery translates a boolean-mode expression (+required, -excluded,
// "quoted-phrase") into an FTS5 query restricted to cols. Terms without any
// letter or digit are dropped. It returns "" when no required term is left,
// since a purely negative expression matches nothing.
func FullTextQuery(expr string, cols []string) string {
	var required, excluded []string
	for _, tok := range strings.Fields(expr) {
		op := tok[0]
		term := tok
		if op == '+' || op == '-' {
			term = tok[1:]
		} else {
			op = '+'
		}
		term = strings.Trim(term, `"`)
		if !hasWordChar(term) {
			continue
		}
		phrase := `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
		if op == '-' {
			excluded = append(excluded, phrase)
		} else {
			required = append(required, phrase)
		}
	}
	if len(required) == 0 {
		return ""
	}

	q := strings.Join(required, " ")
	for _, e := range excluded {
		q += " NOT " + e
	}
	return "{" + strings.Join(cols, " ") + "} : (" + q + ")"
}

func hasWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
