package search

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AllResults is the results-per-page sentinel for "show everything".
const AllResults = 0

// DefaultResultsPerPage is used when the requested page size is not allowed.
const DefaultResultsPerPage = 10

// ResultsPerPageOptions lists the allowed page sizes besides AllResults.
var ResultsPerPageOptions = []int{10, 15, 25, 50}

var printer = message.NewPrinter(language.Catalan)

// PageCount returns the number of pages needed for total results. With
// AllResults everything fits in a single page.
func PageCount(total, perPage int) int {
	if perPage == AllResults {
		return 1
	}
	if total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Offset returns the index of the first result of page.
func Offset(page, perPage int) int {
	if perPage == AllResults {
		return 0
	}
	return (ClampPage(page) - 1) * perPage
}

// ClampPage normalizes page numbers below 1 to 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Summary renders the results sentence shown above a results list, e.g.
// "S'han trobat 25 paremiotipus per a la cerca fera. Registres de l'11 al 20."
// The range clause is only added when the results span several pages.
func Summary(offset, perPage, total int, query string) string {
	if total == 1 {
		return "S'ha trobat 1 paremiotipus per a la cerca " + query + "."
	}

	var b strings.Builder
	b.WriteString("S'han trobat ")
	b.WriteString(FormatNumber(total))
	b.WriteString(" paremiotipus per a la cerca ")
	b.WriteString(query)
	b.WriteString(".")

	if perPage != AllResults && total > perPage {
		first := offset + 1
		last := min(offset+perPage, total)
		b.WriteString(" Registres ")
		b.WriteString(withArticle("de", first))
		b.WriteString(" ")
		b.WriteString(withArticle("a", last))
		b.WriteString(".")
	}
	return b.String()
}

// FormatNumber formats n with Catalan digit grouping.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// withArticle joins a preposition ("de" or "a") with the masculine article
// and the number: "del 2", "al 10", but "de l'1", "a l'11", "de l'11.000".
func withArticle(prep string, n int) string {
	if elides(n) {
		return prep + " l'" + FormatNumber(n)
	}
	return prep + "l " + FormatNumber(n)
}

// elides reports whether the article is apostrophized before n. Catalan
// numerals starting with a vowel sound: u (1), onze (11) and onze mil
// (11.000 to 11.999).
func elides(n int) bool {
	return n == 1 || n == 11 || (n >= 11000 && n < 12000)
}
