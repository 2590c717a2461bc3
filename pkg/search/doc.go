// Package search turns free-text catalog queries into SQL predicates and
// paginated results.
//
// # Overview
//
// A search request goes through four pure steps before touching the data
// store:
//
//   - ResolveMode picks the effective Mode from the form token and the raw
//     query (quoted queries become WholeSentence, single words with * or ?
//     become Wildcard).
//   - Normalize canonicalizes the query for that mode.
//   - BuildPredicate maps the canonical query, the enabled Fields and an
//     optional source filter to a parameterized Predicate.
//   - PageCount, Offset and Summary compute the pagination metadata and the
//     Catalan results sentence.
//
// Service glues the steps to a Store and is what the web handlers and the
// CLI use:
//
//	params, err := search.ParseParams(r.URL.Query(), search.DefaultResultsPerPage)
//	if err != nil {
//		// query longer than MaxQueryLength
//	}
//	res, err := search.NewService(store).Search(ctx, params)
//
// # Modes
//
//	conté       full-text, every word required, -word excluded
//	comença     prefix match on the title
//	acaba       suffix match on the title
//	coincident  case-insensitive equality
//	frase       whole sentence between word boundaries (from "quoted" input)
//	comodins    * and ? wildcards in a single word
//
// # Predicates
//
// Predicates target SQLite: Contains mode queries the paremiotipus_fts FTS5
// index, WholeSentence and Wildcard use REGEXP with Unicode word boundaries,
// and the remaining modes use LIKE. Every function here is free of side
// effects and safe for concurrent use.
package search
