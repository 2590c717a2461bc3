package types

// PageData is what the search page renders.
type PageData struct {
	Title   string
	Version string

	// Form state
	Query          string
	Mode           string
	Variant        bool
	Synonym        bool
	Equivalent     bool
	Font           string
	ResultsPerPage int

	Modes          []Option
	Fonts          []Option
	PerPageOptions []Option

	// Results
	Searched    bool
	Summary     string
	Results     []string
	Offset      int
	CurrentPage int
	TotalPages  int
	TotalCount  int
	Error       string

	// PageURL builds the link to another results page.
	PageURL func(page int) string
}

// Option is an entry of a select box.
type Option struct {
	Value string
	Label string
}
