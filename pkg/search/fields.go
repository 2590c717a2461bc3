package search

// Fields selects the extra columns that take part in a search besides the
// canonical title.
type Fields struct {
	Variant    bool
	Synonym    bool
	Equivalent bool
}

// Column names in the paremiotipus table.
const (
	ColumnTitle      = "paremiotipus"
	ColumnVariant    = "modisme"
	ColumnSynonym    = "sinonim"
	ColumnEquivalent = "equivalent"
	ColumnFont       = "id_font"
)

// Columns returns the enabled extra columns in their fixed order:
// equivalent, synonym, variant.
func (f Fields) Columns() []string {
	var cols []string
	if f.Equivalent {
		cols = append(cols, ColumnEquivalent)
	}
	if f.Synonym {
		cols = append(cols, ColumnSynonym)
	}
	if f.Variant {
		cols = append(cols, ColumnVariant)
	}
	return cols
}
