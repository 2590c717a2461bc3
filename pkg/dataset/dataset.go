// Package dataset reads proverb catalog dumps in YAML.
//
// A dataset lists bibliographic sources and one record per recorded
// variant of a paremiotipus:
//
//	fonts:
//	  - id: DCVB
//	    title: Diccionari català-valencià-balear
//	paremiotipus:
//	  - paremiotipus: Més val boig conegut que savi per conèixer
//	    modisme: Val més un boig conegut que un savi per conèixer
//	    font: DCVB
//
// Text fields are normalized on load the same way stored text is expected
// by the search engine (NFC, typographic apostrophes, collapsed whitespace).
package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/rubiojr/parems/pkg/log"
	"github.com/rubiojr/parems/pkg/search"
)

var ErrNoEntries = errors.New("dataset has no paremiotipus entries")

// Font is a bibliographic source.
type Font struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Entry is one recorded variant of a paremiotipus.
type Entry struct {
	Paremiotipus string `yaml:"paremiotipus"`
	Modisme      string `yaml:"modisme,omitempty"`
	Sinonim      string `yaml:"sinonim,omitempty"`
	Equivalent   string `yaml:"equivalent,omitempty"`
	Font         string `yaml:"font,omitempty"`
}

type Dataset struct {
	Fonts   []Font  `yaml:"fonts"`
	Entries []Entry `yaml:"paremiotipus"`
}

// Load reads and normalizes the dataset at path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	ds, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a dataset from r. Unknown keys are rejected. Entries without
// a paremiotipus are an error; references to undeclared fonts are logged.
func Parse(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoEntries
		}
		return nil, err
	}

	ds.normalize()
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (ds *Dataset) normalize() {
	for i := range ds.Fonts {
		ds.Fonts[i].ID = clean(ds.Fonts[i].ID)
		ds.Fonts[i].Title = clean(ds.Fonts[i].Title)
	}
	for i := range ds.Entries {
		e := &ds.Entries[i]
		e.Paremiotipus = clean(e.Paremiotipus)
		e.Modisme = clean(e.Modisme)
		e.Sinonim = clean(e.Sinonim)
		e.Equivalent = clean(e.Equivalent)
		e.Font = clean(e.Font)
	}
}

func (ds *Dataset) validate() error {
	if len(ds.Entries) == 0 {
		return ErrNoEntries
	}

	fonts := make(map[string]bool, len(ds.Fonts))
	for i, f := range ds.Fonts {
		if f.ID == "" {
			return fmt.Errorf("font #%d has no id", i+1)
		}
		if fonts[f.ID] {
			return fmt.Errorf("duplicate font id %q", f.ID)
		}
		fonts[f.ID] = true
	}

	logger := log.ForService("dataset")
	for i, e := range ds.Entries {
		if e.Paremiotipus == "" {
			return fmt.Errorf("entry #%d has no paremiotipus", i+1)
		}
		if e.Font != "" && !fonts[e.Font] {
			logger.Warnf("entry %q references unknown font %q", e.Paremiotipus, e.Font)
		}
	}
	return nil
}

// Titles returns the number of distinct paremiotipus in the dataset.
func (ds *Dataset) Titles() int {
	seen := make(map[string]struct{}, len(ds.Entries))
	for _, e := range ds.Entries {
		seen[e.Paremiotipus] = struct{}{}
	}
	return len(seen)
}

func clean(s string) string {
	return search.NormalizeStored(norm.NFC.String(s))
}
