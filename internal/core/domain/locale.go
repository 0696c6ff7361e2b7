package domain

// LocaleTables holds the language-specific data used to turn a raw line
// item description into a comparison string. All tables are optional; an
// empty table disables its normalisation step.
type LocaleTables struct {
	// Locale is a BCP 47 tag selecting the casing rules (e.g. "tr").
	// Empty or unknown tags fall back to language-neutral casing.
	Locale string `yaml:"locale" toml:"locale"`

	// Folding maps accented letters to their unaccented replacement.
	// Keys and values may be multi-rune strings.
	Folding map[string]string `yaml:"folding" toml:"folding"`

	// Units are weight, volume and count abbreviations removed together
	// with the number in front of them ("1lt", "500 gr").
	Units []string `yaml:"units" toml:"units"`

	// StopWords are brand, retailer and descriptor tokens dropped from
	// descriptions.
	StopWords []string `yaml:"stop_words" toml:"stop_words"`
}

// IsEmpty returns true if no table carries any data.
func (t LocaleTables) IsEmpty() bool {
	return t.Locale == "" && len(t.Folding) == 0 && len(t.Units) == 0 && len(t.StopWords) == 0
}

// Merge returns a copy of t with every non-empty table of other replacing
// the corresponding table of t.
func (t LocaleTables) Merge(other LocaleTables) LocaleTables {
	out := t
	if other.Locale != "" {
		out.Locale = other.Locale
	}
	if len(other.Folding) > 0 {
		out.Folding = other.Folding
	}
	if len(other.Units) > 0 {
		out.Units = other.Units
	}
	if len(other.StopWords) > 0 {
		out.StopWords = other.StopWords
	}
	return out
}
