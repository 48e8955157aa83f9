package wiki

import "strings"

// FormatRegistry maps format names and aliases to their definitions.
// Adding a format = adding its table and one entry here.
var FormatRegistry = map[string]*Format{}

// DefaultFormat is used when no format is selected.
const DefaultFormat = "forrest"

func init() {
	for _, f := range []*Format{Forrest, DocBook, Moin, Rest} {
		FormatRegistry[f.Name] = f
		for _, alias := range f.Aliases {
			FormatRegistry[alias] = f
		}
	}
}

// LookupFormat returns the Format for a name or alias, case-insensitively.
// Returns ok=false if the format is not registered.
func LookupFormat(name string) (*Format, bool) {
	f, ok := FormatRegistry[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Formats returns every registered format once, in a stable order.
func Formats() []*Format {
	return []*Format{Forrest, DocBook, Moin, Rest}
}
