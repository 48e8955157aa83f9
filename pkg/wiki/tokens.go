// tokens.go defines the classified line tokens produced by the lexer.
package wiki

// LineKind is the classification of one input line.
type LineKind int

const (
	LineBlank       LineKind = iota // empty or whitespace only
	LineVariable                    // @key: value
	LineClose                       // }}
	LineEnvironment                 // {{Kind:depth extra  or  Kind:depth extra
	LineListItem                    // [*#~]+ text, optionally prefixed by {{
	LineHeader                      // ==depth title ==id
	LineText                        // anything else
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineVariable:
		return "variable"
	case LineClose:
		return "close"
	case LineEnvironment:
		return "environment"
	case LineListItem:
		return "list-item"
	case LineHeader:
		return "header"
	case LineText:
		return "text"
	}
	return "unknown"
}

// LineToken is a single classified input line with its captured fields.
type LineToken struct {
	Kind LineKind
	Line string // original line, always set

	Key   string // LineVariable
	Value string // LineVariable

	Block     bool   // LineEnvironment, LineListItem: "{{" prefix
	Name      string // LineEnvironment: environment kind
	Depth     string // LineEnvironment, LineHeader: raw depth code
	Extra     string // LineEnvironment: text after the colon and depth
	Signature string // LineListItem: marker run, e.g. "*#"
	Text      string // LineListItem: item text; LineHeader: title
	ID        string // LineHeader: explicit id, may be empty
}
