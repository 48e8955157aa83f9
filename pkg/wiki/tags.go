// tags.go defines the tag table types shared by all output formats.
package wiki

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// BlockTag maps a block kind to its literal open/close markup.
type BlockTag struct {
	Open     string // may contain %(name)s placeholders
	Close    string
	WrapPara bool // open a nested Para right after Open
	Newline  bool // emit "\n" after Close
}

// InlineKind names one of the paired-delimiter inline styles.
type InlineKind int

const (
	InlineEm InlineKind = iota
	InlineStrong
	InlineQuote
	InlineCode
	InlineQuotedCode
	InlineAnchor
)

func (k InlineKind) String() string {
	switch k {
	case InlineEm:
		return "em"
	case InlineStrong:
		return "strong"
	case InlineQuote:
		return "quote"
	case InlineCode:
		return "code"
	case InlineQuotedCode:
		return "quotedcode"
	case InlineAnchor:
		return "anchor"
	}
	return "unknown"
}

// InlineTag is the open/close literal pair for an inline style.
type InlineTag struct {
	Open  string
	Close string
}

// Dict tag template names.
const (
	DictULink             = "ulink"
	DictLink              = "link"
	DictXRef              = "xref"
	DictInlineMediaObject = "inlinemediaobject"
)

// List kinds used by the list engine.
const (
	ListOrdered    = "#"
	ListUnordered  = "*"
	ListDefinition = "~"
	ItemOrdered    = "olItem"
	ItemUnordered  = "ulItem"
	ItemEntry      = "vlEntry"
	ItemTerm       = "dtItem"
	ItemDefinition = "ddItem"
)

// Block kinds with special handling in the state machine.
const (
	KindPara   = "Para"
	KindCode   = "Code"
	KindFigure = "Figure"
	KindImage  = "Image"
	KindRaw    = "Raw"
)

// Format bundles everything the compiler needs to emit one target vocabulary.
// A Format is never mutated after construction.
type Format struct {
	Name       string
	Aliases    []string
	Extension  string
	Skeleton   string
	Section    BlockTag
	Blocks     map[string]BlockTag // environments, Para and Code
	Lists      map[string]BlockTag // list containers and list items
	Inline     map[InlineKind]InlineTag
	Dict       map[string]string
	Filters    map[string]string
	ListIndent string // prepended once per nesting level below the first

	// SectionTitle decorates a section title for the given depth (0 = top level).
	// Nil keeps the title as is.
	SectionTitle func(title string, depth int) string
	// EscapeCode prepares one verbatim line for the target. Nil passes it through.
	EscapeCode func(line string) string
	// HighlightCode enables the syntax-highlighting collaborator for this format.
	HighlightCode bool
}

// Environment reports whether kind can be opened with the `Kind:` syntax.
func (f *Format) Environment(kind string) (BlockTag, bool) {
	tag, ok := f.Blocks[kind]
	return tag, ok
}

// block returns the tag for a block or list kind. Unknown kinds are a table bug.
func (f *Format) block(kind string) BlockTag {
	if tag, ok := f.Blocks[kind]; ok {
		return tag
	}
	if tag, ok := f.Lists[kind]; ok {
		return tag
	}
	panic(fmt.Sprintf("wiki: format %q has no tag for %q", f.Name, kind))
}

// FilterNames returns the filter directive names the format accepts.
func (f *Format) FilterNames() []string {
	names := make([]string, 0, len(f.Filters))
	for name := range f.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var placeholderPattern = regexp.MustCompile(`%\(([A-Za-z_][A-Za-z0-9_]*)\)s|%%`)

// expandTemplate fills %(name)s placeholders. A missing argument is a table bug.
func expandTemplate(tmpl string, args map[string]string) string {
	out, missing := substitute(tmpl, args)
	if missing != "" {
		panic(fmt.Sprintf("wiki: template %q needs %q", tmpl, missing))
	}
	return out
}

// ExpandSkeleton substitutes document variables into a skeleton template.
// "%%" yields a literal percent sign.
func ExpandSkeleton(skeleton string, vars map[string]string) (string, error) {
	out, missing := substitute(skeleton, vars)
	if missing != "" {
		return "", fmt.Errorf("skeleton references unknown variable %q", missing)
	}
	return out, nil
}

func substitute(tmpl string, args map[string]string) (string, string) {
	if !strings.Contains(tmpl, "%") {
		return tmpl, ""
	}
	missing := ""
	out := placeholderPattern.ReplaceAllStringFunc(tmpl, func(m string) string {
		if m == "%%" {
			return "%"
		}
		key := m[2 : len(m)-2]
		v, ok := args[key]
		if !ok && missing == "" {
			missing = key
		}
		return v
	})
	return out, missing
}
