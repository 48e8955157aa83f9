package wiki

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_NestedSiblings(t *testing.T) {
	result := NewCompiler(Forrest, WithLogger(nil)).Compile("* one\n** nested\n* two\n")

	want := "<ul><li>one\n" +
		"<ul><li>nested\n" +
		"</li>\n</ul>\n" +
		"</li>\n<li>two\n" +
		"</li>\n</ul>\n"
	assert.Equal(t, want, result.Content())
	assert.Equal(t, 2, strings.Count(result.Content(), "<ul>"))
	assert.Empty(t, result.Warnings)
}

func TestList_SignatureDiff(t *testing.T) {
	containers := func(s string) (opened, closed int) {
		for _, tag := range []string{"ul", "ol", "dl"} {
			opened += strings.Count(s, "<"+tag+">")
			closed += strings.Count(s, "</"+tag+">")
		}
		return opened, closed
	}

	tests := []struct {
		prev, next string
	}{
		{"*", "*"},
		{"*#", "*#"},
		{"*", "**"},
		{"**", "*"},
		{"*#", "**"},
		{"#", "*"},
		{"*#~", "#"},
		{"~", "~*"},
		{"*#*", "*"},
		{"#*", "#~#"},
	}

	for _, tt := range tests {
		t.Run(tt.prev+" to "+tt.next, func(t *testing.T) {
			s := NewCompiler(Forrest, WithLogger(nil)).newState()
			s.processLine(tt.prev + " a")
			before := s.out.Len()
			s.processLine(tt.next + " b")
			opened, closed := containers(s.out.String()[before:])

			l := commonPrefix(tt.prev, tt.next)
			if tt.prev == tt.next {
				assert.Equal(t, 0, opened)
				assert.Equal(t, 0, closed)
			} else {
				assert.Equal(t, len(tt.prev)-l, closed)
				assert.Equal(t, len(tt.next)-l, opened)
			}
			assert.Equal(t, tt.next, s.signature())
		})
	}
}

func TestList_DivergentSignatureReopensItem(t *testing.T) {
	result := NewCompiler(Forrest, WithLogger(nil)).Compile("* one\n** nested\n*# two\n")

	want := "<ul><li>one\n" +
		"<ul><li>nested\n" +
		"</li>\n</ul>\n" +
		"</li>\n<li><ol><li>two\n" +
		"</li>\n</ol>\n" +
		"</li>\n</ul>\n"
	assert.Equal(t, want, result.Content())
	assert.Empty(t, result.Warnings)
}

func TestList_ItemTransitions(t *testing.T) {
	tests := []struct {
		name string
		prev string
		next string
		want string
	}{
		{"sibling", "*", "*", "</li>\n<li>b\n"},
		{"deeper", "*", "**", "<ul><li>b\n"},
		{"shallower", "**", "*", "</li>\n</ul>\n</li>\n<li>b\n"},
		{"two levels shallower", "*#*", "*", "</li>\n</ul>\n</li>\n</ol>\n</li>\n<li>b\n"},
		{"diverge", "*#", "**", "</li>\n</ol>\n</li>\n<li><ul><li>b\n"},
		{"diverge deeper", "#*", "##*", "</li>\n</ul>\n</li>\n<li><ol><li><ul><li>b\n"},
		{"no common prefix", "*", "#", "</li>\n</ul>\n<ol><li>b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCompiler(Forrest, WithLogger(nil)).newState()
			s.processLine(tt.prev + " a")
			before := s.out.Len()
			s.processLine(tt.next + " b")

			assert.Equal(t, tt.want, s.out.String()[before:])
			assert.Equal(t, tt.next, s.signature())
		})
	}
}

func TestList_SiblingClosesOneItem(t *testing.T) {
	s := NewCompiler(Forrest, WithLogger(nil)).newState()
	s.processLine("*# a")
	before := s.out.Len()
	s.processLine("*# b")
	delta := s.out.String()[before:]

	assert.Equal(t, "</li>\n<li>b\n", delta)
}

func TestList_BlankClosesEverything(t *testing.T) {
	s := NewCompiler(Forrest, WithLogger(nil)).newState()
	s.processLine("* a")
	s.processLine("*#~ b||c")
	s.processLine("")

	assert.Equal(t, modeVoid, s.mode)
	assert.Empty(t, s.levels)
	assert.Equal(t, 0, s.stack.depth())
}

func TestList_Definition(t *testing.T) {
	tests := []struct {
		name   string
		format *Format
		want   string
	}{
		{"forrest", Forrest, "<dl><dt>term</dt>\n<dd>def\n</dd>\n</dl>\n"},
		{"docbook", DocBook, "<variablelist><varlistentry><term>term</term>\n<listitem><para>def\n</para>\n</listitem>\n</varlistentry>\n</variablelist>\n"},
		{"moin", Moin, " term:: def\n"},
		{"rest", Rest, "term\n  def\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewCompiler(tt.format, WithLogger(nil)).Compile("~ term||def\n")
			assert.Equal(t, tt.want, result.Content())
		})
	}
}

func TestList_DefinitionSequence(t *testing.T) {
	input := "~ alpha||first\n~ beta||second\n"

	tests := []struct {
		name   string
		format *Format
		want   string
	}{
		{"moin", Moin, " alpha:: first\n beta:: second\n"},
		{"rest", Rest, "alpha\n  first\nbeta\n  second\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewCompiler(tt.format, WithLogger(nil)).Compile(input)
			assert.Equal(t, tt.want, result.Content())
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestList_DefinitionWithoutSeparator(t *testing.T) {
	result := NewCompiler(Forrest, WithLogger(nil)).Compile("~ term\ncontinued definition\n")
	assert.Equal(t, "<dl><dt>term</dt>\n<dd>continued definition\n</dd>\n</dl>\n", result.Content())
}

func TestList_LightweightIndent(t *testing.T) {
	input := "* one\n** two\n# three\n"

	moin := NewCompiler(Moin, WithLogger(nil)).Compile(input)
	assert.Equal(t, " * one\n  * two\n 1. three\n", moin.Content())

	rest := NewCompiler(Rest, WithLogger(nil)).Compile(input)
	assert.Equal(t, "* one\n  * two\n#. three\n", rest.Content())
}

func TestList_BlockItem(t *testing.T) {
	input := strings.Join([]string{
		"{{* first",
		"more first",
		"",
		"second para",
		"}}",
		"* sibling",
	}, "\n")

	result := NewCompiler(Forrest, WithLogger(nil)).Compile(input)

	want := "<ul><li><p>first\n" +
		"more first\n" +
		"</p>\n" +
		"<p>second para\n" +
		"</p>\n" +
		"</li>\n<li>sibling\n" +
		"</li>\n</ul>\n"
	assert.Equal(t, want, result.Content())
	assert.Empty(t, result.Warnings)
}

func TestList_EndsParagraph(t *testing.T) {
	result := NewCompiler(Forrest, WithLogger(nil)).Compile("intro\n* item\n")
	assert.Equal(t, "<p>intro\n</p>\n<ul><li>item\n</li>\n</ul>\n", result.Content())
}

func TestList_DocBookWrapsItems(t *testing.T) {
	result := NewCompiler(DocBook, WithLogger(nil)).Compile("# one\n# two\n")
	require.Empty(t, result.Warnings)
	assert.Equal(t,
		"<orderedlist><listitem><para>one\n</para>\n</listitem>\n<listitem><para>two\n</para>\n</listitem>\n</orderedlist>\n",
		result.Content())
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, 0, commonPrefix("", "*"))
	assert.Equal(t, 0, commonPrefix("#", "*"))
	assert.Equal(t, 1, commonPrefix("*#", "**"))
	assert.Equal(t, 2, commonPrefix("*#", "*#~"))
}
