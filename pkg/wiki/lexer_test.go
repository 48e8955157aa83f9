package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	lx := NewLexer(Forrest)

	tests := []struct {
		name string
		line string
		want LineToken
	}{
		{"empty", "", LineToken{Kind: LineBlank}},
		{"whitespace", "  \t ", LineToken{Kind: LineBlank}},
		{"variable", "@title: My Document", LineToken{Kind: LineVariable, Key: "title", Value: "My Document"}},
		{"custom variable", "@version: 1.2", LineToken{Kind: LineVariable, Key: "version", Value: "1.2"}},
		{"variable needs space", "@title:x", LineToken{Kind: LineText}},
		{"close", "}}", LineToken{Kind: LineClose}},
		{"close trailing space", "}}   ", LineToken{Kind: LineClose}},
		{"environment", "Note:", LineToken{Kind: LineEnvironment, Name: "Note"}},
		{"block environment", "{{Warning:", LineToken{Kind: LineEnvironment, Name: "Warning", Block: true}},
		{"code with language", "Code:python", LineToken{Kind: LineEnvironment, Name: "Code", Extra: "python"}},
		{"code with depth", "{{Code:- go", LineToken{Kind: LineEnvironment, Name: "Code", Block: true, Depth: "-", Extra: "go"}},
		{"figure ref", "Figure: pics/a.png||width=\"3cm\"", LineToken{Kind: LineEnvironment, Name: "Figure", Extra: `pics/a.png||width="3cm"`}},
		{"unknown kind is text", "Foo: bar", LineToken{Kind: LineText}},
		{"url is text", "http://example.com", LineToken{Kind: LineText}},
		{"unordered item", "* one", LineToken{Kind: LineListItem, Signature: "*", Text: "one"}},
		{"mixed item", "*#~ term||def", LineToken{Kind: LineListItem, Signature: "*#~", Text: "term||def"}},
		{"bare marker", "#", LineToken{Kind: LineListItem, Signature: "#"}},
		{"block item", "{{* item", LineToken{Kind: LineListItem, Signature: "*", Block: true, Text: "item"}},
		{"filter is not a list", "**forrest: only here**", LineToken{Kind: LineText}},
		{"header", "==Title==", LineToken{Kind: LineHeader, Text: "Title"}},
		{"header relative", "==+ Sub section == sub", LineToken{Kind: LineHeader, Depth: "+", Text: "Sub section", ID: "sub"}},
		{"header back", "==-2 Back", LineToken{Kind: LineHeader, Depth: "-2", Text: "Back"}},
		{"header dashes", "==-- Back", LineToken{Kind: LineHeader, Depth: "--", Text: "Back"}},
		{"header absolute", "==3 Deep", LineToken{Kind: LineHeader, Depth: "3", Text: "Deep"}},
		{"text", "Just some words.", LineToken{Kind: LineText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want.Line = tt.line
			assert.Equal(t, tt.want, lx.Classify(tt.line, false))
		})
	}
}

func TestClassify_Raw(t *testing.T) {
	lx := NewLexer(Forrest)

	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"variable is literal", "@title: x", LineText},
		{"environment is literal", "Note:", LineText},
		{"list is literal", "* item", LineText},
		{"header is literal", "==Title", LineText},
		{"close still recognised", "}}", LineClose},
		{"blank", "", LineBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lx.Classify(tt.line, true).Kind)
		})
	}
}

func TestClassify_NilEnvironmentCheck(t *testing.T) {
	lx := &Lexer{}
	assert.Equal(t, LineText, lx.Classify("Note:", false).Kind)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"cr", "a\rb", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.input))
		})
	}
}

func TestLineKind_String(t *testing.T) {
	assert.Equal(t, "list-item", LineListItem.String())
	assert.Equal(t, "unknown", LineKind(99).String())
}
