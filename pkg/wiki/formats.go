// formats.go holds the tag tables for every supported output format.
package wiki

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// theoremKinds are the remark-like environments shared by all formats.
var theoremKinds = []string{
	"Abstract", "Remark", "Important", "Caution", "Keywords", "TODO",
	"Definition", "Lemma", "Proof", "Theorem", "Corollary",
}

func escapeXMLCode(line string) string {
	line = strings.ReplaceAll(line, "&", "&amp;")
	line = strings.ReplaceAll(line, "<", "&lt;")
	line = strings.ReplaceAll(line, ">", "&gt;")
	return line
}

// Forrest emits Apache Forrest document-v20 XML.
var Forrest = newForrest()

func newForrest() *Format {
	blocks := map[string]BlockTag{
		KindPara:    {Open: "<p>", Close: "</p>", Newline: true},
		KindCode:    {Open: `<source xml:space="preserve">`, Close: "</source>", Newline: true},
		KindImage:   {Open: `<figure src="%(fref)s"%(atts)s>`, Close: "</figure>", Newline: true},
		KindFigure:  {Open: `<figure src="%(fref)s"%(atts)s/><p><strong>Figure</strong>: `, Close: "</p>", Newline: true},
		"Note":      {Open: "<note>", Close: "</note>", Newline: true},
		"Warning":   {Open: "<warning>", Close: "</warning>", Newline: true},
		"Raw":       {Newline: true},
	}
	for _, kind := range theoremKinds {
		blocks[kind] = BlockTag{Open: "<p><strong>" + kind + ":</strong></p>", WrapPara: true, Newline: true}
	}
	return &Format{
		Name:      "forrest",
		Extension: ".xml",
		Skeleton:  forrestSkeleton,
		Section:   BlockTag{Open: `<section id="%(id)s"><title>%(title)s</title>`, Close: "</section>", Newline: true},
		Blocks:    blocks,
		Lists: map[string]BlockTag{
			ListOrdered:    {Open: "<ol>", Close: "</ol>", Newline: true},
			ListUnordered:  {Open: "<ul>", Close: "</ul>", Newline: true},
			ListDefinition: {Open: "<dl>", Close: "</dl>", Newline: true},
			ItemOrdered:    {Open: "<li>", Close: "</li>", Newline: true},
			ItemUnordered:  {Open: "<li>", Close: "</li>", Newline: true},
			ItemEntry:      {},
			ItemTerm:       {Open: "<dt>", Close: "</dt>", Newline: true},
			ItemDefinition: {Open: "<dd>", Close: "</dd>", Newline: true},
		},
		Inline: map[InlineKind]InlineTag{
			InlineEm:         {"<em>", "</em>"},
			InlineStrong:     {"<strong>", "</strong>"},
			InlineQuote:      {"&quot;", "&quot;"},
			InlineCode:       {"<code>", "</code>"},
			InlineQuotedCode: {"&quot;<code>", "</code>&quot;"},
			InlineAnchor:     {`<anchor id="`, `"/>`},
		},
		Dict: map[string]string{
			DictULink:             `<a href="%(url)s"%(atts)s>%(linktext)s</a>`,
			DictLink:              `<a href="#%(url)s"%(atts)s>%(linktext)s</a>`,
			DictXRef:              `<a href="#%(url)s"%(atts)s>%(linktext)s</a>`,
			DictInlineMediaObject: `<img src="%(fref)s"%(atts)s/>`,
		},
		Filters:       map[string]string{"forrest": "%(content)s"},
		EscapeCode:    escapeXMLCode,
		HighlightCode: true,
	}
}

const forrestSkeleton = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE document PUBLIC "-//APACHE//DTD Documentation V2.0//EN" "http://forrest.apache.org/dtd/document-v20.dtd">
<document>
  <header>
    <title>%(title)s</title>
  </header>
  <body>
%(content)s
  </body>
</document>
`

// DocBook emits DocBook 4 article XML.
var DocBook = newDocBook()

func newDocBook() *Format {
	blocks := map[string]BlockTag{
		KindPara:    {Open: "<para>", Close: "</para>", Newline: true},
		KindCode:    {Open: "<screen>", Close: "</screen>", Newline: true},
		KindImage:   {Open: `<mediaobject><imageobject><imagedata fileref="%(fref)s"%(atts)s/>`, Close: "</imageobject></mediaobject>", Newline: true},
		KindFigure:  {Open: `<figure><mediaobject><imageobject><imagedata fileref="%(fref)s"%(atts)s/></imageobject></mediaobject><title>`, Close: "</title></figure>", Newline: true},
		"Abstract":  {Open: "<abstract>", Close: "</abstract>", WrapPara: true, Newline: true},
		"Remark":    {Open: "<remark>", Close: "</remark>", WrapPara: true, Newline: true},
		"Note":      {Open: "<note>", Close: "</note>", WrapPara: true, Newline: true},
		"Important": {Open: "<important>", Close: "</important>", WrapPara: true, Newline: true},
		"Warning":   {Open: "<warning>", Close: "</warning>", WrapPara: true, Newline: true},
		"Caution":   {Open: "<caution>", Close: "</caution>", WrapPara: true, Newline: true},
		"Raw":       {Newline: true},
	}
	for _, kind := range []string{"Keywords", "TODO", "Definition", "Lemma", "Proof", "Theorem", "Corollary"} {
		blocks[kind] = BlockTag{Open: "<remark><para>" + kind + ":</para>", Close: "</remark>", WrapPara: true, Newline: true}
	}
	return &Format{
		Name:      "db",
		Aliases:   []string{"docbook"},
		Extension: ".xml",
		Skeleton:  docbookSkeleton,
		Section:   BlockTag{Open: `<section id="%(id)s"><title>%(title)s</title>`, Close: "</section>", Newline: true},
		Blocks:    blocks,
		Lists: map[string]BlockTag{
			ListOrdered:    {Open: "<orderedlist>", Close: "</orderedlist>", Newline: true},
			ListUnordered:  {Open: "<itemizedlist>", Close: "</itemizedlist>", Newline: true},
			ListDefinition: {Open: "<variablelist>", Close: "</variablelist>", Newline: true},
			ItemOrdered:    {Open: "<listitem>", Close: "</listitem>", WrapPara: true, Newline: true},
			ItemUnordered:  {Open: "<listitem>", Close: "</listitem>", WrapPara: true, Newline: true},
			ItemEntry:      {Open: "<varlistentry>", Close: "</varlistentry>", Newline: true},
			ItemTerm:       {Open: "<term>", Close: "</term>", Newline: true},
			ItemDefinition: {Open: "<listitem>", Close: "</listitem>", WrapPara: true, Newline: true},
		},
		Inline: map[InlineKind]InlineTag{
			InlineEm:         {"<emphasis>", "</emphasis>"},
			InlineStrong:     {`<emphasis role="bold">`, "</emphasis>"},
			InlineQuote:      {"<quote>", "</quote>"},
			InlineCode:       {"<literal>", "</literal>"},
			InlineQuotedCode: {"<quote><literal>", "</literal></quote>"},
			InlineAnchor:     {`<anchor id="`, `"/>`},
		},
		Dict: map[string]string{
			DictULink:             `<ulink url="%(url)s"%(atts)s>%(linktext)s</ulink>`,
			DictLink:              `<link linkend="%(url)s"%(atts)s>%(linktext)s</link>`,
			DictXRef:              `<xref linkend="%(url)s"%(atts)s/>`,
			DictInlineMediaObject: `<inlinemediaobject><imageobject><imagedata fileref="%(fref)s"%(atts)s/></imageobject></inlinemediaobject>`,
		},
		Filters:       map[string]string{"docbook": "%(content)s", "db": "%(content)s"},
		EscapeCode:    escapeXMLCode,
		HighlightCode: true,
	}
}

const docbookSkeleton = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE article PUBLIC "-//OASIS//DTD DocBook XML V4.2//EN"
"http://www.oasis-open.org/docbook/xml/4.1.2/docbookx.dtd">
<article>
  <title>%(title)s</title>
  <articleinfo>
    <author>
      <surname>%(author)s</surname>
    </author>
  </articleinfo>
%(content)s
</article>
`

// Moin emits MoinMoin wiki markup.
var Moin = newMoin()

func newMoin() *Format {
	blocks := map[string]BlockTag{
		KindPara:   {Newline: true},
		KindCode:   {Open: "{{{\n", Close: "}}}\n", Newline: true},
		KindImage:  {Open: "{{attachment:%(fref)s}}", Close: "\n", Newline: true},
		KindFigure: {Open: "{{attachment:%(fref)s}}\n", Close: "\n", Newline: true},
		"Note":     {Open: "Note: ", Newline: true},
		"Warning":  {Open: "Warning: ", Newline: true},
		"Raw":      {Newline: true},
	}
	for _, kind := range theoremKinds {
		blocks[kind] = BlockTag{Open: kind + ": ", Newline: true}
	}
	return &Format{
		Name:      "moin",
		Extension: ".moin",
		Skeleton:  moinSkeleton,
		Section:   BlockTag{Open: "%(title)s", Newline: true},
		Blocks:    blocks,
		Lists: map[string]BlockTag{
			ListOrdered:    {},
			ListUnordered:  {},
			ListDefinition: {},
			ItemOrdered:    {Open: " 1. "},
			ItemUnordered:  {Open: " * "},
			ItemEntry:      {Open: " "},
			ItemTerm:       {Close: ":: "},
			ItemDefinition: {},
		},
		Inline: map[InlineKind]InlineTag{
			InlineEm:         {"''", "''"},
			InlineStrong:     {"'''", "'''"},
			InlineQuote:      {"'''''", "'''''"},
			InlineCode:       {"`", "`"},
			InlineQuotedCode: {"\"`", "`\""},
			InlineAnchor:     {"<<Anchor(", ")>>"},
		},
		Dict: map[string]string{
			DictULink:             "[[%(url)s|%(linktext)s]]",
			DictLink:              "[[%(url)s|%(linktext)s]]",
			DictXRef:              "[[#%(url)s]]",
			DictInlineMediaObject: "{{attachment:%(fref)s}}",
		},
		Filters:    map[string]string{"moin": "%(content)s"},
		ListIndent: " ",
		SectionTitle: func(title string, depth int) string {
			bar := strings.Repeat("=", depth+1)
			return bar + " " + title + " " + bar
		},
	}
}

const moinSkeleton = `%(title)s

by %(author)s

%(content)s
`

// restUnderline is indexed by section depth.
const restUnderline = "=-+_~:<>"

// Rest emits reStructuredText.
var Rest = newRest()

func newRest() *Format {
	blocks := map[string]BlockTag{
		KindPara:    {Newline: true},
		KindCode:    {Open: "::\n\n", Close: "\n", Newline: true},
		KindImage:   {Open: ".. Image:: %(fref)s", Close: "\n", Newline: true},
		KindFigure:  {Open: ".. Image:: %(fref)s\n", Close: "\n", Newline: true},
		"Note":      {Open: ".. note:: ", Newline: true},
		"Important": {Open: ".. important:: ", Newline: true},
		"Warning":   {Open: ".. warning:: ", Newline: true},
		"Caution":   {Open: ".. caution:: ", Newline: true},
		"Raw":       {Newline: true},
	}
	for _, kind := range []string{"Abstract", "Remark", "Keywords", "TODO", "Definition", "Lemma", "Proof", "Theorem", "Corollary"} {
		blocks[kind] = BlockTag{Open: "**" + kind + "**: ", Newline: true}
	}
	return &Format{
		Name:      "rest",
		Extension: ".rst",
		Skeleton:  restSkeleton,
		Section:   BlockTag{Open: "%(title)s", Newline: true},
		Blocks:    blocks,
		Lists: map[string]BlockTag{
			ListOrdered:    {},
			ListUnordered:  {},
			ListDefinition: {},
			ItemOrdered:    {Open: "#. "},
			ItemUnordered:  {Open: "* "},
			ItemEntry:      {},
			ItemTerm:       {Close: "\n"},
			ItemDefinition: {Open: "  "},
		},
		Inline: map[InlineKind]InlineTag{
			InlineEm:         {"*", "*"},
			InlineStrong:     {"**", "**"},
			InlineQuote:      {`"`, `"`},
			InlineCode:       {"``", "``"},
			InlineQuotedCode: {"\"``", "``\""},
			InlineAnchor:     {".. _", ":\n"},
		},
		Dict: map[string]string{
			DictULink:             "`%(linktext)s <%(url)s>`_",
			DictLink:              "`%(linktext)s <%(url)s>`_",
			DictXRef:              "%(url)s_",
			DictInlineMediaObject: "\n.. Image:: %(fref)s\n",
		},
		Filters:    map[string]string{"rest": "%(content)s"},
		ListIndent: "  ",
		SectionTitle: func(title string, depth int) string {
			ch := string(restUnderline[depth%len(restUnderline)])
			return title + "\n" + strings.Repeat(ch, runewidth.StringWidth(title))
		},
		EscapeCode: func(line string) string {
			return "    " + line
		},
	}
}

const restSkeleton = `####################################
%(title)s
####################################

:Author: %(author)s

%(content)s
`
