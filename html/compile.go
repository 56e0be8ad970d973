// Package html compiles a resolved mdtok event list into HTML. It walks the
// event tree once, in the teacher's single-switch-over-token style rather
// than blackfriday's pluggable Renderer callback table: spec.md scopes this
// repo to one compiler, not a rendering framework (see SPEC_FULL.md).
package html

import (
	"bytes"
	"fmt"
	"strings"

	sanitizedanchorname "github.com/shurcooL/sanitized_anchor_name"

	"github.com/jcorbin/mdtok/mdtok"
)

// Compile renders a fully tokenized and resolved document to HTML.
// t must already have been drained (its resolvers run), e.g. by
// mdtok.ParseDocument.
func Compile(t *mdtok.Tokenizer) []byte {
	c := &compiler{t: t}
	events := t.Events()
	var buf bytes.Buffer
	i := 0
	for i < len(events) {
		i = c.block(&buf, events, i)
	}
	return buf.Bytes()
}

type compiler struct {
	t *mdtok.Tokenizer

	// listTight/suppressP track list-looseness context as block() recurses:
	// listTight holds one entry per currently open ListOrdered/ListUnordered
	// (true if that list is tight); suppressP holds one entry per currently
	// open ListItem/BlockQuote, recording whether a direct-child Paragraph
	// should skip its <p> wrapper (CommonMark's tight-list rendering rule).
	// A BlockQuote always pushes false: quote contents are never affected by
	// an outer list's tightness.
	listTight []bool
	suppressP []bool
}

func (c *compiler) events() []mdtok.Event { return c.t.Events() }

// span returns the literal source text of the span opened by the Enter
// event at i, and the index of its matching Exit.
func (c *compiler) span(events []mdtok.Event, i int) (string, int) {
	exit := mdtok.MatchingExit(events, i)
	return c.t.TextBetween(events[i].Point, events[exit].Point), exit
}

// block dispatches one top-level child at index i (which must be an Enter
// event) and returns the index of the next sibling.
func (c *compiler) block(w *bytes.Buffer, events []mdtok.Event, i int) int {
	e := events[i]
	if e.Kind != mdtok.Enter {
		return i + 1
	}

	switch e.Name {
	case mdtok.Document:
		exit := mdtok.MatchingExit(events, i)
		c.children(w, events, i+1, exit)
		return exit + 1

	case mdtok.BlockQuote:
		exit := mdtok.MatchingExit(events, i)
		c.suppressP = append(c.suppressP, false)
		w.WriteString("<blockquote>\n")
		c.children(w, events, i+1, exit)
		w.WriteString("</blockquote>\n")
		c.suppressP = c.suppressP[:len(c.suppressP)-1]
		return exit + 1

	case mdtok.ListOrdered, mdtok.ListUnordered:
		exit := mdtok.MatchingExit(events, i)
		tag := "ul"
		if e.Name == mdtok.ListOrdered {
			tag = "ol"
		}
		c.listTight = append(c.listTight, !e.Loose)
		fmt.Fprintf(w, "<%s>\n", tag)
		c.children(w, events, i+1, exit)
		fmt.Fprintf(w, "</%s>\n", tag)
		c.listTight = c.listTight[:len(c.listTight)-1]
		return exit + 1

	case mdtok.ListItem:
		exit := mdtok.MatchingExit(events, i)
		tight := len(c.listTight) > 0 && c.listTight[len(c.listTight)-1]
		c.suppressP = append(c.suppressP, tight)
		w.WriteString("<li>")
		c.children(w, events, i+1, exit)
		w.WriteString("</li>\n")
		c.suppressP = c.suppressP[:len(c.suppressP)-1]
		return exit + 1

	case mdtok.Paragraph:
		exit := mdtok.MatchingExit(events, i)
		var inner bytes.Buffer
		c.inlineChildren(&inner, events, i+1, exit)
		text := bytes.TrimRight(inner.Bytes(), "\r\n")
		if len(c.suppressP) > 0 && c.suppressP[len(c.suppressP)-1] {
			w.Write(text)
			return exit + 1
		}
		w.WriteString("<p>")
		w.Write(text)
		w.WriteString("</p>\n")
		return exit + 1

	case mdtok.HeadingAtx, mdtok.HeadingSetext:
		return c.heading(w, events, i)

	case mdtok.ThematicBreak:
		exit := mdtok.MatchingExit(events, i)
		w.WriteString("<hr />\n")
		return exit + 1

	case mdtok.CodeFenced, mdtok.CodeIndented:
		return c.codeBlock(w, events, i)

	case mdtok.HTMLFlow:
		exit := mdtok.MatchingExit(events, i)
		for j := i + 1; j < exit; j++ {
			if events[j].Kind == mdtok.Enter && events[j].Name == mdtok.HTMLFlowData {
				text, _ := c.span(events, j)
				w.WriteString(text)
			}
		}
		return exit + 1

	case mdtok.Definition:
		// Reference definitions produce no direct output; they are only
		// consulted by the label-end resolver.
		return mdtok.MatchingExit(events, i) + 1

	case mdtok.BlankLineEnding:
		return mdtok.MatchingExit(events, i) + 1

	default:
		exit := mdtok.MatchingExit(events, i)
		if exit < 0 {
			return i + 1
		}
		c.children(w, events, i+1, exit)
		return exit + 1
	}
}

// children walks every top-level child Enter event in [from, to).
func (c *compiler) children(w *bytes.Buffer, events []mdtok.Event, from, to int) {
	i := from
	for i < to {
		i = c.block(w, events, i)
	}
}

func (c *compiler) heading(w *bytes.Buffer, events []mdtok.Event, i int) int {
	e := events[i]
	exit := mdtok.MatchingExit(events, i)

	var textEnter, textExit int = -1, -1
	textName := mdtok.HeadingAtxText
	if e.Name == mdtok.HeadingSetext {
		textName = mdtok.HeadingSetextText
	}
	level := 1
	for j := i + 1; j < exit; j++ {
		if events[j].Kind != mdtok.Enter {
			continue
		}
		switch events[j].Name {
		case mdtok.HeadingAtxSequence:
			text, _ := c.span(events, j)
			level = len(text)
		case mdtok.HeadingSetextUnderline:
			text, _ := c.span(events, j)
			if len(text) > 0 && text[0] == '=' {
				level = 1
			} else {
				level = 2
			}
		case textName:
			textEnter = j
			textExit = mdtok.MatchingExit(events, j)
		}
	}

	id := ""
	if textEnter >= 0 {
		id = sanitizedanchorname.Create(c.plainText(events, textEnter+1, textExit))
	}
	fmt.Fprintf(w, "<h%d", level)
	if id != "" {
		fmt.Fprintf(w, " id=%q", id)
	}
	w.WriteString(">")
	if textEnter >= 0 {
		var inner bytes.Buffer
		c.inlineChildren(&inner, events, textEnter+1, textExit)
		w.Write(bytes.TrimRight(inner.Bytes(), "\r\n"))
	}
	fmt.Fprintf(w, "</h%d>\n", level)
	return exit + 1
}

func (c *compiler) codeBlock(w *bytes.Buffer, events []mdtok.Event, i int) int {
	e := events[i]
	exit := mdtok.MatchingExit(events, i)
	info := ""
	if e.Name == mdtok.CodeFenced {
		for j := i + 1; j < exit; j++ {
			if events[j].Kind == mdtok.Enter && events[j].Name == mdtok.CodeFencedFenceInfo {
				info, _ = c.span(events, j)
				break
			}
		}
	}
	w.WriteString("<pre><code")
	if info != "" {
		fmt.Fprintf(w, " class=%q", "language-"+firstWord(info))
	}
	w.WriteString(">")
	for j := i + 1; j < exit; j++ {
		if events[j].Kind == mdtok.Enter && events[j].Name == mdtok.CodeFlowChunk {
			text, _ := c.span(events, j)
			escapeInto(w, text)
		}
	}
	w.WriteString("</code></pre>\n")
	return exit + 1
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == '\t' {
			return s[:i]
		}
	}
	return s
}

// inlineChildren walks every top-level inline child Enter event in
// [from, to), writing escaped HTML output.
func (c *compiler) inlineChildren(w *bytes.Buffer, events []mdtok.Event, from, to int) {
	i := from
	for i < to {
		i = c.inline(w, events, i)
	}
}

func (c *compiler) inline(w *bytes.Buffer, events []mdtok.Event, i int) int {
	e := events[i]
	if e.Kind != mdtok.Enter {
		return i + 1
	}

	switch e.Name {
	case mdtok.Data:
		text, exit := c.span(events, i)
		escapeInto(w, text)
		return exit + 1

	case mdtok.CharacterEscape:
		exit := mdtok.MatchingExit(events, i)
		for j := i + 1; j < exit; j++ {
			if events[j].Kind == mdtok.Enter && events[j].Name == mdtok.CharacterEscapeValue {
				text, _ := c.span(events, j)
				escapeInto(w, text)
			}
		}
		return exit + 1

	case mdtok.CharacterReference:
		exit := mdtok.MatchingExit(events, i)
		raw, _ := c.span(events, i)
		if len(raw) >= 2 {
			if r, ok := mdtok.DecodeEntity(raw[1 : len(raw)-1]); ok {
				escapeInto(w, string(r))
			} else {
				escapeInto(w, raw)
			}
		}
		return exit + 1

	case mdtok.CodeText:
		exit := mdtok.MatchingExit(events, i)
		w.WriteString("<code>")
		for j := i + 1; j < exit; j++ {
			if events[j].Kind == mdtok.Enter && events[j].Name == mdtok.CodeTextData {
				text, _ := c.span(events, j)
				escapeInto(w, text)
			}
		}
		w.WriteString("</code>")
		return exit + 1

	case mdtok.Autolink:
		exit := mdtok.MatchingExit(events, i)
		var dest string
		for j := i + 1; j < exit; j++ {
			if events[j].Kind == mdtok.Enter && (events[j].Name == mdtok.AutolinkProtocol || events[j].Name == mdtok.AutolinkEmail) {
				dest, _ = c.span(events, j)
			}
		}
		href := dest
		if !containsScheme(dest) {
			href = "mailto:" + dest
		}
		fmt.Fprintf(w, "<a href=%q>", href)
		escapeInto(w, dest)
		w.WriteString("</a>")
		return exit + 1

	case mdtok.Link, mdtok.Image:
		return c.linkOrImage(w, events, i)

	case mdtok.Emphasis:
		exit := mdtok.MatchingExit(events, i)
		w.WriteString("<em>")
		c.inlineChildren(w, events, i+1, exit)
		w.WriteString("</em>")
		return exit + 1

	case mdtok.Strong:
		exit := mdtok.MatchingExit(events, i)
		w.WriteString("<strong>")
		c.inlineChildren(w, events, i+1, exit)
		w.WriteString("</strong>")
		return exit + 1

	case mdtok.HardBreakEscape, mdtok.HardBreakTrailing:
		exit := mdtok.MatchingExit(events, i)
		w.WriteString("<br />\n")
		return exit + 1

	case mdtok.LabelMarker, mdtok.AttentionSequence:
		// Unresolved label bracket or unmatched attention run: emitted as
		// literal text.
		text, exit := c.span(events, i)
		escapeInto(w, text)
		return exit + 1

	default:
		exit := mdtok.MatchingExit(events, i)
		if exit < 0 {
			return i + 1
		}
		c.inlineChildren(w, events, i+1, exit)
		return exit + 1
	}
}

func (c *compiler) linkOrImage(w *bytes.Buffer, events []mdtok.Event, i int) int {
	e := events[i]
	exit := mdtok.MatchingExit(events, i)
	isImage := e.Name == mdtok.Image

	var labelEnter, labelExit int = -1, -1
	var dest, title string
	for j := i + 1; j < exit; j++ {
		if events[j].Kind != mdtok.Enter {
			continue
		}
		switch events[j].Name {
		case mdtok.Label:
			labelEnter = j
			labelExit = mdtok.MatchingExit(events, j)
		case mdtok.ResourceDestinationString, mdtok.ResourceDestinationRaw:
			dest, _ = c.span(events, j)
		case mdtok.ResourceTitleString:
			title, _ = c.span(events, j)
		}
	}
	if dest == "" && title == "" {
		// Reference form: take destination and title from the definition
		// named by the reference tail, or else by the label's own text.
		label := ""
		for j := i + 1; j < exit; j++ {
			if events[j].Kind == mdtok.Enter && events[j].Name == mdtok.LabelEnd && events[j].RefLabel != nil {
				label = *events[j].RefLabel
			}
		}
		if label == "" && labelEnter >= 0 {
			label, _ = c.span(events, labelEnter)
		}
		if def, ok := c.t.Definitions()[strings.Join(strings.Fields(strings.ToLower(label)), " ")]; ok {
			dest, title = def.Destination, def.Title
		}
	}

	if isImage {
		fmt.Fprintf(w, "<img src=%q alt=%q", dest, c.plainText(events, labelEnter+1, labelExit))
		if title != "" {
			fmt.Fprintf(w, " title=%q", title)
		}
		w.WriteString(" />")
		return exit + 1
	}

	fmt.Fprintf(w, "<a href=%q", dest)
	if title != "" {
		fmt.Fprintf(w, " title=%q", title)
	}
	w.WriteString(">")
	if labelEnter >= 0 {
		c.inlineChildren(w, events, labelEnter+1, labelExit)
	}
	w.WriteString("</a>")
	return exit + 1
}

// plainText serializes [from, to) as plain text, discarding markup: used
// for an image's alt attribute and a heading's anchor id, both of which
// CommonMark defines over the construct's rendered text, not its HTML.
func (c *compiler) plainText(events []mdtok.Event, from, to int) string {
	var buf bytes.Buffer
	i := from
	for i < to {
		e := events[i]
		if e.Kind != mdtok.Enter {
			i++
			continue
		}
		switch e.Name {
		case mdtok.Data, mdtok.CodeTextData, mdtok.AutolinkProtocol, mdtok.AutolinkEmail:
			text, exit := c.span(events, i)
			buf.WriteString(text)
			i = exit + 1
		case mdtok.CharacterEscapeValue:
			text, exit := c.span(events, i)
			buf.WriteString(text)
			i = exit + 1
		case mdtok.CharacterReference:
			raw, exit := c.span(events, i)
			if r, ok := mdtok.DecodeEntity(raw[1 : len(raw)-1]); ok {
				buf.WriteRune(r)
			}
			i = exit + 1
		default:
			i++
		}
	}
	return buf.String()
}

func containsScheme(s string) bool {
	for i, r := range s {
		if r == ':' {
			return i > 0
		}
		if r == '@' {
			return false
		}
	}
	return false
}

func escapeInto(w *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			w.WriteString("&amp;")
		case '<':
			w.WriteString("&lt;")
		case '>':
			w.WriteString("&gt;")
		case '"':
			w.WriteString("&quot;")
		default:
			w.WriteRune(r)
		}
	}
}
