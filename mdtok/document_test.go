package mdtok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertWellNested walks events verifying every Exit matches the nearest
// open Enter of the same name (spec.md §8 property 1) and that points are
// monotonically non-decreasing in emission order (property 2).
func assertWellNested(t *testing.T, events []Event) {
	t.Helper()
	var stack []TokenName
	var last Point
	for i, e := range events {
		assert.False(t, e.Point.Less(last), "event %d (%v) moved position backwards", i, e)
		last = e.Point
		switch e.Kind {
		case Enter:
			stack = append(stack, e.Name)
		case Exit:
			require.NotEmpty(t, stack, "exit %v at %d with nothing open", e.Name, i)
			top := stack[len(stack)-1]
			require.Equal(t, top, e.Name, "exit %v at %d does not match open %v", e.Name, i, top)
			stack = stack[:len(stack)-1]
		}
	}
	assert.Empty(t, stack, "events end with unclosed spans: %v", stack)
}

func namesOf(events []Event) []TokenName {
	names := make([]TokenName, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return names
}

func containsName(events []Event, name TokenName) bool {
	for _, e := range events {
		if e.Name == name {
			return true
		}
	}
	return false
}

func TestParseDocumentParagraph(t *testing.T) {
	tok := ParseDocument([]byte("hello world\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Document))
	assert.True(t, containsName(events, Paragraph))
	assert.True(t, containsName(events, Data))
}

func TestParseDocumentBlockQuoteLazyContinuation(t *testing.T) {
	// a lazy continuation line (no leading ">") still belongs to the quote's
	// paragraph, per spec.md §8 property 7.
	tok := ParseDocument([]byte("> a\nb\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, BlockQuote))
	assert.True(t, containsName(events, Paragraph))

	// exactly one paragraph should be open across both lines: count Enter
	// Paragraph events.
	n := 0
	for _, e := range events {
		if e.Kind == Enter && e.Name == Paragraph {
			n++
		}
	}
	assert.Equal(t, 1, n, "lazy continuation must not start a second paragraph")
}

func TestParseDocumentFencedCode(t *testing.T) {
	tok := ParseDocument([]byte("```go\nfmt.Println(1)\n```\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, CodeFenced))
	assert.True(t, containsName(events, CodeFencedFenceInfo))
	assert.True(t, containsName(events, CodeFlowChunk))

	// the fence must close: exactly two CodeFencedFence spans (open, close).
	n := 0
	for _, e := range events {
		if e.Kind == Enter && e.Name == CodeFencedFence {
			n++
		}
	}
	assert.Equal(t, 2, n, "expected an opening and a closing fence")
}

func TestParseDocumentFencedCodeUnclosedInsideListNotContinued(t *testing.T) {
	// a fence opened without enough indent to belong to the list item must
	// not swallow subsequent unindented content as part of its code block.
	tok := ParseDocument([]byte("* a\n```\nb\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, ListUnordered))
}

func TestParseDocumentSetextHeading(t *testing.T) {
	tok := ParseDocument([]byte("Title\n=====\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, HeadingSetext))
	assert.True(t, containsName(events, HeadingSetextText))
	assert.True(t, containsName(events, HeadingSetextUnderline))
	assert.False(t, containsName(events, Paragraph), "the paragraph must be converted, not left standing beside the heading")

	// exactly one HeadingSetext span, not an empty sibling heading plus a
	// separate paragraph (the bug fixed by convertParagraphToSetextHeading).
	n := 0
	for _, e := range events {
		if e.Kind == Enter && e.Name == HeadingSetext {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestParseDocumentListIndentContinuation(t *testing.T) {
	tok := ParseDocument([]byte("* a\n  b\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, ListUnordered))
	assert.True(t, containsName(events, ListItem))

	n := 0
	for _, e := range events {
		if e.Kind == Enter && e.Name == Paragraph {
			n++
		}
	}
	assert.Equal(t, 1, n, "the indented continuation line must join the same paragraph")
}

func TestParseDocumentLinkReferenceDefinitionAndShortcut(t *testing.T) {
	tok := ParseDocument([]byte("[a]: /b \"c\"\n\n[a]\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Definition))

	defs := tok.Definitions()
	d, ok := defs["a"]
	require.True(t, ok, "definition for label \"a\" must be recorded")
	assert.Equal(t, "/b", d.Destination)
	assert.Equal(t, "c", d.Title)

	// the shortcut reference "[a]" resolves to a Link span via resolveLabelEnd.
	assert.True(t, containsName(events, Link), "shortcut reference must resolve to a Link span")
}

func TestParseDocumentUnresolvedLabelFallsBackToLiteral(t *testing.T) {
	tok := ParseDocument([]byte("[nope]\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.False(t, containsName(events, Link), "an unresolved label must not become a Link")
}
