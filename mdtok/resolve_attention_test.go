package mdtok

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAttentionEmphasis(t *testing.T) {
	tok := ParseDocument([]byte("a *b* c\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Emphasis))
	assert.False(t, containsName(events, AttentionSequence), "a fully matched run leaves no literal attention sequence behind")
}

func TestResolveAttentionStrong(t *testing.T) {
	tok := ParseDocument([]byte("a **b** c\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Strong))
}

func TestResolveAttentionLifoMismatchedWidths(t *testing.T) {
	// "a *b** c*": the reduced LIFO resolver matches the innermost '*b**'
	// run as Emphasis (1-width open vs 2-width close degrades to n=1,
	// leaving a 1-width leftover AttentionSequence on the close side), since
	// full flanking-rule "rule of 3" resolution is a documented reduction
	// here (see SPEC_FULL.md).
	tok := ParseDocument([]byte("a *b** c*\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Emphasis))
}

func TestResolveAttentionUnmatchedMarkerStaysLiteral(t *testing.T) {
	tok := ParseDocument([]byte("a * b\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.False(t, containsName(events, Emphasis))
	assert.False(t, containsName(events, Strong))
}
