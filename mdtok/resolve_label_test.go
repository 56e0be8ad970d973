package mdtok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLabelShortcutReference(t *testing.T) {
	tok := ParseDocument([]byte("[a]: /x\n\n[a]\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Link))
}

func TestResolveLabelFullReference(t *testing.T) {
	tok := ParseDocument([]byte("[x]: /y \"t\"\n\n[a][x]\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Link))
}

func TestResolveLabelUnresolvedStaysLiteral(t *testing.T) {
	tok := ParseDocument([]byte("[a][nope]\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.False(t, containsName(events, Link))
}

func TestResolveLabelImageReference(t *testing.T) {
	tok := ParseDocument([]byte("[x]: /y.png \"t\"\n\n![alt][x]\n"))
	events := tok.Events()
	assertWellNested(t, events)
	assert.True(t, containsName(events, Image))
}

func TestDefinitionsRecordsAllLabels(t *testing.T) {
	tok := ParseDocument([]byte("[a]: /a\n[b]: /b \"B\"\n"))
	defs := tok.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "/a", defs["a"].Destination)
	assert.Equal(t, "/b", defs["b"].Destination)
	assert.Equal(t, "B", defs["b"].Title)
}
