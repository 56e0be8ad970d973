package mdtok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodesBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ab")...)
	got := Codes(withBOM)
	want := []Code{Char('a'), Char('b')}
	assert.Equal(t, want, got)
}

func TestCodesCRLF(t *testing.T) {
	got := Codes([]byte("a\r\nb\rc\nd"))
	want := []Code{Char('a'), CRLF, Char('b'), Char('\r'), Char('c'), Char('\n'), Char('d')}
	assert.Equal(t, want, got)
}

func TestCodesTabExpansion(t *testing.T) {
	// A tab at column 1 must land exactly on column 5 (three virtual
	// spaces then the tab itself), matching a 4-column tab stop.
	got := Codes([]byte("\tx"))
	require.Len(t, got, 5)
	assert.Equal(t, VirtualSpace, got[0])
	assert.Equal(t, VirtualSpace, got[1])
	assert.Equal(t, VirtualSpace, got[2])
	assert.Equal(t, Char('\t'), got[3])
	assert.Equal(t, Char('x'), got[4])
}

func TestCodesTabAfterOneChar(t *testing.T) {
	// A tab starting at column 2 only needs two virtual spaces to reach
	// column 5.
	got := Codes([]byte("a\tx"))
	require.Len(t, got, 5)
	assert.Equal(t, Char('a'), got[0])
	assert.Equal(t, VirtualSpace, got[1])
	assert.Equal(t, VirtualSpace, got[2])
	assert.Equal(t, Char('\t'), got[3])
}

func TestDetectLineEnding(t *testing.T) {
	le, ok := DetectLineEnding([]byte("a\r\nb"))
	assert.True(t, ok)
	assert.Equal(t, CarriageReturnLineFeed, le)

	le, ok = DetectLineEnding([]byte("a\rb"))
	assert.True(t, ok)
	assert.Equal(t, CarriageReturn, le)

	le, ok = DetectLineEnding([]byte("a\nb"))
	assert.True(t, ok)
	assert.Equal(t, LineFeed, le)

	_, ok = DetectLineEnding([]byte("no newline here"))
	assert.False(t, ok)
}
