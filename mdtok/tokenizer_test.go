package mdtok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// letterPair is a synthetic construct: it accepts exactly two codes wrapped
// in a Document span, rejecting if either code is not one of 'a', 'b', 'c'.
func letterPair(t *Tokenizer, code Code) (Result, StateFn) {
	if !code.Is('a') && !code.Is('b') && !code.Is('c') {
		t.consume(code)
		return Nok, nil
	}
	t.enter(Document)
	t.consume(code)
	return Continue, letterPairSecond
}

func letterPairSecond(t *Tokenizer, code Code) (Result, StateFn) {
	if !code.Is('a') && !code.Is('b') && !code.Is('c') {
		t.consume(code)
		return Nok, nil
	}
	t.consume(code)
	t.exit(Document)
	return OK, nil
}

func TestTokenizerWellNestedEvents(t *testing.T) {
	codes := Codes([]byte("ab"))
	tok := NewTokenizer(codes)
	ok := tok.run(letterPair)
	require.True(t, ok)

	events := tok.Events()
	require.Len(t, events, 2)
	assert.Equal(t, Enter, events[0].Kind)
	assert.Equal(t, Document, events[0].Name)
	assert.Equal(t, Exit, events[1].Kind)
	assert.Equal(t, Document, events[1].Name)

	// well-nestedness: every Exit's point is not before its matching Enter's.
	assert.False(t, events[1].Point.Less(events[0].Point))
}

func TestTokenizerPointMonotonic(t *testing.T) {
	codes := Codes([]byte("ab"))
	tok := NewTokenizer(codes)
	var points []Point
	points = append(points, tok.Point())
	ok := tok.run(letterPair)
	require.True(t, ok)
	points = append(points, tok.Point())

	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].Less(points[i-1]), "position must never move backwards")
	}
}

func TestTokenizerAttemptRollbackPurity(t *testing.T) {
	codes := Codes([]byte("ax"))
	tok := NewTokenizer(codes)

	preIndex := tok.index
	prePoint := tok.Point()
	preEventsLen := len(tok.Events())
	preStackLen := len(tok.stack)

	// attempt a construct that will fail on the second code ('x' is not one
	// of a, b, c), and confirm state is bit-identical to before the attempt.
	next := tok.attempt(letterPair, nil, nil)
	assert.Nil(t, next)

	assert.Equal(t, preIndex, tok.index)
	assert.Equal(t, prePoint, tok.Point())
	assert.Equal(t, preEventsLen, len(tok.Events()))
	assert.Equal(t, preStackLen, len(tok.stack))
}

func TestTokenizerCheckAlwaysRollsBack(t *testing.T) {
	codes := Codes([]byte("ab"))
	tok := NewTokenizer(codes)

	preIndex := tok.index
	preEventsLen := len(tok.Events())

	next := tok.check(letterPair, nil, nil)
	// check never advances position regardless of ok/nok outcome.
	assert.Nil(t, next)
	assert.Equal(t, preIndex, tok.index)
	assert.Equal(t, preEventsLen, len(tok.Events()))
}

func TestTokenizerAttemptBool(t *testing.T) {
	okCodes := Codes([]byte("ab"))
	tok := NewTokenizer(okCodes)
	assert.True(t, tok.attemptBool(letterPair))
	// attemptBool always rolls back, even on success.
	assert.Equal(t, 0, tok.index)

	failCodes := Codes([]byte("ax"))
	tok2 := NewTokenizer(failCodes)
	assert.False(t, tok2.attemptBool(letterPair))
	assert.Equal(t, 0, tok2.index)
}
