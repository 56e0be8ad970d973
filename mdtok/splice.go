package mdtok

// This file implements the sub-tokenize/splice stage (spec.md §4.4): every
// Data (or CodeFlowChunk/HTMLFlowData) span recorded by the document driver
// carries the ContentMode its codes should be re-tokenized under. The
// splice resolver walks the drained event list once, replacing each Text
// or String Data span with the events its content-mode tokenizer produces
// (a named text span such as HeadingAtxText is kept around them), and
// rewrites the Previous/Next chain indices that referenced the spans it
// removed.
//
// Multi-line constructs (a code span or emphasis run split across a hard
// line break) are tokenized per physical line rather than across the whole
// chain: each Data span already carries a correct starting Point from the
// document driver, which a whole-chain join would have to recompute from
// scratch. This is a deliberate, bounded reduction from full CommonMark
// inline scanning (see SPEC_FULL.md).
//
// Each span is re-fed through a genuine child Tokenizer (spec.md §5's
// two-level parse): a fresh Tokenizer positioned at the span's start Point,
// driven to completion, then folded back into the parent via adoptFrom so
// any Definitions or resolvers it produced are not lost.
func spliceTextContent(t *Tokenizer) {
	old := t.events
	newEvents := make([]Event, 0, len(old)+len(old)/2)
	oldToNew := make(map[int]int, len(old))

	i := 0
	for i < len(old) {
		e := old[i]
		if e.Kind == Enter && e.Link != nil && e.Link.Content != ContentFlow && i+1 < len(old) && old[i+1].Kind == Exit && old[i+1].Name == e.Name {
			codes := t.spanCodes[i]
			child := NewTokenizer(codes)
			child.point = e.Point
			child.Log = t.Log
			if e.Link.Content == ContentText {
				tokenizeInline(child)
			} else {
				scanDefinition(child)
			}
			t.adoptFrom(child)

			// A Data span is replaced by the child's events; a named text
			// span (HeadingAtxText) is kept, with the child's events inside.
			keep := e.Name != Data
			oldToNew[i] = len(newEvents)
			if keep {
				newEvents = append(newEvents, e)
			}
			newEvents = append(newEvents, child.Events()...)
			if keep {
				newEvents = append(newEvents, old[i+1])
			}
			oldToNew[i+1] = len(newEvents) - 1
			i += 2
			continue
		}
		oldToNew[i] = len(newEvents)
		newEvents = append(newEvents, e)
		i++
	}

	for idx := range newEvents {
		l := newEvents[idx].Link
		if l == nil {
			continue
		}
		if l.Previous >= 0 {
			l.Previous = oldToNew[l.Previous]
		}
		if l.Next >= 0 {
			l.Next = oldToNew[l.Next]
		}
	}

	t.events = newEvents
}
