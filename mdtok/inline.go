package mdtok

// tokenizeInline re-tokenizes one text-content span (spec.md §3's "text"
// content model) against a child Tokenizer positioned at start: character
// escapes, character references, code spans, autolinks, attention runs,
// and label markers. Literal runs between constructs are wrapped in Data
// events so the compiler can slice them back out of the original source by
// Point.Offset. Each construct is driven through the engine's push/attempt
// primitives rather than assembled as bare Event structs, so a malformed
// span is caught by enter/exit's own nesting checks instead of silently
// shipping.
type pendingWrap struct {
	at   int
	name TokenName
}

func tokenizeInline(t *Tokenizer) {
	codes := t.codes
	n := len(codes)
	// i scans ahead of t.index, which only moves when flushData or a
	// construct push commits a span; dataStart marks the start of the
	// not-yet-committed literal run.
	i := t.index
	dataStart := i

	flushData := func(to int) {
		if to <= dataStart {
			return
		}
		t.push(dataStart, to, dataSpanState(to))
		dataStart = t.index
	}

	var labelMarkerIdx []int
	var wrapOpens []pendingWrap

	for i < n {
		c := codes[i]

		switch {
		case c.Is('\\') && i+1 < n && isEscapable(codes[i+1]):
			flushData(i)
			t.attempt(characterEscapeState(), nil, nil)
			dataStart = t.index
			i = dataStart
			continue

		case c.Is('&'):
			if end, ok := matchCharacterReference(codes, i); ok {
				flushData(i)
				t.push(i, end, characterReferenceState(codes, end))
				dataStart = t.index
				i = dataStart
				continue
			}

		case c.Is('`'):
			if end, seqLen, ok := matchCodeSpan(codes, i); ok {
				flushData(i)
				t.push(i, end, codeSpanState(end, seqLen))
				dataStart = t.index
				i = dataStart
				continue
			}

		case c.Is('<'):
			if end, ok := matchAutolink(codes, i); ok {
				flushData(i)
				t.push(i, end, autolinkState(codes, end))
				dataStart = t.index
				i = dataStart
				continue
			}

		case c.Is('*') || c.Is('_'):
			end := i + 1
			for end < n && codes[end] == c {
				end++
			}
			flushData(i)
			t.push(i, end, attentionState(c.Char))
			dataStart = t.index
			i = dataStart
			continue

		case c.Is('[') || (c.Is('!') && i+1 < n && codes[i+1].Is('[')):
			flushData(i)
			markerLen := 1
			if c.Is('!') {
				markerLen = 2
			}
			markerIdx := len(t.events)
			t.push(i, i+markerLen, labelMarkerOpenState())
			t.enter(Label)
			labelMarkerIdx = append(labelMarkerIdx, markerIdx)
			dataStart = t.index
			i = dataStart
			continue

		case c.Is(']') && len(labelMarkerIdx) > 0:
			markerIdx := labelMarkerIdx[len(labelMarkerIdx)-1]
			labelMarkerIdx = labelMarkerIdx[:len(labelMarkerIdx)-1]

			flushData(i)
			t.exit(Label)
			t.push(i, i+1, labelMarkerCloseState())

			labelEndIdx := len(t.events)
			t.mark(LabelEnd)

			isImage := t.events[markerIdx+1].Point.Offset-t.events[markerIdx].Point.Offset == 2

			if resEnd, ok := matchResourceTail(codes, t.index); ok {
				wrapName := Link
				if isImage {
					wrapName = Image
				}
				if t.attemptBool(resourceState(codes, resEnd)) {
					wrapOpens = append(wrapOpens, pendingWrap{at: markerIdx, name: wrapName})
					t.push(t.index, resEnd, resourceState(codes, resEnd))
					t.events = append(t.events, Event{Kind: Exit, Name: wrapName, Point: t.point})
				}
			} else if ref, refEnd, ok := matchReferenceTail(codes, t.index); ok {
				t.events[labelEndIdx].RefLabel = &ref
				t.push(t.index, refEnd, consumeSilentState(refEnd))
			}
			dataStart = t.index
			i = dataStart
			continue
		}

		i++ // extend the pending literal run; flushed at the next boundary or EOF
	}
	flushData(n)

	if len(wrapOpens) == 0 {
		return
	}
	byIdx := make(map[int][]TokenName, len(wrapOpens))
	for _, w := range wrapOpens {
		byIdx[w.at] = append(byIdx[w.at], w.name)
	}
	out := make([]Event, 0, len(t.events)+len(wrapOpens))
	for idx, e := range t.events {
		for _, name := range byIdx[idx] {
			out = append(out, Event{Kind: Enter, Name: name, Point: e.Point})
		}
		out = append(out, e)
	}
	t.events = out
}

// dataSpanState wraps the codes up to (exclusive) to in a single Data span.
func dataSpanState(to int) StateFn {
	entered := false
	var fn StateFn
	fn = func(t *Tokenizer, code Code) (Result, StateFn) {
		if !entered {
			t.enter(Data)
			entered = true
		}
		t.consume(code)
		if t.index >= to {
			t.exit(Data)
			return OK, nil
		}
		return Continue, fn
	}
	return fn
}

func isEscapable(c Code) bool {
	if c.Kind != CodeChar {
		return false
	}
	switch c.Char {
	case '!', '"', '#', '$', '%', '&', '\'', '(', ')', '*', '+', ',', '-',
		'.', '/', ':', ';', '<', '=', '>', '?', '@', '[', '\\', ']', '^',
		'_', '`', '{', '|', '}', '~':
		return true
	}
	return false
}

// characterEscapeState recognises "\" + escapable code as CharacterEscape;
// Nok only if the lookahead that chose to attempt it was wrong, in which
// case attempt rolls the whole span back.
func characterEscapeState() StateFn {
	var value StateFn
	marker := func(t *Tokenizer, code Code) (Result, StateFn) {
		if !code.Is('\\') {
			return Nok, nil
		}
		t.enter(CharacterEscape)
		t.enter(CharacterEscapeMarker)
		t.consume(code)
		t.exit(CharacterEscapeMarker)
		return Continue, value
	}
	value = func(t *Tokenizer, code Code) (Result, StateFn) {
		if !isEscapable(code) {
			return Nok, nil
		}
		t.enter(CharacterEscapeValue)
		t.consume(code)
		t.exit(CharacterEscapeValue)
		t.exit(CharacterEscape)
		return OK, nil
	}
	return marker
}

// matchCharacterReference recognizes "&name;", "&#123;", "&#x1F;" forms
// against the reduced entity table in decodeEntityRune, returning the
// index just past the trailing ';'.
func matchCharacterReference(codes []Code, i int) (end int, ok bool) {
	if !codes[i].Is('&') {
		return 0, false
	}
	j := i + 1
	for j < len(codes) && j < i+32 && !codes[j].Is(';') {
		j++
	}
	if j >= len(codes) || !codes[j].Is(';') || j == i+1 {
		return 0, false
	}
	name := codesToASCIIPrefix(codes[i+1:j], j-i-1)
	if _, ok := decodeEntityRune(name); !ok {
		return 0, false
	}
	return j + 1, true
}

// characterReferenceState consumes the span [i, end) where codes[i] is '&'
// and codes[end-1] is ';', routing the "#"/"x" numeric markers through
// real (non-zero-width) tokens instead of the zero-width placeholders a
// flat Event build would allow.
func characterReferenceState(codes []Code, end int) StateFn {
	var afterMarker, afterNumeric, value StateFn
	marker := func(t *Tokenizer, code Code) (Result, StateFn) {
		t.enter(CharacterReference)
		t.enter(CharacterReferenceMarker)
		t.consume(code)
		t.exit(CharacterReferenceMarker)
		return Continue, afterMarker
	}
	afterMarker = func(t *Tokenizer, code Code) (Result, StateFn) {
		if code.Is('#') {
			t.enter(CharacterReferenceMarkerNumeric)
			t.consume(code)
			t.exit(CharacterReferenceMarkerNumeric)
			return Continue, afterNumeric
		}
		t.enter(CharacterReferenceValue)
		return consumeValue(t, code, end)
	}
	afterNumeric = func(t *Tokenizer, code Code) (Result, StateFn) {
		if code.Is('x') || code.Is('X') {
			t.enter(CharacterReferenceMarkerHexadecimal)
			t.consume(code)
			t.exit(CharacterReferenceMarkerHexadecimal)
			t.enter(CharacterReferenceValue)
			return Continue, value
		}
		t.enter(CharacterReferenceValue)
		return consumeValue(t, code, end)
	}
	value = func(t *Tokenizer, code Code) (Result, StateFn) {
		return consumeValue(t, code, end)
	}
	return marker
}

// consumeValue drains codes up to end-1 (the name/digits) as
// CharacterReferenceValue, then the trailing ';', finishing the construct.
func consumeValue(t *Tokenizer, code Code, end int) (Result, StateFn) {
	var fn StateFn
	fn = func(t *Tokenizer, code Code) (Result, StateFn) {
		if t.index == end-1 {
			t.exit(CharacterReferenceValue)
			t.consume(code) // ';'
			t.exit(CharacterReference)
			return OK, nil
		}
		t.consume(code)
		return Continue, fn
	}
	return fn(t, code)
}

// matchCodeSpan finds a balanced backtick-delimited code span within a
// single line (see splice.go's documented cross-line reduction).
func matchCodeSpan(codes []Code, i int) (end, seqLen int, ok bool) {
	j := i
	for j < len(codes) && codes[j].Is('`') {
		j++
	}
	seqLen = j - i
	k := j
	for k < len(codes) {
		if codes[k].Is('`') {
			m := k
			for m < len(codes) && codes[m].Is('`') {
				m++
			}
			if m-k == seqLen {
				return m, seqLen, true
			}
			k = m
			continue
		}
		k++
	}
	return 0, 0, false
}

// codeSpanState consumes the span [i, end) as CodeText: an opening
// backtick-run sequence, optional data, and a matching closing sequence.
func codeSpanState(end, seqLen int) StateFn {
	start := -1
	openEnd := -1
	dataEnd := -1
	var openSeq, data, closeSeq StateFn
	openSeq = func(t *Tokenizer, code Code) (Result, StateFn) {
		if start < 0 {
			start = t.index
			openEnd = start + seqLen
			dataEnd = end - seqLen
			t.enter(CodeText)
			t.enter(CodeTextSequence)
		}
		t.consume(code)
		if t.index == openEnd {
			t.exit(CodeTextSequence)
			if dataEnd > openEnd {
				return Continue, data
			}
			return Continue, closeSeq
		}
		return Continue, openSeq
	}
	data = func(t *Tokenizer, code Code) (Result, StateFn) {
		if t.index == openEnd {
			t.enter(CodeTextData)
		}
		t.consume(code)
		if t.index == dataEnd {
			t.exit(CodeTextData)
			return Continue, closeSeq
		}
		return Continue, data
	}
	closeSeq = func(t *Tokenizer, code Code) (Result, StateFn) {
		if t.index == dataEnd {
			t.enter(CodeTextSequence)
		}
		t.consume(code)
		if t.index == end {
			t.exit(CodeTextSequence)
			t.exit(CodeText)
			return OK, nil
		}
		return Continue, closeSeq
	}
	return openSeq
}

// matchAutolink recognizes "<scheme:...>" and "<user@host>" forms.
func matchAutolink(codes []Code, i int) (end int, ok bool) {
	j := i + 1
	for j < len(codes) && j < i+1000 && !codes[j].Is('>') && !codes[j].IsSpaceOrTab() && !codes[j].IsLineEnding() {
		j++
	}
	if j >= len(codes) || !codes[j].Is('>') || j == i+1 {
		return 0, false
	}
	body := codes[i+1 : j]
	hasColon, hasAt := false, false
	for _, c := range body {
		if c.Is(':') {
			hasColon = true
		}
		if c.Is('@') {
			hasAt = true
		}
	}
	if !hasColon && !hasAt {
		return 0, false
	}
	return j + 1, true
}

// autolinkState consumes the span [i, end) as Autolink: "<", a
// protocol-or-email body, ">".
func autolinkState(codes []Code, end int) StateFn {
	var protocolName TokenName
	var body, closeMarker StateFn
	open := func(t *Tokenizer, code Code) (Result, StateFn) {
		isEmail := false
		for _, c := range codes[t.index+1 : end-1] {
			if c.Is('@') {
				isEmail = true
			}
		}
		protocolName = AutolinkProtocol
		if isEmail {
			protocolName = AutolinkEmail
		}
		t.enter(Autolink)
		t.enter(AutolinkMarker)
		t.consume(code)
		t.exit(AutolinkMarker)
		t.enter(protocolName)
		return Continue, body
	}
	body = func(t *Tokenizer, code Code) (Result, StateFn) {
		if t.index == end-1 {
			t.exit(protocolName)
			return closeMarker(t, code)
		}
		t.consume(code)
		return Continue, body
	}
	closeMarker = func(t *Tokenizer, code Code) (Result, StateFn) {
		t.enter(AutolinkMarker)
		t.consume(code)
		t.exit(AutolinkMarker)
		t.exit(Autolink)
		return OK, nil
	}
	return open
}

// attentionState consumes a run of the same marker rune as a single
// AttentionSequence span.
func attentionState(marker rune) StateFn {
	entered := false
	var fn StateFn
	fn = func(t *Tokenizer, code Code) (Result, StateFn) {
		if !entered {
			t.enterLink(AttentionSequence, nil)
			t.events[len(t.events)-1].Marker = marker
			entered = true
		}
		t.consume(code)
		if t.index >= len(t.codes) || !t.codes[t.index].Is(marker) {
			t.exit(AttentionSequence)
			return OK, nil
		}
		return Continue, fn
	}
	return fn
}

// labelMarkerOpenState consumes a "[" or "![" span as LabelMarker.
func labelMarkerOpenState() StateFn {
	entered := false
	var fn StateFn
	fn = func(t *Tokenizer, code Code) (Result, StateFn) {
		if !entered {
			t.enter(LabelMarker)
			entered = true
		}
		t.consume(code)
		if !code.Is('[') {
			return Continue, fn
		}
		t.exit(LabelMarker)
		return OK, nil
	}
	return fn
}

// labelMarkerCloseState consumes the "]" that ends a label.
func labelMarkerCloseState() StateFn {
	return func(t *Tokenizer, code Code) (Result, StateFn) {
		t.enter(LabelMarker)
		t.consume(code)
		t.exit(LabelMarker)
		return OK, nil
	}
}

// matchResourceTail recognizes a balanced, non-nested-paren "(...)" inline
// resource tail starting at codes[i], returning the index just past its
// closing ')'.
func matchResourceTail(codes []Code, i int) (end int, ok bool) {
	if i >= len(codes) || !codes[i].Is('(') {
		return 0, false
	}
	depth := 1
	for j := i + 1; j < len(codes); j++ {
		switch {
		case codes[j].Is('('):
			depth++
		case codes[j].Is(')'):
			depth--
			if depth == 0 {
				return j + 1, true
			}
		case codes[j].IsLineEnding():
			return 0, false
		}
	}
	return 0, false
}

// consumeSilentState consumes codes up to (exclusive) to without emitting
// any events: used for a reference-tail's "[label]" span, which is
// resolver bookkeeping (Event.RefLabel), not visible content.
func consumeSilentState(to int) StateFn {
	var fn StateFn
	fn = func(t *Tokenizer, code Code) (Result, StateFn) {
		t.consume(code)
		if t.index >= to {
			return OK, nil
		}
		return Continue, fn
	}
	return fn
}

// resourceState consumes the "(...)" tail of a resolved Link/Image,
// wrapping destination and optional title. The enclosing Link/Image wrap
// itself is applied by the caller as a post-process (see pendingWrap),
// since it brackets the whole label span, not just the resource tail.
func resourceState(codes []Code, end int) StateFn {
	return func(t *Tokenizer, code Code) (Result, StateFn) {
		i := t.index
		t.enter(Resource)
		t.enter(ResourceMarker)
		t.consume(code) // "(", already expected by the driver
		t.exit(ResourceMarker)

		j := i + 1
		for j < end-1 && codes[j].IsSpaceOrTab() {
			j++
		}
		destStart := j
		if j < end-1 && codes[j].Is('<') {
			j++
			for j < end-1 && !codes[j].Is('>') {
				j++
			}
			if j < end-1 {
				j++
			}
		} else {
			depth := 0
			for j < end-1 {
				c := codes[j]
				if c.IsSpaceOrTab() {
					break
				}
				if c.Is('(') {
					depth++
				}
				if c.Is(')') {
					if depth == 0 {
						break
					}
					depth--
				}
				j++
			}
		}
		if j > destStart {
			t.enter(ResourceDestination)
			t.enter(ResourceDestinationString)
			consumeRange(t, codes, destStart, j)
			t.exit(ResourceDestinationString)
			t.exit(ResourceDestination)
		}

		for j < end-1 && codes[j].IsSpaceOrTab() {
			consumeOne(t, codes[j])
			j++
		}
		if j < end-1 && (codes[j].Is('"') || codes[j].Is('\'')) {
			closer := codes[j].Char
			t.enter(ResourceTitle)
			consumeOne(t, codes[j])
			j++
			titleStart := j
			for j < end-1 && !codes[j].Is(closer) {
				j++
			}
			if j > titleStart {
				t.enter(ResourceTitleString)
				consumeRange(t, codes, titleStart, j)
				t.exit(ResourceTitleString)
			}
			if j < end-1 {
				consumeOne(t, codes[j])
				j++
			}
			t.exit(ResourceTitle)
		}

		for j < end-1 && codes[j].IsSpaceOrTab() {
			consumeOne(t, codes[j])
			j++
		}
		t.enter(ResourceMarker)
		consumeOne(t, codes[end-1])
		t.exit(ResourceMarker)
		t.exit(Resource)
		if t.index != end {
			return Nok, nil
		}
		return OK, nil
	}
}

// matchReferenceTail recognizes a "[label]" or "[]" reference tail
// immediately following a label end, returning its (possibly empty,
// case-folded) label text and the index just past ']'.
func matchReferenceTail(codes []Code, i int) (label string, end int, ok bool) {
	if i >= len(codes) || !codes[i].Is('[') {
		return "", 0, false
	}
	var runes []rune
	j := i + 1
	for j < len(codes) && !codes[j].Is(']') {
		if codes[j].IsLineEnding() {
			return "", 0, false
		}
		if codes[j].Kind == CodeChar {
			runes = append(runes, normalizeLabelRune(codes[j].Char))
		}
		j++
	}
	if j >= len(codes) {
		return "", 0, false
	}
	return string(runes), j + 1, true
}
