package mdtok

import (
	"fmt"
	"unicode/utf8"
)

// LabelStart is a loose label start ("[" or "![") found while tokenizing
// text content, kept around so the label-end resolver (spec.md §4.6) can
// look back for the nearest unmatched one.
type LabelStart struct {
	// Start holds the [Enter, Exit) event indices of the label-start span.
	Start [2]int
	// Inactive is set once an enclosing link has been resolved: links do
	// not nest, so any earlier LabelLink becomes permanently unusable.
	Inactive bool
	// Balanced records that this label start's brackets were closed, just
	// not as a media-forming label end (a plain "[]" pair, say).
	Balanced bool
}

// Media is a resolved or tentative link/image found during label-end
// resolution: the [start, end) index pair of its label-start and label-end
// spans.
type Media struct {
	Start [2]int
	End   [2]int
	ID    string
}

// Definition is a link reference definition discovered anywhere in the
// document: `[label]: destination "title"`.
type Definition struct {
	Label       string
	Destination string
	Title       string
}

// Resolver is a post-parse event-list rewriter registered by a construct.
// Resolvers run only after the tokenizer has fully drained (flush), never
// inside an attempt, and in registration order (spec.md §4.2, §9).
type Resolver struct {
	ID  string
	Run func(t *Tokenizer)
}

// Logger is satisfied by *log.Logger; the tokenizer logs state transitions
// through it only when non-nil, matching the ambient logging discipline of
// this module (see SPEC_FULL.md "AMBIENT STACK").
type Logger interface {
	Printf(format string, args ...interface{})
}

// Tokenizer is the reusable speculative-parse engine (spec.md §4.2). It
// advances through a fixed slice of Codes, holds a position, records
// Enter/Exit events in emission order, and supports speculative
// attempt/check with full rollback.
type Tokenizer struct {
	Log Logger

	codes []Code
	index int

	previous Code
	current  Code
	consumed bool
	drained  bool

	point Point

	events []Event
	stack  []TokenName

	columnStart map[int]int // line -> first column, for define_skip

	// spanCodes remembers the raw codes emitted for each Data/CodeFlowChunk/
	// HTMLFlowData Enter event (keyed by its index in events), so the
	// splice resolver can re-tokenize content without re-deriving code
	// ranges from Point/Offset arithmetic.
	spanCodes map[int][]Code

	resolvers   []Resolver
	resolverIDs map[string]bool

	definitions map[string]Definition

	// Work lists for text-content label/attention resolution (spec.md §3).
	LabelStartStack     []LabelStart
	LabelStartListLoose []LabelStart
	MediaList           []Media

	Interrupt bool
	Lazy      bool
}

// NewTokenizer returns a Tokenizer positioned at the start of codes.
func NewTokenizer(codes []Code) *Tokenizer {
	return &Tokenizer{
		codes:       codes,
		consumed:    true,
		point:       Point{Line: 1, Column: 1, Offset: 0},
		columnStart: make(map[int]int),
		spanCodes:   make(map[int][]Code),
		resolverIDs: make(map[string]bool),
		definitions: make(map[string]Definition),
	}
}

// Events returns the tokenizer's event list. Valid after Flush.
func (t *Tokenizer) Events() []Event { return t.events }

// Definitions returns the link reference definitions discovered so far.
func (t *Tokenizer) Definitions() map[string]Definition { return t.definitions }

// Point returns the tokenizer's current position.
func (t *Tokenizer) Point() Point { return t.point }

// AtEnd reports whether the tokenizer has consumed every code in its range
// (the next code to hand a state function is End).
func (t *Tokenizer) AtEnd() bool { return t.index >= len(t.codes) }

func (t *Tokenizer) logf(format string, args ...interface{}) {
	if t.Log != nil {
		t.Log.Printf(format, args...)
	}
}

// peek returns the code at the tokenizer's current index without consuming
// it: the code a state function is about to be called with.
func (t *Tokenizer) peek() Code {
	if t.index >= len(t.codes) {
		return End
	}
	return t.codes[t.index]
}

// expect prepares for a next code to get consumed, asserting the prior one
// was (spec.md invariant 4).
func (t *Tokenizer) expect(code Code) {
	if !t.consumed {
		panic("mdtok: expected previous code to be consumed")
	}
	t.consumed = false
	t.current = code
}

// consume advances position past code, which MUST equal the code the
// tokenizer is currently waiting on. Spec.md §4.2.
func (t *Tokenizer) consume(code Code) {
	if code != t.current {
		panic(fmt.Sprintf("mdtok: consume(%v) does not match expected current code %v", code, t.current))
	}
	if t.consumed {
		panic("mdtok: code already consumed")
	}

	switch code.Kind {
	case CodeCRLF:
		t.point.Line++
		t.point.Column = 1
		t.point.Offset += 2
		t.accountForSkip()
	case CodeVirtualSpace:
		// Only the logical index advances; no column/offset change.
	default:
		if code.Is('\n') || code.Is('\r') {
			t.point.Line++
			t.point.Column = 1
			t.point.Offset++
			t.accountForSkip()
		} else {
			t.point.Column++
			t.point.Offset += utf8.RuneLen(code.Char)
		}
	}

	t.index++
	t.previous = code
	t.consumed = true
	t.logf("consume %v -> %v", code, t.point)
}

// defineSkip records that lines at point.Line start at point.Column;
// subsequent consumption of a newline pre-adjusts the next line's column
// and offset by the skip amount, making container prefixes invisible to
// child parsers (spec.md §4.2, §6).
func (t *Tokenizer) defineSkip(point Point) {
	t.columnStart[point.Line] = point.Column
	t.accountForSkip()
	t.logf("define skip: %v", point)
}

func (t *Tokenizer) accountForSkip() {
	if t.point.Column != 1 {
		return
	}
	if col, ok := t.columnStart[t.point.Line]; ok {
		delta := col - 1
		t.point.Column = col
		t.point.Offset += delta
		t.index += delta
	}
}

// enter appends an Enter event and pushes name onto the stack.
func (t *Tokenizer) enter(name TokenName) { t.enterLink(name, nil) }

// enterLink appends an Enter event carrying link (only meaningful for
// Data spans) and pushes name onto the stack.
func (t *Tokenizer) enterLink(name TokenName, link *Link) {
	t.logf("enter %v @ %v", name, t.point)
	t.events = append(t.events, Event{Kind: Enter, Name: name, Point: t.point, Link: link})
	t.stack = append(t.stack, name)
}

// exit pops the stack (which must equal name) and appends an Exit event.
// Rejects empty spans: an Enter and Exit at the same point for the same
// name is a programming error (spec.md §4.2).
func (t *Tokenizer) exit(name TokenName) {
	if len(t.stack) == 0 {
		panic(fmt.Sprintf("mdtok: cannot exit %v with no open tokens", name))
	}
	top := t.stack[len(t.stack)-1]
	if top != name {
		panic(fmt.Sprintf("mdtok: exit %v does not match open %v", name, top))
	}
	t.stack = t.stack[:len(t.stack)-1]

	last := t.events[len(t.events)-1]
	if last.Kind == Enter && last.Name == name && last.Point == t.point {
		panic(fmt.Sprintf("mdtok: empty token %v rejected", name))
	}

	t.logf("exit %v @ %v", name, t.point)
	t.events = append(t.events, Event{Kind: Exit, Name: name, Point: t.point})
}

// mark appends a zero-width Enter/Exit pair for name at the tokenizer's
// current point, bypassing the open-stack discipline enter/exit enforce.
// Reserved for anchor tokens that carry no content of their own (e.g.
// LabelEnd, which only marks where a "]" resolved, not a span over it).
func (t *Tokenizer) mark(name TokenName) {
	t.logf("mark %v @ %v", name, t.point)
	t.events = append(t.events,
		Event{Kind: Enter, Name: name, Point: t.point},
		Event{Kind: Exit, Name: name, Point: t.point},
	)
}

// snapshot is the internal state captured by attempt/check for rollback
// (spec.md §4.2's "Snapshot/rollback discipline").
type snapshot struct {
	index     int
	previous  Code
	current   Code
	consumed  bool
	point     Point
	eventsLen int
	stackLen  int
}

func (t *Tokenizer) capture() snapshot {
	return snapshot{
		index:     t.index,
		previous:  t.previous,
		current:   t.current,
		consumed:  t.consumed,
		point:     t.point,
		eventsLen: len(t.events),
		stackLen:  len(t.stack),
	}
}

func (t *Tokenizer) restore(s snapshot) {
	if len(t.events) < s.eventsLen {
		panic("mdtok: cannot restore to more events than currently recorded")
	}
	if len(t.stack) < s.stackLen {
		panic("mdtok: cannot restore to more stack items than currently recorded")
	}
	t.index = s.index
	t.previous = s.previous
	t.current = s.current
	t.consumed = s.consumed
	t.point = s.point
	t.events = t.events[:s.eventsLen]
	t.stack = t.stack[:s.stackLen]
}

// run drives the state machine starting at start, feeding codes one at a
// time from the tokenizer's current position, until a state function
// returns Ok or Nok. It is the shared core of attempt/check/push: unlike
// the upstream Rust tokenizer's boxed-closure continuations, this is an
// explicit loop, since the whole code slice is already materialised
// in-process (spec.md §5: "input is a pre-materialised code slice").
func (t *Tokenizer) run(start StateFn) bool {
	state := start
	for {
		code := t.peek()
		t.expect(code)
		result, next := state(t, code)
		if !t.consumed {
			panic("mdtok: state function returned without consuming its code")
		}
		switch result {
		case OK:
			return true
		case Nok:
			return false
		default:
			state = next
		}
	}
}

// attempt captures a snapshot, then runs start to completion. On Ok, the
// snapshot is discarded and okState is returned as the continuation. On
// Nok, the snapshot is restored (events and stack truncated, position
// reset) and nokState is returned, at the pre-attempt position. Spec.md §4.2.
func (t *Tokenizer) attempt(start StateFn, okState, nokState StateFn) StateFn {
	snap := t.capture()
	if t.run(start) {
		return okState
	}
	t.restore(snap)
	return nokState
}

// check is like attempt but ALWAYS rolls back position and events,
// regardless of outcome; used for zero-width look-ahead. Spec.md §4.2.
func (t *Tokenizer) check(start StateFn, okState, nokState StateFn) StateFn {
	snap := t.capture()
	ok := t.run(start)
	t.restore(snap)
	if ok {
		return okState
	}
	return nokState
}

// attemptBool is a convenience for recognisers that only need the boolean
// outcome of a speculative run, not a continuation StateFn; it always rolls
// back, win or lose, like check. Used by document.go's lineInterruptsParagraph,
// which decides whether a would-be lazy-continuation line actually
// interrupts the open paragraph.
func (t *Tokenizer) attemptBool(start StateFn) bool {
	snap := t.capture()
	ok := t.run(start)
	t.restore(snap)
	return ok
}

// push drives the state machine from start over the half-open range
// [from, to) of the code stream, returning the suspended state at to.
// Spec.md §4.2.
func (t *Tokenizer) push(from, to int, start StateFn) StateFn {
	if from != t.index {
		panic("mdtok: push from does not match tokenizer position")
	}
	state := start
	for t.index < to {
		code := t.peek()
		t.expect(code)
		result, next := state(t, code)
		if !t.consumed {
			panic("mdtok: state function returned without consuming its code")
		}
		switch result {
		case OK, Nok:
			return nil
		default:
			state = next
		}
	}
	return state
}

// flush drives finalState to completion by feeding End, then runs all
// registered resolvers in registration order. Spec.md §4.2.
func (t *Tokenizer) flush(finalState StateFn) {
	if t.drained {
		panic("mdtok: cannot feed after drain")
	}
	state := finalState
	for {
		code := t.peek()
		t.expect(code)
		result, next := state(t, code)
		if !t.consumed {
			panic("mdtok: state function returned without consuming its code")
		}
		switch result {
		case OK:
			goto resolve
		case Nok:
			panic("mdtok: construct rejected at drain; the parser must always complete (spec.md §7)")
		default:
			state = next
		}
	}
resolve:
	t.drained = true
	for _, r := range t.resolvers {
		r.Run(t)
	}
	t.resolvers = nil
}

// RegisterResolver registers a resolver, de-duplicated by id (first wins),
// appended after any already registered. Spec.md §4.2, §9.
func (t *Tokenizer) RegisterResolver(id string, run func(t *Tokenizer)) {
	if t.resolverIDs[id] {
		return
	}
	t.resolverIDs[id] = true
	t.resolvers = append(t.resolvers, Resolver{ID: id, Run: run})
}

// RegisterResolverBefore is RegisterResolver but prepends instead of
// appending, for resolvers (none in this module, yet) that must run before
// all others.
func (t *Tokenizer) RegisterResolverBefore(id string, run func(t *Tokenizer)) {
	if t.resolverIDs[id] {
		return
	}
	t.resolverIDs[id] = true
	t.resolvers = append([]Resolver{{ID: id, Run: run}}, t.resolvers...)
}

// addDefinition registers a link reference definition, first-wins on
// duplicate labels per CommonMark.
func (t *Tokenizer) addDefinition(d Definition) {
	if _, exists := t.definitions[d.Label]; !exists {
		t.definitions[d.Label] = d
	}
}

// adoptFrom merges a drained child tokenizer's resolvers and definitions
// into t, in order, de-duplicated by id (spec.md §5's shared-resource
// policy). Used by the splice resolver after the child tokenizer of each
// text or string span has run.
func (t *Tokenizer) adoptFrom(child *Tokenizer) {
	for _, r := range child.resolvers {
		if t.resolverIDs[r.ID] {
			continue
		}
		t.resolverIDs[r.ID] = true
		t.resolvers = append(t.resolvers, r)
	}
	child.resolvers = nil
	for label, d := range child.definitions {
		t.addDefinition(Definition{Label: label, Destination: d.Destination, Title: d.Title})
	}
}
