package mdtok

import "fmt"

// EventKind discriminates Enter from Exit.
type EventKind int8

// EventKind values.
const (
	Enter EventKind = iota
	Exit
)

func (k EventKind) String() string {
	if k == Enter {
		return "Enter"
	}
	return "Exit"
}

// ContentMode selects which subset of constructs a sub-tokenize pass over a
// Data span runs: flow (block-level contents of containers), text (inline
// contents of paragraphs/headings), or string (label/destination/title
// content).
type ContentMode int8

// ContentMode values.
const (
	ContentFlow ContentMode = iota
	ContentText
	ContentString
)

func (m ContentMode) String() string {
	switch m {
	case ContentFlow:
		return "Flow"
	case ContentText:
		return "Text"
	case ContentString:
		return "String"
	default:
		return "InvalidContentMode"
	}
}

// Link forms a doubly-linked chain connecting the successive Data spans
// produced line-by-line, so the sub-tokenizer can stitch them into one
// logical content run (e.g. a paragraph spanning multiple lines). Previous
// and Next are indices into the owning Tokenizer's events slice, not
// pointers, per the design note in spec.md §9 ("store indices, not
// references").
type Link struct {
	Previous int // -1 if none
	Next     int // -1 if none
	Content  ContentMode
}

// Event is a single Enter/Exit record labelling a span with a TokenName.
// Link is only ever set on a Data Enter event. Marker carries the
// delimiter rune for an AttentionSequence Enter event ('*' or '_'); it is
// the zero rune for every other event. RefLabel is only set on a LabelEnd
// Enter event that was followed by a "[label]"/"[]" reference tail: nil
// means no such tail was present (so the span can only resolve as a
// shortcut reference against its own label text). Loose is only set on a
// ListOrdered/ListUnordered Enter event, once the document driver has
// seen the whole list: true if any of its items are separated by a blank
// line, or any item's own content contains one internally.
type Event struct {
	Kind     EventKind
	Name     TokenName
	Point    Point
	Link     *Link
	Marker   rune
	RefLabel *string
	Loose    bool
}

func (e Event) String() string {
	if e.Link != nil {
		return fmt.Sprintf("%v(%v)@%v[%v]", e.Kind, e.Name, e.Point, e.Link.Content)
	}
	return fmt.Sprintf("%v(%v)@%v", e.Kind, e.Name, e.Point)
}
