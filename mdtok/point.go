package mdtok

import "fmt"

// Point is a document position: 1-based line/column, 0-based byte offset.
// Column counts consumed characters on the line: a tab advances it by one
// and the VirtualSpace codes that pad it do not advance it, so it is not
// necessarily a byte, UTF-16 or tab-stop column.
type Point struct {
	Line   int
	Column int
	Offset int
}

// String renders "line:column" the way error messages and test output in
// this module report positions.
func (p Point) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Less reports whether p sorts strictly before q by offset, which is the
// only monotonicity spec.md's testable properties require (§8.2).
func (p Point) Less(q Point) bool { return p.Offset < q.Offset }
