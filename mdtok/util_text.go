package mdtok

import "unicode/utf8"

// advance computes the point reached after consuming code starting at p,
// mirroring Tokenizer.consume's column/offset arithmetic but without the
// container-prefix skip table. Used only by textBetween's point-free replay
// over the raw code slice (everywhere else routes through a real Tokenizer's
// consume, which tracks skips).
func advance(p Point, c Code) Point {
	switch {
	case c.Kind == CodeCRLF:
		return Point{Line: p.Line + 1, Column: 1, Offset: p.Offset + 2}
	case c.Kind == CodeVirtualSpace:
		return p
	case c.Is('\n') || c.Is('\r'):
		return Point{Line: p.Line + 1, Column: 1, Offset: p.Offset + 1}
	default:
		return Point{Line: p.Line, Column: p.Column + 1, Offset: p.Offset + utf8.RuneLen(c.Char)}
	}
}

// TextBetween exposes textBetween for collaborator packages (the html
// compiler) that need to recover a span's literal text from its two
// boundary Points rather than re-deriving it from Code arithmetic.
func (t *Tokenizer) TextBetween(from, to Point) string { return t.textBetween(from, to) }

// textBetween recovers the literal characters of the logical code stream
// between two points, by replaying advance() over the tokenizer's own code
// slice. Used where a resolver needs a span's raw text (a shortcut
// reference's own label) rather than just its event structure.
//
// Note: this replay does not reproduce container-prefix skips applied
// during the main parse (Tokenizer.defineSkip), so it is only exact for
// spans outside of block quotes/list items; see SPEC_FULL.md.
func (t *Tokenizer) textBetween(from, to Point) string {
	var out []rune
	p := Point{Line: 1, Column: 1, Offset: 0}
	for _, c := range t.codes {
		if p.Offset >= to.Offset {
			break
		}
		if p.Offset >= from.Offset && c.Kind == CodeChar {
			out = append(out, c.Char)
		}
		p = advance(p, c)
	}
	return string(out)
}
