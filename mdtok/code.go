package mdtok

import (
	"fmt"
	"io"
)

// CodeKind discriminates the tagged cases of a Code.
type CodeKind int8

// CodeKind values.
const (
	// CodeChar is an ordinary Unicode scalar, carried in Code.Char.
	CodeChar CodeKind = iota
	// CodeVirtualSpace is tab-expansion padding emitted before a Code.Char('\t')
	// such that consumption reaches the next column stop (column mod 4 == 1).
	CodeVirtualSpace
	// CodeCRLF denotes the logical pair "\r\n" as a single code for position
	// accounting purposes; it contributes offset += 2.
	CodeCRLF
	// CodeEnd denotes end-of-input. It is not a byte and does not advance offset.
	CodeEnd
)

// Code is a logical input unit: an ordinary character, a virtual space
// (tab-expansion padding), a CRLF pair, or end-of-input.
type Code struct {
	Kind CodeKind
	Char rune // meaningful only when Kind == CodeChar
}

// Char returns the Code for an ordinary Unicode scalar.
func Char(r rune) Code { return Code{Kind: CodeChar, Char: r} }

// VirtualSpace is the shared Code value for tab-expansion padding.
var VirtualSpace = Code{Kind: CodeVirtualSpace}

// CRLF is the shared Code value for a "\r\n" pair.
var CRLF = Code{Kind: CodeCRLF}

// End is the shared Code value for end-of-input.
var End = Code{Kind: CodeEnd}

// Is reports whether the code is an ordinary character equal to r.
func (c Code) Is(r rune) bool { return c.Kind == CodeChar && c.Char == r }

// IsEOF reports whether the code is end-of-input.
func (c Code) IsEOF() bool { return c.Kind == CodeEnd }

// IsLineEnding reports whether the code is a line ending: CRLF, '\n', or '\r'.
func (c Code) IsLineEnding() bool {
	return c.Kind == CodeCRLF || c.Is('\n') || c.Is('\r')
}

// IsSpaceOrTab reports whether the code is a space, a tab, or virtual space
// padding (which always precedes a tab's Char code).
func (c Code) IsSpaceOrTab() bool {
	return c.Kind == CodeVirtualSpace || c.Is(' ') || c.Is('\t')
}

// Format writes a compact debug form of the code, e.g. `'a'`, `<CRLF>`,
// `<virtual-space>`, `<eof>`.
func (c Code) Format(f fmt.State, verb rune) {
	switch c.Kind {
	case CodeEnd:
		io.WriteString(f, "<eof>")
	case CodeCRLF:
		io.WriteString(f, "<crlf>")
	case CodeVirtualSpace:
		io.WriteString(f, "<virtual-space>")
	default:
		fmt.Fprintf(f, "%q", c.Char)
	}
}

func (c Code) String() string { return fmt.Sprint(c) }
