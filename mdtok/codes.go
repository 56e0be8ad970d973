package mdtok

import "unicode/utf8"

// LineEnding is one of the three line-ending byte sequences CommonMark
// recognises.
type LineEnding int8

// LineEnding values.
const (
	LineFeed LineEnding = iota
	CarriageReturn
	CarriageReturnLineFeed
)

// Bytes returns the literal byte sequence for the line ending.
func (e LineEnding) Bytes() []byte {
	switch e {
	case CarriageReturn:
		return []byte{'\r'}
	case CarriageReturnLineFeed:
		return []byte{'\r', '\n'}
	default:
		return []byte{'\n'}
	}
}

func (e LineEnding) String() string { return string(e.Bytes()) }

const tabSize = 4

// Codes converts a byte sequence, assumed UTF-8, into the logical code
// sequence the tokenizer engine consumes: a UTF-8 BOM at offset 0 is
// stripped silently, invalid UTF-8 bytes become the replacement character,
// "\r\n" pairs collapse into a single CRLF code, and each tab expands into
// 0-3 VirtualSpace codes followed by the tab's own Char('\t') so that
// consumption lands on the next column congruent to 1 mod 4.
func Codes(src []byte) []Code {
	if len(src) >= 3 && src[0] == 0xEF && src[1] == 0xBB && src[2] == 0xBF {
		src = src[3:]
	}

	codes := make([]Code, 0, len(src))
	column := 1
	for i := 0; i < len(src); {
		b := src[i]

		if b == '\r' {
			if i+1 < len(src) && src[i+1] == '\n' {
				codes = append(codes, CRLF)
				i += 2
			} else {
				codes = append(codes, Char('\r'))
				i++
			}
			column = 1
			continue
		}
		if b == '\n' {
			codes = append(codes, Char('\n'))
			i++
			column = 1
			continue
		}
		if b == '\t' {
			for column%tabSize != 0 {
				codes = append(codes, VirtualSpace)
				column++
			}
			codes = append(codes, Char('\t'))
			column++
			i++
			continue
		}

		r, size := utf8.DecodeRune(src[i:])
		codes = append(codes, Char(r))
		i += size
		column++
	}

	return codes
}

// DetectLineEnding returns the first line ending found in src, and false if
// none is present (the caller should then fall back to a configured
// default, per spec.md §9's resolution of the line-ending Open Question).
func DetectLineEnding(src []byte) (LineEnding, bool) {
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				return CarriageReturnLineFeed, true
			}
			return CarriageReturn, true
		case '\n':
			return LineFeed, true
		}
	}
	return LineFeed, false
}
