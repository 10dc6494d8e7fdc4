package parser

import "unicode/utf8"

// NCName start characters: XML NameStartChar without ':'.
func isNameStartChar(r rune) bool {
	return r == '_' ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 0xC0 && r <= 0xD6) ||
		(r >= 0xD8 && r <= 0xF6) ||
		(r >= 0xF8 && r <= 0x2FF) ||
		(r >= 0x370 && r <= 0x37D) ||
		(r >= 0x37F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) ||
		(r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) ||
		(r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0xEFFFF)
}

func isNameChar(r rune) bool {
	return isNameStartChar(r) ||
		r == '-' || r == '.' ||
		(r >= '0' && r <= '9') ||
		r == 0xB7 ||
		(r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x203F && r <= 0x2040)
}

// IsXMLChar reports whether r is a legal XML 1.0 character.
func IsXMLChar(r rune) bool {
	switch {
	case r == 0x9, r == 0xA, r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// decodeRune decodes one rune. An invalid UTF-8 byte decodes as -1 with a
// width of one; past the end of src the width is zero.
func decodeRune(src []byte, at int) (rune, int) {
	if at >= len(src) {
		return -1, 0
	}
	if b := src[at]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, w := utf8.DecodeRune(src[at:])
	if r == utf8.RuneError && w <= 1 {
		return -1, 1
	}
	return r, w
}

// runeUnits is the UTF-16 length of a decoded rune; invalid bytes count as
// one unit.
func runeUnits(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// utf16Len is the number of UTF-16 code units src occupies.
func utf16Len(src []byte) int {
	n := 0
	for i := 0; i < len(src); {
		r, w := decodeRune(src, i)
		n += runeUnits(r)
		i += w
	}
	return n
}

// lineIndex converts byte offsets into positions.
type lineIndex struct {
	file      string
	src       []byte
	startLine int
	lines     []int // byte offset of each line start
	chars     []int // UTF-16 offset of each line start
	// last memoises the previous lookup so scanning a long line stays linear.
	last Position
}

func newLineIndex(src []byte, file string, startLine int) *lineIndex {
	idx := &lineIndex{file: file, src: src, startLine: startLine, lines: []int{0}, chars: []int{0}}
	char := 0
	for i := 0; i < len(src); {
		b := src[i]
		if b == '\n' || b == '\r' {
			i++
			char++
			if b == '\r' && i < len(src) && src[i] == '\n' {
				i++
				char++
			}
			idx.lines = append(idx.lines, i)
			idx.chars = append(idx.chars, char)
			continue
		}
		r, w := decodeRune(src, i)
		char += runeUnits(r)
		i += w
	}
	return idx
}

func (idx *lineIndex) position(offset int) Position {
	if offset > len(idx.src) {
		offset = len(idx.src)
	}
	lo, hi := 0, len(idx.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx.lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	var col int
	if last := idx.last; last.Line == idx.startLine+lo && last.Offset <= offset && last.Column > 0 {
		col = last.Column - 1 + utf16Len(idx.src[last.Offset:offset])
	} else {
		col = utf16Len(idx.src[idx.lines[lo]:offset])
	}
	idx.last = Position{
		File:   idx.file,
		Offset: offset,
		Line:   idx.startLine + lo,
		Column: col + 1,
		Char:   idx.chars[lo] + col,
	}
	return idx.last
}

func (idx *lineIndex) span(start, end int) Span {
	return Span{Start: idx.position(start), End: idx.position(end)}
}
