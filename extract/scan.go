package extract

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// strState follows quoted strings byte by byte so that brackets and braces
// inside string contents are never mistaken for structure.
type strState struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether c is structural, i.e. outside any
// string and not itself a quote.
func (st *strState) step(c byte) bool {
	if st.inString {
		switch {
		case st.escaped:
			st.escaped = false
		case c == '\\':
			st.escaped = true
		case c == '"':
			st.inString = false
		}
		return false
	}
	if c == '"' {
		st.inString = true
		return false
	}
	return true
}

func closerOf(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

// BalancedSpan returns the index of the bracket that closes the one at
// s[start]. Only the bracket kind found at start is counted.
func BalancedSpan(s string, start int) (int, bool) {
	if start < 0 || start >= len(s) {
		return -1, false
	}
	open := s[start]
	closer := closerOf(open)
	if closer == 0 {
		return -1, false
	}

	var st strState
	depth := 0
	for i := start; i < len(s); i++ {
		if !st.step(s[i]) {
			continue
		}
		switch s[i] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// SplitTopLevel returns every top-level open..closer span found in s, in
// order. Stray closers and an unterminated trailing span are ignored.
func SplitTopLevel(s string, open byte) []string {
	closer := closerOf(open)
	if closer == 0 {
		return nil
	}

	var (
		st    strState
		out   []string
		depth int
		start = -1
	)
	for i := 0; i < len(s); i++ {
		if !st.step(s[i]) {
			continue
		}
		switch s[i] {
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case closer:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				out = append(out, s[start:i+1])
				start = -1
			}
		}
	}
	return out
}

// FindKey returns the offset just past the ':' that follows the first string
// literal equal to key, at any nesting depth.
func FindKey(s, key string) (int, bool) {
	return findKey(s, key, -1)
}

// FindField is FindKey restricted to keys of the outermost object in s.
func FindField(s, key string) (int, bool) {
	return findKey(s, key, 1)
}

func findKey(s, key string, wantDepth int) (int, bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			lit, next, ok := readString(s, i)
			if !ok {
				return -1, false
			}
			i = next - 1
			if lit != key || (wantDepth >= 0 && depth != wantDepth) {
				continue
			}
			if j := skipSpace(s, next); j < len(s) && s[j] == ':' {
				return j + 1, true
			}
		}
	}
	return -1, false
}

// StringField reads the string value of key in the outermost object of obj.
func StringField(obj, key string) (string, bool) {
	pos, ok := FindField(obj, key)
	if !ok {
		return "", false
	}
	j := skipSpace(obj, pos)
	if j >= len(obj) || obj[j] != '"' {
		return "", false
	}
	v, _, ok := readString(obj, j)
	return v, ok
}

// StringArrayField reads the string entries of the array value of key in the
// outermost object of obj. Non-string entries are skipped.
func StringArrayField(obj, key string) ([]string, bool) {
	pos, ok := FindField(obj, key)
	if !ok {
		return nil, false
	}
	j := skipSpace(obj, pos)
	if j >= len(obj) || obj[j] != '[' {
		return nil, false
	}
	end, ok := BalancedSpan(obj, j)
	if !ok {
		return nil, false
	}

	inner := obj[j+1 : end]
	out := []string{}
	for i := 0; i < len(inner); i++ {
		if inner[i] != '"' {
			continue
		}
		v, next, ok := readString(inner, i)
		if !ok {
			break
		}
		out = append(out, v)
		i = next - 1
	}
	return out, true
}

// readString decodes the string literal opening at s[at] and returns it with
// the offset just past its closing quote.
func readString(s string, at int) (string, int, bool) {
	var b strings.Builder
	for i := at + 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			return b.String(), i + 1, true
		case '\\':
			if i+1 >= len(s) {
				return "", len(s), false
			}
			i++
			switch e := s[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'u':
				r, width := decodeUnicode(s, i+1)
				if width == 0 {
					b.WriteByte('u')
					continue
				}
				b.WriteRune(r)
				i += width
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", len(s), false
}

// decodeUnicode reads the hex digits after a \u escape, joining a following
// low surrogate when present. It returns the rune and the bytes consumed.
func decodeUnicode(s string, at int) (rune, int) {
	r, ok := hex4(s, at)
	if !ok {
		return 0, 0
	}
	if utf16.IsSurrogate(r) && at+10 <= len(s) && s[at+4] == '\\' && s[at+5] == 'u' {
		if low, ok := hex4(s, at+6); ok {
			if joined := utf16.DecodeRune(r, low); joined != unicode.ReplacementChar {
				return joined, 10
			}
		}
	}
	return r, 4
}

func hex4(s string, at int) (rune, bool) {
	if at+4 > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[at:at+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}
