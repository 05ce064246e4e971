// Package normalize cleans SQL text before it is parsed.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Whitespace collapses all whitespace sequences to a single space
// and trims leading/trailing whitespace.
func Whitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// SQL prepares statement text for the parser:
//   - ordinary comments are removed; /*+ ... */ hints are kept
//   - full-width punctuation and the ideographic space become ASCII
//   - runs of whitespace become one space
//   - trailing semicolons and whitespace are trimmed
//
// Text inside quotes is copied unchanged.
func SQL(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false

	writeSpace := func() {
		if sb.Len() > 0 {
			space = true
		}
	}
	flush := func() {
		if space {
			sb.WriteByte(' ')
			space = false
		}
	}

	for i := 0; i < len(s); {
		switch {
		case s[i] == '\'' || s[i] == '"' || s[i] == '`':
			end := quoted(s, i)
			flush()
			sb.WriteString(s[i:end])
			i = end
			continue
		case strings.HasPrefix(s[i:], "/*+"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				flush()
				sb.WriteString(s[i:])
				i = len(s)
				continue
			}
			end += i + 4
			flush()
			sb.WriteString(s[i:end])
			i = end
			continue
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				i = len(s)
			} else {
				i += end + 4
			}
			writeSpace()
			continue
		case s[i] == '#' || (strings.HasPrefix(s[i:], "--") && (i+2 == len(s) || isSpace(s[i+2]))):
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				i = len(s)
			} else {
				i += end
			}
			writeSpace()
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		r = fold(r)
		if unicode.IsSpace(r) {
			writeSpace()
			continue
		}
		flush()
		sb.WriteRune(r)
	}

	return strings.TrimRight(sb.String(), "; ")
}

// quoted returns the offset just past the quoted text starting at s[i]. A
// doubled quote continues the text, and backslash escapes apply to strings
// but not to backquoted names. Unterminated text runs to the end.
func quoted(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch {
		case s[j] == '\\' && q != '`':
			j++
		case s[j] == q:
			if j+1 < len(s) && s[j+1] == q {
				j++
				continue
			}
			return j + 1
		}
	}
	return len(s)
}

// fold maps full-width punctuation and spaces to their ASCII forms. Letters,
// digits and wide CJK characters are left alone.
func fold(r rune) rune {
	if r < unicode.MaxASCII {
		return r
	}
	f := []rune(width.Fold.String(string(r)))
	if len(f) != 1 || f[0] > unicode.MaxASCII {
		return r
	}
	if unicode.IsPunct(f[0]) || unicode.IsSymbol(f[0]) || unicode.IsSpace(f[0]) {
		return f[0]
	}
	return r
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
