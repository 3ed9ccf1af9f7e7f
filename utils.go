package gradleprops

import (
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

// globMatch implements a glob matcher for property keys, treating the dot
// as the path separator so that e.g. "org.gradle.*" matches one segment.
func globMatch(pattern, s string) (bool, error) {
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return false, err
	}

	return g.Match(s), nil
}

// isComment reports whether a left-trimmed line is a properties comment.
// Both '#' and '!' introduce comments.
func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!")
}

// hasContinuation reports whether a logical line ends in an odd number of
// backslashes, i.e. the entry continues on the next natural line.
func hasContinuation(line string) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}

	return n%2 == 1
}

// splitKeyValue splits a logical properties line into its decoded key and
// value. The key terminates at the first unescaped '=', ':' or whitespace
// character. Whitespace around the separator is discarded. Everything after
// the separator is the value; a line without a separator is a key with an
// empty value.
//
// Valid examples:
// - org.gradle.daemon=true
// - cdvMinSdkVersion: 19
// - key value
// - lonely.key
func splitKeyValue(line string) (string, string) {
	sep := -1
	esc := false

scan:
	for i := 0; i < len(line); i++ {
		if esc {
			esc = false

			continue
		}
		switch line[i] {
		case '\\':
			esc = true
		case '=', ':', ' ', '\t', '\f':
			sep = i

			break scan
		}
	}

	if sep < 0 {
		return unescape(line), ""
	}

	key := line[:sep]

	// "Any white space after the key is skipped; if the first non-white
	// space character after the key is '=' or ':', then it is ignored and
	// any white space characters after it are also skipped."
	rest := strings.TrimLeft(line[sep:], " \t\f")
	if len(rest) > 0 && (rest[0] == '=' || rest[0] == ':') {
		rest = strings.TrimLeft(rest[1:], " \t\f")
	}

	return unescape(key), unescape(rest)
}

// unescape decodes properties-format escape sequences.
//
// The following escape sequences are recognized:
// \n for newline, \t for tab, \f for form feed, \r for carriage return
// and \uXXXX for a unicode code point. A backslash before any other
// character drops the backslash (e.g. \= becomes =, \: becomes :).
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)

			continue
		}

		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 < len(s) {
				if r, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(r))
					i += 4

					continue
				}
			}
			// malformed \u sequence, keep the character
			b.WriteByte('u')
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

// escapeKey encodes a key for serialization. Separator characters, comment
// markers, backslashes and control characters must be escaped so the key
// survives a parse round-trip.
func escapeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))

	for _, r := range key {
		switch r {
		case ' ', '=', ':', '#', '!', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// escapeValue encodes a value for serialization. Only a leading space,
// backslashes and control characters need escaping; embedded spaces, '='
// and ':' are literal once the key has been consumed.
func escapeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	for i, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case ' ':
			if i == 0 {
				b.WriteString(`\ `)
			} else {
				b.WriteByte(' ')
			}
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
