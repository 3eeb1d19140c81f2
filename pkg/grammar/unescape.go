package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeStringEscapes decodes character escapes (\t \b \n \r \f \" \' \\)
// and Unicode escapes in a string literal body (delimiters already
// stripped). The lexer has validated escape shapes, so failures here are
// limited to out-of-range code points.
func DecodeStringEscapes(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", fmt.Errorf("truncated escape sequence")
		}
		switch s[i+1] {
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case '"':
			b.WriteByte('"')
			i += 2
		case '\'':
			b.WriteByte('\'')
			i += 2
		case '\\':
			b.WriteByte('\\')
			i += 2
		case 'u', 'U':
			r, n, err := decodeUnicodeEscape(s[i:])
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += n
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", s[i+1])
		}
	}
	return b.String(), nil
}

// DecodeIRIEscapes decodes \uXXXX and \UXXXXXXXX inside an IRI reference
// body. Other backslash escapes are not valid in IRIs, and an escape may
// not encode a character the IRIREF production excludes.
func DecodeIRIEscapes(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+1 >= len(s) || (s[i+1] != 'u' && s[i+1] != 'U') {
			return "", fmt.Errorf("invalid escape sequence in IRI")
		}
		r, n, err := decodeUnicodeEscape(s[i:])
		if err != nil {
			return "", err
		}
		if iriForbidden(r) {
			return "", fmt.Errorf("escaped character U+%04X not allowed in an IRI", r)
		}
		b.WriteRune(r)
		i += n
	}
	return b.String(), nil
}

// iriForbidden reports the characters IRIREF excludes: controls, space and
// <>"{}|^`\.
func iriForbidden(r rune) bool {
	return r <= 0x20 || strings.ContainsRune("<>\"{}|^`\\", r)
}

// DecodeLocalEscapes removes the backslashes of PN_LOCAL escapes
// (prefixed-name local parts), leaving percent-encoded bytes untouched.
func DecodeLocalEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// decodeUnicodeEscape decodes one \uXXXX or \UXXXXXXXX sequence at the
// start of s, rejecting surrogates and code points past U+10FFFF.
func decodeUnicodeEscape(s string) (rune, int, error) {
	if len(s) < 2 {
		return 0, 0, fmt.Errorf("truncated Unicode escape")
	}
	digits := 4
	if s[1] == 'U' {
		digits = 8
	}
	end := 2 + digits
	if len(s) < end {
		return 0, 0, fmt.Errorf("truncated Unicode escape")
	}
	code, err := strconv.ParseInt(s[2:end], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid Unicode escape %q", s[:end])
	}
	if code >= 0xD800 && code <= 0xDFFF {
		return 0, 0, fmt.Errorf("surrogate code point U+%04X not allowed", code)
	}
	if code > 0x10FFFF {
		return 0, 0, fmt.Errorf("code point U+%X exceeds U+10FFFF", code)
	}
	return rune(code), end, nil
}
