package grammar

import (
	"strings"
	"unicode/utf8"
)

// MatchFunc attempts to match one token rule at src[pos]. It returns the
// end offset (exclusive) of the match, or -1 when the rule does not apply.
type MatchFunc func(src string, pos int) int

// Rule couples a token kind with its matcher. Rules are tried in declared
// order and the first match wins; ordering encodes precedence (e.g. '<<('
// must be tried before '<<', which must be tried before '<'). Longest
// match is deliberately not used.
type Rule struct {
	Kind  TokenKind
	Match MatchFunc
	Skip  bool // recognized but not delivered to the parser
}

// NTriplesRules is the ordered token catalog subset for N-Triples. Turtle
// abbreviations are absent on purpose: Turtle-only syntax in an N-Triples
// document fails to tokenize or to parse.
func NTriplesRules() []Rule {
	return []Rule{
		{Kind: TokenWhitespace, Match: matchWhitespace, Skip: true},
		{Kind: TokenComment, Match: matchComment, Skip: true},
		{Kind: TokenTripleTermOpen, Match: matchLiteral("<<(")},
		{Kind: TokenTripleTermClose, Match: matchLiteral(")>>")},
		{Kind: TokenIRIRefAbsolute, Match: matchIRIRefAbsolute},
		{Kind: TokenBlankNodeLabel, Match: matchBlankNodeLabel},
		{Kind: TokenStringQuote, Match: matchStringShort('"')},
		{Kind: TokenLangTag, Match: matchLangTag},
		{Kind: TokenDoubleCaret, Match: matchLiteral("^^")},
		{Kind: TokenDot, Match: matchLiteral(".")},
	}
}

// NQuadsRules is the ordered catalog subset for N-Quads; the graph label
// positions reuse the absolute IRI and blank node rules.
func NQuadsRules() []Rule {
	return NTriplesRules()
}

// TurtleRules is the ordered token catalog for Turtle.
func TurtleRules() []Rule {
	return []Rule{
		{Kind: TokenWhitespace, Match: matchWhitespace, Skip: true},
		{Kind: TokenComment, Match: matchComment, Skip: true},

		{Kind: TokenTripleTermOpen, Match: matchLiteral("<<(")},
		{Kind: TokenTripleTermClose, Match: matchLiteral(")>>")},
		{Kind: TokenReifiedOpen, Match: matchLiteral("<<")},
		{Kind: TokenReifiedClose, Match: matchLiteral(">>")},
		{Kind: TokenAnnotationOpen, Match: matchLiteral("{|")},
		{Kind: TokenAnnotationClose, Match: matchLiteral("|}")},
		{Kind: TokenIRIRef, Match: matchIRIRef},

		// @-keywords must precede the language tag rule, which also
		// starts with '@'.
		{Kind: TokenKeywordPrefix, Match: matchKeyword("@prefix", false)},
		{Kind: TokenKeywordBase, Match: matchKeyword("@base", false)},
		{Kind: TokenKeywordVersion, Match: matchKeyword("@version", false)},
		{Kind: TokenLangTag, Match: matchLangTag},

		{Kind: TokenSparqlPrefix, Match: matchKeyword("PREFIX", true)},
		{Kind: TokenSparqlBase, Match: matchKeyword("BASE", true)},
		{Kind: TokenSparqlVersion, Match: matchKeyword("VERSION", true)},
		{Kind: TokenKeywordTrue, Match: matchKeyword("true", false)},
		{Kind: TokenKeywordFalse, Match: matchKeyword("false", false)},
		{Kind: TokenKeywordA, Match: matchKeywordA},

		{Kind: TokenBlankNodeLabel, Match: matchBlankNodeLabel},
		{Kind: TokenAnon, Match: matchAnon},

		// Long string forms before short forms, so that `"""` is never
		// consumed as an empty short string followed by a quote.
		{Kind: TokenStringLongQuote, Match: matchStringLong('"')},
		{Kind: TokenStringLongSingleQuote, Match: matchStringLong('\'')},
		{Kind: TokenStringQuote, Match: matchStringShort('"')},
		{Kind: TokenStringSingleQuote, Match: matchStringShort('\'')},

		// Double before decimal before integer: '.5e0' must win over '.5',
		// which must win over the statement terminator '.'.
		{Kind: TokenDouble, Match: matchDouble},
		{Kind: TokenDecimal, Match: matchDecimal},
		{Kind: TokenInteger, Match: matchInteger},

		{Kind: TokenPNameLN, Match: matchPNameLN},
		{Kind: TokenPNameNS, Match: matchPNameNS},

		{Kind: TokenDoubleCaret, Match: matchLiteral("^^")},
		{Kind: TokenTilde, Match: matchLiteral("~")},
		{Kind: TokenDot, Match: matchLiteral(".")},
		{Kind: TokenSemicolon, Match: matchLiteral(";")},
		{Kind: TokenComma, Match: matchLiteral(",")},
		{Kind: TokenLBracket, Match: matchLiteral("[")},
		{Kind: TokenRBracket, Match: matchLiteral("]")},
		{Kind: TokenLParen, Match: matchLiteral("(")},
		{Kind: TokenRParen, Match: matchLiteral(")")},
	}
}

// TrigRules is the ordered token catalog for TriG: Turtle plus graph
// blocks.
func TrigRules() []Rule {
	rules := TurtleRules()
	out := make([]Rule, 0, len(rules)+3)
	for _, r := range rules {
		out = append(out, r)
		// GRAPH sits with the other case-insensitive keywords.
		if r.Kind == TokenSparqlVersion {
			out = append(out, Rule{Kind: TokenKeywordGraph, Match: matchKeyword("GRAPH", true)})
		}
	}
	out = append(out,
		Rule{Kind: TokenLBrace, Match: matchLiteral("{")},
		Rule{Kind: TokenRBrace, Match: matchLiteral("}")},
	)
	return out
}

// Character classes from the W3C Turtle grammar.

// isPNCharsBase reports PN_CHARS_BASE membership.
func isPNCharsBase(r rune) bool {
	return (r >= 'A' && r <= 'Z') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 0x00C0 && r <= 0x00D6) ||
		(r >= 0x00D8 && r <= 0x00F6) ||
		(r >= 0x00F8 && r <= 0x02FF) ||
		(r >= 0x0370 && r <= 0x037D) ||
		(r >= 0x037F && r <= 0x1FFF) ||
		(r >= 0x200C && r <= 0x200D) ||
		(r >= 0x2070 && r <= 0x218F) ||
		(r >= 0x2C00 && r <= 0x2FEF) ||
		(r >= 0x3001 && r <= 0xD7FF) ||
		(r >= 0xF900 && r <= 0xFDCF) ||
		(r >= 0xFDF0 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0xEFFFF)
}

// isPNCharsU reports PN_CHARS_U membership (PN_CHARS_BASE | '_').
func isPNCharsU(r rune) bool {
	return isPNCharsBase(r) || r == '_'
}

// isPNChars reports PN_CHARS membership.
func isPNChars(r rune) bool {
	return isPNCharsU(r) ||
		r == '-' ||
		(r >= '0' && r <= '9') ||
		r == 0x00B7 ||
		(r >= 0x0300 && r <= 0x036F) ||
		(r >= 0x203F && r <= 0x2040)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func matchWhitespace(src string, pos int) int {
	i := pos
	for i < len(src) {
		c := src[i]
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			break
		}
		i++
	}
	if i == pos {
		return -1
	}
	return i
}

func matchComment(src string, pos int) int {
	if src[pos] != '#' {
		return -1
	}
	i := pos + 1
	for i < len(src) && src[i] != '\n' && src[i] != '\r' {
		i++
	}
	return i
}

func matchLiteral(image string) MatchFunc {
	return func(src string, pos int) int {
		if strings.HasPrefix(src[pos:], image) {
			return pos + len(image)
		}
		return -1
	}
}

// matchKeyword matches a keyword followed by a token boundary: the next
// rune must not continue a prefixed name, so 'PREFIX:x' and '@prefixes'
// fall through to the name/langtag rules.
func matchKeyword(image string, caseInsensitive bool) MatchFunc {
	return func(src string, pos int) int {
		end := pos + len(image)
		if end > len(src) {
			return -1
		}
		part := src[pos:end]
		if caseInsensitive {
			if !strings.EqualFold(part, image) {
				return -1
			}
		} else if part != image {
			return -1
		}
		if end < len(src) {
			r, _ := utf8.DecodeRuneInString(src[end:])
			if isPNChars(r) || r == ':' {
				return -1
			}
		}
		return end
	}
}

// matchKeywordA matches the bare 'a' predicate abbreviation. A trailing
// '.' also blocks the keyword so that prefixed names like 'a.b:c' survive.
func matchKeywordA(src string, pos int) int {
	if src[pos] != 'a' {
		return -1
	}
	if pos+1 < len(src) {
		r, _ := utf8.DecodeRuneInString(src[pos+1:])
		if isPNChars(r) || r == ':' || r == '.' {
			return -1
		}
	}
	return pos + 1
}

// matchIRIRef matches <...>. Unescaped control characters, space, and
// "<>\"{}|^`\\ are forbidden; \uXXXX and \UXXXXXXXX escapes are permitted.
func matchIRIRef(src string, pos int) int {
	if src[pos] != '<' {
		return -1
	}
	return matchIRIRefBody(src, pos+1)
}

// matchIRIRefAbsolute additionally requires a scheme immediately after
// '<', rejecting relative references at the lexical level.
func matchIRIRefAbsolute(src string, pos int) int {
	if src[pos] != '<' {
		return -1
	}
	i := pos + 1
	for i < len(src) {
		c := src[i]
		if isASCIILetter(c) || isDigit(c) || c == '_' || c == '-' {
			i++
			continue
		}
		break
	}
	if i == pos+1 || i >= len(src) || src[i] != ':' {
		return -1
	}
	return matchIRIRefBody(src, i+1)
}

func matchIRIRefBody(src string, i int) int {
	for i < len(src) {
		c := src[i]
		switch {
		case c == '>':
			return i + 1
		case c == '\\':
			n := matchUnicodeEscape(src, i)
			if n < 0 {
				return -1
			}
			i = n
		case c <= 0x20 || c == '<' || c == '"' || c == '{' || c == '}' || c == '|' || c == '^' || c == '`':
			return -1
		default:
			i++
		}
	}
	return -1
}

// matchUnicodeEscape matches \uXXXX or \UXXXXXXXX starting at the
// backslash, returning the end offset.
func matchUnicodeEscape(src string, pos int) int {
	if pos+1 >= len(src) || src[pos] != '\\' {
		return -1
	}
	var digits int
	switch src[pos+1] {
	case 'u':
		digits = 4
	case 'U':
		digits = 8
	default:
		return -1
	}
	end := pos + 2 + digits
	if end > len(src) {
		return -1
	}
	for i := pos + 2; i < end; i++ {
		if !isHexDigit(src[i]) {
			return -1
		}
	}
	return end
}

// matchBlankNodeLabel matches _:label. The label may start with a digit
// and may contain dots, but must not end with one.
func matchBlankNodeLabel(src string, pos int) int {
	if pos+2 > len(src) || src[pos] != '_' || src[pos+1] != ':' {
		return -1
	}
	i := pos + 2
	r, size := utf8.DecodeRuneInString(src[i:])
	if size == 0 || (!isPNCharsU(r) && !(r >= '0' && r <= '9')) {
		return -1
	}
	i += size
	for i < len(src) {
		r, size = utf8.DecodeRuneInString(src[i:])
		if !isPNChars(r) && r != '.' {
			break
		}
		i += size
	}
	for i > pos+2 && src[i-1] == '.' {
		i--
	}
	return i
}

// matchAnon matches '[' WS* ']'.
func matchAnon(src string, pos int) int {
	if src[pos] != '[' {
		return -1
	}
	i := pos + 1
	for i < len(src) {
		c := src[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			i++
			continue
		}
		if c == ']' {
			return i + 1
		}
		return -1
	}
	return -1
}

// matchStringShort matches a single-line string literal delimited by q.
// Raw newlines are forbidden; character and Unicode escapes are validated
// here so malformed escapes surface as lexical errors.
func matchStringShort(q byte) MatchFunc {
	return func(src string, pos int) int {
		if src[pos] != q {
			return -1
		}
		i := pos + 1
		for i < len(src) {
			c := src[i]
			switch {
			case c == q:
				return i + 1
			case c == '\n' || c == '\r':
				return -1
			case c == '\\':
				n := matchStringEscape(src, i)
				if n < 0 {
					return -1
				}
				i = n
			default:
				i++
			}
		}
		return -1
	}
}

// matchStringLong matches a triple-quoted string. Runs of one or two
// quote characters are content; the first run of three or more closes the
// literal, with any surplus quotes belonging to the content.
func matchStringLong(q byte) MatchFunc {
	delim := strings.Repeat(string(q), 3)
	return func(src string, pos int) int {
		if !strings.HasPrefix(src[pos:], delim) {
			return -1
		}
		i := pos + 3
		for i < len(src) {
			c := src[i]
			switch {
			case c == q:
				run := i
				for run < len(src) && src[run] == q {
					run++
				}
				if run-i >= 3 {
					return run
				}
				i = run
			case c == '\\':
				n := matchStringEscape(src, i)
				if n < 0 {
					return -1
				}
				i = n
			default:
				i++
			}
		}
		return -1
	}
}

// matchStringEscape validates one escape sequence inside a string literal.
func matchStringEscape(src string, pos int) int {
	if pos+1 >= len(src) {
		return -1
	}
	switch src[pos+1] {
	case 't', 'b', 'n', 'r', 'f', '"', '\'', '\\':
		return pos + 2
	case 'u', 'U':
		return matchUnicodeEscape(src, pos)
	default:
		return -1
	}
}

// matchLangTag matches @tag with optional '-' subtags and an optional
// '--dir' base-direction suffix (RDF 1.2). The direction value itself is
// validated by the reader.
func matchLangTag(src string, pos int) int {
	if src[pos] != '@' {
		return -1
	}
	i := pos + 1
	start := i
	for i < len(src) && isASCIILetter(src[i]) {
		i++
	}
	if i == start {
		return -1
	}
	for i < len(src) && src[i] == '-' {
		if i+1 < len(src) && src[i+1] == '-' {
			break
		}
		j := i + 1
		for j < len(src) && (isASCIILetter(src[j]) || isDigit(src[j])) {
			j++
		}
		if j == i+1 {
			return i
		}
		i = j
	}
	if strings.HasPrefix(src[i:], "--") {
		j := i + 2
		for j < len(src) && isASCIILetter(src[j]) {
			j++
		}
		if j > i+2 {
			return j
		}
	}
	return i
}

func matchSign(src string, pos int) int {
	if pos < len(src) && (src[pos] == '+' || src[pos] == '-') {
		return pos + 1
	}
	return pos
}

func matchDigits(src string, pos int) int {
	i := pos
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	return i
}

func matchInteger(src string, pos int) int {
	i := matchSign(src, pos)
	end := matchDigits(src, i)
	if end == i {
		return -1
	}
	return end
}

func matchDecimal(src string, pos int) int {
	i := matchSign(src, pos)
	i = matchDigits(src, i)
	if i >= len(src) || src[i] != '.' {
		return -1
	}
	end := matchDigits(src, i+1)
	if end == i+1 {
		return -1
	}
	return end
}

func matchDouble(src string, pos int) int {
	i := matchSign(src, pos)
	digitsBefore := matchDigits(src, i)
	hasBefore := digitsBefore > i
	i = digitsBefore
	hasAfter := false
	if i < len(src) && src[i] == '.' {
		after := matchDigits(src, i+1)
		hasAfter = after > i+1
		i = after
	}
	if !hasBefore && !hasAfter {
		return -1
	}
	if i >= len(src) || (src[i] != 'e' && src[i] != 'E') {
		return -1
	}
	i = matchSign(src, i+1)
	end := matchDigits(src, i)
	if end == i {
		return -1
	}
	return end
}

// matchPNamePrefix matches an optional PN_PREFIX ending just before ':'.
// Returns the end offset (== pos for an empty prefix) or -1 when the text
// at pos cannot begin a prefix.
func matchPNamePrefix(src string, pos int) int {
	r, size := utf8.DecodeRuneInString(src[pos:])
	if size == 0 || !isPNCharsBase(r) {
		return pos
	}
	i := pos + size
	for i < len(src) {
		r, size = utf8.DecodeRuneInString(src[i:])
		if !isPNChars(r) && r != '.' {
			break
		}
		i += size
	}
	for i > pos && src[i-1] == '.' {
		i--
	}
	return i
}

// matchPNameLocal matches PN_LOCAL: names may start with digits or ':',
// contain %-encoded bytes and backslash escapes, and must not end with a
// bare '.'.
func matchPNameLocal(src string, pos int) int {
	i := pos
	n := matchLocalChar(src, i, true)
	if n < 0 {
		return -1
	}
	i = n
	for i < len(src) {
		n = matchLocalChar(src, i, false)
		if n < 0 {
			break
		}
		i = n
	}
	for i > pos && src[i-1] == '.' && !(i-2 >= pos && src[i-2] == '\\') {
		i--
	}
	if i == pos {
		return -1
	}
	return i
}

// matchLocalChar matches one PN_LOCAL element: a name rune, ':', '%XX',
// or a local escape. Dots are only valid in non-leading position.
func matchLocalChar(src string, pos int, leading bool) int {
	if pos >= len(src) {
		return -1
	}
	c := src[pos]
	switch {
	case c == ':':
		return pos + 1
	case c == '%':
		if pos+2 < len(src) && isHexDigit(src[pos+1]) && isHexDigit(src[pos+2]) {
			return pos + 3
		}
		return -1
	case c == '\\':
		if pos+1 < len(src) && isLocalEscapeChar(src[pos+1]) {
			return pos + 2
		}
		return -1
	case c == '.':
		if leading {
			return -1
		}
		return pos + 1
	}
	r, size := utf8.DecodeRuneInString(src[pos:])
	if leading {
		if isPNCharsU(r) || (r >= '0' && r <= '9') {
			return pos + size
		}
		return -1
	}
	if isPNChars(r) {
		return pos + size
	}
	return -1
}

func isLocalEscapeChar(b byte) bool {
	switch b {
	case '_', '~', '.', '-', '!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=', '/', '?', '#', '@', '%':
		return true
	}
	return false
}

// matchPNameLN matches prefix:local (the prefix may be empty).
func matchPNameLN(src string, pos int) int {
	i := matchPNamePrefix(src, pos)
	if i >= len(src) || src[i] != ':' {
		return -1
	}
	return matchPNameLocal(src, i+1)
}

// matchPNameNS matches prefix: with no local part.
func matchPNameNS(src string, pos int) int {
	i := matchPNamePrefix(src, pos)
	if i >= len(src) || src[i] != ':' {
		return -1
	}
	return i + 1
}
