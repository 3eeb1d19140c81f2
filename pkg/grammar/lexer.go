package grammar

import "unicode/utf8"

// Tokenize scans src left to right against an ordered rule set. At every
// position the first rule that matches wins. Skip rules (whitespace,
// comments) are recognized but not delivered. An unmatched character is
// recorded as a LexError and scanning resumes after it, so a single pass
// reports every lexical problem in the document.
//
// Tokenize is stateless: concurrent calls on different inputs are safe.
func Tokenize(src string, rules []Rule) ([]Token, []*LexError) {
	var tokens []Token
	var errs []*LexError

	pos := 0
	for pos < len(src) {
		matched := false
		for _, rule := range rules {
			end := rule.Match(src, pos)
			if end <= pos {
				continue
			}
			if !rule.Skip {
				tokens = append(tokens, Token{
					Kind:   rule.Kind,
					Image:  src[pos:end],
					Offset: pos,
				})
			}
			pos = end
			matched = true
			break
		}
		if matched {
			continue
		}

		r, size := utf8.DecodeRuneInString(src[pos:])
		if size == 0 {
			break
		}
		errs = append(errs, &LexError{Offset: pos, Char: r})
		pos += size
	}

	return tokens, errs
}
