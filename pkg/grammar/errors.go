package grammar

import (
	"fmt"
	"strings"
)

// LexError records a character sequence no catalog rule could match.
// Non-fatal by default: the lexer skips the character and continues, and
// callers decide whether a non-empty error list aborts the parse.
type LexError struct {
	Offset int
	Char   rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Char, e.Offset)
}

// LexErrors is a non-empty list of lexical errors usable as a single
// error value at a strict-mode boundary.
type LexErrors []*LexError

func (e LexErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more lexical errors)", e[0].Error(), len(e)-1)
}

// ParseError records a production mismatch: the rule-invocation stack at
// the point of failure and the offending token.
type ParseError struct {
	RuleStack []string
	Token     Token
	Msg       string
}

func (e *ParseError) Error() string {
	rule := ""
	if len(e.RuleStack) > 0 {
		rule = fmt.Sprintf(" in %s", strings.Join(e.RuleStack, "/"))
	}
	return fmt.Sprintf("%s at offset %d: got %s%s", e.Msg, e.Token.Offset, e.Token, rule)
}

// ParseErrors is an accumulated error list from a recovering parse.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more syntax errors)", e[0].Error(), len(e)-1)
}

// UndefinedPrefixError reports a prefixed name whose prefix has no active
// binding. Distinguished from generic parse errors so callers can surface
// the prefix and the exact offending token.
type UndefinedPrefixError struct {
	Prefix string
	Token  Token
}

func (e *UndefinedPrefixError) Error() string {
	return fmt.Sprintf("undefined prefix %q in %s at offset %d", e.Prefix, e.Token, e.Token.Offset)
}

// SemanticError reports a reader-level problem: a second base IRI, a
// relative reference with no base, or a CST shape that should have been
// impossible. Always fatal; the reader never emits quads past one.
type SemanticError struct {
	Msg    string
	Offset int
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}
