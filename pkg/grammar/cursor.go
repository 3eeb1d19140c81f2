package grammar

import "fmt"

// Cursor is the parser's view of a token stream: lookahead, consumption,
// the rule-invocation stack for diagnostics, and error accumulation for
// the recovering parse mode. One cursor serves exactly one parse call.
type Cursor struct {
	toks    []Token
	pos     int
	stack   []string
	errs    []*ParseError
	recover bool
	eof     Token
}

func NewCursor(toks []Token) *Cursor {
	eofOffset := 0
	if len(toks) > 0 {
		eofOffset = toks[len(toks)-1].End()
	}
	return &Cursor{
		toks: toks,
		eof:  Token{Kind: TokenEOF, Offset: eofOffset},
	}
}

// EnableRecovery switches the cursor into error-accumulation mode: the
// owning parser is expected to resynchronize after a failed statement
// instead of aborting.
func (c *Cursor) EnableRecovery() {
	c.recover = true
}

// Recovering reports whether error recovery is enabled.
func (c *Cursor) Recovering() bool {
	return c.recover
}

// Peek returns the current token without consuming it. Past the end it
// returns a synthetic EOF token.
func (c *Cursor) Peek() Token {
	if c.pos >= len(c.toks) {
		return c.eof
	}
	return c.toks[c.pos]
}

// PeekAhead returns the token n positions past the current one.
func (c *Cursor) PeekAhead(n int) Token {
	if c.pos+n >= len(c.toks) {
		return c.eof
	}
	return c.toks[c.pos+n]
}

// At reports whether the current token has one of the given kinds.
func (c *Cursor) At(kinds ...TokenKind) bool {
	cur := c.Peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// AtEOF reports whether the stream is exhausted.
func (c *Cursor) AtEOF() bool {
	return c.pos >= len(c.toks)
}

// Next consumes and returns the current token.
func (c *Cursor) Next() Token {
	tok := c.Peek()
	if c.pos < len(c.toks) {
		c.pos++
	}
	return tok
}

// Accept consumes the current token if it has the given kind.
func (c *Cursor) Accept(kind TokenKind) (Token, bool) {
	if c.Peek().Kind == kind {
		return c.Next(), true
	}
	return Token{}, false
}

// Expect consumes a token of the given kind or records and returns a
// ParseError naming it.
func (c *Cursor) Expect(kind TokenKind) (Token, error) {
	if tok, ok := c.Accept(kind); ok {
		return tok, nil
	}
	return Token{}, c.Errorf("expected %s", kind)
}

// Begin pushes a rule name onto the invocation stack; End pops it. Every
// grammar production brackets its body with the pair.
func (c *Cursor) Begin(rule string) {
	c.stack = append(c.stack, rule)
}

func (c *Cursor) End() {
	c.stack = c.stack[:len(c.stack)-1]
}

// Errorf records a ParseError at the current token, capturing the rule
// stack, and returns it.
func (c *Cursor) Errorf(format string, args ...any) error {
	stack := make([]string, len(c.stack))
	copy(stack, c.stack)
	err := &ParseError{
		RuleStack: stack,
		Token:     c.Peek(),
		Msg:       fmt.Sprintf(format, args...),
	}
	c.errs = append(c.errs, err)
	return err
}

// Errors returns every error recorded during the parse.
func (c *Cursor) Errors() []*ParseError {
	return c.errs
}

// SyncTo discards tokens until one of the given kinds is found, consuming
// it, or until EOF. Used by the recovering parse mode to resume at the
// next statement boundary.
func (c *Cursor) SyncTo(kinds ...TokenKind) {
	for !c.AtEOF() {
		tok := c.Next()
		for _, k := range kinds {
			if tok.Kind == k {
				return
			}
		}
	}
}
