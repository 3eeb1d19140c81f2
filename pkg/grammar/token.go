// Package grammar holds the lexical and syntactic core shared by the
// N-Triples, N-Quads, Turtle and TriG dialects: the ordered token catalog,
// the lexer, the concrete syntax tree, the parser cursor and the structured
// error types. Dialect packages compose these into complete parsers.
package grammar

import "fmt"

// TokenKind identifies a lexical category from the shared token catalog.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota

	// Skipped kinds, recognized but never delivered to the parser
	TokenWhitespace
	TokenComment

	// IRIs and names
	TokenIRIRef         // <...>, relative references permitted
	TokenIRIRefAbsolute // <scheme:...>, N-Triples/N-Quads variant
	TokenPNameLN        // prefix:local
	TokenPNameNS        // prefix: (no local part)
	TokenBlankNodeLabel // _:label
	TokenAnon           // [ ] with only whitespace inside

	// String literals, four forms
	TokenStringQuote           // "..."
	TokenStringSingleQuote     // '...'
	TokenStringLongQuote       // """..."""
	TokenStringLongSingleQuote // '''...'''

	// Literal suffixes and numbers
	TokenLangTag // @tag, optionally with a --ltr/--rtl direction suffix
	TokenInteger
	TokenDecimal
	TokenDouble

	// Keywords. The @-forms are case-sensitive, the SPARQL forms are not.
	TokenKeywordPrefix  // @prefix
	TokenKeywordBase    // @base
	TokenKeywordVersion // @version
	TokenSparqlPrefix   // PREFIX
	TokenSparqlBase     // BASE
	TokenSparqlVersion  // VERSION
	TokenKeywordGraph   // GRAPH (TriG)
	TokenKeywordA       // a
	TokenKeywordTrue    // true
	TokenKeywordFalse   // false

	// Punctuation
	TokenDot
	TokenSemicolon
	TokenComma
	TokenLBracket
	TokenRBracket
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenDoubleCaret     // ^^
	TokenTilde           // ~
	TokenReifiedOpen     // <<
	TokenReifiedClose    // >>
	TokenTripleTermOpen  // <<(
	TokenTripleTermClose // )>>
	TokenAnnotationOpen  // {|
	TokenAnnotationClose // |}
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:                   "end of input",
	TokenWhitespace:            "whitespace",
	TokenComment:               "comment",
	TokenIRIRef:                "IRI reference",
	TokenIRIRefAbsolute:        "absolute IRI reference",
	TokenPNameLN:               "prefixed name",
	TokenPNameNS:               "prefix name",
	TokenBlankNodeLabel:        "blank node label",
	TokenAnon:                  "anonymous blank node",
	TokenStringQuote:           "string literal",
	TokenStringSingleQuote:     "string literal",
	TokenStringLongQuote:       "long string literal",
	TokenStringLongSingleQuote: "long string literal",
	TokenLangTag:               "language tag",
	TokenInteger:               "integer",
	TokenDecimal:               "decimal",
	TokenDouble:                "double",
	TokenKeywordPrefix:         "'@prefix'",
	TokenKeywordBase:           "'@base'",
	TokenKeywordVersion:        "'@version'",
	TokenSparqlPrefix:          "'PREFIX'",
	TokenSparqlBase:            "'BASE'",
	TokenSparqlVersion:         "'VERSION'",
	TokenKeywordGraph:          "'GRAPH'",
	TokenKeywordA:              "'a'",
	TokenKeywordTrue:           "'true'",
	TokenKeywordFalse:          "'false'",
	TokenDot:                   "'.'",
	TokenSemicolon:             "';'",
	TokenComma:                 "','",
	TokenLBracket:              "'['",
	TokenRBracket:              "']'",
	TokenLParen:                "'('",
	TokenRParen:                "')'",
	TokenLBrace:                "'{'",
	TokenRBrace:                "'}'",
	TokenDoubleCaret:           "'^^'",
	TokenTilde:                 "'~'",
	TokenReifiedOpen:           "'<<'",
	TokenReifiedClose:          "'>>'",
	TokenTripleTermOpen:        "'<<('",
	TokenTripleTermClose:       "')>>'",
	TokenAnnotationOpen:        "'{|'",
	TokenAnnotationClose:       "'|}'",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", k)
}

// Token is one lexeme: its catalog kind, the raw source text (image) and
// the byte offset it starts at. Tokens are immutable and live for one
// parse call.
type Token struct {
	Kind   TokenKind
	Image  string
	Offset int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Image)
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Image)
}
