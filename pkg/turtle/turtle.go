// Package turtle implements the W3C RDF 1.2 Turtle syntax: tokenization,
// recursive-descent parsing to a concrete syntax tree, and reading the tree
// into triples. The three stages are exposed separately so tooling can stop
// at tokens or at the tree; Decode runs the full strict pipeline.
package turtle

import (
	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// Tokenize scans src with the Turtle token catalog.
func Tokenize(src string) ([]grammar.Token, []*grammar.LexError) {
	return grammar.Tokenize(src, grammar.TurtleRules())
}

// ParseOption configures a Parse call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	recover bool
}

// WithRecovery makes Parse resynchronize at the next statement boundary
// after an error instead of stopping, collecting every syntax error in the
// document. The partial tree holds the statements that parsed cleanly.
func WithRecovery() ParseOption {
	return func(o *parseOptions) {
		o.recover = true
	}
}

// Parse builds the concrete syntax tree for a token stream. Without
// recovery the first error ends the parse.
func Parse(toks []grammar.Token, opts ...ParseOption) (*grammar.Node, []*grammar.ParseError) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	c := grammar.NewCursor(toks)
	if o.recover {
		c.EnableRecovery()
	}
	doc := NewGrammar(c).document()
	return doc, c.Errors()
}

// Read evaluates a parsed document into triples.
func Read(doc *grammar.Node) ([]*rdf.Triple, error) {
	return NewReader().ReadDocument(doc)
}

// Decode parses a complete Turtle document strictly: any lexical, syntax or
// reader error fails the whole document.
func Decode(src string) ([]*rdf.Triple, error) {
	toks, lexErrs := Tokenize(src)
	if len(lexErrs) > 0 {
		return nil, grammar.LexErrors(lexErrs)
	}
	doc, parseErrs := Parse(toks)
	if len(parseErrs) > 0 {
		return nil, grammar.ParseErrors(parseErrs)
	}
	return Read(doc)
}
