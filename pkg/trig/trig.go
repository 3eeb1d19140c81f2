// Package trig implements the W3C RDF 1.2 TriG syntax. TriG is Turtle plus
// graph blocks, so the parser and reader delegate every shared production
// to the turtle package and add block handling on top. Output is quads;
// statements outside any block land in the default graph.
package trig

import (
	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// Tokenize scans src with the TriG token catalog.
func Tokenize(src string) ([]grammar.Token, []*grammar.LexError) {
	return grammar.Tokenize(src, grammar.TrigRules())
}

// ParseOption configures a Parse call.
type ParseOption func(*parseOptions)

type parseOptions struct {
	recover bool
}

// WithRecovery makes Parse skip to the next statement or block boundary
// after an error instead of stopping.
func WithRecovery() ParseOption {
	return func(o *parseOptions) {
		o.recover = true
	}
}

// Parse builds the concrete syntax tree for a token stream.
func Parse(toks []grammar.Token, opts ...ParseOption) (*grammar.Node, []*grammar.ParseError) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	c := grammar.NewCursor(toks)
	if o.recover {
		c.EnableRecovery()
	}
	doc := parseDocument(c)
	return doc, c.Errors()
}

// Read evaluates a parsed document into quads.
func Read(doc *grammar.Node) ([]*rdf.Quad, error) {
	return NewReader().ReadDocument(doc)
}

// Decode parses a complete TriG document strictly.
func Decode(src string) ([]*rdf.Quad, error) {
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
