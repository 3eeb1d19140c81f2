// Package ntriples implements the W3C RDF 1.2 N-Triples syntax: one triple
// per statement, absolute IRIs only, no directives. N-Quads delegates to
// this package and adds the graph label position.
package ntriples

import (
	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// Tokenize scans src with the N-Triples token catalog.
func Tokenize(src string) ([]grammar.Token, []*grammar.LexError) {
	return grammar.Tokenize(src, grammar.NTriplesRules())
}

// Parse builds the concrete syntax tree for a token stream. N-Triples has
// no recovery mode: the first syntax error ends the parse.
func Parse(toks []grammar.Token) (*grammar.Node, []*grammar.ParseError) {
	c := grammar.NewCursor(toks)
	g := NewGrammar(c)
	doc := grammar.NewNode(grammar.NodeDocument)
	for !c.AtEOF() {
		n, err := g.Triple()
		if err == nil {
			_, err = c.Expect(grammar.TokenDot)
		}
		if err != nil {
			return doc, c.Errors()
		}
		doc.Append(n)
	}
	return doc, c.Errors()
}

// Read evaluates a parsed document into triples.
func Read(doc *grammar.Node) ([]*rdf.Triple, error) {
	return NewReader().ReadDocument(doc)
}

// Decode parses a complete N-Triples document strictly.
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
