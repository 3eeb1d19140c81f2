// Package nquads implements the W3C RDF 1.2 N-Quads syntax: N-Triples with
// an optional graph label before the terminating '.'. Everything below the
// statement level is the ntriples package.
package nquads

import (
	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/ntriples"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// Tokenize scans src with the N-Quads token catalog.
func Tokenize(src string) ([]grammar.Token, []*grammar.LexError) {
	return grammar.Tokenize(src, grammar.NQuadsRules())
}

// Parse builds the concrete syntax tree for a token stream. Like N-Triples
// there is no recovery mode.
func Parse(toks []grammar.Token) (*grammar.Node, []*grammar.ParseError) {
	c := grammar.NewCursor(toks)
	g := ntriples.NewGrammar(c)
	doc := grammar.NewNode(grammar.NodeDocument)
	for !c.AtEOF() {
		n, err := statement(c, g)
		if err != nil {
			return doc, c.Errors()
		}
		doc.Append(n)
	}
	return doc, c.Errors()
}

// statement parses subject predicate object graphLabel? '.'.
func statement(c *grammar.Cursor, g *ntriples.Grammar) (*grammar.Node, error) {
	n, err := g.Triple()
	if err != nil {
		return nil, err
	}
	if c.At(grammar.TokenIRIRefAbsolute, grammar.TokenBlankNodeLabel) {
		c.Begin("graphLabel")
		gl := grammar.NewNode(grammar.NodeGraphLabel)
		inner := grammar.NodeIRI
		if c.At(grammar.TokenBlankNodeLabel) {
			inner = grammar.NodeBlankNode
		}
		term := grammar.NewNode(inner)
		term.AppendToken(c.Next())
		gl.Append(term)
		n.Append(gl)
		c.End()
	}
	if _, err := c.Expect(grammar.TokenDot); err != nil {
		return nil, err
	}
	return n, nil
}

// Read evaluates a parsed document into quads. A statement without a graph
// label lands in the default graph.
func Read(doc *grammar.Node) ([]*rdf.Quad, error) {
	r := ntriples.NewReader()
	defaultGraph := rdf.NewDefaultGraph()

	var out []*rdf.Quad
	for _, stmt := range doc.Children() {
		children := stmt.Children()
		s, err := r.Term(children[0])
		if err != nil {
			return nil, err
		}
		p, err := r.Term(children[1])
		if err != nil {
			return nil, err
		}
		o, err := r.Term(children[2])
		if err != nil {
			return nil, err
		}
		var graph rdf.Term = defaultGraph
		if len(children) > 3 {
			graph, err = r.Term(children[3])
			if err != nil {
				return nil, err
			}
		}
		out = append(out, rdf.NewQuad(s, p, o, graph))
	}
	return out, nil
}

// Decode parses a complete N-Quads document strictly.
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
