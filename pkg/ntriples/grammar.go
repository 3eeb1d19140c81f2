package ntriples

import (
	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
)

// Grammar is the recursive-descent parser for the N-Triples productions.
// The position parsers are exported for the N-Quads grammar.
type Grammar struct {
	c *grammar.Cursor
}

func NewGrammar(c *grammar.Cursor) *Grammar {
	return &Grammar{c: c}
}

// Triple parses subject predicate object, stopping before the '.'.
func (g *Grammar) Triple() (*grammar.Node, error) {
	c := g.c
	c.Begin("triple")
	defer c.End()

	n := grammar.NewNode(grammar.NodeTriples)
	subj, err := g.Subject()
	if err != nil {
		return nil, err
	}
	n.Append(subj)

	pred, err := g.Predicate()
	if err != nil {
		return nil, err
	}
	n.Append(pred)

	obj, err := g.Object()
	if err != nil {
		return nil, err
	}
	n.Append(obj)
	return n, nil
}

// Subject parses an IRI or blank node label.
func (g *Grammar) Subject() (*grammar.Node, error) {
	c := g.c
	c.Begin("subject")
	defer c.End()

	n := grammar.NewNode(grammar.NodeSubject)
	switch {
	case c.At(grammar.TokenIRIRefAbsolute):
		n.Append(g.iri())
	case c.At(grammar.TokenBlankNodeLabel):
		n.Append(g.blankNode())
	case c.At(grammar.TokenStringQuote):
		return nil, c.Errorf("a literal cannot be used as a subject")
	case c.At(grammar.TokenTripleTermOpen):
		return nil, c.Errorf("a triple term can only appear in the object position")
	default:
		return nil, c.Errorf("expected subject")
	}
	return n, nil
}

// Predicate parses an IRI.
func (g *Grammar) Predicate() (*grammar.Node, error) {
	c := g.c
	c.Begin("predicate")
	defer c.End()

	if !c.At(grammar.TokenIRIRefAbsolute) {
		return nil, c.Errorf("expected predicate IRI")
	}
	n := grammar.NewNode(grammar.NodePredicate)
	n.Append(g.iri())
	return n, nil
}

// Object parses an IRI, blank node label, literal or triple term.
func (g *Grammar) Object() (*grammar.Node, error) {
	c := g.c
	c.Begin("object")
	defer c.End()

	n := grammar.NewNode(grammar.NodeObject)
	switch {
	case c.At(grammar.TokenIRIRefAbsolute):
		n.Append(g.iri())
	case c.At(grammar.TokenBlankNodeLabel):
		n.Append(g.blankNode())
	case c.At(grammar.TokenStringQuote):
		lit, err := g.literal()
		if err != nil {
			return nil, err
		}
		n.Append(lit)
	case c.At(grammar.TokenTripleTermOpen):
		tt, err := g.tripleTerm()
		if err != nil {
			return nil, err
		}
		n.Append(tt)
	default:
		return nil, c.Errorf("expected object")
	}
	return n, nil
}

func (g *Grammar) literal() (*grammar.Node, error) {
	c := g.c
	c.Begin("literal")
	defer c.End()

	n := grammar.NewNode(grammar.NodeLiteral)
	n.AppendToken(c.Next())
	if lang, ok := c.Accept(grammar.TokenLangTag); ok {
		n.AppendToken(lang)
	} else if _, ok := c.Accept(grammar.TokenDoubleCaret); ok {
		if !c.At(grammar.TokenIRIRefAbsolute) {
			return nil, c.Errorf("expected datatype IRI")
		}
		n.Append(g.iri())
	}
	return n, nil
}

// tripleTerm parses '<<(' subject predicate object ')>>'. The object may be
// a nested triple term, the subject may not.
func (g *Grammar) tripleTerm() (*grammar.Node, error) {
	c := g.c
	c.Begin("tripleTerm")
	defer c.End()

	if _, err := c.Expect(grammar.TokenTripleTermOpen); err != nil {
		return nil, err
	}
	n := grammar.NewNode(grammar.NodeTripleTerm)

	subj, err := g.Subject()
	if err != nil {
		return nil, err
	}
	n.Append(subj)

	pred, err := g.Predicate()
	if err != nil {
		return nil, err
	}
	n.Append(pred)

	obj, err := g.Object()
	if err != nil {
		return nil, err
	}
	n.Append(obj)

	if _, err := c.Expect(grammar.TokenTripleTermClose); err != nil {
		return nil, err
	}
	return n, nil
}

func (g *Grammar) iri() *grammar.Node {
	n := grammar.NewNode(grammar.NodeIRI)
	n.AppendToken(g.c.Next())
	return n
}

func (g *Grammar) blankNode() *grammar.Node {
	n := grammar.NewNode(grammar.NodeBlankNode)
	n.AppendToken(g.c.Next())
	return n
}
