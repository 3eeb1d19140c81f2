package trig

import (
	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/turtle"
)

// docParser drives the TriG document grammar. Everything below the block
// level is the Turtle grammar.
type docParser struct {
	c *grammar.Cursor
	g *turtle.Grammar
}

func parseDocument(c *grammar.Cursor) *grammar.Node {
	p := &docParser{c: c, g: turtle.NewGrammar(c)}
	doc := grammar.NewNode(grammar.NodeDocument)
	for !c.AtEOF() {
		n, err := p.statement()
		if err != nil {
			if !c.Recovering() {
				return doc
			}
			c.SyncTo(grammar.TokenDot, grammar.TokenRBrace)
			continue
		}
		doc.Append(n)
	}
	return doc
}

// statement parses a directive, a graph block or plain triples. A single
// graph label token followed by '{' opens a named block; any other leading
// term starts a triples statement.
func (p *docParser) statement() (*grammar.Node, error) {
	c := p.c
	switch {
	case p.g.AtDirective():
		return p.g.Directive()

	case c.At(grammar.TokenLBrace):
		return p.graphBlock(nil)

	case c.At(grammar.TokenKeywordGraph):
		c.Next()
		label, err := p.label()
		if err != nil {
			return nil, err
		}
		return p.graphBlock(label)

	case p.atLabel() && c.PeekAhead(1).Kind == grammar.TokenLBrace:
		label, err := p.label()
		if err != nil {
			return nil, err
		}
		return p.graphBlock(label)

	default:
		n, err := p.g.Triples()
		if err != nil {
			return nil, err
		}
		if _, err := c.Expect(grammar.TokenDot); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func (p *docParser) atLabel() bool {
	return p.c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS,
		grammar.TokenBlankNodeLabel, grammar.TokenAnon)
}

func (p *docParser) label() (*grammar.Node, error) {
	if p.c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon) {
		return p.g.BlankNode()
	}
	return p.g.IRI()
}

// graphBlock parses '{' (triples ('.' triples?)*)? '}'. The final '.'
// before '}' is optional.
func (p *docParser) graphBlock(label *grammar.Node) (*grammar.Node, error) {
	c := p.c
	c.Begin("graphBlock")
	defer c.End()

	n := grammar.NewNode(grammar.NodeGraphBlock)
	if label != nil {
		n.Append(label)
	}
	if _, err := c.Expect(grammar.TokenLBrace); err != nil {
		return nil, err
	}
	for !c.At(grammar.TokenRBrace) {
		if c.AtEOF() {
			return nil, c.Errorf("unterminated graph block")
		}
		t, err := p.g.Triples()
		if err != nil {
			return nil, err
		}
		n.Append(t)
		if _, ok := c.Accept(grammar.TokenDot); !ok {
			break
		}
	}
	if _, err := c.Expect(grammar.TokenRBrace); err != nil {
		return nil, err
	}
	return n, nil
}
