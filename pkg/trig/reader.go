package trig

import (
	"fmt"

	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
	"github.com/aleksaelezovic/rdfkit/pkg/turtle"
)

// Reader evaluates a TriG document into quads. Directives, the blank node
// scope and the base IRI are document-wide, shared across graph blocks
// through one underlying Turtle reader.
type Reader struct {
	tr *turtle.Reader
}

func NewReader() *Reader {
	return &Reader{tr: turtle.NewReader()}
}

// SetBase supplies the document's base IRI.
func (r *Reader) SetBase(iri string) {
	r.tr.SetBase(iri)
}

func (r *Reader) ReadDocument(doc *grammar.Node) ([]*rdf.Quad, error) {
	var out []*rdf.Quad
	defaultGraph := rdf.NewDefaultGraph()

	for _, stmt := range doc.Children() {
		switch stmt.Kind {
		case grammar.NodePrefixDecl, grammar.NodeBaseDecl, grammar.NodeVersionDecl:
			if err := r.tr.Directive(stmt); err != nil {
				return nil, err
			}

		case grammar.NodeTriples:
			ts, err := r.tr.Triples(stmt)
			if err != nil {
				return nil, err
			}
			for _, t := range ts {
				out = append(out, t.AsQuad())
			}

		case grammar.NodeGraphBlock:
			// an unlabeled block is the default graph
			var graph rdf.Term = defaultGraph
			for _, child := range stmt.Children() {
				switch child.Kind {
				case grammar.NodeIRI, grammar.NodeBlankNode:
					g, err := r.tr.GraphTerm(child)
					if err != nil {
						return nil, err
					}
					graph = g
				case grammar.NodeTriples:
					ts, err := r.tr.Triples(child)
					if err != nil {
						return nil, err
					}
					for _, t := range ts {
						out = append(out, rdf.NewQuad(t.Subject, t.Predicate, t.Object, graph))
					}
				}
			}

		default:
			return nil, fmt.Errorf("unexpected %s statement", stmt.Kind)
		}
	}
	return out, nil
}
