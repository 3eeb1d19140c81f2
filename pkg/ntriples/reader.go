package ntriples

import (
	"fmt"
	"strings"

	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// Reader turns a parsed document into triples. Blank node labels are
// scoped to the document: the same label always evaluates to the same
// blank node.
type Reader struct {
	labels map[string]*rdf.BlankNode
}

func NewReader() *Reader {
	return &Reader{labels: make(map[string]*rdf.BlankNode)}
}

func (r *Reader) ReadDocument(doc *grammar.Node) ([]*rdf.Triple, error) {
	var out []*rdf.Triple
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
		out = append(out, rdf.NewTriple(s, p, o))
	}
	return out, nil
}

// Term evaluates one term node. Position wrappers (subject, predicate,
// object, graph label) evaluate to their single child.
func (r *Reader) Term(n *grammar.Node) (rdf.Term, error) {
	switch n.Kind {
	case grammar.NodeSubject, grammar.NodePredicate, grammar.NodeObject, grammar.NodeGraphLabel:
		return r.Term(n.Children()[0])

	case grammar.NodeIRI:
		tok, _ := n.FirstToken()
		iri, err := grammar.DecodeIRIEscapes(tok.Image[1 : len(tok.Image)-1])
		if err != nil {
			return nil, &grammar.SemanticError{Msg: err.Error(), Offset: tok.Offset}
		}
		return rdf.NewNamedNode(iri), nil

	case grammar.NodeBlankNode:
		tok, _ := n.FirstToken()
		label := strings.TrimPrefix(tok.Image, "_:")
		if b, ok := r.labels[label]; ok {
			return b, nil
		}
		b := rdf.NewBlankNode(label)
		r.labels[label] = b
		return b, nil

	case grammar.NodeLiteral:
		return r.literalTerm(n)

	case grammar.NodeTripleTerm:
		children := n.Children()
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
		return rdf.NewTripleTerm(s, p, o), nil
	}
	return nil, fmt.Errorf("unexpected %s node in term position", n.Kind)
}

func (r *Reader) literalTerm(n *grammar.Node) (rdf.Term, error) {
	toks := n.Tokens()
	tok := toks[0]
	value, err := grammar.DecodeStringEscapes(tok.Image[1 : len(tok.Image)-1])
	if err != nil {
		return nil, &grammar.SemanticError{Msg: err.Error(), Offset: tok.Offset}
	}

	if len(toks) > 1 && toks[1].Kind == grammar.TokenLangTag {
		tag := toks[1].Image[1:]
		if i := strings.Index(tag, "--"); i >= 0 {
			lang, dir := tag[:i], tag[i+2:]
			if dir != "ltr" && dir != "rtl" {
				return nil, &grammar.SemanticError{
					Msg:    fmt.Sprintf("invalid base direction %q", dir),
					Offset: toks[1].Offset,
				}
			}
			return rdf.NewLiteralWithDirection(value, lang, dir), nil
		}
		return rdf.NewLiteralWithLanguage(value, tag), nil
	}

	if dt := n.Child(grammar.NodeIRI); dt != nil {
		dtTerm, err := r.Term(dt)
		if err != nil {
			return nil, err
		}
		return rdf.NewLiteralWithDatatype(value, dtTerm.(*rdf.NamedNode)), nil
	}
	return rdf.NewLiteral(value), nil
}
