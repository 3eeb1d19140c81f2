package turtle

import (
	"fmt"
	"strings"

	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// Reader turns a parsed document into triples. It owns the document-scoped
// state: the namespace table, the base IRI and the blank node label scope.
// TriG wraps it to evaluate graph blocks against the same state.
type Reader struct {
	namespaces map[string]string
	base       string
	baseSet    bool
	// set by a base directive, as opposed to SetBase; at most one allowed
	baseDeclared bool
	labels       map[string]*rdf.BlankNode
	// every allocated blank node ID, document-labeled or generated;
	// freshBlank and blankFromToken keep the two namespaces disjoint
	used      map[string]bool
	anonCount int
}

func NewReader() *Reader {
	return &Reader{
		namespaces: make(map[string]string),
		labels:     make(map[string]*rdf.BlankNode),
		used:       make(map[string]bool),
	}
}

// SetBase supplies the document's base IRI, typically its retrieval IRI.
// A base directive in the document still counts as the first declaration
// and replaces it.
func (r *Reader) SetBase(iri string) {
	r.base = iri
	r.baseSet = true
}

// ReadDocument evaluates every statement of a Turtle document in order.
// Directive and reader errors are fatal: nothing parsed after the failure
// is returned.
func (r *Reader) ReadDocument(doc *grammar.Node) ([]*rdf.Triple, error) {
	var out []*rdf.Triple
	for _, stmt := range doc.Children() {
		switch stmt.Kind {
		case grammar.NodePrefixDecl, grammar.NodeBaseDecl, grammar.NodeVersionDecl:
			if err := r.Directive(stmt); err != nil {
				return nil, err
			}
		case grammar.NodeTriples:
			ts, err := r.Triples(stmt)
			if err != nil {
				return nil, err
			}
			out = append(out, ts...)
		default:
			return nil, fmt.Errorf("unexpected %s statement", stmt.Kind)
		}
	}
	return out, nil
}

// Directive applies a prefix, base or version declaration. A prefix may be
// redeclared; the base IRI may be set at most once. Version declarations
// are validated by the grammar and have no further effect.
func (r *Reader) Directive(n *grammar.Node) error {
	switch n.Kind {
	case grammar.NodePrefixDecl:
		toks := n.Tokens()
		prefix := strings.TrimSuffix(toks[0].Image, ":")
		iri, err := r.iriFromToken(toks[1])
		if err != nil {
			return err
		}
		r.namespaces[prefix] = iri
	case grammar.NodeBaseDecl:
		tok, _ := n.FirstToken()
		if r.baseDeclared {
			return &grammar.SemanticError{Msg: "base IRI already set", Offset: tok.Offset}
		}
		iri, err := r.iriFromToken(tok)
		if err != nil {
			return err
		}
		r.base = iri
		r.baseSet = true
		r.baseDeclared = true
	}
	return nil
}

// Triples evaluates one triples statement: the subject triples first (a
// collection or property list subject can itself emit), then the
// predicate-object list.
func (r *Reader) Triples(n *grammar.Node) ([]*rdf.Triple, error) {
	var acc []*rdf.Triple
	children := n.Children()
	if len(children) == 0 {
		return nil, fmt.Errorf("empty triples statement")
	}

	first := children[0]
	if first.Kind == grammar.NodeSubject {
		first = first.Children()[0]
	}
	subj, err := r.term(first, &acc)
	if err != nil {
		return nil, err
	}

	if pol := n.Child(grammar.NodePredicateObjectList); pol != nil {
		if err := r.predicateObjects(subj, pol, &acc); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// GraphTerm evaluates a graph label node: an iri or a blank node.
func (r *Reader) GraphTerm(n *grammar.Node) (rdf.Term, error) {
	switch n.Kind {
	case grammar.NodeIRI:
		tok, _ := n.FirstToken()
		iri, err := r.iriFromToken(tok)
		if err != nil {
			return nil, err
		}
		return rdf.NewNamedNode(iri), nil
	case grammar.NodeBlankNode:
		tok, _ := n.FirstToken()
		return r.blankFromToken(tok), nil
	}
	return nil, fmt.Errorf("unexpected %s as graph label", n.Kind)
}

func (r *Reader) predicateObjects(subj rdf.Term, pol *grammar.Node, acc *[]*rdf.Triple) error {
	var pred rdf.Term
	for _, child := range pol.Children() {
		switch child.Kind {
		case grammar.NodeVerb:
			p, err := r.verbTerm(child)
			if err != nil {
				return err
			}
			pred = p
		case grammar.NodeObject:
			if err := r.object(subj, pred, child, acc); err != nil {
				return err
			}
		}
	}
	return nil
}

// object asserts the base triple, then evaluates the object's reifier and
// annotation tail. Each reifier asserts one rdf:reifies triple; an
// annotation block attaches to the reifier named immediately before it, or
// to a fresh one.
func (r *Reader) object(subj, pred rdf.Term, n *grammar.Node, acc *[]*rdf.Triple) error {
	children := n.Children()
	obj, err := r.term(children[0], acc)
	if err != nil {
		return err
	}
	*acc = append(*acc, rdf.NewTriple(subj, pred, obj))

	var pending rdf.Term
	for _, extra := range children[1:] {
		switch extra.Kind {
		case grammar.NodeReifier:
			reif, err := r.reifierTerm(extra)
			if err != nil {
				return err
			}
			tt := rdf.NewTripleTerm(subj, pred, obj)
			*acc = append(*acc, rdf.NewTriple(reif, rdf.NewNamedNode(rdf.RDFReifies), tt))
			pending = reif
		case grammar.NodeAnnotation:
			target := pending
			if target == nil {
				target = r.freshBlank()
				tt := rdf.NewTripleTerm(subj, pred, obj)
				*acc = append(*acc, rdf.NewTriple(target, rdf.NewNamedNode(rdf.RDFReifies), tt))
			}
			pending = nil
			pol := extra.Child(grammar.NodePredicateObjectList)
			if err := r.predicateObjects(target, pol, acc); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reader) term(n *grammar.Node, acc *[]*rdf.Triple) (rdf.Term, error) {
	switch n.Kind {
	case grammar.NodeIRI:
		tok, _ := n.FirstToken()
		iri, err := r.iriFromToken(tok)
		if err != nil {
			return nil, err
		}
		return rdf.NewNamedNode(iri), nil

	case grammar.NodeBlankNode:
		tok, _ := n.FirstToken()
		return r.blankFromToken(tok), nil

	case grammar.NodeLiteral:
		return r.literalTerm(n)

	case grammar.NodeCollection:
		return r.collection(n, acc)

	case grammar.NodeBlankNodePropertyList:
		b := r.freshBlank()
		pol := n.Child(grammar.NodePredicateObjectList)
		if err := r.predicateObjects(b, pol, acc); err != nil {
			return nil, err
		}
		return b, nil

	case grammar.NodeTripleTerm:
		return r.tripleTerm(n, acc)

	case grammar.NodeReifiedTriple:
		return r.reifiedTriple(n, acc)
	}
	return nil, fmt.Errorf("unexpected %s node in term position", n.Kind)
}

// tripleTerm builds an unasserted triple term. Its components never emit
// triples themselves: the grammar restricts them to iris, blank nodes,
// literals and nested triple terms.
func (r *Reader) tripleTerm(n *grammar.Node, acc *[]*rdf.Triple) (rdf.Term, error) {
	children := n.Children()
	s, err := r.term(children[0], acc)
	if err != nil {
		return nil, err
	}
	p, err := r.verbTerm(children[1])
	if err != nil {
		return nil, err
	}
	o, err := r.term(children[2], acc)
	if err != nil {
		return nil, err
	}
	return rdf.NewTripleTerm(s, p, o), nil
}

// reifiedTriple asserts the base triple, asserts its reification via
// rdf:reifies, and evaluates to the reifier.
func (r *Reader) reifiedTriple(n *grammar.Node, acc *[]*rdf.Triple) (rdf.Term, error) {
	children := n.Children()
	s, err := r.term(children[0], acc)
	if err != nil {
		return nil, err
	}
	p, err := r.verbTerm(children[1])
	if err != nil {
		return nil, err
	}
	o, err := r.term(children[2], acc)
	if err != nil {
		return nil, err
	}

	var reif rdf.Term
	if len(children) > 3 && children[3].Kind == grammar.NodeReifier {
		reif, err = r.reifierTerm(children[3])
		if err != nil {
			return nil, err
		}
	} else {
		reif = r.freshBlank()
	}

	*acc = append(*acc, rdf.NewTriple(s, p, o))
	tt := rdf.NewTripleTerm(s, p, o)
	*acc = append(*acc, rdf.NewTriple(reif, rdf.NewNamedNode(rdf.RDFReifies), tt))
	return reif, nil
}

func (r *Reader) reifierTerm(n *grammar.Node) (rdf.Term, error) {
	children := n.Children()
	if len(children) == 0 {
		return r.freshBlank(), nil
	}
	return r.term(children[0], nil)
}

// collection desugars '( e1 ... en )' into an rdf:first/rdf:rest chain with
// a fresh blank node per element. The empty collection is rdf:nil.
func (r *Reader) collection(n *grammar.Node, acc *[]*rdf.Triple) (rdf.Term, error) {
	items := n.ChildrenOf(grammar.NodeObject)
	if len(items) == 0 {
		return rdf.NewNamedNode(rdf.RDFNil), nil
	}

	first := rdf.NewNamedNode(rdf.RDFFirst)
	rest := rdf.NewNamedNode(rdf.RDFRest)

	head := r.freshBlank()
	cur := head
	for i, item := range items {
		obj, err := r.term(item.Children()[0], acc)
		if err != nil {
			return nil, err
		}
		*acc = append(*acc, rdf.NewTriple(cur, first, obj))
		if i == len(items)-1 {
			*acc = append(*acc, rdf.NewTriple(cur, rest, rdf.NewNamedNode(rdf.RDFNil)))
		} else {
			next := r.freshBlank()
			*acc = append(*acc, rdf.NewTriple(cur, rest, next))
			cur = next
		}
	}
	return head, nil
}

func (r *Reader) verbTerm(n *grammar.Node) (rdf.Term, error) {
	if _, ok := n.TokenOf(grammar.TokenKeywordA); ok {
		return rdf.NewNamedNode(rdf.RDFType), nil
	}
	iri := n.Child(grammar.NodeIRI)
	if iri == nil {
		return nil, fmt.Errorf("malformed verb node")
	}
	return r.term(iri, nil)
}

func (r *Reader) literalTerm(n *grammar.Node) (rdf.Term, error) {
	toks := n.Tokens()
	tok := toks[0]

	switch tok.Kind {
	case grammar.TokenInteger:
		return rdf.NewLiteralWithDatatype(tok.Image, rdf.XSDInteger), nil
	case grammar.TokenDecimal:
		return rdf.NewLiteralWithDatatype(tok.Image, rdf.XSDDecimal), nil
	case grammar.TokenDouble:
		return rdf.NewLiteralWithDatatype(tok.Image, rdf.XSDDouble), nil
	case grammar.TokenKeywordTrue, grammar.TokenKeywordFalse:
		return rdf.NewLiteralWithDatatype(tok.Image, rdf.XSDBoolean), nil
	}

	body := tok.Image
	switch tok.Kind {
	case grammar.TokenStringQuote, grammar.TokenStringSingleQuote:
		body = body[1 : len(body)-1]
	case grammar.TokenStringLongQuote, grammar.TokenStringLongSingleQuote:
		body = body[3 : len(body)-3]
	}
	value, err := grammar.DecodeStringEscapes(body)
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
		tok, _ := dt.FirstToken()
		iri, err := r.iriFromToken(tok)
		if err != nil {
			return nil, err
		}
		return rdf.NewLiteralWithDatatype(value, rdf.NewNamedNode(iri)), nil
	}
	return rdf.NewLiteral(value), nil
}

// iriFromToken expands an IRI reference or prefixed name token to an
// absolute IRI. Relative references resolve against the base IRI; without
// one they are an error. Prefix expansion concatenates without resolving:
// the namespace was made absolute when the prefix was declared.
func (r *Reader) iriFromToken(tok grammar.Token) (string, error) {
	switch tok.Kind {
	case grammar.TokenIRIRef, grammar.TokenIRIRefAbsolute:
		iri, err := grammar.DecodeIRIEscapes(tok.Image[1 : len(tok.Image)-1])
		if err != nil {
			return "", &grammar.SemanticError{Msg: err.Error(), Offset: tok.Offset}
		}
		if hasScheme(iri) {
			return iri, nil
		}
		if !r.baseSet {
			return "", &grammar.SemanticError{
				Msg:    fmt.Sprintf("relative IRI %q without a base IRI", iri),
				Offset: tok.Offset,
			}
		}
		return ResolveIRI(r.base, iri), nil

	case grammar.TokenPNameLN:
		// the prefix part cannot contain ':', so the first one splits
		i := strings.IndexByte(tok.Image, ':')
		prefix, local := tok.Image[:i], tok.Image[i+1:]
		ns, ok := r.namespaces[prefix]
		if !ok {
			return "", &grammar.UndefinedPrefixError{Prefix: prefix, Token: tok}
		}
		return ns + grammar.DecodeLocalEscapes(local), nil

	case grammar.TokenPNameNS:
		prefix := strings.TrimSuffix(tok.Image, ":")
		ns, ok := r.namespaces[prefix]
		if !ok {
			return "", &grammar.UndefinedPrefixError{Prefix: prefix, Token: tok}
		}
		return ns, nil
	}
	return "", fmt.Errorf("unexpected %s token in IRI position", tok.Kind)
}

func (r *Reader) blankFromToken(tok grammar.Token) *rdf.BlankNode {
	if tok.Kind == grammar.TokenAnon {
		return r.freshBlank()
	}
	label := strings.TrimPrefix(tok.Image, "_:")
	if b, ok := r.labels[label]; ok {
		return b
	}
	id := label
	for r.used[id] {
		// a generated node already holds this ID; the document label
		// still maps to one node, just under a different ID
		r.anonCount++
		id = fmt.Sprintf("anon%d", r.anonCount)
	}
	b := rdf.NewBlankNode(id)
	r.labels[label] = b
	r.used[id] = true
	return b
}

func (r *Reader) freshBlank() *rdf.BlankNode {
	for {
		r.anonCount++
		id := fmt.Sprintf("anon%d", r.anonCount)
		if r.used[id] {
			continue
		}
		r.used[id] = true
		return rdf.NewBlankNode(id)
	}
}
