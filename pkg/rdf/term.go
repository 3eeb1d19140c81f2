package rdf

import (
	"fmt"
	"strings"
)

// TermType represents the type of an RDF term
type TermType byte

const (
	TermTypeNamedNode TermType = iota + 1
	TermTypeBlankNode
	TermTypeLiteral
	TermTypeDefaultGraph
	TermTypeTripleTerm
)

// Term represents an RDF term (IRI, blank node, literal, or triple term)
type Term interface {
	Type() TermType
	String() string
	Equals(other Term) bool
}

// Well-known RDF vocabulary IRIs
const (
	RDFType          = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFFirst         = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
	RDFRest          = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
	RDFNil           = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
	RDFReifies       = "http://www.w3.org/1999/02/22-rdf-syntax-ns#reifies"
	RDFLangString    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
	RDFDirLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#dirLangString"
)

// NamedNode represents an IRI
type NamedNode struct {
	IRI string
}

func NewNamedNode(iri string) *NamedNode {
	return &NamedNode{IRI: iri}
}

func (n *NamedNode) Type() TermType {
	return TermTypeNamedNode
}

func (n *NamedNode) String() string {
	return fmt.Sprintf("<%s>", n.IRI)
}

func (n *NamedNode) Equals(other Term) bool {
	if on, ok := other.(*NamedNode); ok {
		return n.IRI == on.IRI
	}
	return false
}

// BlankNode represents a blank node. Identity is scoped to one document
// parse; labels from different documents must not be compared.
type BlankNode struct {
	ID string
}

func NewBlankNode(id string) *BlankNode {
	return &BlankNode{ID: id}
}

func (b *BlankNode) Type() TermType {
	return TermTypeBlankNode
}

func (b *BlankNode) String() string {
	return fmt.Sprintf("_:%s", b.ID)
}

func (b *BlankNode) Equals(other Term) bool {
	if ob, ok := other.(*BlankNode); ok {
		return b.ID == ob.ID
	}
	return false
}

// Literal represents an RDF literal. A literal has at most one of
// {language tag, datatype}; a language tag implies rdf:langString (or
// rdf:dirLangString when a base direction is present).
type Literal struct {
	Value     string
	Language  string     // for language-tagged strings, lowercase
	Direction string     // base direction "ltr" or "rtl" (RDF 1.2), requires Language
	Datatype  *NamedNode // for typed literals
}

func NewLiteral(value string) *Literal {
	return &Literal{Value: value}
}

func NewLiteralWithLanguage(value, language string) *Literal {
	return &Literal{Value: value, Language: strings.ToLower(language)}
}

func NewLiteralWithDirection(value, language, direction string) *Literal {
	return &Literal{
		Value:     value,
		Language:  strings.ToLower(language),
		Direction: strings.ToLower(direction),
	}
}

func NewLiteralWithDatatype(value string, datatype *NamedNode) *Literal {
	return &Literal{Value: value, Datatype: datatype}
}

func (l *Literal) Type() TermType {
	return TermTypeLiteral
}

// DatatypeIRI returns the effective datatype of the literal, applying the
// defaulting rules: xsd:string for plain literals, rdf:langString for
// language-tagged literals, rdf:dirLangString when a direction is present.
func (l *Literal) DatatypeIRI() string {
	if l.Language != "" {
		if l.Direction != "" {
			return RDFDirLangString
		}
		return RDFLangString
	}
	if l.Datatype != nil {
		return l.Datatype.IRI
	}
	return XSDString.IRI
}

func (l *Literal) String() string {
	result := fmt.Sprintf("%q", l.Value)
	if l.Language != "" {
		result += "@" + l.Language
		if l.Direction != "" {
			result += "--" + l.Direction
		}
	} else if l.Datatype != nil {
		result += "^^" + l.Datatype.String()
	}
	return result
}

func (l *Literal) Equals(other Term) bool {
	ol, ok := other.(*Literal)
	if !ok {
		return false
	}
	if l.Value != ol.Value || l.Language != ol.Language || l.Direction != ol.Direction {
		return false
	}
	return l.DatatypeIRI() == ol.DatatypeIRI()
}

// DefaultGraph represents the default graph
type DefaultGraph struct{}

func NewDefaultGraph() *DefaultGraph {
	return &DefaultGraph{}
}

func (d *DefaultGraph) Type() TermType {
	return TermTypeDefaultGraph
}

func (d *DefaultGraph) String() string {
	return "DEFAULT"
}

func (d *DefaultGraph) Equals(other Term) bool {
	_, ok := other.(*DefaultGraph)
	return ok
}

// TripleTerm represents an RDF 1.2 triple term <<( s p o )>>: a triple used
// as a term without being asserted. Only valid in the object position.
type TripleTerm struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewTripleTerm(subject, predicate, object Term) *TripleTerm {
	return &TripleTerm{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

func (t *TripleTerm) Type() TermType {
	return TermTypeTripleTerm
}

func (t *TripleTerm) String() string {
	return fmt.Sprintf("<<( %s %s %s )>>", t.Subject, t.Predicate, t.Object)
}

func (t *TripleTerm) Equals(other Term) bool {
	ot, ok := other.(*TripleTerm)
	if !ok {
		return false
	}
	return t.Subject.Equals(ot.Subject) &&
		t.Predicate.Equals(ot.Predicate) &&
		t.Object.Equals(ot.Object)
}

// Triple represents an RDF triple (subject, predicate, object)
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

func NewTriple(subject, predicate, object Term) *Triple {
	return &Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

func (t *Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// AsQuad lifts a triple into the default graph.
func (t *Triple) AsQuad() *Quad {
	return NewQuad(t.Subject, t.Predicate, t.Object, NewDefaultGraph())
}

// Quad represents an RDF quad (subject, predicate, object, graph)
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term
}

func NewQuad(subject, predicate, object, graph Term) *Quad {
	return &Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
		Graph:     graph,
	}
}

// InDefaultGraph reports whether the quad belongs to the default graph.
func (q *Quad) InDefaultGraph() bool {
	if q.Graph == nil {
		return true
	}
	_, ok := q.Graph.(*DefaultGraph)
	return ok
}

func (q *Quad) String() string {
	if q.InDefaultGraph() {
		return fmt.Sprintf("%s %s %s .", q.Subject, q.Predicate, q.Object)
	}
	return fmt.Sprintf("%s %s %s %s .", q.Subject, q.Predicate, q.Object, q.Graph)
}

// Helper variables for common XSD datatypes
var (
	XSDString  = NewNamedNode("http://www.w3.org/2001/XMLSchema#string")
	XSDInteger = NewNamedNode("http://www.w3.org/2001/XMLSchema#integer")
	XSDDecimal = NewNamedNode("http://www.w3.org/2001/XMLSchema#decimal")
	XSDDouble  = NewNamedNode("http://www.w3.org/2001/XMLSchema#double")
	XSDBoolean = NewNamedNode("http://www.w3.org/2001/XMLSchema#boolean")
)

func NewIntegerLiteral(value int64) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%d", value), XSDInteger)
}

func NewDoubleLiteral(value float64) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%g", value), XSDDouble)
}

func NewBooleanLiteral(value bool) *Literal {
	return NewLiteralWithDatatype(fmt.Sprintf("%t", value), XSDBoolean)
}
