package turtle

import (
	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
)

// Grammar is the recursive-descent parser for the Turtle productions. TriG
// embeds it and adds the graph-block productions on top, so every method a
// shared production needs is exported.
type Grammar struct {
	c *grammar.Cursor
}

func NewGrammar(c *grammar.Cursor) *Grammar {
	return &Grammar{c: c}
}

// document parses statements until EOF. In recovery mode a failed statement
// is skipped to the next '.' and parsing resumes; otherwise the first error
// ends the parse.
func (g *Grammar) document() *grammar.Node {
	doc := grammar.NewNode(grammar.NodeDocument)
	for !g.c.AtEOF() {
		var n *grammar.Node
		var err error
		if g.AtDirective() {
			n, err = g.Directive()
		} else {
			n, err = g.Triples()
			if err == nil {
				_, err = g.c.Expect(grammar.TokenDot)
			}
		}
		if err != nil {
			if !g.c.Recovering() {
				return doc
			}
			g.c.SyncTo(grammar.TokenDot)
			continue
		}
		doc.Append(n)
	}
	return doc
}

// AtDirective reports whether the cursor sits on a directive keyword.
func (g *Grammar) AtDirective() bool {
	return g.c.At(
		grammar.TokenKeywordPrefix, grammar.TokenSparqlPrefix,
		grammar.TokenKeywordBase, grammar.TokenSparqlBase,
		grammar.TokenKeywordVersion, grammar.TokenSparqlVersion,
	)
}

// Directive parses a prefix, base or version declaration. The @-forms
// require a terminating '.', the SPARQL-style forms forbid it.
func (g *Grammar) Directive() (*grammar.Node, error) {
	c := g.c
	c.Begin("directive")
	defer c.End()

	switch {
	case c.At(grammar.TokenKeywordPrefix, grammar.TokenSparqlPrefix):
		kw := c.Next()
		n := grammar.NewNode(grammar.NodePrefixDecl)
		pname, err := c.Expect(grammar.TokenPNameNS)
		if err != nil {
			return nil, err
		}
		iriref, err := c.Expect(grammar.TokenIRIRef)
		if err != nil {
			return nil, err
		}
		n.AppendToken(pname)
		n.AppendToken(iriref)
		if kw.Kind == grammar.TokenKeywordPrefix {
			if _, err := c.Expect(grammar.TokenDot); err != nil {
				return nil, err
			}
		}
		return n, nil

	case c.At(grammar.TokenKeywordBase, grammar.TokenSparqlBase):
		kw := c.Next()
		n := grammar.NewNode(grammar.NodeBaseDecl)
		iriref, err := c.Expect(grammar.TokenIRIRef)
		if err != nil {
			return nil, err
		}
		n.AppendToken(iriref)
		if kw.Kind == grammar.TokenKeywordBase {
			if _, err := c.Expect(grammar.TokenDot); err != nil {
				return nil, err
			}
		}
		return n, nil

	default:
		kw := c.Next() // @version or VERSION
		n := grammar.NewNode(grammar.NodeVersionDecl)
		if !c.At(grammar.TokenStringQuote, grammar.TokenStringSingleQuote) {
			return nil, c.Errorf("expected version string")
		}
		n.AppendToken(c.Next())
		if kw.Kind == grammar.TokenKeywordVersion {
			if _, err := c.Expect(grammar.TokenDot); err != nil {
				return nil, err
			}
		}
		return n, nil
	}
}

// Triples parses one triples statement, stopping before the terminating
// token so the caller controls the statement boundary. A blank node
// property list or reified triple subject may omit the predicate-object
// list; every other subject form requires one.
func (g *Grammar) Triples() (*grammar.Node, error) {
	c := g.c
	c.Begin("triples")
	defer c.End()

	n := grammar.NewNode(grammar.NodeTriples)
	switch {
	case c.At(grammar.TokenLBracket):
		bnpl, err := g.BlankNodePropertyList()
		if err != nil {
			return nil, err
		}
		n.Append(bnpl)
		if !g.atVerb() {
			return n, nil
		}

	case c.At(grammar.TokenReifiedOpen):
		rt, err := g.ReifiedTriple()
		if err != nil {
			return nil, err
		}
		n.Append(rt)
		if !g.atVerb() {
			return n, nil
		}

	default:
		subj, err := g.subject()
		if err != nil {
			return nil, err
		}
		n.Append(subj)
	}

	pol, err := g.PredicateObjectList()
	if err != nil {
		return nil, err
	}
	n.Append(pol)
	return n, nil
}

func (g *Grammar) atVerb() bool {
	return g.c.At(grammar.TokenKeywordA, grammar.TokenIRIRef,
		grammar.TokenPNameLN, grammar.TokenPNameNS)
}

func (g *Grammar) subject() (*grammar.Node, error) {
	c := g.c
	c.Begin("subject")
	defer c.End()

	n := grammar.NewNode(grammar.NodeSubject)
	switch {
	case c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS):
		iri, err := g.IRI()
		if err != nil {
			return nil, err
		}
		n.Append(iri)
	case c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon):
		n.Append(g.blankNode())
	case c.At(grammar.TokenLParen):
		coll, err := g.Collection()
		if err != nil {
			return nil, err
		}
		n.Append(coll)
	case c.At(grammar.TokenStringQuote, grammar.TokenStringSingleQuote,
		grammar.TokenStringLongQuote, grammar.TokenStringLongSingleQuote,
		grammar.TokenInteger, grammar.TokenDecimal, grammar.TokenDouble,
		grammar.TokenKeywordTrue, grammar.TokenKeywordFalse):
		return nil, c.Errorf("a literal cannot be used as a subject")
	case c.At(grammar.TokenTripleTermOpen):
		return nil, c.Errorf("a triple term can only appear in the object position")
	default:
		return nil, c.Errorf("expected subject")
	}
	return n, nil
}

// PredicateObjectList parses verb objectList (';' (verb objectList)?)*.
// The result interleaves verb and object children in source order; a reader
// pairs each object with the nearest preceding verb.
func (g *Grammar) PredicateObjectList() (*grammar.Node, error) {
	c := g.c
	c.Begin("predicateObjectList")
	defer c.End()

	pol := grammar.NewNode(grammar.NodePredicateObjectList)
	if err := g.verbObjectList(pol); err != nil {
		return nil, err
	}
	for {
		if _, ok := c.Accept(grammar.TokenSemicolon); !ok {
			return pol, nil
		}
		// trailing and repeated semicolons carry no verb
		if !g.atVerb() {
			continue
		}
		if err := g.verbObjectList(pol); err != nil {
			return nil, err
		}
	}
}

func (g *Grammar) verbObjectList(pol *grammar.Node) error {
	verb, err := g.verb()
	if err != nil {
		return err
	}
	pol.Append(verb)
	for {
		obj, err := g.Object()
		if err != nil {
			return err
		}
		if err := g.annotations(obj); err != nil {
			return err
		}
		pol.Append(obj)
		if _, ok := g.c.Accept(grammar.TokenComma); !ok {
			return nil
		}
	}
}

func (g *Grammar) verb() (*grammar.Node, error) {
	c := g.c
	c.Begin("verb")
	defer c.End()

	n := grammar.NewNode(grammar.NodeVerb)
	if tok, ok := c.Accept(grammar.TokenKeywordA); ok {
		n.AppendToken(tok)
		return n, nil
	}
	iri, err := g.IRI()
	if err != nil {
		return nil, err
	}
	n.Append(iri)
	return n, nil
}

// Object parses one object term. Annotations are attached by the caller:
// they are only legal inside an object list, not inside a collection.
func (g *Grammar) Object() (*grammar.Node, error) {
	c := g.c
	c.Begin("object")
	defer c.End()

	n := grammar.NewNode(grammar.NodeObject)
	switch {
	case c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS):
		iri, err := g.IRI()
		if err != nil {
			return nil, err
		}
		n.Append(iri)
	case c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon):
		n.Append(g.blankNode())
	case c.At(grammar.TokenLParen):
		coll, err := g.Collection()
		if err != nil {
			return nil, err
		}
		n.Append(coll)
	case c.At(grammar.TokenLBracket):
		bnpl, err := g.BlankNodePropertyList()
		if err != nil {
			return nil, err
		}
		n.Append(bnpl)
	case c.At(grammar.TokenStringQuote, grammar.TokenStringSingleQuote,
		grammar.TokenStringLongQuote, grammar.TokenStringLongSingleQuote,
		grammar.TokenInteger, grammar.TokenDecimal, grammar.TokenDouble,
		grammar.TokenKeywordTrue, grammar.TokenKeywordFalse):
		lit, err := g.literal()
		if err != nil {
			return nil, err
		}
		n.Append(lit)
	case c.At(grammar.TokenTripleTermOpen):
		tt, err := g.TripleTerm()
		if err != nil {
			return nil, err
		}
		n.Append(tt)
	case c.At(grammar.TokenReifiedOpen):
		rt, err := g.ReifiedTriple()
		if err != nil {
			return nil, err
		}
		n.Append(rt)
	default:
		return nil, c.Errorf("expected object")
	}
	return n, nil
}

// annotations parses the (reifier | annotation block)* tail of an object.
func (g *Grammar) annotations(obj *grammar.Node) error {
	c := g.c
	for {
		switch {
		case c.At(grammar.TokenTilde):
			reif, err := g.reifier()
			if err != nil {
				return err
			}
			obj.Append(reif)
		case c.At(grammar.TokenAnnotationOpen):
			c.Begin("annotation")
			c.Next()
			pol, err := g.PredicateObjectList()
			if err != nil {
				c.End()
				return err
			}
			if _, err := c.Expect(grammar.TokenAnnotationClose); err != nil {
				c.End()
				return err
			}
			c.End()
			ann := grammar.NewNode(grammar.NodeAnnotation)
			ann.Append(pol)
			obj.Append(ann)
		default:
			return nil
		}
	}
}

func (g *Grammar) reifier() (*grammar.Node, error) {
	c := g.c
	c.Begin("reifier")
	defer c.End()

	if _, err := c.Expect(grammar.TokenTilde); err != nil {
		return nil, err
	}
	n := grammar.NewNode(grammar.NodeReifier)
	switch {
	case c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS):
		iri, err := g.IRI()
		if err != nil {
			return nil, err
		}
		n.Append(iri)
	case c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon):
		n.Append(g.blankNode())
	}
	return n, nil
}

func (g *Grammar) literal() (*grammar.Node, error) {
	c := g.c
	c.Begin("literal")
	defer c.End()

	n := grammar.NewNode(grammar.NodeLiteral)
	tok := c.Next()
	n.AppendToken(tok)
	switch tok.Kind {
	case grammar.TokenStringQuote, grammar.TokenStringSingleQuote,
		grammar.TokenStringLongQuote, grammar.TokenStringLongSingleQuote:
		if lang, ok := c.Accept(grammar.TokenLangTag); ok {
			n.AppendToken(lang)
		} else if _, ok := c.Accept(grammar.TokenDoubleCaret); ok {
			dt, err := g.IRI()
			if err != nil {
				return nil, err
			}
			n.Append(dt)
		}
	}
	return n, nil
}

// Collection parses '(' object* ')'.
func (g *Grammar) Collection() (*grammar.Node, error) {
	c := g.c
	c.Begin("collection")
	defer c.End()

	if _, err := c.Expect(grammar.TokenLParen); err != nil {
		return nil, err
	}
	n := grammar.NewNode(grammar.NodeCollection)
	for !c.At(grammar.TokenRParen) {
		if c.AtEOF() {
			return nil, c.Errorf("unterminated collection")
		}
		obj, err := g.Object()
		if err != nil {
			return nil, err
		}
		n.Append(obj)
	}
	c.Next()
	return n, nil
}

// BlankNodePropertyList parses '[' predicateObjectList ']'. The empty form
// '[ ]' is a distinct ANON token and never reaches this production.
func (g *Grammar) BlankNodePropertyList() (*grammar.Node, error) {
	c := g.c
	c.Begin("blankNodePropertyList")
	defer c.End()

	if _, err := c.Expect(grammar.TokenLBracket); err != nil {
		return nil, err
	}
	pol, err := g.PredicateObjectList()
	if err != nil {
		return nil, err
	}
	if _, err := c.Expect(grammar.TokenRBracket); err != nil {
		return nil, err
	}
	n := grammar.NewNode(grammar.NodeBlankNodePropertyList)
	n.Append(pol)
	return n, nil
}

// ReifiedTriple parses '<<' subject verb object reifier? '>>'. The subject
// may itself be a reified triple; the object may additionally be a literal
// or a triple term.
func (g *Grammar) ReifiedTriple() (*grammar.Node, error) {
	c := g.c
	c.Begin("reifiedTriple")
	defer c.End()

	if _, err := c.Expect(grammar.TokenReifiedOpen); err != nil {
		return nil, err
	}
	n := grammar.NewNode(grammar.NodeReifiedTriple)

	switch {
	case c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS):
		iri, err := g.IRI()
		if err != nil {
			return nil, err
		}
		n.Append(iri)
	case c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon):
		n.Append(g.blankNode())
	case c.At(grammar.TokenReifiedOpen):
		rt, err := g.ReifiedTriple()
		if err != nil {
			return nil, err
		}
		n.Append(rt)
	default:
		return nil, c.Errorf("expected reified triple subject")
	}

	verb, err := g.verb()
	if err != nil {
		return nil, err
	}
	n.Append(verb)

	switch {
	case c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS):
		iri, err := g.IRI()
		if err != nil {
			return nil, err
		}
		n.Append(iri)
	case c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon):
		n.Append(g.blankNode())
	case c.At(grammar.TokenStringQuote, grammar.TokenStringSingleQuote,
		grammar.TokenStringLongQuote, grammar.TokenStringLongSingleQuote,
		grammar.TokenInteger, grammar.TokenDecimal, grammar.TokenDouble,
		grammar.TokenKeywordTrue, grammar.TokenKeywordFalse):
		lit, err := g.literal()
		if err != nil {
			return nil, err
		}
		n.Append(lit)
	case c.At(grammar.TokenTripleTermOpen):
		tt, err := g.TripleTerm()
		if err != nil {
			return nil, err
		}
		n.Append(tt)
	case c.At(grammar.TokenReifiedOpen):
		rt, err := g.ReifiedTriple()
		if err != nil {
			return nil, err
		}
		n.Append(rt)
	default:
		return nil, c.Errorf("expected reified triple object")
	}

	if c.At(grammar.TokenTilde) {
		reif, err := g.reifier()
		if err != nil {
			return nil, err
		}
		n.Append(reif)
	}

	if _, err := c.Expect(grammar.TokenReifiedClose); err != nil {
		return nil, err
	}
	return n, nil
}

// TripleTerm parses '<<(' subject verb object ')>>'. The subject is an iri
// or blank node; the object may also be a literal or a nested triple term.
func (g *Grammar) TripleTerm() (*grammar.Node, error) {
	c := g.c
	c.Begin("tripleTerm")
	defer c.End()

	if _, err := c.Expect(grammar.TokenTripleTermOpen); err != nil {
		return nil, err
	}
	n := grammar.NewNode(grammar.NodeTripleTerm)

	switch {
	case c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS):
		iri, err := g.IRI()
		if err != nil {
			return nil, err
		}
		n.Append(iri)
	case c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon):
		n.Append(g.blankNode())
	default:
		return nil, c.Errorf("expected triple term subject")
	}

	verb, err := g.verb()
	if err != nil {
		return nil, err
	}
	n.Append(verb)

	switch {
	case c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS):
		iri, err := g.IRI()
		if err != nil {
			return nil, err
		}
		n.Append(iri)
	case c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon):
		n.Append(g.blankNode())
	case c.At(grammar.TokenStringQuote, grammar.TokenStringSingleQuote,
		grammar.TokenStringLongQuote, grammar.TokenStringLongSingleQuote,
		grammar.TokenInteger, grammar.TokenDecimal, grammar.TokenDouble,
		grammar.TokenKeywordTrue, grammar.TokenKeywordFalse):
		lit, err := g.literal()
		if err != nil {
			return nil, err
		}
		n.Append(lit)
	case c.At(grammar.TokenTripleTermOpen):
		tt, err := g.TripleTerm()
		if err != nil {
			return nil, err
		}
		n.Append(tt)
	default:
		return nil, c.Errorf("expected triple term object")
	}

	if _, err := c.Expect(grammar.TokenTripleTermClose); err != nil {
		return nil, err
	}
	return n, nil
}

// IRI parses an IRI reference or a prefixed name.
func (g *Grammar) IRI() (*grammar.Node, error) {
	c := g.c
	if c.At(grammar.TokenIRIRef, grammar.TokenPNameLN, grammar.TokenPNameNS) {
		n := grammar.NewNode(grammar.NodeIRI)
		n.AppendToken(c.Next())
		return n, nil
	}
	return nil, c.Errorf("expected an IRI or prefixed name")
}

// BlankNode parses a blank node label or an anonymous blank node.
func (g *Grammar) BlankNode() (*grammar.Node, error) {
	if g.c.At(grammar.TokenBlankNodeLabel, grammar.TokenAnon) {
		return g.blankNode(), nil
	}
	return nil, g.c.Errorf("expected a blank node")
}

func (g *Grammar) blankNode() *grammar.Node {
	n := grammar.NewNode(grammar.NodeBlankNode)
	n.AppendToken(g.c.Next())
	return n
}
