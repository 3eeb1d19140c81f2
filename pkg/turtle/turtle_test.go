package turtle

import (
	"errors"
	"testing"

	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

func decode(t *testing.T, src string) []*rdf.Triple {
	t.Helper()
	triples, err := Decode(src)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	return triples
}

func getIRI(term rdf.Term) string {
	if nn, ok := term.(*rdf.NamedNode); ok {
		return nn.IRI
	}
	return ""
}

func TestDecode_PropertyListWithComma(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p :o1, :o2, :o3 .`)

	if len(triples) != 3 {
		t.Fatalf("Expected 3 triples, got %d", len(triples))
	}
	expectedObjects := []string{
		"http://example.org/o1",
		"http://example.org/o2",
		"http://example.org/o3",
	}
	for i, triple := range triples {
		if getIRI(triple.Subject) != "http://example.org/s" {
			t.Errorf("Triple %d: wrong subject %s", i, getIRI(triple.Subject))
		}
		if getIRI(triple.Predicate) != "http://example.org/p" {
			t.Errorf("Triple %d: wrong predicate %s", i, getIRI(triple.Predicate))
		}
		if getIRI(triple.Object) != expectedObjects[i] {
			t.Errorf("Triple %d: expected object %s, got %s", i, expectedObjects[i], getIRI(triple.Object))
		}
	}
}

func TestDecode_PropertyListWithSemicolon(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p1 :o1 ; :p2 :o2 ; .`)

	if len(triples) != 2 {
		t.Fatalf("Expected 2 triples, got %d", len(triples))
	}
	if getIRI(triples[0].Predicate) != "http://example.org/p1" {
		t.Errorf("Triple 0: wrong predicate %s", getIRI(triples[0].Predicate))
	}
	if getIRI(triples[1].Predicate) != "http://example.org/p2" {
		t.Errorf("Triple 1: wrong predicate %s", getIRI(triples[1].Predicate))
	}
}

func TestDecode_KeywordA(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:alice a :Person .`)

	if len(triples) != 1 {
		t.Fatalf("Expected 1 triple, got %d", len(triples))
	}
	if getIRI(triples[0].Predicate) != rdf.RDFType {
		t.Errorf("Expected rdf:type, got %s", getIRI(triples[0].Predicate))
	}
}

func TestDecode_NumericLiterals(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p 42, -7, 3.14, .5, 1e3, -2.5E-1 .`)

	expected := []struct {
		value    string
		datatype *rdf.NamedNode
	}{
		{"42", rdf.XSDInteger},
		{"-7", rdf.XSDInteger},
		{"3.14", rdf.XSDDecimal},
		{".5", rdf.XSDDecimal},
		{"1e3", rdf.XSDDouble},
		{"-2.5E-1", rdf.XSDDouble},
	}
	if len(triples) != len(expected) {
		t.Fatalf("Expected %d triples, got %d", len(expected), len(triples))
	}
	for i, exp := range expected {
		lit, ok := triples[i].Object.(*rdf.Literal)
		if !ok {
			t.Fatalf("Triple %d: object is not a literal", i)
		}
		// the lexical form is preserved as written
		if lit.Value != exp.value {
			t.Errorf("Triple %d: expected value %q, got %q", i, exp.value, lit.Value)
		}
		if lit.DatatypeIRI() != exp.datatype.IRI {
			t.Errorf("Triple %d: expected datatype %s, got %s", i, exp.datatype.IRI, lit.DatatypeIRI())
		}
	}
}

func TestDecode_BooleanLiterals(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p true, false .`)

	if len(triples) != 2 {
		t.Fatalf("Expected 2 triples, got %d", len(triples))
	}
	for i, want := range []string{"true", "false"} {
		lit := triples[i].Object.(*rdf.Literal)
		if lit.Value != want || lit.DatatypeIRI() != rdf.XSDBoolean.IRI {
			t.Errorf("Triple %d: expected %s^^xsd:boolean, got %s^^%s", i, want, lit.Value, lit.DatatypeIRI())
		}
	}
}

func TestDecode_TypedLiteral(t *testing.T) {
	triples := decode(t, `@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
<http://example.org/s> <http://example.org/p> "2024-01-01"^^xsd:date .`)

	lit := triples[0].Object.(*rdf.Literal)
	if lit.Value != "2024-01-01" {
		t.Errorf("Expected value 2024-01-01, got %q", lit.Value)
	}
	if lit.DatatypeIRI() != "http://www.w3.org/2001/XMLSchema#date" {
		t.Errorf("Expected xsd:date, got %s", lit.DatatypeIRI())
	}
}

func TestDecode_LanguageAndDirection(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p "chat"@fr, "title"@en--ltr, "عنوان"@ar--rtl .`)

	if len(triples) != 3 {
		t.Fatalf("Expected 3 triples, got %d", len(triples))
	}

	fr := triples[0].Object.(*rdf.Literal)
	if fr.Language != "fr" || fr.Direction != "" {
		t.Errorf("Expected @fr with no direction, got @%s--%s", fr.Language, fr.Direction)
	}
	en := triples[1].Object.(*rdf.Literal)
	if en.Language != "en" || en.Direction != "ltr" {
		t.Errorf("Expected @en--ltr, got @%s--%s", en.Language, en.Direction)
	}
	if en.DatatypeIRI() != rdf.RDFDirLangString {
		t.Errorf("Expected rdf:dirLangString, got %s", en.DatatypeIRI())
	}
	ar := triples[2].Object.(*rdf.Literal)
	if ar.Direction != "rtl" {
		t.Errorf("Expected rtl direction, got %s", ar.Direction)
	}
}

func TestDecode_InvalidDirection(t *testing.T) {
	_, err := Decode(`@prefix : <http://example.org/> .
:s :p "x"@en--LTR .`)
	if err == nil {
		t.Fatal("Expected an error for a non-lowercase direction")
	}
	var semErr *grammar.SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("Expected a SemanticError, got %T: %v", err, err)
	}
}

func TestDecode_StringEscapes(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p "a\tbé\n" .`)

	lit := triples[0].Object.(*rdf.Literal)
	if lit.Value != "a\tbé\n" {
		t.Errorf("Expected decoded escapes, got %q", lit.Value)
	}
}

func TestDecode_LongString(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p """line one
line "two"""" .`)

	lit := triples[0].Object.(*rdf.Literal)
	if lit.Value != "line one\nline \"two\"" {
		t.Errorf("Expected raw newline and embedded quotes, got %q", lit.Value)
	}
}

func TestDecode_Collection(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p ( "a" "b" ) .`)

	// two cells: first/rest pairs, plus the base triple
	if len(triples) != 5 {
		t.Fatalf("Expected 5 triples, got %d", len(triples))
	}

	// the object of the base triple is the head of the chain
	base := triples[4]
	head, ok := base.Object.(*rdf.BlankNode)
	if !ok {
		t.Fatalf("Expected blank node list head, got %T", base.Object)
	}

	var firsts, rests int
	blanks := map[string]bool{}
	for _, tr := range triples[:4] {
		switch getIRI(tr.Predicate) {
		case rdf.RDFFirst:
			firsts++
		case rdf.RDFRest:
			rests++
		}
		if b, ok := tr.Subject.(*rdf.BlankNode); ok {
			blanks[b.ID] = true
		}
	}
	if firsts != 2 || rests != 2 {
		t.Errorf("Expected 2 rdf:first and 2 rdf:rest, got %d and %d", firsts, rests)
	}
	if len(blanks) != 2 {
		t.Errorf("Expected 2 fresh blank nodes, got %d", len(blanks))
	}
	if !blanks[head.ID] {
		t.Error("List head should be one of the chain blanks")
	}

	// the chain ends with rdf:nil
	last := triples[3]
	if getIRI(last.Predicate) != rdf.RDFRest || getIRI(last.Object) != rdf.RDFNil {
		t.Errorf("Expected the chain to end with rdf:nil, got %s %s", getIRI(last.Predicate), getIRI(last.Object))
	}
}

func TestDecode_EmptyCollection(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p () .`)

	if len(triples) != 1 {
		t.Fatalf("Expected 1 triple, got %d", len(triples))
	}
	if getIRI(triples[0].Object) != rdf.RDFNil {
		t.Errorf("Expected rdf:nil, got %s", getIRI(triples[0].Object))
	}
}

func TestDecode_BlankNodePropertyList(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :knows [ :name "Bob" ; :age 25 ] .`)

	if len(triples) != 3 {
		t.Fatalf("Expected 3 triples, got %d", len(triples))
	}

	// the inner triples come first, then the base triple
	inner, ok := triples[0].Subject.(*rdf.BlankNode)
	if !ok {
		t.Fatalf("Expected blank node subject, got %T", triples[0].Subject)
	}
	base := triples[2]
	if obj, ok := base.Object.(*rdf.BlankNode); !ok || obj.ID != inner.ID {
		t.Error("Base triple object should be the property list blank node")
	}
}

func TestDecode_BlankNodeLabelsShared(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
_:b :p :o1 .
_:b :p :o2 .
[] :p :o3 .
[] :p :o4 .`)

	if len(triples) != 4 {
		t.Fatalf("Expected 4 triples, got %d", len(triples))
	}
	b0 := triples[0].Subject.(*rdf.BlankNode)
	b1 := triples[1].Subject.(*rdf.BlankNode)
	if b0.ID != b1.ID {
		t.Error("The same label must map to the same blank node")
	}
	a0 := triples[2].Subject.(*rdf.BlankNode)
	a1 := triples[3].Subject.(*rdf.BlankNode)
	if a0.ID == a1.ID {
		t.Error("Each [] must be a fresh blank node")
	}
}

func TestDecode_UndefinedPrefix(t *testing.T) {
	_, err := Decode(`<http://example.org/s> <http://example.org/p> foo:bar .`)
	if err == nil {
		t.Fatal("Expected an error for an undefined prefix")
	}
	var prefErr *grammar.UndefinedPrefixError
	if !errors.As(err, &prefErr) {
		t.Fatalf("Expected an UndefinedPrefixError, got %T: %v", err, err)
	}
	if prefErr.Prefix != "foo" {
		t.Errorf("Expected prefix %q, got %q", "foo", prefErr.Prefix)
	}
	if prefErr.Token.Image != "foo:bar" {
		t.Errorf("Expected the offending token image, got %q", prefErr.Token.Image)
	}
}

func TestDecode_PrefixRedeclaration(t *testing.T) {
	triples := decode(t, `@prefix p: <http://one.example/> .
p:s <http://example.org/p> p:o .
@prefix p: <http://two.example/> .
p:s <http://example.org/p> p:o .`)

	if getIRI(triples[0].Subject) != "http://one.example/s" {
		t.Errorf("First binding: got %s", getIRI(triples[0].Subject))
	}
	if getIRI(triples[1].Subject) != "http://two.example/s" {
		t.Errorf("Second binding: got %s", getIRI(triples[1].Subject))
	}
}

func TestDecode_PrefixedNameLocalEscapes(t *testing.T) {
	triples := decode(t, `@prefix ex: <http://example.org/> .
ex:s ex:p ex:with\/slash\#hash .`)

	if getIRI(triples[0].Object) != "http://example.org/with/slash#hash" {
		t.Errorf("Expected decoded local escapes, got %s", getIRI(triples[0].Object))
	}
}

func TestDecode_BaseDirective(t *testing.T) {
	triples := decode(t, `@base <http://example.org/dir/> .
<s> <p> <../up> .`)

	if getIRI(triples[0].Subject) != "http://example.org/dir/s" {
		t.Errorf("Expected resolved subject, got %s", getIRI(triples[0].Subject))
	}
	if getIRI(triples[0].Object) != "http://example.org/up" {
		t.Errorf("Expected resolved object, got %s", getIRI(triples[0].Object))
	}
}

func TestDecode_SecondBaseFatal(t *testing.T) {
	_, err := Decode(`@base <http://one.example/> .
@base <http://two.example/> .`)
	if err == nil {
		t.Fatal("Expected an error for a second base directive")
	}
	var semErr *grammar.SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("Expected a SemanticError, got %T: %v", err, err)
	}
}

func TestReader_SetBase(t *testing.T) {
	toks, lexErrs := Tokenize(`<s> <p> <o> .`)
	if len(lexErrs) > 0 {
		t.Fatalf("Tokenize failed: %v", lexErrs[0])
	}
	doc, parseErrs := Parse(toks)
	if len(parseErrs) > 0 {
		t.Fatalf("Parse failed: %v", parseErrs[0])
	}

	reader := NewReader()
	reader.SetBase("http://example.org/doc")
	triples, err := reader.ReadDocument(doc)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if getIRI(triples[0].Subject) != "http://example.org/s" {
		t.Errorf("Expected resolution against the external base, got %s", getIRI(triples[0].Subject))
	}
}

func TestReader_SetBaseDoesNotBlockDirective(t *testing.T) {
	toks, _ := Tokenize(`@base <http://declared.example/> . <s> <p> <o> .`)
	doc, parseErrs := Parse(toks)
	if len(parseErrs) > 0 {
		t.Fatalf("Parse failed: %v", parseErrs[0])
	}

	// an external base does not count against the one-directive limit
	reader := NewReader()
	reader.SetBase("http://external.example/")
	triples, err := reader.ReadDocument(doc)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if getIRI(triples[0].Subject) != "http://declared.example/s" {
		t.Errorf("The directive should replace the external base, got %s", getIRI(triples[0].Subject))
	}
}

func TestDecode_RelativeIRIWithoutBase(t *testing.T) {
	_, err := Decode(`<s> <http://example.org/p> <http://example.org/o> .`)
	if err == nil {
		t.Fatal("Expected an error for a relative IRI without a base")
	}
	var semErr *grammar.SemanticError
	if !errors.As(err, &semErr) {
		t.Fatalf("Expected a SemanticError, got %T: %v", err, err)
	}
}

func TestDecode_VersionDirective(t *testing.T) {
	triples := decode(t, `@version "1.2" .
VERSION "1.2"
@prefix : <http://example.org/> .
:s :p :o .`)

	if len(triples) != 1 {
		t.Fatalf("Expected 1 triple, got %d", len(triples))
	}
}

func TestDecode_VersionDirectiveRequiresShortString(t *testing.T) {
	_, err := Decode(`@version """1.2""" .`)
	if err == nil {
		t.Fatal("Expected an error for a long string version")
	}
}

func TestDecode_SparqlStyleDirectives(t *testing.T) {
	// SPARQL forms take no dot
	triples := decode(t, `PREFIX : <http://example.org/>
BASE <http://example.org/base/>
:s :p <rel> .`)

	if getIRI(triples[0].Object) != "http://example.org/base/rel" {
		t.Errorf("Expected resolution against the BASE directive, got %s", getIRI(triples[0].Object))
	}

	if _, err := Decode("PREFIX : <http://example.org/> ."); err == nil {
		t.Error("Expected an error for a dot after a SPARQL-style directive")
	}
}

func TestDecode_TripleTermObject(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:r :states <<( :s :p :o )>> .`)

	if len(triples) != 1 {
		t.Fatalf("Expected 1 triple, got %d", len(triples))
	}
	tt, ok := triples[0].Object.(*rdf.TripleTerm)
	if !ok {
		t.Fatalf("Expected a triple term object, got %T", triples[0].Object)
	}
	if getIRI(tt.Subject) != "http://example.org/s" {
		t.Errorf("Wrong triple term subject: %s", getIRI(tt.Subject))
	}
}

func TestDecode_TripleTermNotSubject(t *testing.T) {
	_, err := Decode(`@prefix : <http://example.org/> .
<<( :s :p :o )>> :q :r .`)
	if err == nil {
		t.Fatal("Expected an error for a triple term in subject position")
	}
}

func TestDecode_LiteralNotSubject(t *testing.T) {
	_, err := Decode(`@prefix : <http://example.org/> .
"nope" :p :o .`)
	if err == nil {
		t.Fatal("Expected an error for a literal subject")
	}
}

func TestDecode_ReifiedTriple(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
<< :s :p :o ~ :r >> :since 2020 .`)

	if len(triples) != 3 {
		t.Fatalf("Expected 3 triples, got %d", len(triples))
	}

	// the base triple is asserted
	if getIRI(triples[0].Subject) != "http://example.org/s" {
		t.Errorf("Expected the asserted base triple first, got %s", getIRI(triples[0].Subject))
	}

	// the reifier links to the triple term
	reif := triples[1]
	if getIRI(reif.Subject) != "http://example.org/r" {
		t.Errorf("Expected the named reifier, got %s", getIRI(reif.Subject))
	}
	if getIRI(reif.Predicate) != rdf.RDFReifies {
		t.Errorf("Expected rdf:reifies, got %s", getIRI(reif.Predicate))
	}
	if _, ok := reif.Object.(*rdf.TripleTerm); !ok {
		t.Errorf("Expected a triple term object, got %T", reif.Object)
	}

	// the outer statement is about the reifier
	if getIRI(triples[2].Subject) != "http://example.org/r" {
		t.Errorf("Expected the reifier as outer subject, got %s", getIRI(triples[2].Subject))
	}
}

func TestDecode_ReifiedTripleAnonymousReifier(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
<< :s :p :o >> :since 2020 .`)

	if len(triples) != 3 {
		t.Fatalf("Expected 3 triples, got %d", len(triples))
	}
	if _, ok := triples[1].Subject.(*rdf.BlankNode); !ok {
		t.Errorf("Expected a fresh blank reifier, got %T", triples[1].Subject)
	}
}

func TestDecode_StandaloneReifiedTriple(t *testing.T) {
	// a reified triple is a complete statement on its own
	triples := decode(t, `@prefix : <http://example.org/> .
<< :s :p :o >> .`)

	if len(triples) != 2 {
		t.Fatalf("Expected 2 triples, got %d", len(triples))
	}
	if getIRI(triples[0].Subject) != "http://example.org/s" ||
		getIRI(triples[0].Object) != "http://example.org/o" {
		t.Errorf("Expected the asserted base triple first, got %v", triples[0])
	}
	reif := triples[1]
	if _, ok := reif.Subject.(*rdf.BlankNode); !ok {
		t.Errorf("Expected a fresh blank reifier, got %T", reif.Subject)
	}
	if getIRI(reif.Predicate) != rdf.RDFReifies {
		t.Errorf("Expected rdf:reifies, got %s", getIRI(reif.Predicate))
	}
	if _, ok := reif.Object.(*rdf.TripleTerm); !ok {
		t.Errorf("Expected a triple term object, got %T", reif.Object)
	}
}

func TestDecode_StandaloneReifiedTripleNamedReifier(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
<< :s :p :o ~ :r >> .`)

	if len(triples) != 2 {
		t.Fatalf("Expected 2 triples, got %d", len(triples))
	}
	if getIRI(triples[1].Subject) != "http://example.org/r" {
		t.Errorf("Expected the named reifier, got %v", triples[1].Subject)
	}
}

func TestDecode_FreshBlankNodesAvoidLabels(t *testing.T) {
	// an explicit label must never conflate with an anonymous node,
	// whichever comes first
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p _:anon1 .
:s :q [] .`)

	labeled := triples[0].Object.(*rdf.BlankNode)
	anon := triples[1].Object.(*rdf.BlankNode)
	if labeled.ID == anon.ID {
		t.Errorf("Anonymous node took the document label %q", labeled.ID)
	}

	triples = decode(t, `@prefix : <http://example.org/> .
:s :q [] .
:s :p _:anon1 .
:o :r _:anon1 .`)

	anon = triples[0].Object.(*rdf.BlankNode)
	first := triples[1].Object.(*rdf.BlankNode)
	second := triples[2].Object.(*rdf.BlankNode)
	if anon.ID == first.ID {
		t.Errorf("Document label conflated with the anonymous node %q", anon.ID)
	}
	if first.ID != second.ID {
		t.Error("The same label must still map to the same blank node")
	}
}

func TestDecode_Annotation(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p :o {| :since 2020 |} .`)

	if len(triples) != 3 {
		t.Fatalf("Expected 3 triples, got %d", len(triples))
	}
	// base triple, reification, annotation body
	if getIRI(triples[0].Subject) != "http://example.org/s" {
		t.Error("Expected the base triple first")
	}
	reif, ok := triples[1].Subject.(*rdf.BlankNode)
	if !ok {
		t.Fatalf("Expected a fresh blank reifier, got %T", triples[1].Subject)
	}
	body, ok := triples[2].Subject.(*rdf.BlankNode)
	if !ok || body.ID != reif.ID {
		t.Error("The annotation body should be about the reifier")
	}
	if getIRI(triples[2].Predicate) != "http://example.org/since" {
		t.Errorf("Wrong annotation predicate: %s", getIRI(triples[2].Predicate))
	}
}

func TestDecode_AnnotationUsesPrecedingReifier(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p :o ~ :r {| :since 2020 |} .`)

	if len(triples) != 3 {
		t.Fatalf("Expected 3 triples, got %d", len(triples))
	}
	if getIRI(triples[1].Subject) != "http://example.org/r" {
		t.Errorf("Expected the named reifier, got %v", triples[1].Subject)
	}
	if getIRI(triples[2].Subject) != "http://example.org/r" {
		t.Errorf("The annotation should attach to the named reifier, got %v", triples[2].Subject)
	}
}

func TestDecode_TwoAnnotationsTwoReifications(t *testing.T) {
	triples := decode(t, `@prefix : <http://example.org/> .
:s :p :o {| :a 1 |} {| :b 2 |} .`)

	// base + two reifications + two annotation bodies
	if len(triples) != 5 {
		t.Fatalf("Expected 5 triples, got %d", len(triples))
	}
	first := triples[1].Subject.(*rdf.BlankNode)
	second := triples[3].Subject.(*rdf.BlankNode)
	if first.ID == second.ID {
		t.Error("Each annotation block without a reifier gets its own reification")
	}
}

func TestParse_WithRecovery(t *testing.T) {
	toks, lexErrs := Tokenize(`@prefix : <http://example.org/> .
:s :p .
:a :b :c .
:x : .
:d :e :f .`)
	if len(lexErrs) > 0 {
		t.Fatalf("Tokenize failed: %v", lexErrs[0])
	}

	doc, parseErrs := Parse(toks, WithRecovery())
	if len(parseErrs) != 2 {
		t.Fatalf("Expected 2 syntax errors, got %d: %v", len(parseErrs), parseErrs)
	}

	// the clean statements survive in the partial tree
	triples, err := Read(doc)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(triples) != 2 {
		t.Fatalf("Expected 2 triples from the clean statements, got %d", len(triples))
	}
	if getIRI(triples[0].Subject) != "http://example.org/a" {
		t.Errorf("Wrong first surviving triple: %s", getIRI(triples[0].Subject))
	}
	if getIRI(triples[1].Subject) != "http://example.org/d" {
		t.Errorf("Wrong second surviving triple: %s", getIRI(triples[1].Subject))
	}
}

func TestParse_StrictStopsAtFirstError(t *testing.T) {
	toks, _ := Tokenize(`:s :p . :a :b :c .`)
	_, parseErrs := Parse(toks)
	if len(parseErrs) != 1 {
		t.Fatalf("Expected exactly 1 error without recovery, got %d", len(parseErrs))
	}
}

func TestDecode_CommentsIgnored(t *testing.T) {
	triples := decode(t, `# leading comment
@prefix : <http://example.org/> . # trailing
:s :p :o . # done`)
	if len(triples) != 1 {
		t.Fatalf("Expected 1 triple, got %d", len(triples))
	}
}
