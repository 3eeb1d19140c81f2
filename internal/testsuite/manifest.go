// Package testsuite loads and runs W3C RDF test suite manifests against
// the four concrete syntax parsers. Manifests are themselves Turtle, so
// they are read with the turtle package rather than a side-channel parser.
package testsuite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
	"github.com/aleksaelezovic/rdfkit/pkg/turtle"
)

const (
	mfNS   = "http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#"
	rdftNS = "http://www.w3.org/ns/rdftest#"
	rdfsNS = "http://www.w3.org/2000/01/rdf-schema#"

	mfName    = mfNS + "name"
	mfAction  = mfNS + "action"
	mfResult  = mfNS + "result"
	mfEntries = mfNS + "entries"
	mfInclude = mfNS + "include"

	rdftApproval = rdftNS + "approval"
	rdftApproved = rdftNS + "Approved"
	rdfsComment  = rdfsNS + "comment"
)

// TestType is the rdftest vocabulary type of a test entry.
type TestType string

const (
	TestTypeTurtleEval           TestType = "TestTurtleEval"
	TestTypeTurtlePositiveSyntax TestType = "TestTurtlePositiveSyntax"
	TestTypeTurtleNegativeSyntax TestType = "TestTurtleNegativeSyntax"
	TestTypeTurtleNegativeEval   TestType = "TestTurtleNegativeEval"

	TestTypeNTriplesPositiveSyntax TestType = "TestNTriplesPositiveSyntax"
	TestTypeNTriplesNegativeSyntax TestType = "TestNTriplesNegativeSyntax"
	TestTypeNTriplesPositiveC14N   TestType = "TestNTriplesPositiveC14N"

	TestTypeNQuadsPositiveSyntax TestType = "TestNQuadsPositiveSyntax"
	TestTypeNQuadsNegativeSyntax TestType = "TestNQuadsNegativeSyntax"
	TestTypeNQuadsPositiveC14N   TestType = "TestNQuadsPositiveC14N"

	TestTypeTrigEval           TestType = "TestTrigEval"
	TestTypeTrigPositiveSyntax TestType = "TestTrigPositiveSyntax"
	TestTypeTrigNegativeSyntax TestType = "TestTrigNegativeSyntax"
	TestTypeTrigNegativeEval   TestType = "TestTrigNegativeEval"
)

// TestCase is one manifest entry.
type TestCase struct {
	ID       string // entry IRI
	Name     string
	Type     TestType
	Action   string // input file path
	Result   string // expected result file path, if any
	Comment  string
	Approved bool
}

// Manifest is a loaded manifest plus everything it includes.
type Manifest struct {
	Dir   string
	Tests []TestCase
}

// ParseManifest loads a manifest.ttl and, recursively, its includes.
func ParseManifest(path string) (*Manifest, error) {
	return parseManifestVisited(path, make(map[string]bool))
}

func parseManifestVisited(path string, visited map[string]bool) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if visited[absPath] {
		return &Manifest{Dir: filepath.Dir(absPath)}, nil
	}
	visited[absPath] = true

	src, err := os.ReadFile(absPath) // #nosec G304 - manifest paths come from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	base := FileIRI(absPath)
	toks, lexErrs := turtle.Tokenize(string(src))
	if len(lexErrs) > 0 {
		return nil, fmt.Errorf("manifest %s: %w", path, grammar.LexErrors(lexErrs))
	}
	doc, parseErrs := turtle.Parse(toks)
	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("manifest %s: %w", path, parseErrs[0])
	}
	reader := turtle.NewReader()
	reader.SetBase(base)
	triples, err := reader.ReadDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	g := newGraph(triples)
	manifest := &Manifest{Dir: filepath.Dir(absPath)}

	for _, root := range g.subjectsWith(mfEntries) {
		for _, entry := range g.list(g.objectOf(root, mfEntries)) {
			tc, ok := g.testCase(entry)
			if ok {
				manifest.Tests = append(manifest.Tests, tc)
			}
		}
	}

	for _, root := range g.subjectsWith(mfInclude) {
		for _, inc := range g.list(g.objectOf(root, mfInclude)) {
			incIRI, ok := inc.(*rdf.NamedNode)
			if !ok {
				continue
			}
			incPath := iriToPath(incIRI.IRI)
			if incPath == "" {
				continue
			}
			included, err := parseManifestVisited(incPath, visited)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load included manifest %s: %v\n", incPath, err)
				continue
			}
			manifest.Tests = append(manifest.Tests, included.Tests...)
		}
	}

	return manifest, nil
}

// graph is a subject-indexed view over the manifest triples.
type graph struct {
	bySubject map[string][]*rdf.Triple
}

func newGraph(triples []*rdf.Triple) *graph {
	g := &graph{bySubject: make(map[string][]*rdf.Triple)}
	for _, t := range triples {
		key := rdf.CanonicalTerm(t.Subject)
		g.bySubject[key] = append(g.bySubject[key], t)
	}
	return g
}

func (g *graph) objectOf(subject rdf.Term, predicate string) rdf.Term {
	for _, t := range g.bySubject[rdf.CanonicalTerm(subject)] {
		if nn, ok := t.Predicate.(*rdf.NamedNode); ok && nn.IRI == predicate {
			return t.Object
		}
	}
	return nil
}

func (g *graph) subjectsWith(predicate string) []rdf.Term {
	var out []rdf.Term
	seen := make(map[string]bool)
	for _, triples := range g.bySubject {
		for _, t := range triples {
			nn, ok := t.Predicate.(*rdf.NamedNode)
			if !ok || nn.IRI != predicate {
				continue
			}
			key := rdf.CanonicalTerm(t.Subject)
			if !seen[key] {
				seen[key] = true
				out = append(out, t.Subject)
			}
		}
	}
	return out
}

// list walks an rdf:first/rdf:rest chain.
func (g *graph) list(head rdf.Term) []rdf.Term {
	var out []rdf.Term
	for head != nil {
		if nn, ok := head.(*rdf.NamedNode); ok && nn.IRI == rdf.RDFNil {
			break
		}
		item := g.objectOf(head, rdf.RDFFirst)
		if item == nil {
			break
		}
		out = append(out, item)
		head = g.objectOf(head, rdf.RDFRest)
	}
	return out
}

func (g *graph) testCase(entry rdf.Term) (TestCase, bool) {
	tc := TestCase{ID: rdf.CanonicalTerm(entry)}

	typeTerm := g.objectOf(entry, rdf.RDFType)
	typeIRI, ok := typeTerm.(*rdf.NamedNode)
	if !ok || !strings.HasPrefix(typeIRI.IRI, rdftNS) {
		return tc, false
	}
	tc.Type = TestType(strings.TrimPrefix(typeIRI.IRI, rdftNS))

	if name, ok := g.objectOf(entry, mfName).(*rdf.Literal); ok {
		tc.Name = name.Value
	}
	if comment, ok := g.objectOf(entry, rdfsComment).(*rdf.Literal); ok {
		tc.Comment = comment.Value
	}
	if approval, ok := g.objectOf(entry, rdftApproval).(*rdf.NamedNode); ok {
		tc.Approved = approval.IRI == rdftApproved
	}
	if action, ok := g.objectOf(entry, mfAction).(*rdf.NamedNode); ok {
		tc.Action = iriToPath(action.IRI)
	}
	if result, ok := g.objectOf(entry, mfResult).(*rdf.NamedNode); ok {
		tc.Result = iriToPath(result.IRI)
	}

	if tc.Name == "" || tc.Type == "" || tc.Action == "" {
		return tc, false
	}
	return tc, true
}

// FileIRI converts a file path to a file:// IRI.
func FileIRI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}
	return "file://" + abs
}

// iriToPath maps a file:// IRI back to a filesystem path. Other schemes
// yield "".
func iriToPath(iri string) string {
	if !strings.HasPrefix(iri, "file://") {
		return ""
	}
	return filepath.FromSlash(strings.TrimPrefix(iri, "file://"))
}
