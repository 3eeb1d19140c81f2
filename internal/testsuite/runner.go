package testsuite

import (
	"fmt"
	"os"
	"strings"

	"github.com/aleksaelezovic/rdfkit/pkg/grammar"
	"github.com/aleksaelezovic/rdfkit/pkg/nquads"
	"github.com/aleksaelezovic/rdfkit/pkg/ntriples"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
	"github.com/aleksaelezovic/rdfkit/pkg/trig"
	"github.com/aleksaelezovic/rdfkit/pkg/turtle"
)

// Runner executes W3C RDF test suite tests.
type Runner struct {
	stats *Stats
}

// Stats tracks test execution statistics.
type Stats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  []TestError
}

// TestError is one recorded failure.
type TestError struct {
	TestName string
	Type     TestType
	Error    string
}

func NewRunner() *Runner {
	return &Runner{stats: &Stats{}}
}

// Stats returns the statistics accumulated so far.
func (r *Runner) Stats() *Stats {
	return r.stats
}

// TestResult is the outcome of one test case.
type TestResult int

const (
	TestResultPass TestResult = iota
	TestResultFail
	TestResultSkip
	TestResultError
)

// RunManifest runs every test in a manifest file and prints a summary.
func (r *Runner) RunManifest(manifestPath string) error {
	manifest, err := ParseManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to parse manifest: %w", err)
	}

	fmt.Printf("\n📋 Running manifest: %s\n", manifestPath)
	fmt.Printf("   Found %d tests\n\n", len(manifest.Tests))

	for _, test := range manifest.Tests {
		r.stats.Total++
		switch r.RunTest(&test) {
		case TestResultPass:
			r.stats.Passed++
			fmt.Printf("  ✅ PASS: %s\n", test.Name)
		case TestResultFail:
			r.stats.Failed++
			fmt.Printf("  ❌ FAIL: %s\n", test.Name)
		case TestResultSkip:
			r.stats.Skipped++
			fmt.Printf("  ⏭️  SKIP: %s (type: %s)\n", test.Name, test.Type)
		case TestResultError:
			r.stats.Failed++
			fmt.Printf("  💥 ERROR: %s\n", test.Name)
		}
	}

	r.printSummary()
	return nil
}

// RunTest runs a single test case.
func (r *Runner) RunTest(test *TestCase) TestResult {
	switch test.Type {
	case TestTypeTurtlePositiveSyntax:
		return r.runPositiveSyntax(test, "turtle")
	case TestTypeTurtleNegativeSyntax, TestTypeTurtleNegativeEval:
		return r.runNegativeSyntax(test, "turtle")
	case TestTypeTurtleEval:
		return r.runTripleEval(test)

	case TestTypeNTriplesPositiveSyntax:
		return r.runPositiveSyntax(test, "ntriples")
	case TestTypeNTriplesNegativeSyntax:
		return r.runNegativeSyntax(test, "ntriples")
	case TestTypeNTriplesPositiveC14N:
		return r.runNTriplesC14N(test)

	case TestTypeNQuadsPositiveSyntax:
		return r.runPositiveSyntax(test, "nquads")
	case TestTypeNQuadsNegativeSyntax:
		return r.runNegativeSyntax(test, "nquads")
	case TestTypeNQuadsPositiveC14N:
		return r.runNQuadsC14N(test)

	case TestTypeTrigPositiveSyntax:
		return r.runPositiveSyntax(test, "trig")
	case TestTypeTrigNegativeSyntax, TestTypeTrigNegativeEval:
		return r.runNegativeSyntax(test, "trig")
	case TestTypeTrigEval:
		return r.runQuadEval(test)

	default:
		return TestResultSkip
	}
}

func (r *Runner) runPositiveSyntax(test *TestCase, format string) TestResult {
	src, result := r.readAction(test)
	if result != TestResultPass {
		return result
	}
	if _, _, err := parseAs(src, format, FileIRI(test.Action)); err != nil {
		r.recordError(test, fmt.Sprintf("parser error: %v", err))
		return TestResultFail
	}
	return TestResultPass
}

func (r *Runner) runNegativeSyntax(test *TestCase, format string) TestResult {
	src, result := r.readAction(test)
	if result != TestResultPass {
		return result
	}
	if _, _, err := parseAs(src, format, FileIRI(test.Action)); err == nil {
		r.recordError(test, "document parsed successfully but should have failed")
		return TestResultFail
	}
	return TestResultPass
}

// runTripleEval parses a Turtle document and compares its triples with the
// expected N-Triples, up to blank node relabeling.
func (r *Runner) runTripleEval(test *TestCase) TestResult {
	src, result := r.readAction(test)
	if result != TestResultPass {
		return result
	}
	actual, _, err := parseAs(src, "turtle", FileIRI(test.Action))
	if err != nil {
		r.recordError(test, fmt.Sprintf("parser error: %v", err))
		return TestResultFail
	}

	expectedSrc, result := r.readResult(test)
	if result != TestResultPass {
		return result
	}
	expected, err := ntriples.Decode(expectedSrc)
	if err != nil {
		r.recordError(test, fmt.Sprintf("failed to parse expected results: %v", err))
		return TestResultError
	}

	if !rdf.TriplesMatch(expected, actual) {
		r.recordError(test, fmt.Sprintf("triples mismatch: expected %d, got %d",
			len(expected), len(actual)))
		return TestResultFail
	}
	return TestResultPass
}

// runQuadEval parses a TriG document and compares its quads with the
// expected N-Quads.
func (r *Runner) runQuadEval(test *TestCase) TestResult {
	src, result := r.readAction(test)
	if result != TestResultPass {
		return result
	}
	_, actual, err := parseAs(src, "trig", FileIRI(test.Action))
	if err != nil {
		r.recordError(test, fmt.Sprintf("parser error: %v", err))
		return TestResultFail
	}

	expectedSrc, result := r.readResult(test)
	if result != TestResultPass {
		return result
	}
	expected, err := nquads.Decode(expectedSrc)
	if err != nil {
		r.recordError(test, fmt.Sprintf("failed to parse expected results: %v", err))
		return TestResultError
	}

	if !rdf.QuadsMatch(expected, actual) {
		r.recordError(test, fmt.Sprintf("quads mismatch: expected %d, got %d",
			len(expected), len(actual)))
		return TestResultFail
	}
	return TestResultPass
}

func (r *Runner) runNTriplesC14N(test *TestCase) TestResult {
	src, result := r.readAction(test)
	if result != TestResultPass {
		return result
	}
	triples, err := ntriples.Decode(src)
	if err != nil {
		r.recordError(test, fmt.Sprintf("parser error: %v", err))
		return TestResultFail
	}
	return r.compareCanonical(test, rdf.SerializeTriplesCanonical(triples))
}

func (r *Runner) runNQuadsC14N(test *TestCase) TestResult {
	src, result := r.readAction(test)
	if result != TestResultPass {
		return result
	}
	quads, err := nquads.Decode(src)
	if err != nil {
		r.recordError(test, fmt.Sprintf("parser error: %v", err))
		return TestResultFail
	}
	return r.compareCanonical(test, rdf.SerializeQuadsCanonical(quads))
}

func (r *Runner) compareCanonical(test *TestCase, actual string) TestResult {
	expected, result := r.readResult(test)
	if result != TestResultPass {
		return result
	}
	if normalizeLines(actual) != normalizeLines(expected) {
		r.recordError(test, "canonical form mismatch")
		return TestResultFail
	}
	return TestResultPass
}

// parseAs runs the strict pipeline for a format with the document base
// set. Turtle and N-Triples fill the triple result, N-Quads and TriG the
// quad result.
func parseAs(src, format, base string) ([]*rdf.Triple, []*rdf.Quad, error) {
	switch format {
	case "ntriples":
		triples, err := ntriples.Decode(src)
		return triples, nil, err

	case "nquads":
		quads, err := nquads.Decode(src)
		return nil, quads, err

	case "turtle":
		toks, lexErrs := turtle.Tokenize(src)
		if len(lexErrs) > 0 {
			return nil, nil, grammar.LexErrors(lexErrs)
		}
		doc, parseErrs := turtle.Parse(toks)
		if len(parseErrs) > 0 {
			return nil, nil, grammar.ParseErrors(parseErrs)
		}
		reader := turtle.NewReader()
		reader.SetBase(base)
		triples, err := reader.ReadDocument(doc)
		return triples, nil, err

	case "trig":
		toks, lexErrs := trig.Tokenize(src)
		if len(lexErrs) > 0 {
			return nil, nil, grammar.LexErrors(lexErrs)
		}
		doc, parseErrs := trig.Parse(toks)
		if len(parseErrs) > 0 {
			return nil, nil, grammar.ParseErrors(parseErrs)
		}
		reader := trig.NewReader()
		reader.SetBase(base)
		quads, err := reader.ReadDocument(doc)
		return nil, quads, err
	}
	return nil, nil, fmt.Errorf("unsupported format: %s", format)
}

func (r *Runner) readAction(test *TestCase) (string, TestResult) {
	if test.Action == "" {
		r.recordError(test, "no action file specified")
		return "", TestResultError
	}
	data, err := os.ReadFile(test.Action) // #nosec G304 - paths come from the manifest
	if err != nil {
		r.recordError(test, fmt.Sprintf("failed to read action file: %v", err))
		return "", TestResultError
	}
	return string(data), TestResultPass
}

func (r *Runner) readResult(test *TestCase) (string, TestResult) {
	if test.Result == "" {
		r.recordError(test, "no result file specified")
		return "", TestResultError
	}
	data, err := os.ReadFile(test.Result) // #nosec G304 - paths come from the manifest
	if err != nil {
		r.recordError(test, fmt.Sprintf("failed to read result file: %v", err))
		return "", TestResultError
	}
	return string(data), TestResultPass
}

func normalizeLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRight(s, "\n")
}

func (r *Runner) recordError(test *TestCase, errMsg string) {
	r.stats.Errors = append(r.stats.Errors, TestError{
		TestName: test.Name,
		Type:     test.Type,
		Error:    errMsg,
	})
}

func (r *Runner) printSummary() {
	fmt.Println("\n" + strings.Repeat("━", 60))
	fmt.Println("📊 TEST SUMMARY")
	fmt.Println(strings.Repeat("━", 60))
	fmt.Printf("Total:   %d\n", r.stats.Total)
	if r.stats.Total > 0 {
		fmt.Printf("Passed:  %d (%.1f%%)\n", r.stats.Passed,
			float64(r.stats.Passed)/float64(r.stats.Total)*100)
	} else {
		fmt.Printf("Passed:  %d\n", r.stats.Passed)
	}
	fmt.Printf("Failed:  %d\n", r.stats.Failed)
	fmt.Printf("Skipped: %d\n", r.stats.Skipped)

	if len(r.stats.Errors) > 0 {
		fmt.Println("\n❌ ERRORS:")
		for i, err := range r.stats.Errors {
			if i >= 10 {
				fmt.Printf("   ... and %d more\n", len(r.stats.Errors)-10)
				break
			}
			fmt.Printf("   • %s: %s\n", err.TestName, err.Error)
		}
	}

	fmt.Println(strings.Repeat("━", 60))
}
