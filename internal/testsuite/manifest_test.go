package testsuite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const manifestSrc = `@prefix mf: <http://www.w3.org/2001/sw/DataAccess/tests/test-manifest#> .
@prefix rdft: <http://www.w3.org/ns/rdftest#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

<> a mf:Manifest ;
	mf:entries ( <#good-01> <#bad-01> ) .

<#good-01> a rdft:TestTurtleEval ;
	mf:name "good-01" ;
	rdfs:comment "A basic evaluation test" ;
	rdft:approval rdft:Approved ;
	mf:action <good-01.ttl> ;
	mf:result <good-01.nt> .

<#bad-01> a rdft:TestTurtleNegativeSyntax ;
	mf:name "bad-01" ;
	mf:action <bad-01.ttl> .
`

func writeManifestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"manifest.ttl": manifestSrc,
		"good-01.ttl":  "@prefix : <http://example.org/> .\n:s :p :o .\n",
		"good-01.nt":   "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n",
		"bad-01.ttl":   ":s :p .\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestParseManifest(t *testing.T) {
	dir := writeManifestDir(t)
	manifest, err := ParseManifest(filepath.Join(dir, "manifest.ttl"))
	if err != nil {
		t.Fatalf("ParseManifest failed: %v", err)
	}

	if manifest.Dir != dir {
		t.Errorf("Expected dir %s, got %s", dir, manifest.Dir)
	}
	if len(manifest.Tests) != 2 {
		t.Fatalf("Expected 2 tests, got %d", len(manifest.Tests))
	}

	good := manifest.Tests[0]
	if good.Name != "good-01" {
		t.Errorf("Expected name good-01, got %s", good.Name)
	}
	if good.Type != TestTypeTurtleEval {
		t.Errorf("Expected type %s, got %s", TestTypeTurtleEval, good.Type)
	}
	if good.Comment != "A basic evaluation test" {
		t.Errorf("Wrong comment: %s", good.Comment)
	}
	if !good.Approved {
		t.Error("Expected the first test to be approved")
	}
	if good.Action != filepath.Join(dir, "good-01.ttl") {
		t.Errorf("Wrong action path: %s", good.Action)
	}
	if good.Result != filepath.Join(dir, "good-01.nt") {
		t.Errorf("Wrong result path: %s", good.Result)
	}

	bad := manifest.Tests[1]
	if bad.Type != TestTypeTurtleNegativeSyntax {
		t.Errorf("Expected type %s, got %s", TestTypeTurtleNegativeSyntax, bad.Type)
	}
	if bad.Approved {
		t.Error("An entry without rdft:approval is not approved")
	}
	if bad.Result != "" {
		t.Errorf("Expected no result path, got %s", bad.Result)
	}
}

func TestRunManifest(t *testing.T) {
	dir := writeManifestDir(t)
	runner := NewRunner()
	if err := runner.RunManifest(filepath.Join(dir, "manifest.ttl")); err != nil {
		t.Fatalf("RunManifest failed: %v", err)
	}

	stats := runner.Stats()
	if stats.Total != 2 {
		t.Errorf("Expected 2 tests run, got %d", stats.Total)
	}
	if stats.Passed != 2 {
		t.Errorf("Expected 2 passes, got %d passed, %d failed (%v)", stats.Passed, stats.Failed, stats.Errors)
	}
}

func TestRunTest_FailedEvaluation(t *testing.T) {
	dir := t.TempDir()
	action := filepath.Join(dir, "in.ttl")
	result := filepath.Join(dir, "out.nt")
	if err := os.WriteFile(action, []byte("@prefix : <http://example.org/> .\n:s :p :o .\n"), 0o600); err != nil {
		t.Fatalf("Failed to write action: %v", err)
	}
	if err := os.WriteFile(result, []byte("<http://example.org/s> <http://example.org/p> <http://example.org/other> .\n"), 0o600); err != nil {
		t.Fatalf("Failed to write result: %v", err)
	}

	runner := NewRunner()
	outcome := runner.RunTest(&TestCase{
		Name:   "mismatch",
		Type:   TestTypeTurtleEval,
		Action: action,
		Result: result,
	})
	if outcome != TestResultFail {
		t.Errorf("Expected a failure, got %v", outcome)
	}
}

func TestFileIRI(t *testing.T) {
	iri := FileIRI("/tmp/data/manifest.ttl")
	if !strings.HasPrefix(iri, "file:///") {
		t.Errorf("Expected a file:/// IRI, got %s", iri)
	}
	if iriToPath(iri) != "/tmp/data/manifest.ttl" {
		t.Errorf("Round-trip failed: %s", iriToPath(iri))
	}
	if iriToPath("http://example.org/x") != "" {
		t.Error("A non-file IRI must not map to a path")
	}
}
