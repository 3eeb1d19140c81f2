package storage

import (
	"testing"

	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

func newTestStore(t *testing.T) *QuadStore {
	t.Helper()
	backing, err := NewBadgerStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open storage: %v", err)
	}
	store := NewQuadStore(backing)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return store
}

func quadsEqual(a, b *rdf.Quad) bool {
	return a.Subject.Equals(b.Subject) &&
		a.Predicate.Equals(b.Predicate) &&
		a.Object.Equals(b.Object) &&
		a.Graph.Equals(b.Graph)
}

func testQuad(s, o string) *rdf.Quad {
	return rdf.NewQuad(
		rdf.NewNamedNode("http://example.org/"+s),
		rdf.NewNamedNode("http://example.org/p"),
		rdf.NewLiteral(o),
		rdf.NewDefaultGraph(),
	)
}

func TestQuadStore_InsertAndContains(t *testing.T) {
	store := newTestStore(t)

	quad := testQuad("s", "o")
	if err := store.InsertQuad(quad); err != nil {
		t.Fatalf("InsertQuad failed: %v", err)
	}

	found, err := store.ContainsQuad(quad)
	if err != nil {
		t.Fatalf("ContainsQuad failed: %v", err)
	}
	if !found {
		t.Error("Expected the inserted quad to be found")
	}

	found, err = store.ContainsQuad(testQuad("s", "other"))
	if err != nil {
		t.Fatalf("ContainsQuad failed: %v", err)
	}
	if found {
		t.Error("Did not expect a never-inserted quad to be found")
	}
}

func TestQuadStore_Count(t *testing.T) {
	store := newTestStore(t)

	quads := []*rdf.Quad{
		testQuad("s1", "a"),
		testQuad("s2", "b"),
		testQuad("s1", "a"), // duplicate
	}
	if err := store.InsertQuads(quads); err != nil {
		t.Fatalf("InsertQuads failed: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 quads after deduplication, got %d", count)
	}
}

func TestQuadStore_QuadsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	// terms that exercise both inline and hashed encodings, plus a
	// triple term which is stored via its canonical form
	quads := []*rdf.Quad{
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/s"),
			rdf.NewNamedNode("http://example.org/p"),
			rdf.NewLiteralWithLanguage("a fairly long literal value", "en"),
			rdf.NewNamedNode("http://example.org/g"),
		),
		rdf.NewQuad(
			rdf.NewBlankNode("b0"),
			rdf.NewNamedNode("http://example.org/p"),
			rdf.NewIntegerLiteral(7),
			rdf.NewDefaultGraph(),
		),
		rdf.NewQuad(
			rdf.NewNamedNode("http://example.org/r"),
			rdf.NewNamedNode(rdf.RDFReifies),
			rdf.NewTripleTerm(
				rdf.NewNamedNode("http://example.org/s"),
				rdf.NewNamedNode("http://example.org/p"),
				rdf.NewLiteral("o"),
			),
			rdf.NewDefaultGraph(),
		),
	}
	if err := store.InsertQuads(quads); err != nil {
		t.Fatalf("InsertQuads failed: %v", err)
	}

	stored, err := store.Quads()
	if err != nil {
		t.Fatalf("Quads failed: %v", err)
	}
	if len(stored) != len(quads) {
		t.Fatalf("Expected %d quads, got %d", len(quads), len(stored))
	}
	for _, want := range quads {
		found := false
		for _, got := range stored {
			if quadsEqual(want, got) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Quad %v did not survive the round-trip", want)
		}
	}
}

func TestQuadStore_Graphs(t *testing.T) {
	store := newTestStore(t)

	g1 := rdf.NewNamedNode("http://example.org/g1")
	g2 := rdf.NewNamedNode("http://example.org/g2")
	quads := []*rdf.Quad{
		rdf.NewQuad(rdf.NewNamedNode("http://example.org/s"), rdf.NewNamedNode("http://example.org/p"), rdf.NewLiteral("a"), g1),
		rdf.NewQuad(rdf.NewNamedNode("http://example.org/s"), rdf.NewNamedNode("http://example.org/p"), rdf.NewLiteral("b"), g1),
		rdf.NewQuad(rdf.NewNamedNode("http://example.org/s"), rdf.NewNamedNode("http://example.org/p"), rdf.NewLiteral("c"), g2),
		testQuad("s", "d"),
	}
	if err := store.InsertQuads(quads); err != nil {
		t.Fatalf("InsertQuads failed: %v", err)
	}

	graphs, err := store.Graphs()
	if err != nil {
		t.Fatalf("Graphs failed: %v", err)
	}
	if len(graphs) != 2 {
		t.Fatalf("Expected 2 named graphs, got %d", len(graphs))
	}
	for _, want := range []rdf.Term{g1, g2} {
		found := false
		for _, got := range graphs {
			if want.Equals(got) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Missing graph %v", want)
		}
	}
}

func TestQuadStore_InsertTriple(t *testing.T) {
	store := newTestStore(t)

	triple := rdf.NewTriple(
		rdf.NewNamedNode("http://example.org/s"),
		rdf.NewNamedNode("http://example.org/p"),
		rdf.NewLiteral("o"),
	)
	if err := store.InsertTriple(triple); err != nil {
		t.Fatalf("InsertTriple failed: %v", err)
	}

	found, err := store.ContainsQuad(triple.AsQuad())
	if err != nil {
		t.Fatalf("ContainsQuad failed: %v", err)
	}
	if !found {
		t.Error("Expected the triple in the default graph")
	}
}
