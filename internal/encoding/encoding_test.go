package encoding

import (
	"testing"

	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

func roundTrip(t *testing.T, term rdf.Term) rdf.Term {
	t.Helper()
	encoder := NewTermEncoder()
	decoder := NewTermDecoder()

	encoded, lookup, err := encoder.EncodeTerm(term)
	if err != nil {
		t.Fatalf("EncodeTerm(%v) failed: %v", term, err)
	}
	if NeedsLookup(encoded) && lookup == nil {
		t.Fatalf("EncodeTerm(%v) needs a lookup but returned none", term)
	}
	decoded, err := decoder.DecodeTerm(encoded, lookup)
	if err != nil {
		t.Fatalf("DecodeTerm(%v) failed: %v", term, err)
	}
	return decoded
}

func TestEncodeDecode_NamedNode(t *testing.T) {
	term := rdf.NewNamedNode("http://example.org/resource")
	if got := roundTrip(t, term); !term.Equals(got) {
		t.Errorf("Expected %v, got %v", term, got)
	}
}

func TestEncodeDecode_BlankNodes(t *testing.T) {
	// numeric labels are inlined, others go through the lookup table
	numeric := rdf.NewBlankNode("42")
	encoded, lookup, err := NewTermEncoder().EncodeTerm(numeric)
	if err != nil {
		t.Fatalf("EncodeTerm failed: %v", err)
	}
	if lookup != nil {
		t.Error("A numeric blank label should encode inline")
	}
	if NeedsLookup(encoded) {
		t.Error("An inline blank label should not need a lookup")
	}
	if got := roundTrip(t, numeric); !numeric.Equals(got) {
		t.Errorf("Expected %v, got %v", numeric, got)
	}

	named := rdf.NewBlankNode("anon3")
	if got := roundTrip(t, named); !named.Equals(got) {
		t.Errorf("Expected %v, got %v", named, got)
	}
}

func TestEncodeDecode_InlineString(t *testing.T) {
	tests := []string{"", "short", "exactly15bytes!"}
	for _, value := range tests {
		term := rdf.NewLiteral(value)
		encoded, lookup, err := NewTermEncoder().EncodeTerm(term)
		if err != nil {
			t.Fatalf("EncodeTerm(%q) failed: %v", value, err)
		}
		if lookup != nil {
			t.Errorf("Value %q should encode inline", value)
		}
		decoded, err := NewTermDecoder().DecodeTerm(encoded, nil)
		if err != nil {
			t.Fatalf("DecodeTerm(%q) failed: %v", value, err)
		}
		if !term.Equals(decoded) {
			t.Errorf("Expected %v, got %v", term, decoded)
		}
	}
}

func TestEncodeDecode_InlineStringsDistinct(t *testing.T) {
	// the length prefix keeps "a" and "a\x00" apart
	encoder := NewTermEncoder()
	a, _, _ := encoder.EncodeTerm(rdf.NewLiteral("a"))
	b, _, _ := encoder.EncodeTerm(rdf.NewLiteral("a\x00"))
	if a == b {
		t.Error("Strings differing in a trailing NUL must encode differently")
	}
}

func TestEncodeDecode_HashedString(t *testing.T) {
	term := rdf.NewLiteral("this string is far too long to fit inline")
	encoded, lookup, err := NewTermEncoder().EncodeTerm(term)
	if err != nil {
		t.Fatalf("EncodeTerm failed: %v", err)
	}
	if lookup == nil || *lookup != term.Value {
		t.Fatal("A long string must carry its lookup value")
	}
	if !NeedsLookup(encoded) {
		t.Error("A hashed string must need a lookup")
	}
	if got := roundTrip(t, term); !term.Equals(got) {
		t.Errorf("Expected %v, got %v", term, got)
	}
}

func TestEncodeDecode_LangStrings(t *testing.T) {
	plain := rdf.NewLiteralWithLanguage("bonjour", "fr")
	if got := roundTrip(t, plain); !plain.Equals(got) {
		t.Errorf("Expected %v, got %v", plain, got)
	}

	directional := rdf.NewLiteralWithDirection("title", "en", "ltr")
	if got := roundTrip(t, directional); !directional.Equals(got) {
		t.Errorf("Expected %v, got %v", directional, got)
	}

	// a value containing '@' must not confuse the split
	tricky := rdf.NewLiteralWithLanguage("user@example.org", "en")
	if got := roundTrip(t, tricky); !tricky.Equals(got) {
		t.Errorf("Expected %v, got %v", tricky, got)
	}
}

func TestEncodeDecode_NumericLiterals(t *testing.T) {
	integer := rdf.NewIntegerLiteral(-12345)
	if got := roundTrip(t, integer); !integer.Equals(got) {
		t.Errorf("Expected %v, got %v", integer, got)
	}

	double := rdf.NewDoubleLiteral(2.5)
	if got := roundTrip(t, double); !double.Equals(got) {
		t.Errorf("Expected %v, got %v", double, got)
	}

	boolean := rdf.NewBooleanLiteral(true)
	if got := roundTrip(t, boolean); !boolean.Equals(got) {
		t.Errorf("Expected %v, got %v", boolean, got)
	}
}

func TestEncodeDecode_BigInteger(t *testing.T) {
	// xsd:integer is unbounded; a value outside int64 keeps the generic
	// hashed representation instead of failing
	term := rdf.NewLiteralWithDatatype("123456789012345678901234567890", rdf.XSDInteger)
	encoded, lookup, err := NewTermEncoder().EncodeTerm(term)
	if err != nil {
		t.Fatalf("EncodeTerm failed: %v", err)
	}
	if lookup == nil || !NeedsLookup(encoded) {
		t.Fatal("An out-of-range integer must fall back to the hashed form")
	}
	if got := roundTrip(t, term); !term.Equals(got) {
		t.Errorf("Expected %v, got %v", term, got)
	}
}

func TestEncodeDecode_IllTypedLiteral(t *testing.T) {
	// an ill-typed lexical form is still a valid term and must store
	term := rdf.NewLiteralWithDatatype("maybe", rdf.XSDBoolean)
	if got := roundTrip(t, term); !term.Equals(got) {
		t.Errorf("Expected %v, got %v", term, got)
	}
}

func TestEncodeTerm_DatatypeWithCaretRejected(t *testing.T) {
	// '^' is not a legal IRI character and would break the value/datatype
	// split on decode
	term := rdf.NewLiteralWithDatatype("x", rdf.NewNamedNode("http://example.org/a^^b"))
	if _, _, err := NewTermEncoder().EncodeTerm(term); err == nil {
		t.Fatal("Expected an error for a datatype IRI containing '^'")
	}
}

func TestEncodeDecode_TypedLiteral(t *testing.T) {
	term := rdf.NewLiteralWithDatatype("2024-01-01", rdf.NewNamedNode("http://www.w3.org/2001/XMLSchema#date"))
	if got := roundTrip(t, term); !term.Equals(got) {
		t.Errorf("Expected %v, got %v", term, got)
	}
}

func TestEncodeDecode_XSDStringSameAsPlain(t *testing.T) {
	encoder := NewTermEncoder()
	plain, _, _ := encoder.EncodeTerm(rdf.NewLiteral("x"))
	typed, _, _ := encoder.EncodeTerm(rdf.NewLiteralWithDatatype("x", rdf.XSDString))
	if plain != typed {
		t.Error("An explicit xsd:string literal must encode like a plain literal")
	}
}

func TestEncodeDecode_DefaultGraph(t *testing.T) {
	term := rdf.NewDefaultGraph()
	if got := roundTrip(t, term); !term.Equals(got) {
		t.Errorf("Expected %v, got %v", term, got)
	}
}

func TestEncodeDecode_TripleTerm(t *testing.T) {
	term := rdf.NewTripleTerm(
		rdf.NewNamedNode("http://example.org/s"),
		rdf.NewNamedNode("http://example.org/p"),
		rdf.NewLiteralWithLanguage("o", "en"),
	)
	got := roundTrip(t, term)
	if !term.Equals(got) {
		t.Errorf("Expected %v, got %v", term, got)
	}

	nested := rdf.NewTripleTerm(
		rdf.NewNamedNode("http://example.org/s"),
		rdf.NewNamedNode("http://example.org/p"),
		term,
	)
	if got := roundTrip(t, nested); !nested.Equals(got) {
		t.Errorf("Expected %v, got %v", nested, got)
	}
}

func TestDecodeTerm_MissingLookup(t *testing.T) {
	encoded, _, err := NewTermEncoder().EncodeTerm(rdf.NewNamedNode("http://example.org/x"))
	if err != nil {
		t.Fatalf("EncodeTerm failed: %v", err)
	}
	if _, err := NewTermDecoder().DecodeTerm(encoded, nil); err == nil {
		t.Fatal("Expected an error when the lookup string is missing")
	}
}

func TestEncodeQuadKey(t *testing.T) {
	encoder := NewTermEncoder()
	s, _, _ := encoder.EncodeTerm(rdf.NewNamedNode("http://example.org/s"))
	p, _, _ := encoder.EncodeTerm(rdf.NewNamedNode("http://example.org/p"))
	key := encoder.EncodeQuadKey(s, p)
	if len(key) != 2*EncodedTermSize {
		t.Fatalf("Expected %d bytes, got %d", 2*EncodedTermSize, len(key))
	}
	if key[0] != s[0] || key[EncodedTermSize] != p[0] {
		t.Error("Key must concatenate the encoded terms in order")
	}
}
