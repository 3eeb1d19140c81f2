package grammar

import "testing"

func TestDecodeIRIEscapes(t *testing.T) {
	got, err := DecodeIRIEscapes(`http://example.org/caf\u00e9`)
	if err != nil {
		t.Fatalf("DecodeIRIEscapes failed: %v", err)
	}
	if got != "http://example.org/café" {
		t.Errorf("Expected the decoded escape, got %q", got)
	}
}

func TestDecodeIRIEscapes_ForbiddenCharacters(t *testing.T) {
	// escapes may not encode a character IRIREF excludes
	tests := []string{
		`http://example.org/a\u005Eb`,     // ^
		`http://example.org/a\u0020b`,     // space
		`http://example.org/a\u003Cb`,     // <
		`http://example.org/a\u0000b`,     // NUL
		`http://example.org/a\U0000007Cb`, // |
	}
	for _, src := range tests {
		if _, err := DecodeIRIEscapes(src); err == nil {
			t.Errorf("Expected an error for %q", src)
		}
	}
}

func TestDecodeStringEscapes_KeepsControlEscapes(t *testing.T) {
	// string literals, unlike IRIs, may escape any code point
	got, err := DecodeStringEscapes(`a\u0009b\u005E`)
	if err != nil {
		t.Fatalf("DecodeStringEscapes failed: %v", err)
	}
	if got != "a\tb^" {
		t.Errorf("Expected decoded escapes, got %q", got)
	}
}
