// Package encoding maps RDF terms to fixed-size keys for the quad store.
// A term encodes to a tag byte plus 16 bytes of payload: an inline value
// where it fits, otherwise a 128-bit xxhash3 of a lookup string that the
// store keeps in its id2str table.
package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

const (
	// MaxInlineStringSize is the longest string stored inline: one payload
	// byte holds the length, the rest hold the UTF-8 bytes.
	MaxInlineStringSize = 15

	// EncodedTermSize is the tag byte plus the 16-byte payload.
	EncodedTermSize = 17
)

type termTag byte

const (
	tagNamedNode termTag = iota + 1
	tagBlankNodeInline // numeric label, stored as uint64
	tagBlankNodeHashed
	tagStringInline
	tagStringHashed
	tagLangString   // "value@lang" or "value@lang--dir", hashed
	tagTypedLiteral // "value^^datatype", hashed
	tagInteger
	tagDecimal
	tagDouble
	tagBoolean
	tagDefaultGraph
	tagTripleTerm // canonical N-Triples form, hashed
)

// EncodedTerm is a term in its fixed-size key form.
type EncodedTerm [EncodedTermSize]byte

// NeedsLookup reports whether decoding the term requires its id2str entry.
func NeedsLookup(encoded EncodedTerm) bool {
	switch termTag(encoded[0]) {
	case tagNamedNode, tagBlankNodeHashed, tagStringHashed,
		tagLangString, tagTypedLiteral, tagTripleTerm:
		return true
	}
	return false
}

// TermEncoder encodes RDF terms.
type TermEncoder struct{}

func NewTermEncoder() *TermEncoder {
	return &TermEncoder{}
}

// Hash128 computes the 128-bit xxhash3 of s in big-endian byte order, so
// encoded keys sort lexicographically.
func (e *TermEncoder) Hash128(s string) [16]byte {
	hash := xxh3.Hash128([]byte(s))
	var result [16]byte
	binary.BigEndian.PutUint64(result[0:8], hash.Hi)
	binary.BigEndian.PutUint64(result[8:16], hash.Lo)
	return result
}

// EncodeTerm encodes a term. The second result is the lookup string the
// store must persist under the term's hash, or nil when the payload is
// self-contained.
func (e *TermEncoder) EncodeTerm(term rdf.Term) (EncodedTerm, *string, error) {
	switch t := term.(type) {
	case *rdf.NamedNode:
		enc := e.hashed(tagNamedNode, t.IRI)
		return enc, &t.IRI, nil

	case *rdf.BlankNode:
		if num, err := strconv.ParseUint(t.ID, 10, 64); err == nil {
			var enc EncodedTerm
			enc[0] = byte(tagBlankNodeInline)
			binary.BigEndian.PutUint64(enc[1:9], num)
			return enc, nil, nil
		}
		enc := e.hashed(tagBlankNodeHashed, t.ID)
		return enc, &t.ID, nil

	case *rdf.Literal:
		return e.encodeLiteral(t)

	case *rdf.DefaultGraph:
		var enc EncodedTerm
		enc[0] = byte(tagDefaultGraph)
		return enc, nil, nil

	case *rdf.TripleTerm:
		combined := rdf.CanonicalTerm(t)
		enc := e.hashed(tagTripleTerm, combined)
		return enc, &combined, nil
	}
	var enc EncodedTerm
	return enc, nil, fmt.Errorf("unknown term type: %T", term)
}

func (e *TermEncoder) encodeLiteral(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var enc EncodedTerm

	if lit.Language != "" {
		combined := lit.Value + "@" + lit.Language
		if lit.Direction != "" {
			combined += "--" + lit.Direction
		}
		enc = e.hashed(tagLangString, combined)
		return enc, &combined, nil
	}

	if lit.Datatype != nil {
		switch lit.Datatype.IRI {
		case rdf.XSDInteger.IRI:
			// xsd:integer is unbounded; values outside int64, like
			// ill-typed lexical forms, keep the generic representation
			value, err := strconv.ParseInt(lit.Value, 10, 64)
			if err != nil {
				return e.hashedTyped(lit)
			}
			enc[0] = byte(tagInteger)
			binary.BigEndian.PutUint64(enc[1:9], uint64(value))
			return enc, nil, nil

		case rdf.XSDDecimal.IRI, rdf.XSDDouble.IRI:
			value, err := strconv.ParseFloat(lit.Value, 64)
			if err != nil {
				return e.hashedTyped(lit)
			}
			if lit.Datatype.IRI == rdf.XSDDecimal.IRI {
				enc[0] = byte(tagDecimal)
			} else {
				enc[0] = byte(tagDouble)
			}
			binary.BigEndian.PutUint64(enc[1:9], math.Float64bits(value))
			return enc, nil, nil

		case rdf.XSDBoolean.IRI:
			value, err := strconv.ParseBool(lit.Value)
			if err != nil {
				return e.hashedTyped(lit)
			}
			enc[0] = byte(tagBoolean)
			if value {
				enc[1] = 1
			}
			return enc, nil, nil

		case rdf.XSDString.IRI:
			// same representation as a plain literal

		default:
			return e.hashedTyped(lit)
		}
	}

	if len(lit.Value) <= MaxInlineStringSize {
		enc[0] = byte(tagStringInline)
		enc[1] = byte(len(lit.Value))
		copy(enc[2:], lit.Value)
		return enc, nil, nil
	}
	enc = e.hashed(tagStringHashed, lit.Value)
	return enc, &lit.Value, nil
}

// hashedTyped encodes a typed literal as "value^^datatype", hashed. The
// decoder splits at the last "^^", which requires the datatype IRI to be
// '^'-free; that holds for any real IRI.
func (e *TermEncoder) hashedTyped(lit *rdf.Literal) (EncodedTerm, *string, error) {
	var enc EncodedTerm
	if strings.ContainsRune(lit.Datatype.IRI, '^') {
		return enc, nil, fmt.Errorf("invalid datatype IRI %q", lit.Datatype.IRI)
	}
	combined := lit.Value + "^^" + lit.Datatype.IRI
	enc = e.hashed(tagTypedLiteral, combined)
	return enc, &combined, nil
}

func (e *TermEncoder) hashed(tag termTag, s string) EncodedTerm {
	var enc EncodedTerm
	enc[0] = byte(tag)
	hash := e.Hash128(s)
	copy(enc[1:], hash[:])
	return enc
}

// EncodeQuadKey concatenates encoded terms into one index key.
func (e *TermEncoder) EncodeQuadKey(terms ...EncodedTerm) []byte {
	result := make([]byte, 0, len(terms)*EncodedTermSize)
	for _, term := range terms {
		result = append(result, term[:]...)
	}
	return result
}
