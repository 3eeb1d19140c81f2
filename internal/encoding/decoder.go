package encoding

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aleksaelezovic/rdfkit/pkg/ntriples"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// TermDecoder decodes encoded terms back to rdf.Term values.
type TermDecoder struct{}

func NewTermDecoder() *TermDecoder {
	return &TermDecoder{}
}

// DecodeTerm decodes an encoded term. For hashed representations the
// caller passes the id2str lookup string; NeedsLookup tells it when.
func (d *TermDecoder) DecodeTerm(encoded EncodedTerm, stringValue *string) (rdf.Term, error) {
	tag := termTag(encoded[0])
	if NeedsLookup(encoded) && stringValue == nil {
		return nil, fmt.Errorf("lookup string required for encoded term tag %d", tag)
	}

	switch tag {
	case tagNamedNode:
		return rdf.NewNamedNode(*stringValue), nil

	case tagBlankNodeInline:
		num := binary.BigEndian.Uint64(encoded[1:9])
		return rdf.NewBlankNode(strconv.FormatUint(num, 10)), nil

	case tagBlankNodeHashed:
		return rdf.NewBlankNode(*stringValue), nil

	case tagStringInline:
		n := int(encoded[1])
		return rdf.NewLiteral(string(encoded[2 : 2+n])), nil

	case tagStringHashed:
		return rdf.NewLiteral(*stringValue), nil

	case tagLangString:
		// the language tag cannot contain '@', so the last one splits
		i := strings.LastIndexByte(*stringValue, '@')
		if i < 0 {
			return nil, fmt.Errorf("malformed language literal lookup %q", *stringValue)
		}
		value, langTag := (*stringValue)[:i], (*stringValue)[i+1:]
		if j := strings.Index(langTag, "--"); j >= 0 {
			return rdf.NewLiteralWithDirection(value, langTag[:j], langTag[j+2:]), nil
		}
		return rdf.NewLiteralWithLanguage(value, langTag), nil

	case tagTypedLiteral:
		// '^' is forbidden in IRIs and the encoder rejects datatype IRIs
		// carrying one, so the last "^^" splits
		i := strings.LastIndex(*stringValue, "^^")
		if i < 0 {
			return nil, fmt.Errorf("malformed typed literal lookup %q", *stringValue)
		}
		value, dt := (*stringValue)[:i], (*stringValue)[i+2:]
		return rdf.NewLiteralWithDatatype(value, rdf.NewNamedNode(dt)), nil

	case tagInteger:
		value := int64(binary.BigEndian.Uint64(encoded[1:9]))
		return rdf.NewIntegerLiteral(value), nil

	case tagDecimal:
		bits := binary.BigEndian.Uint64(encoded[1:9])
		value := math.Float64frombits(bits)
		return rdf.NewLiteralWithDatatype(strconv.FormatFloat(value, 'g', -1, 64), rdf.XSDDecimal), nil

	case tagDouble:
		bits := binary.BigEndian.Uint64(encoded[1:9])
		return rdf.NewDoubleLiteral(math.Float64frombits(bits)), nil

	case tagBoolean:
		return rdf.NewBooleanLiteral(encoded[1] != 0), nil

	case tagDefaultGraph:
		return rdf.NewDefaultGraph(), nil

	case tagTripleTerm:
		return decodeTripleTerm(*stringValue)
	}
	return nil, fmt.Errorf("unknown encoded term tag %d", tag)
}

// decodeTripleTerm re-parses the stored canonical form by placing it in the
// object position of a synthetic N-Triples statement.
func decodeTripleTerm(canonical string) (rdf.Term, error) {
	src := "<tag:rdfkit:s> <tag:rdfkit:p> " + canonical + " ."
	triples, err := ntriples.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("malformed triple term lookup %q: %w", canonical, err)
	}
	if len(triples) != 1 {
		return nil, fmt.Errorf("malformed triple term lookup %q", canonical)
	}
	return triples[0].Object, nil
}
