package rdf

import (
	"fmt"
	"strings"
)

// SerializeTriplesCanonical serializes triples to canonical N-Triples form
// (C14N escape and whitespace rules). Canonical form fixes representation,
// not ordering: input order is preserved.
func SerializeTriplesCanonical(triples []*Triple) string {
	if len(triples) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, triple := range triples {
		builder.WriteString(serializeTermCanonical(triple.Subject))
		builder.WriteString(" ")
		builder.WriteString(serializeTermCanonical(triple.Predicate))
		builder.WriteString(" ")
		builder.WriteString(serializeTermCanonical(triple.Object))
		builder.WriteString(" .\n")
	}

	return builder.String()
}

// SerializeQuadsCanonical serializes quads to canonical N-Quads form.
// Default-graph quads are written without a graph label.
func SerializeQuadsCanonical(quads []*Quad) string {
	if len(quads) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, quad := range quads {
		builder.WriteString(CanonicalQuad(quad))
		builder.WriteString("\n")
	}

	return builder.String()
}

// CanonicalQuad returns the canonical N-Quads line for one quad, without
// the trailing newline.
func CanonicalQuad(quad *Quad) string {
	var builder strings.Builder
	builder.WriteString(serializeTermCanonical(quad.Subject))
	builder.WriteString(" ")
	builder.WriteString(serializeTermCanonical(quad.Predicate))
	builder.WriteString(" ")
	builder.WriteString(serializeTermCanonical(quad.Object))
	if !quad.InDefaultGraph() {
		builder.WriteString(" ")
		builder.WriteString(serializeTermCanonical(quad.Graph))
	}
	builder.WriteString(" .")
	return builder.String()
}

// CanonicalTerm returns the canonical N-Triples form of a single term.
func CanonicalTerm(term Term) string {
	return serializeTermCanonical(term)
}

func serializeTermCanonical(term Term) string {
	switch t := term.(type) {
	case *NamedNode:
		return fmt.Sprintf("<%s>", t.IRI)
	case *BlankNode:
		return fmt.Sprintf("_:%s", t.ID)
	case *Literal:
		return serializeLiteralCanonical(t)
	case *TripleTerm:
		return fmt.Sprintf("<<( %s %s %s )>>",
			serializeTermCanonical(t.Subject),
			serializeTermCanonical(t.Predicate),
			serializeTermCanonical(t.Object))
	default:
		return ""
	}
}

func serializeLiteralCanonical(lit *Literal) string {
	escaped := escapeStringCanonical(lit.Value)

	if lit.Language != "" {
		langTag := strings.ToLower(lit.Language)
		if lit.Direction != "" {
			return fmt.Sprintf(`"%s"@%s--%s`, escaped, langTag, strings.ToLower(lit.Direction))
		}
		return fmt.Sprintf(`"%s"@%s`, escaped, langTag)
	}

	// xsd:string is the default and is omitted in canonical form
	if lit.Datatype != nil && lit.Datatype.IRI != XSDString.IRI {
		return fmt.Sprintf(`"%s"^^<%s>`, escaped, lit.Datatype.IRI)
	}

	return fmt.Sprintf(`"%s"`, escaped)
}

// escapeStringCanonical escapes a string value for canonical N-Triples and
// N-Quads output: named escapes for \t \b \n \r \f \" \\, \uXXXX for
// control characters, DEL and the noncharacters U+FFFE/U+FFFF.
func escapeStringCanonical(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\t':
			builder.WriteString(`\t`)
		case '\b':
			builder.WriteString(`\b`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\f':
			builder.WriteString(`\f`)
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7F || (r >= 0xFFFE && r <= 0xFFFF) {
				builder.WriteString(fmt.Sprintf(`\u%04X`, r))
			} else {
				builder.WriteRune(r)
			}
		}
	}

	return builder.String()
}
