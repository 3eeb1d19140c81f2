// Package rdfio selects a concrete syntax parser by format name, content
// type or file extension, and normalizes every dialect's output to quads.
package rdfio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aleksaelezovic/rdfkit/pkg/nquads"
	"github.com/aleksaelezovic/rdfkit/pkg/ntriples"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
	"github.com/aleksaelezovic/rdfkit/pkg/trig"
	"github.com/aleksaelezovic/rdfkit/pkg/turtle"
)

// Parser parses one RDF concrete syntax into quads.
type Parser interface {
	// Parse reads the whole input and parses it strictly.
	Parse(reader io.Reader) ([]*rdf.Quad, error)

	// ContentType returns the MIME type this parser handles.
	ContentType() string
}

// NewParser selects a parser by format name or MIME type (content type
// parameters are ignored).
func NewParser(format string) (Parser, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if idx := strings.Index(f, ";"); idx != -1 {
		f = strings.TrimSpace(f[:idx])
	}

	switch f {
	case "ntriples", "nt", "application/n-triples", "text/plain":
		return &NTriplesParser{}, nil
	case "nquads", "nq", "application/n-quads":
		return &NQuadsParser{}, nil
	case "turtle", "ttl", "text/turtle", "application/x-turtle":
		return &TurtleParser{}, nil
	case "trig", "application/trig":
		return &TrigParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// NewParserForFile selects a parser by file extension.
func NewParserForFile(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt":
		return &NTriplesParser{}, nil
	case ".nq":
		return &NQuadsParser{}, nil
	case ".ttl":
		return &TurtleParser{}, nil
	case ".trig":
		return &TrigParser{}, nil
	default:
		return nil, fmt.Errorf("unrecognized file extension: %s", path)
	}
}

func readAll(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return string(data), nil
}

func triplesToQuads(triples []*rdf.Triple) []*rdf.Quad {
	quads := make([]*rdf.Quad, len(triples))
	for i, triple := range triples {
		quads[i] = triple.AsQuad()
	}
	return quads
}

// NTriplesParser parses N-Triples; every statement lands in the default
// graph.
type NTriplesParser struct{}

func (p *NTriplesParser) ContentType() string {
	return "application/n-triples"
}

func (p *NTriplesParser) Parse(reader io.Reader) ([]*rdf.Quad, error) {
	src, err := readAll(reader)
	if err != nil {
		return nil, err
	}
	triples, err := ntriples.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("error parsing N-Triples: %w", err)
	}
	return triplesToQuads(triples), nil
}

// NQuadsParser parses N-Quads.
type NQuadsParser struct{}

func (p *NQuadsParser) ContentType() string {
	return "application/n-quads"
}

func (p *NQuadsParser) Parse(reader io.Reader) ([]*rdf.Quad, error) {
	src, err := readAll(reader)
	if err != nil {
		return nil, err
	}
	quads, err := nquads.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("error parsing N-Quads: %w", err)
	}
	return quads, nil
}

// TurtleParser parses Turtle; every statement lands in the default graph.
type TurtleParser struct{}

func (p *TurtleParser) ContentType() string {
	return "text/turtle"
}

func (p *TurtleParser) Parse(reader io.Reader) ([]*rdf.Quad, error) {
	src, err := readAll(reader)
	if err != nil {
		return nil, err
	}
	triples, err := turtle.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("error parsing Turtle: %w", err)
	}
	return triplesToQuads(triples), nil
}

// TrigParser parses TriG.
type TrigParser struct{}

func (p *TrigParser) ContentType() string {
	return "application/trig"
}

func (p *TrigParser) Parse(reader io.Reader) ([]*rdf.Quad, error) {
	src, err := readAll(reader)
	if err != nil {
		return nil, err
	}
	quads, err := trig.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("error parsing TriG: %w", err)
	}
	return quads, nil
}

// SupportedContentTypes lists every MIME type NewParser accepts.
func SupportedContentTypes() []string {
	return []string{
		"application/n-triples",
		"application/n-quads",
		"text/turtle",
		"application/trig",
	}
}
