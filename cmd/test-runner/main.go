package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aleksaelezovic/rdfkit/internal/testsuite"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: test-runner <manifest-file-or-directory>")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  test-runner testdata/rdf-tests/rdf/rdf12/rdf-turtle/manifest.ttl")
		fmt.Println("  test-runner testdata/rdf-tests/rdf/rdf12/rdf-n-triples")
		os.Exit(1)
	}

	path := os.Args[1]

	info, err := os.Stat(path)
	if err != nil {
		log.Fatalf("Failed to access path: %v", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, "manifest.ttl")
		if _, err := os.Stat(path); err != nil {
			log.Fatalf("No manifest.ttl found in directory: %s", os.Args[1])
		}
	}

	runner := testsuite.NewRunner()
	if err := runner.RunManifest(path); err != nil {
		log.Fatalf("Failed to run manifest: %v", err)
	}

	if runner.Stats().Failed > 0 {
		os.Exit(1)
	}
}
