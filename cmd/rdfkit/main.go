package main

import (
	"fmt"
	"log"
	"os"

	"github.com/aleksaelezovic/rdfkit/internal/rdfio"
	"github.com/aleksaelezovic/rdfkit/internal/storage"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rdfkit <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  check <file>        - Parse a document and report syntax errors")
		fmt.Println("  parse <file>        - Parse a document and print canonical N-Quads")
		fmt.Println("  load <db> <file>... - Parse documents into a database")
		fmt.Println("  dump <db>           - Print a database as canonical N-Quads")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "check":
		if len(os.Args) < 3 {
			fmt.Println("Usage: rdfkit check <file>")
			os.Exit(1)
		}
		runCheck(os.Args[2])
	case "parse":
		if len(os.Args) < 3 {
			fmt.Println("Usage: rdfkit parse <file>")
			os.Exit(1)
		}
		runParse(os.Args[2])
	case "load":
		if len(os.Args) < 4 {
			fmt.Println("Usage: rdfkit load <db-path> <file>...")
			os.Exit(1)
		}
		runLoad(os.Args[2], os.Args[3:])
	case "dump":
		if len(os.Args) < 3 {
			fmt.Println("Usage: rdfkit dump <db-path>")
			os.Exit(1)
		}
		runDump(os.Args[2])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func parseFile(path string) ([]*rdf.Quad, error) {
	parser, err := rdfio.NewParserForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path) // #nosec G304 - paths come from the command line
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parser.Parse(f)
}

func runCheck(path string) {
	if _, err := parseFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("%s: OK\n", path)
}

func runParse(path string) {
	quads, err := parseFile(path)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
	fmt.Print(rdf.SerializeQuadsCanonical(quads))
}

func runLoad(dbPath string, files []string) {
	badgerStorage, err := storage.NewBadgerStorage(dbPath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	store := storage.NewQuadStore(badgerStorage)
	defer store.Close()

	total := 0
	for _, path := range files {
		quads, err := parseFile(path)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}
		if err := store.InsertQuads(quads); err != nil {
			log.Fatalf("Failed to insert quads from %s: %v", path, err)
		}
		fmt.Printf("  ✓ %s (%d quads)\n", path, len(quads))
		total += len(quads)
	}

	count, err := store.Count()
	if err != nil {
		log.Fatalf("Failed to count quads: %v", err)
	}
	fmt.Printf("Loaded %d quads, database now holds %d\n", total, count)
}

func runDump(dbPath string) {
	badgerStorage, err := storage.NewBadgerStorage(dbPath)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	store := storage.NewQuadStore(badgerStorage)
	defer store.Close()

	quads, err := store.Quads()
	if err != nil {
		log.Fatalf("Failed to read quads: %v", err)
	}
	fmt.Print(rdf.SerializeQuadsCanonical(quads))
}
