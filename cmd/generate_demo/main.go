// Command generate_demo creates a demo database filled with the sample catalog.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/locallibrary/internal/cli"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	seed := cli.NewSeedCommand()
	if err := seed.ParseFlags([]string{"-db", *dbPath, "-verbose"}); err != nil {
		log.Fatalf("Failed to parse seed options: %v", err)
	}
	if err := seed.Run(); err != nil {
		log.Fatalf("Failed to seed demo database: %v", err)
	}

	log.Printf("Demo database ready. Start it with DEMO_MODE=true DATABASE_PATH=%s", *dbPath)
}
