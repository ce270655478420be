// Catalog data tool: bulk-import a JSON dump of vehicles into the sqlite
// catalog, export the catalog back out, or show what the catalog holds.
// Useful for seeding a fresh deployment without hitting the source sites.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"autoverse/internal/catalog"
	"autoverse/internal/models"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/migrate/main.go <command> [args]")
		fmt.Println("Commands:")
		fmt.Println("  import-json <file>   - Upsert vehicles from a JSON dump")
		fmt.Println("  export-json <file>   - Write the whole catalog to a JSON file")
		fmt.Println("  status               - Show catalog counters and recent scrape runs")
		os.Exit(1)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data/catalog.db"
	}

	store, err := catalog.Open(dbPath)
	if err != nil {
		log.Fatal("Failed to open catalog:", err)
	}
	defer store.Close()

	switch command := os.Args[1]; command {
	case "import-json":
		if len(os.Args) < 3 {
			log.Fatal("import-json requires a file path")
		}
		importJSON(store, os.Args[2])
	case "export-json":
		if len(os.Args) < 3 {
			log.Fatal("export-json requires a file path")
		}
		exportJSON(store, os.Args[2])
	case "status":
		showStatus(store)
	default:
		log.Fatal("Unknown command:", command)
	}
}

func importJSON(store *catalog.Store, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read dump:", err)
	}

	var vehicles []*models.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		log.Fatal("Failed to parse dump:", err)
	}

	imported := 0
	for _, v := range vehicles {
		if v.Slug == "" {
			log.Printf("Skipping %s: no slug", v.DisplayName())
			continue
		}
		if err := store.Upsert(v); err != nil {
			log.Printf("Failed to import %s: %v", v.Slug, err)
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d of %d vehicles\n", imported, len(vehicles))
}

func exportJSON(store *catalog.Store, path string) {
	vehicles, err := store.All()
	if err != nil {
		log.Fatal("Failed to read catalog:", err)
	}

	data, err := json.MarshalIndent(vehicles, "", "  ")
	if err != nil {
		log.Fatal("Failed to marshal catalog:", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatal("Failed to write dump:", err)
	}

	fmt.Printf("Exported %d vehicles to %s\n", len(vehicles), path)
}

func showStatus(store *catalog.Store) {
	stats, err := store.Stats()
	if err != nil {
		log.Fatal("Failed to read stats:", err)
	}
	fmt.Printf("Catalog: %d vehicles (%d cars, %d bikes)\n", stats.Total, stats.Cars, stats.Bikes)

	sessions, err := store.RecentSessions(5)
	if err != nil {
		log.Fatal("Failed to read scrape log:", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No scrape runs recorded yet")
		return
	}

	fmt.Println("Recent scrape runs:")
	for _, s := range sessions {
		fmt.Printf("  #%d %s: %d vehicles in %.1f min (%d errors) at %s\n",
			s.ID, s.Status, s.VehiclesScraped, s.DurationMinutes,
			len(s.Errors), s.StartedAt.Format("2006-01-02 15:04"))
	}
}
