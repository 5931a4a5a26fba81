package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/english-learn/backend/internal/database"
	"github.com/english-learn/backend/internal/importer"
)

func main() {
	var (
		file     = flag.String("file", "", "Path to the .xlsx or .csv vocabulary file")
		sheet    = flag.String("sheet", "Sheet1", "Sheet name for .xlsx files")
		startRow = flag.Int("start-row", 2, "First data row (1-based)")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("Usage: import -file vocabulary.xlsx [-sheet Sheet1] [-start-row 2]")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	cfg := importer.Config{
		FilePath: *file,
		Sheet:    *sheet,
		StartRow: *startRow,
	}

	result, err := importer.New(db).ImportFile(cfg)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Processed: %d\n", result.Processed)
	fmt.Printf("Created:   %d\n", result.Created)
	fmt.Printf("Updated:   %d\n", result.Updated)
	fmt.Printf("Skipped:   %d\n", result.Skipped)
	if len(result.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
}
