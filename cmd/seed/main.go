// Package main provides a tool to seed the database with demo items.
//
// It runs the generation pipeline with no external providers, so every
// item gets the synthetic placeholder content. Useful for exercising
// the browse, search, and vote surfaces locally without API keys.
//
// Usage:
//
//	DATA_PATH=~/altuse/data go run ./cmd/seed
//	DATA_PATH=~/altuse/data go run ./cmd/seed --items "Mason Jar,Wine Cork"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/altusecase/altuse-server/internal/logger"
	"github.com/altusecase/altuse-server/internal/service"
	"github.com/altusecase/altuse-server/internal/store/sqlite"
)

// defaultItems is a grab bag of everyday objects with obvious
// alternative uses.
var defaultItems = []string{
	"Mason Jar",
	"Wine Cork",
	"Tin Can",
	"Old Newspaper",
	"Rubber Band",
	"Coffee Grounds",
	"Egg Carton",
	"Shoe Box",
	"Binder Clip",
	"Tennis Ball",
}

var itemList = flag.String("items", "", "Comma-separated item names to seed instead of the defaults")

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/altuse/data")
	}

	fmt.Printf("Opening database at: %s\n", dataPath)

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logg := logger.New(logger.Config{Writer: os.Stderr, Format: "pretty", Environment: "development"})

	s, err := sqlite.Open(filepath.Join(dataPath, "altuse.db"), logg.Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if err := s.EnsureDefaultCategories(ctx); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	names := defaultItems
	if *itemList != "" {
		names = nil
		for _, name := range strings.Split(*itemList, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	// No image or content providers: every item gets placeholder content.
	items := service.NewItemService(s, nil, nil, nil, logg)

	created := 0
	for _, name := range names {
		result, err := items.Generate(ctx, name)
		if err != nil {
			log.Printf("Failed to seed %q: %v", name, err)
			continue
		}
		if result.Created {
			created++
			fmt.Printf("  created %-20s (%d uses)\n", result.Item.Slug, len(result.Item.Uses))
		} else {
			fmt.Printf("  exists  %s\n", result.Item.Slug)
		}
	}

	total, err := s.CountItems(ctx)
	if err != nil {
		log.Fatalf("Failed to count items: %v", err)
	}

	fmt.Printf("\nSeeded %d new items, %d total in database\n", created, total)
}
