// Package main provides a read-only inspection tool for the AltUse
// database. It prints row counts per table and the newest items, which
// is handy when debugging generation or a search index that has
// drifted from the database.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/altuse/data")
	}
	dbPath := filepath.Join(dataPath, "altuse.db")

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	tables := []string{
		"items",
		"use_cases",
		"categories",
		"tags",
		"item_categories",
		"item_tags",
		"suggestions",
		"ad_settings",
	}
	for _, table := range tables {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
			log.Fatalf("Failed to count %s: %v", table, err)
		}
		fmt.Printf("%-16s %d\n", table, count)
	}

	fmt.Println()
	fmt.Println("Newest items:")

	rows, err := db.Query(`
		SELECT i.slug, i.created_at,
		       (SELECT COUNT(*) FROM use_cases u WHERE u.item_id = i.id)
		FROM items i
		ORDER BY i.created_at DESC
		LIMIT 10`)
	if err != nil {
		log.Fatalf("Failed to list items: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			slug      string
			createdAt string
			uses      int
		)
		if err := rows.Scan(&slug, &createdAt, &uses); err != nil {
			log.Fatalf("Failed to scan item: %v", err)
		}
		fmt.Printf("  %-30s %2d uses  %s\n", slug, uses, createdAt)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Failed to iterate items: %v", err)
	}

	// Orphaned join rows point at a bug in the delete cascade.
	var orphans int
	err = db.QueryRow(`
		SELECT COUNT(*) FROM item_tags it
		WHERE NOT EXISTS (SELECT 1 FROM items i WHERE i.id = it.item_id)`).Scan(&orphans)
	if err != nil {
		log.Fatalf("Failed to check orphans: %v", err)
	}
	if orphans > 0 {
		fmt.Printf("\nWARNING: %d orphaned item_tags rows\n", orphans)
	}
}
