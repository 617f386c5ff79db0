// Package main provides a dry-run validator for catalog CSV files.
//
// The file is imported into a throwaway database so every check the server
// applies on import (CSV shape, prices, mood tags, image ingestion) runs
// without touching live data.
//
// Usage:
//
//	go run ./cmd/catalogcheck path/to/catalog.csv
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/catalog"
	"github.com/moodshopapp/moodshop-server/internal/media/images"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: catalogcheck <catalog.csv>")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	tmpDir, err := os.MkdirTemp("", "catalogcheck-*")
	if err != nil {
		logger.Error("failed to create temp dir", "error", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmpDir)

	s, err := store.New(filepath.Join(tmpDir, "db"), logger)
	if err != nil {
		logger.Error("failed to open scratch store", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	storage, err := images.NewStorageWithSubdir(tmpDir, "products")
	if err != nil {
		logger.Error("failed to create scratch storage", "error", err)
		os.Exit(1)
	}
	processor := images.NewProcessor(storage, logger)

	importer := catalog.NewImporter(s, processor, storage, os.Args[1], logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := importer.Import(ctx)
	if err != nil {
		fmt.Printf("Catalog INVALID: %v\n", err)
		os.Exit(1)
	}

	products, err := s.ListProducts(ctx)
	if err != nil {
		logger.Error("failed to list imported products", "error", err)
		os.Exit(1)
	}

	tagCounts := map[string]int{}
	local, remote, bare := 0, 0, 0

	for _, p := range products {
		fmt.Printf("  %s  $%-8.2f %v\n", p.ID, p.Price, p.MoodTags)
		for _, tag := range p.MoodTags {
			tagCounts[tag]++
		}
		switch {
		case p.ImagePath != "":
			local++
		case p.ImageURL != "":
			remote++
		default:
			bare++
		}
	}

	fmt.Printf("\n=== Catalog OK ===\n")
	fmt.Printf("Products: %d\n", result.Products)
	fmt.Printf("Images: %d local, %d remote, %d none\n", local, remote, bare)
	fmt.Printf("Ingested: %d\n", result.ImagesIngested)
	fmt.Printf("Duration: %s\n", result.Duration)
	fmt.Println("Mood coverage:")
	for tag, n := range tagCounts {
		fmt.Printf("  %s: %d\n", tag, n)
	}
}
