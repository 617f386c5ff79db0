// Package main provides a read-only inspector for the MoodShop database.
//
// Usage:
//
//	DB_PATH=~/moodshop/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/moodshop/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	err = db.View(func(txn *badger.Txn) error {
		inspectInstance(txn)
		inspectManifest(txn)
		inspectProducts(txn)
		inspectFeedback(txn)
		return nil
	})
	if err != nil {
		log.Fatalf("Error reading database: %v", err)
	}
}

func inspectInstance(txn *badger.Txn) {
	item, err := txn.Get([]byte("server:config"))
	if err != nil {
		fmt.Println("Instance: not initialized")
		fmt.Println()
		return
	}

	var instance domain.Instance
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &instance)
	}); err != nil {
		log.Printf("Error reading instance: %v", err)
		return
	}

	fmt.Printf("Instance: %s\n", instance.Name)
	fmt.Printf("  ID: %s\n", instance.ID)
	fmt.Printf("  Version: %s\n", instance.Version)
	fmt.Printf("  Created: %s\n", instance.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println()
}

func inspectManifest(txn *badger.Txn) {
	item, err := txn.Get([]byte("catalog:current"))
	if err != nil {
		fmt.Println("Catalog: never imported")
		fmt.Println()
		return
	}

	var manifest store.CatalogManifest
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &manifest)
	}); err != nil {
		log.Printf("Error reading manifest: %v", err)
		return
	}

	checksum := manifest.Checksum
	if len(checksum) > 12 {
		checksum = checksum[:12]
	}

	fmt.Printf("Catalog: %d products\n", len(manifest.ProductIDs))
	fmt.Printf("  Source: %s\n", manifest.Source)
	fmt.Printf("  Imported: %s\n", manifest.ImportedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Checksum: %s\n", checksum)
	fmt.Println()
}

func inspectProducts(txn *badger.Txn) {
	prefix := []byte("product:")
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	count := 0
	tagCounts := map[string]int{}

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()

		err := item.Value(func(val []byte) error {
			var product domain.Product
			if err := json.Unmarshal(val, &product); err != nil {
				return err
			}

			count++
			for _, tag := range product.MoodTags {
				tagCounts[tag]++
			}

			// Show first few products
			if count <= 5 {
				fmt.Printf("Product: %s\n", product.Name)
				fmt.Printf("  ID: %s\n", product.ID)
				fmt.Printf("  Price: $%.2f\n", product.Price)
				fmt.Printf("  Tags: %v\n", product.MoodTags)
				switch {
				case product.ImagePath != "":
					fmt.Printf("  Image: local (%s)\n", product.ImagePath)
				case product.ImageURL != "":
					fmt.Printf("  Image: remote (%s)\n", product.ImageURL)
				default:
					fmt.Println("  Image: none")
				}
				fmt.Println()
			}

			return nil
		})
		if err != nil {
			log.Printf("Error reading product %s: %v", item.Key(), err)
		}
	}

	if count > 5 {
		fmt.Printf("... and %d more products\n\n", count-5)
	}

	fmt.Printf("Total products: %d\n", count)
	for tag, n := range tagCounts {
		fmt.Printf("  %s: %d\n", tag, n)
	}
	fmt.Println()
}

func inspectFeedback(txn *badger.Txn) {
	prefix := []byte("feedback:")
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	count := 0
	ratingSum := 0

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()

		err := item.Value(func(val []byte) error {
			var entry domain.FeedbackEntry
			if err := json.Unmarshal(val, &entry); err != nil {
				return err
			}
			count++
			ratingSum += entry.Rating
			return nil
		})
		if err != nil {
			log.Printf("Error reading feedback %s: %v", item.Key(), err)
		}
	}

	fmt.Printf("Total feedback entries: %d\n", count)
	if count > 0 {
		fmt.Printf("Average rating: %.1f\n", float64(ratingSum)/float64(count))
	}
}
