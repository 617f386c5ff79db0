// Package main provides a tool to generate demo data for the MoodShop server.
//
// It writes a catalog CSV with placeholder product images, plus sample
// photos that land on each heuristic mood, so a fresh checkout has
// something to demo against.
//
// Usage:
//
//	go run ./cmd/seed --out ~/moodshop
//	go run ./cmd/seed --out ~/moodshop --feedback 25  # Also seed feedback entries
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/mood"
	"github.com/moodshopapp/moodshop-server/internal/store"
)

var (
	outDir        = flag.String("out", "", "Output directory (default: $HOME/moodshop)")
	productsPer   = flag.Int("products", 3, "Products to generate per mood")
	feedbackCount = flag.Int("feedback", 0, "Synthetic feedback entries to write to DB_PATH")
)

// Product nouns shared across moods; adjectives come from each mood's
// related tags.
var nouns = []string{"Mug", "Candle", "Poster", "Tote", "Socks", "Notebook", "Blanket", "Print", "Playing Cards", "Tea Set"}

// moodColors tints the placeholder image for each mood.
var moodColors = map[mood.Mood]color.RGBA{
	mood.Happy:    {R: 250, G: 200, B: 60},
	mood.Sad:      {R: 70, G: 110, B: 190},
	mood.Angry:    {R: 210, G: 60, B: 50},
	mood.Surprise: {R: 170, G: 90, B: 220},
	mood.Fear:     {R: 90, G: 70, B: 130},
	mood.Disgust:  {R: 90, G: 170, B: 90},
	mood.Neutral:  {R: 140, G: 140, B: 140},
}

func main() {
	flag.Parse()

	dir := *outDir
	if dir == "" {
		dir = os.ExpandEnv("$HOME/moodshop")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if err := writeCatalog(dir, rng); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	if err := writeSamplePhotos(dir); err != nil {
		log.Fatalf("Failed to write sample photos: %v", err)
	}

	if *feedbackCount > 0 {
		if err := seedFeedback(rng, *feedbackCount); err != nil {
			log.Fatalf("Failed to seed feedback: %v", err)
		}
	}

	fmt.Printf("\nDone. Start the server with:\n")
	fmt.Printf("  moodshop-server --data-path %s --catalog %s\n", dir, filepath.Join(dir, "catalog.csv"))
}

// writeCatalog generates catalog.csv and one placeholder image per product.
func writeCatalog(dir string, rng *rand.Rand) error {
	imageDir := filepath.Join(dir, "catalog-images")
	if err := os.MkdirAll(imageDir, 0o755); err != nil {
		return err
	}

	csvPath := filepath.Join(dir, "catalog.csv")
	f, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"product_id", "name", "price", "image_url", "mood_tags"}); err != nil {
		return err
	}

	moods := mood.All()
	total := 0

	for _, m := range moods {
		tags := m.RelatedTags()

		for n := range *productsPer {
			id := fmt.Sprintf("prod-%s-%d", m, n+1)
			name := productName(rng, tags)
			price := float64(5+rng.Intn(55)) + 0.99

			// Most products carry one mood tag; some span two.
			moodTags := string(m)
			if rng.Float32() < 0.3 {
				other := moods[rng.Intn(len(moods))]
				if other != m {
					moodTags += "," + string(other)
				}
			}

			imageName := id + ".jpg"
			if err := writeProductImage(filepath.Join(imageDir, imageName), moodColors[m], rng); err != nil {
				return err
			}

			row := []string{
				id,
				name,
				strconv.FormatFloat(price, 'f', 2, 64),
				filepath.Join("catalog-images", imageName),
				moodTags,
			}
			if err := w.Write(row); err != nil {
				return err
			}
			total++
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d products, %d images)\n", csvPath, total, total)
	return nil
}

// productName combines a mood-related tag with a product noun, e.g.
// "Celebration Mug" or "Cozy Blanket".
func productName(rng *rand.Rand, tags []string) string {
	noun := nouns[rng.Intn(len(nouns))]
	if len(tags) == 0 {
		return noun
	}

	tag := tags[rng.Intn(len(tags))]
	return capitalize(tag) + " " + noun
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeProductImage renders a mood-tinted gradient placeholder.
func writeProductImage(path string, base color.RGBA, rng *rand.Rand) error {
	const size = 320
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Small per-product hue wobble so tiles aren't identical.
	jitter := func(c uint8) uint8 {
		v := int(c) + rng.Intn(41) - 20
		return clampChannel(v)
	}
	r, g, b := jitter(base.R), jitter(base.G), jitter(base.B)

	for y := range size {
		// Brighten toward the bottom.
		f := 0.6 + 0.4*float64(y)/float64(size)
		row := color.RGBA{
			R: clampChannel(int(float64(r) * f)),
			G: clampChannel(int(float64(g) * f)),
			B: clampChannel(int(float64(b) * f)),
			A: 255,
		}
		for x := range size {
			img.SetRGBA(x, y, row)
		}
	}

	return encodeJPEG(path, img)
}

// writeSamplePhotos renders photos that land on each heuristic mood, for
// demoing the analyze flow without a webcam.
func writeSamplePhotos(dir string) error {
	samplesDir := filepath.Join(dir, "samples")
	if err := os.MkdirAll(samplesDir, 0o755); err != nil {
		return err
	}

	// Flat brightness maps to happy/sad/neutral; a hard gradient reads
	// as surprise.
	flats := map[string]uint8{
		"happy.jpg":   220,
		"sad.jpg":     40,
		"neutral.jpg": 120,
	}

	for name, level := range flats {
		img := image.NewRGBA(image.Rect(0, 0, 128, 128))
		for y := range 128 {
			for x := range 128 {
				img.SetRGBA(x, y, color.RGBA{R: level, G: level, B: level, A: 255})
			}
		}
		if err := encodeJPEG(filepath.Join(samplesDir, name), img); err != nil {
			return err
		}
	}

	gradient := image.NewRGBA(image.Rect(0, 0, 128, 128))
	for y := range 128 {
		level := uint8(y * 2)
		for x := range 128 {
			gradient.SetRGBA(x, y, color.RGBA{R: level, G: level, B: level, A: 255})
		}
	}
	if err := encodeJPEG(filepath.Join(samplesDir, "surprise.jpg"), gradient); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (4 sample photos)\n", samplesDir)
	return nil
}

// seedFeedback writes synthetic feedback entries spread over the past two
// weeks, for demoing the summary endpoint.
func seedFeedback(rng *rand.Rand, count int) error {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/moodshop/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	s, err := store.New(dbPath, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	moods := mood.All()

	// Skew positive, like real demo audiences.
	ratings := []int{5, 5, 5, 4, 4, 4, 3, 3, 2, 1}
	comments := []string{
		"",
		"",
		"Spot on!",
		"The mug matched my mood perfectly.",
		"Not sure about the detection but fun anyway.",
		"It said I was surprised. I was.",
		"Would be nice to see more products.",
	}

	now := time.Now()
	for range count {
		m := moods[rng.Intn(len(moods))]
		daysAgo := rng.Intn(14)
		createdAt := time.Date(
			now.Year(), now.Month(), now.Day()-daysAgo,
			8+rng.Intn(14), rng.Intn(60), 0, 0, time.Local,
		)

		entry := &domain.FeedbackEntry{
			CreatedAt:   createdAt,
			Mood:        string(m),
			Confidence:  0.5 + rng.Float64()*0.45,
			Rating:      ratings[rng.Intn(len(ratings))],
			Comment:     comments[rng.Intn(len(comments))],
			Recommended: 3,
		}

		if err := s.AppendFeedback(ctx, entry); err != nil {
			return err
		}
	}

	fmt.Printf("Created %d feedback entries\n", count)
	return nil
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func encodeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
}
