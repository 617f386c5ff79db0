// Package main provides a tool to run the emotion detector against a photo.
//
// Usage:
//
//	go run ./cmd/moodtest photo.jpg
//	go run ./cmd/moodtest --cascade facefinder photo.jpg
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/moodshopapp/moodshop-server/internal/emotion"
)

var cascadeFile = flag.String("cascade", "", "Path to a pigo face cascade")

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatal("Usage: moodtest [--cascade facefinder] <photo>")
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read photo: %v", err)
	}

	fmt.Printf("Analyzing: %s (%d bytes)\n\n", path, len(data))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	detector, err := emotion.NewDetector(emotion.Options{
		CascadeFile: *cascadeFile,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to build detector: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	analysis := detector.Detect(ctx, data)
	elapsed := time.Since(start)

	fmt.Printf("Mood: %s %s\n", analysis.Mood.Emoji(), analysis.Mood.DisplayName())
	fmt.Printf("Confidence: %.0f%% (%s)\n", analysis.Confidence*100, analysis.ConfidenceLevel())
	fmt.Printf("Source: %s\n", analysis.Source)
	fmt.Printf("Face detected: %v\n", analysis.FaceDetected)
	if analysis.Fallback {
		fmt.Printf("Fallback: %s\n", analysis.Notice)
	}
	fmt.Printf("Took: %s\n", elapsed)

	if len(analysis.Scores) > 0 {
		fmt.Println("\nScores:")
		labels := make([]string, 0, len(analysis.Scores))
		for label := range analysis.Scores {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool {
			return analysis.Scores[labels[i]] > analysis.Scores[labels[j]]
		})
		for _, label := range labels {
			fmt.Printf("  %-10s %.2f\n", label, analysis.Scores[label])
		}
	}
}
