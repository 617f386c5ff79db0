package emotion

import (
	"image"
	"image/color"
	"testing"

	"github.com/moodshopapp/moodshop-server/internal/mood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidGray(value uint8, w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: value})
		}
	}
	return img
}

func checkerboard(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestClassifyHeuristic(t *testing.T) {
	tests := []struct {
		name       string
		img        image.Image
		want       mood.Mood
		confidence float64
	}{
		{"bright reads happy", solidGray(230, 64, 64), mood.Happy, 0.7},
		{"dark reads sad", solidGray(20, 64, 64), mood.Sad, 0.6},
		{"harsh contrast reads surprise", checkerboard(64, 64), mood.Surprise, 0.5},
		{"flat midtones read neutral", solidGray(120, 64, 64), mood.Neutral, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, confidence := classifyHeuristic(tt.img)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.confidence, confidence)
		})
	}
}

func TestLuminanceStats_Solid(t *testing.T) {
	mean, stddev := luminanceStats(solidGray(128, 32, 32))
	assert.InDelta(t, 128, mean, 1.0)
	assert.InDelta(t, 0, stddev, 0.5)
}

func TestLuminanceStats_Checkerboard(t *testing.T) {
	mean, stddev := luminanceStats(checkerboard(32, 32))
	assert.InDelta(t, 127.5, mean, 2.0)
	assert.Greater(t, stddev, 100.0)
}

func TestLuminanceStats_LargeImageSampled(t *testing.T) {
	// 1000x1000 exceeds the sample grid; stats must still be right.
	mean, _ := luminanceStats(solidGray(200, 1000, 1000))
	assert.InDelta(t, 200, mean, 1.0)
}

func TestHeuristicScores(t *testing.T) {
	scores := heuristicScores(mood.Happy, 0.7)

	require.Len(t, scores, 7)
	assert.Equal(t, 0.7, scores["happy"])

	var total float64
	for _, s := range scores {
		total += s
	}
	assert.InDelta(t, 1.0, total, 0.01)
}
