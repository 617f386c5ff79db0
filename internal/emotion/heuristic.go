package emotion

import (
	"image"
	"math"

	"github.com/moodshopapp/moodshop-server/internal/mood"
)

// Heuristic thresholds and the confidence each verdict carries.
// Brightness and contrast are measured on the 0..255 luminance scale.
const (
	brightThreshold   = 150.0
	darkThreshold     = 80.0
	contrastThreshold = 50.0

	happyConfidence    = 0.7
	sadConfidence      = 0.6
	surpriseConfidence = 0.5
	neutralConfidence  = 0.8
)

// maxSampleGrid bounds the number of pixels the heuristic reads.
// Sampling a 256x256 grid is indistinguishable from a full scan for
// global brightness statistics and keeps large uploads cheap.
const maxSampleGrid = 256

// classifyHeuristic scores an image region by global brightness and
// contrast. Bright scenes read happy, dark ones sad, harsh contrast
// surprise, anything else neutral.
func classifyHeuristic(img image.Image) (mood.Mood, float64) {
	mean, stddev := luminanceStats(img)

	switch {
	case mean > brightThreshold:
		return mood.Happy, happyConfidence
	case mean < darkThreshold:
		return mood.Sad, sadConfidence
	case stddev > contrastThreshold:
		return mood.Surprise, surpriseConfidence
	default:
		return mood.Neutral, neutralConfidence
	}
}

// luminanceStats returns the mean and standard deviation of pixel
// luminance (Rec. 601 luma, 0..255).
func luminanceStats(img image.Image) (mean, stddev float64) {
	bounds := img.Bounds()

	stepX := bounds.Dx() / maxSampleGrid
	if stepX < 1 {
		stepX = 1
	}
	stepY := bounds.Dy() / maxSampleGrid
	if stepY < 1 {
		stepY = 1
	}

	var sum, sumSq, n float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stepY {
		for x := bounds.Min.X; x < bounds.Max.X; x += stepX {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns 16-bit channels; /257 maps to 0..255.
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257.0
			sum += lum
			sumSq += lum * lum
			n++
		}
	}

	if n == 0 {
		return 0, 0
	}

	mean = sum / n
	variance := sumSq/n - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// heuristicScores builds the per-label score map the way a classifier
// reports one: the winner keeps its confidence, the rest split the
// remainder evenly.
func heuristicScores(winner mood.Mood, confidence float64) map[string]float64 {
	labels := mood.All()
	rest := (1 - confidence) / float64(len(labels)-1)

	scores := make(map[string]float64, len(labels))
	for _, m := range labels {
		if m == winner {
			scores[string(m)] = confidence
		} else {
			scores[string(m)] = math.Round(rest*1000) / 1000
		}
	}
	return scores
}
