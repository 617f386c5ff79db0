package emotion

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// Cascade tuning. Faces smaller than 20px are noise at selfie
// resolutions; a cluster IoU of 0.2 merges overlapping detections of
// the same face; detections scoring under the quality threshold are
// discarded.
const (
	minFaceSize      = 20
	maxFaceSize      = 1000
	shiftFactor      = 0.1
	scaleFactor      = 1.1
	clusterThreshold = 0.2
	qualityThreshold = 5.0
)

// FaceDetector finds the dominant face in an image using a pigo cascade.
type FaceDetector struct {
	classifier *pigo.Pigo
}

// NewFaceDetector unpacks a binary pigo cascade.
func NewFaceDetector(cascade []byte) (*FaceDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade: %w", err)
	}
	return &FaceDetector{classifier: classifier}, nil
}

// NewFaceDetectorFromFile loads a cascade file from disk.
func NewFaceDetectorFromFile(path string) (*FaceDetector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade %s: %w", path, err)
	}
	return NewFaceDetector(cascade)
}

// DominantFace returns the bounding rectangle of the highest-quality
// face detection, or false when the image has no detectable face.
func (f *FaceDetector) DominantFace(img image.Image) (image.Rectangle, bool) {
	bounds := img.Bounds()
	pixels := pigo.RgbToGrayscale(pigo.ImgToNRGBA(img))

	params := pigo.CascadeParams{
		MinSize:     minFaceSize,
		MaxSize:     maxFaceSize,
		ShiftFactor: shiftFactor,
		ScaleFactor: scaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   bounds.Dy(),
			Cols:   bounds.Dx(),
			Dim:    bounds.Dx(),
		},
	}

	dets := f.classifier.RunCascade(params, 0.0)
	dets = f.classifier.ClusterDetections(dets, clusterThreshold)

	var best pigo.Detection
	found := false
	for _, det := range dets {
		if det.Q < qualityThreshold {
			continue
		}
		if !found || det.Q > best.Q {
			best = det
			found = true
		}
	}

	if !found {
		return image.Rectangle{}, false
	}

	half := best.Scale / 2
	rect := image.Rect(best.Col-half, best.Row-half, best.Col+half, best.Row+half)
	return rect.Intersect(bounds), true
}
