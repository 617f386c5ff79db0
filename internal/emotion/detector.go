// Package emotion classifies the dominant facial emotion in an uploaded
// photo. Detection degrades through a chain: remote inference when
// configured, then the local face cascade plus brightness heuristic,
// then the neutral fallback. The chain never surfaces an error.
package emotion

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/moodshopapp/moodshop-server/internal/domain"
	"github.com/moodshopapp/moodshop-server/internal/media/images"
	"github.com/moodshopapp/moodshop-server/internal/mood"
)

// User-facing notices for degraded results.
const (
	NoticeNoMood = "No mood detected. Try a clearer, well-lit photo."
	NoticeNoFace = "No face detected. Try a photo with your face in view."
)

// Options configures the detector chain.
type Options struct {
	// CascadeFile is the path to a binary pigo face cascade. Empty
	// disables face detection; the heuristic then scores the whole image.
	CascadeFile string

	// InferenceURL points at a remote classification service.
	// Empty disables remote inference.
	InferenceURL     string
	InferenceToken   string
	InferenceTimeout time.Duration

	Logger *slog.Logger
}

// Detector turns an uploaded photo into a mood analysis.
type Detector struct {
	faces  *FaceDetector
	remote *InferenceClient
	logger *slog.Logger
}

// NewDetector builds the detection chain from the configured pieces.
// A configured cascade that fails to load is a startup error, not a
// runtime degradation.
func NewDetector(opts Options) (*Detector, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	d := &Detector{logger: logger}

	if opts.CascadeFile != "" {
		faces, err := NewFaceDetectorFromFile(opts.CascadeFile)
		if err != nil {
			return nil, err
		}
		d.faces = faces
		logger.Info("face cascade loaded", "path", opts.CascadeFile)
	}

	if opts.InferenceURL != "" {
		d.remote = NewInferenceClient(opts.InferenceURL, opts.InferenceToken, opts.InferenceTimeout, logger)
		logger.Info("remote inference enabled", "url", opts.InferenceURL)
	}

	return d, nil
}

// RemoteEnabled reports whether a remote inference service is configured.
func (d *Detector) RemoteEnabled() bool {
	return d.remote != nil
}

// FaceDetectionEnabled reports whether a face cascade is loaded.
func (d *Detector) FaceDetectionEnabled() bool {
	return d.faces != nil
}

// Detect classifies the dominant emotion in the uploaded photo.
// It never returns an error: undecodable data, a missing face, or a
// misbehaving remote service all degrade to the neutral fallback with
// a user-facing notice. The photo is processed in memory only.
func (d *Detector) Detect(ctx context.Context, data []byte) *domain.Analysis {
	analysis := &domain.Analysis{ID: uuid.NewString()}

	img, format, err := images.Decode(data)
	if err != nil {
		d.logger.Warn("upload not decodable", "error", err)
		return fallbackAnalysis(analysis, domain.AnalysisSourceFallback, NoticeNoMood)
	}

	if d.remote != nil && d.classifyRemote(ctx, data, analysis) {
		return analysis
	}

	region := img
	if d.faces != nil {
		rect, found := d.faces.DominantFace(img)
		if !found {
			d.logger.Debug("no face found in upload", "format", format)
			return fallbackAnalysis(analysis, domain.AnalysisSourceFallback, NoticeNoFace)
		}
		analysis.FaceDetected = true
		region = cropRegion(img, rect)
	}

	label, confidence := classifyHeuristic(region)
	analysis.Mood = label
	analysis.Confidence = confidence
	analysis.Scores = heuristicScores(label, confidence)
	analysis.Source = domain.AnalysisSourceHeuristic

	d.logger.Debug("mood detected",
		"mood", label,
		"confidence", confidence,
		"face", analysis.FaceDetected,
	)

	return analysis
}

// classifyRemote asks the remote service to fill in the analysis.
// Returns true when it produced a verdict (including the unknown-label
// fallback); false means fall through to local detection.
func (d *Detector) classifyRemote(ctx context.Context, data []byte, analysis *domain.Analysis) bool {
	result, err := d.remote.Classify(ctx, data)
	if err != nil {
		d.logger.Warn("remote inference failed, using local detection", "error", err)
		return false
	}

	label, ok := mood.Normalize(result.Label)
	if !ok {
		d.logger.Warn("remote inference returned unknown label", "label", result.Label)
		fallbackAnalysis(analysis, domain.AnalysisSourceModel, NoticeNoMood)
		return true
	}

	analysis.Mood = label
	analysis.Confidence = result.Confidence
	analysis.Scores = result.Scores
	analysis.Source = domain.AnalysisSourceModel

	d.logger.Debug("mood detected remotely", "mood", label, "confidence", result.Confidence)
	return true
}

// fallbackAnalysis rewrites the analysis to the neutral fallback.
func fallbackAnalysis(a *domain.Analysis, source, notice string) *domain.Analysis {
	a.Mood = mood.Fallback
	a.Confidence = 0
	a.Scores = nil
	a.FaceDetected = false
	a.Source = source
	a.Fallback = true
	a.Notice = notice
	return a
}

// cropRegion extracts the face rectangle as its own image.
// SubImage shares pixels with the original, which is fine here: the
// heuristic only reads.
func cropRegion(img image.Image, rect image.Rectangle) image.Image {
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(rect)
	}
	return img
}
