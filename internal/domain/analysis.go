package domain

import "github.com/moodshopapp/moodshop-server/internal/mood"

// Analysis sources.
const (
	AnalysisSourceModel     = "model"     // remote inference service
	AnalysisSourceHeuristic = "heuristic" // local brightness/contrast scoring
	AnalysisSourceFallback  = "fallback"  // nothing usable in the image
)

// Analysis is the result of classifying one uploaded photo. It lives for
// the duration of the response; neither the photo nor the analysis is
// persisted.
type Analysis struct {
	ID           string             `json:"id"` // ephemeral correlation id
	Mood         mood.Mood          `json:"mood"`
	Confidence   float64            `json:"confidence"`
	Scores       map[string]float64 `json:"scores,omitempty"` // label -> 0..1
	FaceDetected bool               `json:"face_detected"`
	Source       string             `json:"source"`
	Fallback     bool               `json:"fallback"`         // true when the fallback mood was substituted
	Notice       string             `json:"notice,omitempty"` // user-facing note, e.g. "no mood detected"
}

// ConfidenceLevel returns the display bucket for the analysis confidence.
func (a *Analysis) ConfidenceLevel() string {
	return mood.ConfidenceLevel(a.Confidence)
}
