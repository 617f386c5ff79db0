package providers

import (
	"github.com/samber/do/v2"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/emotion"
	"github.com/moodshopapp/moodshop-server/internal/logger"
)

// ProvideDetector provides the emotion detection chain.
func ProvideDetector(i do.Injector) (*emotion.Detector, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	detector, err := emotion.NewDetector(emotion.Options{
		CascadeFile:      cfg.Detector.CascadeFile,
		InferenceURL:     cfg.Detector.InferenceURL,
		InferenceToken:   cfg.Detector.InferenceToken,
		InferenceTimeout: cfg.Detector.InferenceTimeout,
		Logger:           log.Logger,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Emotion detector initialized",
		"face_detection", detector.FaceDetectionEnabled(),
		"remote_inference", detector.RemoteEnabled(),
	)

	return detector, nil
}
