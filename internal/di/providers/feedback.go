package providers

import (
	"github.com/samber/do/v2"

	"github.com/moodshopapp/moodshop-server/internal/config"
	"github.com/moodshopapp/moodshop-server/internal/feedback"
	"github.com/moodshopapp/moodshop-server/internal/logger"
)

// ProvideFeedbackLog provides the append-only feedback file.
func ProvideFeedbackLog(i do.Injector) (*feedback.Log, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	fl, err := feedback.NewLog(cfg.Feedback.LogPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Feedback log ready", "path", fl.Path())

	return fl, nil
}
