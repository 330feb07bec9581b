package healthcheck

import (
	"context"
	"sync/atomic"

	"github.com/mileusna/crontab"
	"vsguard.ai/vision-gateway/app/utils/httpclients/detector"
	"vsguard.ai/vision-gateway/app/utils/httpclients/ocr"
	"vsguard.ai/vision-gateway/app/utils/logger"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

// HealthcheckCrontabService probes the analysis collaborators on a schedule
// so a dead detector shows up in the logs before clients notice degraded
// results.
type HealthcheckCrontabService struct {
	DetectorClient *detector.DetectorClient
	OcrClient      *ocr.OcrClient

	// written by the crontab goroutine, read by HTTP handlers
	detectorUp atomic.Bool
	ocrUp      atomic.Bool
}

func NewService(detectorClient *detector.DetectorClient, ocrClient *ocr.OcrClient) *HealthcheckCrontabService {
	return &HealthcheckCrontabService{
		DetectorClient: detectorClient,
		OcrClient:      ocrClient,
	}
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hs.CheckCollaborators(ctx)
	// Check every 2 minutes
	ctab.AddJob("*/2 * * * *", func() {
		hs.CheckCollaborators(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

func (hs *HealthcheckCrontabService) CheckCollaborators(ctx context.Context) {
	log := logger.GetLogger()

	detectorUp := false
	if hs.DetectorClient.BaseURL == "" {
		log.Warn("no detector service configured")
	} else if err := hs.DetectorClient.GetHealth(ctx); err != nil {
		log.WithField("error", err.Error()).Warn("detector service unhealthy")
	} else {
		detectorUp = true
	}
	hs.detectorUp.Store(detectorUp)

	// OCR is optional; text extraction is skipped when unset
	ocrUp := hs.OcrClient.BaseURL == ""
	if !ocrUp {
		if err := hs.OcrClient.GetHealth(ctx); err != nil {
			log.WithField("error", err.Error()).Warn("ocr service unhealthy")
		} else {
			ocrUp = true
		}
	}
	hs.ocrUp.Store(ocrUp)
}

// Healthy reports whether every configured collaborator answered its last
// probe.
func (hs *HealthcheckCrontabService) Healthy() bool {
	return hs.detectorUp.Load() && hs.ocrUp.Load()
}
