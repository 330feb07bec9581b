package healthcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"vsguard.ai/vision-gateway/app/utils/httpclients/detector"
	"vsguard.ai/vision-gateway/app/utils/httpclients/ocr"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

func healthzServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheckCollaboratorsWithUnconfiguredDetectorIsUnhealthy(t *testing.T) {
	service := NewService(&detector.DetectorClient{}, &ocr.OcrClient{})

	service.CheckCollaborators(context.Background())

	// no detector means no analysis; missing OCR only skips text extraction
	assert.False(t, service.Healthy())
}

func TestCheckCollaboratorsWithRespondingDetectorIsHealthy(t *testing.T) {
	server := healthzServer(t)
	environment_variables.EnvironmentVariables.DETECTOR_SERVICE_URL = server.URL
	environment_variables.EnvironmentVariables.OCR_SERVICE_URL = ""
	detector.Init()
	ocr.Init()

	service := NewService(detector.NewDetectorClient(), ocr.NewOcrClient())
	service.CheckCollaborators(context.Background())

	assert.True(t, service.Healthy())
}

func TestHealthyIsSafeAgainstConcurrentProbes(t *testing.T) {
	service := NewService(&detector.DetectorClient{}, &ocr.OcrClient{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				service.CheckCollaborators(context.Background())
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = service.Healthy()
			}
		}()
	}
	wg.Wait()

	assert.False(t, service.Healthy())
}
