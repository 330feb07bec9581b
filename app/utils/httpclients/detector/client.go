package detector

import (
	"context"
	"encoding/base64"
	"fmt"

	"resty.dev/v3"
	"vsguard.ai/vision-gateway/app/utils/httpclients"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

var DetectorRestyClient *resty.Client

func Init() {
	DetectorRestyClient = httpclients.NewClient("DetectorClient")
	DetectorRestyClient.SetBaseURL(environment_variables.EnvironmentVariables.DETECTOR_SERVICE_URL)
}

// DetectorClient talks to the object-detection service.
type DetectorClient struct {
	BaseURL string
}

func NewDetectorClient() *DetectorClient {
	return &DetectorClient{
		BaseURL: environment_variables.EnvironmentVariables.DETECTOR_SERVICE_URL,
	}
}

type DetectRequest struct {
	ImageBase64 string `json:"image_base64"`
}

// Detection mirrors one detection record returned by the service. Position
// is one of the izquierda/centro/derecha zones computed from the box center.
type Detection struct {
	Label      string  `json:"label"`
	Position   string  `json:"position"`
	Confidence float64 `json:"confidence"`
	Color      string  `json:"color,omitempty"`
}

type DetectResponse struct {
	Detections []Detection `json:"detections"`
}

func (c *DetectorClient) Detect(ctx context.Context, imageBytes []byte) (*DetectResponse, error) {
	var result DetectResponse
	resp, err := DetectorRestyClient.R().
		SetContext(ctx).
		SetBody(DetectRequest{ImageBase64: base64.StdEncoding.EncodeToString(imageBytes)}).
		SetResult(&result).
		Post("/v1/detect")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("detector service returned %s", resp.Status())
	}
	return &result, nil
}

func (c *DetectorClient) GetHealth(ctx context.Context) error {
	resp, err := DetectorRestyClient.R().
		SetContext(ctx).
		Get("/healthz")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("detector service returned %s", resp.Status())
	}
	return nil
}
