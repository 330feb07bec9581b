package ocr

import (
	"context"
	"encoding/base64"
	"fmt"

	"resty.dev/v3"
	"vsguard.ai/vision-gateway/app/utils/httpclients"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

var OcrRestyClient *resty.Client

func Init() {
	OcrRestyClient = httpclients.NewClient("OcrClient")
	OcrRestyClient.SetBaseURL(environment_variables.EnvironmentVariables.OCR_SERVICE_URL)
}

// OcrClient talks to the text-extraction service.
type OcrClient struct {
	BaseURL string
}

func NewOcrClient() *OcrClient {
	return &OcrClient{
		BaseURL: environment_variables.EnvironmentVariables.OCR_SERVICE_URL,
	}
}

type ExtractRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type ExtractResponse struct {
	Text string `json:"text"`
}

func (c *OcrClient) ExtractText(ctx context.Context, imageBytes []byte) (*ExtractResponse, error) {
	var result ExtractResponse
	resp, err := OcrRestyClient.R().
		SetContext(ctx).
		SetBody(ExtractRequest{ImageBase64: base64.StdEncoding.EncodeToString(imageBytes)}).
		SetResult(&result).
		Post("/v1/ocr")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ocr service returned %s", resp.Status())
	}
	return &result, nil
}

func (c *OcrClient) GetHealth(ctx context.Context) error {
	resp, err := OcrRestyClient.R().
		SetContext(ctx).
		Get("/healthz")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("ocr service returned %s", resp.Status())
	}
	return nil
}
