package vision

import (
	"context"

	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/app/utils/httpclients/ocr"
)

// OcrProvider implements analysis.TextExtractor against the OCR service.
// When no OCR service is configured it extracts nothing instead of failing.
type OcrProvider struct {
	client *ocr.OcrClient
}

func NewOcrProvider(client *ocr.OcrClient) analysis.TextExtractor {
	return &OcrProvider{
		client: client,
	}
}

func (p *OcrProvider) ExtractText(ctx context.Context, imageBytes []byte) (string, error) {
	if p.client.BaseURL == "" {
		return "", nil
	}
	response, err := p.client.ExtractText(ctx, imageBytes)
	if err != nil {
		return "", err
	}
	return response.Text, nil
}
