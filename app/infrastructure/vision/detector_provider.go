package vision

import (
	"context"

	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/app/utils/functional"
	"vsguard.ai/vision-gateway/app/utils/httpclients/detector"
)

// DetectorProvider implements analysis.Detector against the detection
// service.
type DetectorProvider struct {
	client *detector.DetectorClient
}

func NewDetectorProvider(client *detector.DetectorClient) analysis.Detector {
	return &DetectorProvider{
		client: client,
	}
}

func (p *DetectorProvider) Detect(ctx context.Context, imageBytes []byte) ([]analysis.DetectedObject, error) {
	response, err := p.client.Detect(ctx, imageBytes)
	if err != nil {
		return nil, err
	}
	return functional.Map(response.Detections, func(d detector.Detection) analysis.DetectedObject {
		return analysis.DetectedObject{
			Label:      d.Label,
			Position:   normalizePosition(d.Position),
			Confidence: d.Confidence,
			Color:      d.Color,
		}
	}), nil
}

// normalizePosition guards against detector builds that return an empty or
// unknown zone.
func normalizePosition(position string) string {
	switch position {
	case analysis.PositionLeft, analysis.PositionCenter, analysis.PositionRight:
		return position
	default:
		return analysis.PositionUnknown
	}
}
