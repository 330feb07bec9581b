package analysis

import (
	"context"
	"fmt"
	"strings"

	"vsguard.ai/vision-gateway/app/utils/logger"
)

// Detector finds objects and their spatial zone in an image.
type Detector interface {
	Detect(ctx context.Context, imageBytes []byte) ([]DetectedObject, error)
}

// TextExtractor runs OCR over an image.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageBytes []byte) (string, error)
}

// Describer turns detections (and optionally the raw image) into a natural
// language scene description.
type Describer interface {
	Describe(ctx context.Context, objects []DetectedObject, detectedText string, imageBytes []byte) (string, error)
}

// Service runs the full analysis pipeline over one image. All three
// collaborators are treated as slow, failable and stateless; a collaborator
// failure degrades the result instead of propagating.
type Service struct {
	detector  Detector
	extractor TextExtractor
	describer Describer
}

func NewService(detector Detector, extractor TextExtractor, describer Describer) *Service {
	return &Service{
		detector:  detector,
		extractor: extractor,
		describer: describer,
	}
}

// Process runs detect, OCR and describe in order. It never returns an error:
// a detector failure yields a degraded result, OCR and description failures
// only lose their respective fields.
func (s *Service) Process(ctx context.Context, imageBytes []byte) *Result {
	log := logger.GetLogger()

	objects, err := s.detector.Detect(ctx, imageBytes)
	if err != nil {
		log.WithField("error", err.Error()).Error("object detection failed")
		return DegradedResult("Error en detección")
	}

	detectedText := ""
	if s.extractor != nil {
		detectedText, err = s.extractor.ExtractText(ctx, imageBytes)
		if err != nil {
			log.WithField("error", err.Error()).Warn("text extraction failed, continuing without text")
			detectedText = ""
		}
	}

	result := &Result{DetectedObjects: objects}
	if strings.TrimSpace(detectedText) != "" {
		result.DetectedText = detectedText
	}

	description, err := s.describer.Describe(ctx, objects, detectedText, imageBytes)
	if err != nil {
		log.WithField("error", err.Error()).Error(fmt.Sprintf("description generation failed for %d objects", len(objects)))
		description = "Error en la generación de descripción."
	}
	result.Description = description
	return result
}
