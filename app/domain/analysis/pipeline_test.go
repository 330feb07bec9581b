package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDetector struct {
	fn func(ctx context.Context, imageBytes []byte) ([]DetectedObject, error)
}

func (s *stubDetector) Detect(ctx context.Context, imageBytes []byte) ([]DetectedObject, error) {
	return s.fn(ctx, imageBytes)
}

type stubExtractor struct {
	fn func(ctx context.Context, imageBytes []byte) (string, error)
}

func (s *stubExtractor) ExtractText(ctx context.Context, imageBytes []byte) (string, error) {
	return s.fn(ctx, imageBytes)
}

type stubDescriber struct {
	fn func(ctx context.Context, objects []DetectedObject, text string, imageBytes []byte) (string, error)
}

func (s *stubDescriber) Describe(ctx context.Context, objects []DetectedObject, text string, imageBytes []byte) (string, error) {
	return s.fn(ctx, objects, text, imageBytes)
}

func fixedDetector(objects []DetectedObject, err error) Detector {
	return &stubDetector{fn: func(context.Context, []byte) ([]DetectedObject, error) {
		return objects, err
	}}
}

func fixedExtractor(text string, err error) TextExtractor {
	return &stubExtractor{fn: func(context.Context, []byte) (string, error) {
		return text, err
	}}
}

func fixedDescriber(description string, err error) Describer {
	return &stubDescriber{fn: func(context.Context, []DetectedObject, string, []byte) (string, error) {
		return description, err
	}}
}

func TestProcessComposesDetectionTextAndDescription(t *testing.T) {
	objects := []DetectedObject{{Label: "chair", Position: PositionCenter, Confidence: 0.91}}
	service := NewService(
		fixedDetector(objects, nil),
		fixedExtractor("SALIDA DE EMERGENCIA POR AQUI", nil),
		fixedDescriber("Frente a ti una silla.", nil),
	)

	result := service.Process(context.Background(), []byte("jpeg"))

	require.NotNil(t, result)
	assert.Equal(t, objects, result.DetectedObjects)
	assert.Equal(t, "SALIDA DE EMERGENCIA POR AQUI", result.DetectedText)
	assert.Equal(t, "Frente a ti una silla.", result.Description)
	assert.Empty(t, result.Error)
}

func TestProcessDetectorFailureYieldsDegradedResult(t *testing.T) {
	service := NewService(
		fixedDetector(nil, errors.New("model exploded")),
		fixedExtractor("", nil),
		fixedDescriber("", nil),
	)

	result := service.Process(context.Background(), []byte("jpeg"))

	require.NotEmpty(t, result.Error)
	require.Len(t, result.DetectedObjects, 1)
	assert.Equal(t, LabelUnknown, result.DetectedObjects[0].Label)
	assert.Equal(t, PositionUnknown, result.DetectedObjects[0].Position)
	assert.Zero(t, result.DetectedObjects[0].Confidence)
}

func TestProcessExtractorFailureOnlyLosesText(t *testing.T) {
	objects := []DetectedObject{{Label: "dog", Position: PositionLeft, Confidence: 0.7}}
	service := NewService(
		fixedDetector(objects, nil),
		fixedExtractor("", errors.New("ocr down")),
		fixedDescriber("A tu izquierda veo un perro.", nil),
	)

	result := service.Process(context.Background(), []byte("jpeg"))

	assert.Empty(t, result.Error)
	assert.Empty(t, result.DetectedText)
	assert.Equal(t, objects, result.DetectedObjects)
	assert.Equal(t, "A tu izquierda veo un perro.", result.Description)
}

func TestProcessDescriberFailureSubstitutesFallbackText(t *testing.T) {
	service := NewService(
		fixedDetector([]DetectedObject{{Label: "cat", Position: PositionRight, Confidence: 0.8}}, nil),
		fixedExtractor("", nil),
		fixedDescriber("", errors.New("llm timeout")),
	)

	result := service.Process(context.Background(), []byte("jpeg"))

	assert.Empty(t, result.Error)
	assert.Equal(t, "Error en la generación de descripción.", result.Description)
}

func TestForClientStampsACopy(t *testing.T) {
	original := &Result{
		DetectedObjects: []DetectedObject{{Label: "chair", Position: PositionCenter}},
		Description:     "Frente a ti una silla.",
	}

	stamped := original.ForClient("u1")

	assert.Equal(t, "u1", stamped.ClientID)
	assert.Empty(t, original.ClientID, "the shared result must stay unstamped")
	assert.Equal(t, original.DetectedObjects, stamped.DetectedObjects)
}
