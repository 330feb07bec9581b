package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"vsguard.ai/vision-gateway/app/domain/analysis"
)

func describe(t *testing.T, objects []analysis.DetectedObject, text string) string {
	t.Helper()
	description, err := NewTemplateDescriber().Describe(context.Background(), objects, text, nil)
	require.NoError(t, err)
	return description
}

func TestDescribeEmptyScene(t *testing.T) {
	assert.Equal(t, "No se detectaron objetos ni texto en la imagen.", describe(t, nil, ""))
}

func TestDescribeGroupsObjectsByZone(t *testing.T) {
	description := describe(t, []analysis.DetectedObject{
		{Label: "dog", Position: analysis.PositionLeft, Confidence: 0.8},
		{Label: "chair", Position: analysis.PositionCenter, Confidence: 0.9},
		{Label: "cat", Position: analysis.PositionRight, Confidence: 0.7},
	}, "")

	assert.Contains(t, description, "A tu izquierda veo un perro.")
	assert.Contains(t, description, "Frente a ti una silla.")
	assert.Contains(t, description, "A tu derecha un gato.")
}

func TestDescribeCountsAndJoinsRepeatedObjects(t *testing.T) {
	description := describe(t, []analysis.DetectedObject{
		{Label: "chair", Position: analysis.PositionCenter},
		{Label: "chair", Position: analysis.PositionCenter},
		{Label: "laptop", Position: analysis.PositionCenter},
	}, "")

	assert.Contains(t, description, "2 sillas")
	assert.Contains(t, description, "y un portátil")
}

func TestDescribeWarnsAboutObstacles(t *testing.T) {
	withObstacle := describe(t, []analysis.DetectedObject{
		{Label: "car", Position: analysis.PositionCenter},
	}, "")
	assert.Contains(t, withObstacle, "Ten cuidado, hay obstáculos en tu camino.")

	withoutObstacle := describe(t, []analysis.DetectedObject{
		{Label: "chair", Position: analysis.PositionCenter},
	}, "")
	assert.NotContains(t, withoutObstacle, "Ten cuidado")
}

func TestDescribeQuotesLegibleText(t *testing.T) {
	description := describe(t, nil, "salida de emergencia por la derecha")

	assert.Contains(t, description, "'salida de emergencia por la derecha'")
}

func TestDescribeReportsNoisyTextAsIllegible(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"mostly symbols and digits", "#$%1234@@!!"},
		{"too few words", "EXIT 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			description := describe(t, nil, tt.text)
			assert.Contains(t, description, "no es completamente legible")
			assert.NotContains(t, description, "que dice")
		})
	}
}

func TestDescribeUsesPersonalAForPeople(t *testing.T) {
	description := describe(t, []analysis.DetectedObject{
		{Label: "person", Position: analysis.PositionCenter},
	}, "")

	assert.Contains(t, description, "a una persona")
}
