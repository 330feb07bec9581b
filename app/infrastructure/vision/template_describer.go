package vision

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"vsguard.ai/vision-gateway/app/domain/analysis"
)

// TemplateDescriber builds the scene description locally from the detections
// and extracted text, without calling a language model. It is the default
// describer.
type TemplateDescriber struct{}

func NewTemplateDescriber() analysis.Describer {
	return &TemplateDescriber{}
}

func (d *TemplateDescriber) Describe(ctx context.Context, objects []analysis.DetectedObject, detectedText string, imageBytes []byte) (string, error) {
	if len(objects) == 0 && strings.TrimSpace(detectedText) == "" {
		return "No se detectaron objetos ni texto en la imagen.", nil
	}

	zones := map[string][]string{}
	for _, obj := range objects {
		zones[obj.Position] = append(zones[obj.Position], translateLabel(obj.Label))
	}

	var description strings.Builder
	if labels := zones[analysis.PositionLeft]; len(labels) > 0 {
		description.WriteString(fmt.Sprintf("A tu izquierda veo %s. ", formatObjects(labels)))
	}
	if labels := zones[analysis.PositionCenter]; len(labels) > 0 {
		description.WriteString(fmt.Sprintf("Frente a ti %s. ", formatObjects(labels)))
	}
	if labels := zones[analysis.PositionRight]; len(labels) > 0 {
		description.WriteString(fmt.Sprintf("A tu derecha %s. ", formatObjects(labels)))
	}

	if hasObstacles(objects) {
		description.WriteString("Ten cuidado, hay obstáculos en tu camino. ")
	}

	if text, legible := cleanExtractedText(detectedText); text != "" {
		if legible {
			description.WriteString(fmt.Sprintf("También veo un letrero o texto que dice: '%s'. ", text))
		} else {
			description.WriteString("También veo un letrero o texto, pero no es completamente legible. ")
		}
	}

	return strings.TrimSpace(description.String()), nil
}

// formatObjects renders a label list as natural Spanish: articles, counts,
// naive pluralization, and "y" before the last item.
func formatObjects(labels []string) string {
	counts := map[string]int{}
	order := []string{}
	for _, label := range labels {
		if counts[label] == 0 {
			order = append(order, label)
		}
		counts[label]++
	}

	parts := make([]string, 0, len(order))
	for _, label := range order {
		count := counts[label]
		article := "un"
		if strings.HasSuffix(label, "a") {
			article = "una"
		}
		plural := label
		if strings.HasSuffix(label, "a") || strings.HasSuffix(label, "e") || strings.HasSuffix(label, "o") {
			plural = label + "s"
		}

		var part string
		if count == 1 {
			part = fmt.Sprintf("%s %s", article, label)
		} else {
			part = fmt.Sprintf("%d %s", count, plural)
		}
		if label == "persona" {
			part = "a " + part
		}
		parts = append(parts, part)
	}

	if len(parts) > 1 {
		return strings.Join(parts[:len(parts)-1], ", ") + " y " + parts[len(parts)-1]
	}
	return parts[0]
}

func hasObstacles(objects []analysis.DetectedObject) bool {
	for _, obj := range objects {
		if _, ok := obstacleLabels[obj.Label]; ok {
			return true
		}
	}
	return false
}

var (
	specialCharPattern = regexp.MustCompile(`[^\w\s]`)
	digitPattern       = regexp.MustCompile(`\d`)
)

// cleanExtractedText decides whether OCR output is worth quoting. Text that
// is mostly special characters and digits, or has fewer than three words, is
// reported as illegible rather than read out loud.
func cleanExtractedText(detectedText string) (text string, legible bool) {
	trimmed := strings.TrimSpace(detectedText)
	if trimmed == "" {
		return "", false
	}

	specials := len(specialCharPattern.FindAllString(trimmed, -1))
	digits := len(digitPattern.FindAllString(trimmed, -1))
	words := len(strings.Fields(trimmed))

	if float64(specials+digits)/float64(len(trimmed)) > 0.4 || words < 3 {
		return trimmed, false
	}
	return trimmed, true
}
