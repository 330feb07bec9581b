package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

const describerFallback = "No se pudo generar una descripción fiable para la escena."

// OpenAIDescriber generates the scene description with an OpenAI-compatible
// vision model: the image goes along as a base64 data URI and the detections
// are summarized into the prompt so the model can verify them.
type OpenAIDescriber struct {
	client *openai.Client
	model  string
}

func NewOpenAIDescriber() analysis.Describer {
	config := openai.DefaultConfig(environment_variables.EnvironmentVariables.VISION_MODEL_API_KEY)
	if baseURL := environment_variables.EnvironmentVariables.VISION_MODEL_URL; baseURL != "" {
		config.BaseURL = strings.TrimRight(baseURL, "/") + "/v1"
	}
	return &OpenAIDescriber{
		client: openai.NewClientWithConfig(config),
		model:  environment_variables.EnvironmentVariables.VISION_MODEL_NAME,
	}
}

func (d *OpenAIDescriber) Describe(ctx context.Context, objects []analysis.DetectedObject, detectedText string, imageBytes []byte) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:       d.model,
		Temperature: 0.2,
		MaxTokens:   800,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "Eres un asistente de visión para personas con discapacidad visual. Describe escenas de forma corta, concisa y natural, sin emoticones ni caracteres especiales.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: buildPrompt(objects, detectedText),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageBytes),
						},
					},
				},
			},
		},
	}

	response, err := d.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("vision model returned no choices")
	}

	description := strings.TrimSpace(response.Choices[0].Message.Content)
	if len(description) < 10 {
		return describerFallback, nil
	}
	return description, nil
}

// buildPrompt folds the detector output into the instruction so the model
// compares it against the image instead of hallucinating freely.
func buildPrompt(objects []analysis.DetectedObject, detectedText string) string {
	var prompt strings.Builder
	prompt.WriteString("Describe de forma detallada pero corta, concisa y natural la siguiente escena, " +
		"comparando la información con la imagen y regresando la información verídica: ")
	prompt.WriteString(buildSceneContext(objects))
	if spatial := buildSpatialContext(objects); spatial != "" {
		prompt.WriteString(spatial)
	}
	if text := strings.TrimSpace(detectedText); text != "" {
		prompt.WriteString(fmt.Sprintf(" El texto detectado en la imagen es: '%s'.", text))
	}
	return prompt.String()
}

func buildSceneContext(objects []analysis.DetectedObject) string {
	zones := map[string][]string{}
	for _, obj := range objects {
		label := translateLabel(obj.Label)
		if obj.Color != "" {
			label = fmt.Sprintf("%s de color %s", label, obj.Color)
		}
		zone := obj.Position
		if zone == analysis.PositionUnknown {
			zone = analysis.PositionCenter
		}
		zones[zone] = append(zones[zone], label)
	}

	parts := []string{}
	if labels := zones[analysis.PositionLeft]; len(labels) > 0 {
		parts = append(parts, "A tu izquierda veo "+strings.Join(labels, ", ")+".")
	}
	if labels := zones[analysis.PositionCenter]; len(labels) > 0 {
		parts = append(parts, "Frente a ti veo "+strings.Join(labels, ", ")+".")
	}
	if labels := zones[analysis.PositionRight]; len(labels) > 0 {
		parts = append(parts, "A tu derecha veo "+strings.Join(labels, ", ")+".")
	}
	if len(parts) == 0 {
		return "No hay objetos detectados."
	}
	return strings.Join(parts, " ")
}

// buildSpatialContext adds proximity hints when objects crowd adjacent
// zones, which matters for safe navigation.
func buildSpatialContext(objects []analysis.DetectedObject) string {
	occupied := map[string]bool{}
	for _, obj := range objects {
		occupied[obj.Position] = true
	}

	hints := []string{}
	if occupied[analysis.PositionCenter] {
		if occupied[analysis.PositionLeft] {
			hints = append(hints, "hay objetos tanto en el centro como a la izquierda, lo que sugiere posibles obstáculos en esa zona")
		}
		if occupied[analysis.PositionRight] {
			hints = append(hints, "se detecta proximidad entre objetos en el centro y a la derecha")
		}
	} else if occupied[analysis.PositionLeft] && occupied[analysis.PositionRight] {
		hints = append(hints, "hay objetos en ambos laterales, por lo que se recomienda precaución al avanzar")
	}

	if len(hints) == 0 {
		return ""
	}
	return " Además, " + strings.Join(hints, " y ") + "."
}
