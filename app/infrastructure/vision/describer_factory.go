package vision

import (
	"strings"

	"vsguard.ai/vision-gateway/app/domain/analysis"
	"vsguard.ai/vision-gateway/config/environment_variables"
)

// NewDescriber creates a describer based on configuration. Unknown types fall
// back to the local template describer.
func NewDescriber() analysis.Describer {
	switch strings.ToLower(environment_variables.EnvironmentVariables.DESCRIBER_TYPE) {
	case "openai":
		return NewOpenAIDescriber()
	default:
		return NewTemplateDescriber()
	}
}
