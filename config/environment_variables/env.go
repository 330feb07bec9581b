package environment_variables

import (
	"os"
	"reflect"
	"strconv"
	"strings"
)

type EnvironmentVariable struct {
	PORT                     int
	ALLOWED_CORS_HOSTS       []string
	CACHE_TYPE               string
	REDIS_URL                string
	REDIS_PASSWORD           string
	REDIS_DB                 string
	RESULT_CACHE_TTL_SECONDS int
	RESULT_CACHE_CAPACITY    int
	ANALYSIS_WORKER_COUNT    int
	ANALYSIS_QUEUE_DEPTH     int
	DESCRIBER_TYPE           string
	DETECTOR_SERVICE_URL     string
	OCR_SERVICE_URL          string
	VISION_MODEL_URL         string
	VISION_MODEL_API_KEY     string
	VISION_MODEL_NAME        string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envValue := os.Getenv(field.Name)
		if envValue == "" {
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Int:
			if parsed, err := strconv.Atoi(envValue); err == nil {
				v.Field(i).SetInt(int64(parsed))
			}
		case reflect.Slice:
			parts := strings.Split(envValue, ",")
			values := make([]string, 0, len(parts))
			for _, part := range parts {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					values = append(values, trimmed)
				}
			}
			v.Field(i).Set(reflect.ValueOf(values))
		}
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{
	PORT:                     8080,
	CACHE_TYPE:               "memory",
	RESULT_CACHE_TTL_SECONDS: 60,
	RESULT_CACHE_CAPACITY:    100,
	ANALYSIS_WORKER_COUNT:    4,
	ANALYSIS_QUEUE_DEPTH:     64,
	DESCRIBER_TYPE:           "template",
	VISION_MODEL_NAME:        "gpt-4o-mini",
}
