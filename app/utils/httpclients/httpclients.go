package httpclients

import (
	"time"

	"resty.dev/v3"
)

// NewClient builds a resty client shared by the analysis collaborator
// clients.
func NewClient(name string) *resty.Client {
	return resty.New().
		SetHeader("User-Agent", name).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
}
