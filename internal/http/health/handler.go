// Package health exposes the liveness endpoint.
package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

const statusHealthy = "healthy"

// Status is the payload for the health endpoint.
type Status struct {
	Status  string `json:"status"  doc:"Service status" example:"healthy"`
	Version string `json:"version" doc:"Build version"  example:"1.0.0"`
}

// Output wraps the health payload.
type Output struct {
	Body Status
}

// Register adds GET /health to the API.
func Register(api huma.API, version string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"health"},
	}, func(context.Context, *struct{}) (*Output, error) {
		return &Output{Body: Status{Status: statusHealthy, Version: version}}, nil
	})
}
