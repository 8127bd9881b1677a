package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/ecs-example/internal/http/health"
	"github.com/janisto/ecs-example/internal/http/v1/example"
	"github.com/janisto/ecs-example/internal/platform/auth"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, props example.ConfigProvider, version string) {
	// Resolve the caller before any operation runs
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	health.Register(api, version)
	example.Register(api, auth.ContextIdentity{}, props)
}
