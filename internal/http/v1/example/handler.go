package example

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/ecs-example/internal/platform/logging"
)

const (
	// EnvKey names the configuration property echoed in the greeting.
	EnvKey = "example.env"

	anonymous = "anonymous"
	helloPath = "/example/hello"
)

// IdentityProvider reports the current caller's display name, if any.
type IdentityProvider interface {
	CallerName(ctx context.Context) (string, bool)
}

// ConfigProvider resolves named configuration values.
type ConfigProvider interface {
	Lookup(key string) (string, bool)
}

type handler struct {
	identity IdentityProvider
	config   ConfigProvider
}

// Register wires the example routes into the provided API. The greeting is open
// to all callers; it declares no security requirement.
func Register(api huma.API, identity IdentityProvider, config ConfigProvider) {
	h := &handler{identity: identity, config: config}

	huma.Register(api, huma.Operation{
		OperationID: "get-example-hello",
		Method:      http.MethodGet,
		Path:        helloPath,
		Summary:     "Greet the caller",
		Description: "Returns the caller's name (\"anonymous\" without credentials) and the configured environment.",
		Tags:        []string{"example"},
	}, h.hello)
}

func (h *handler) hello(ctx context.Context, _ *struct{}) (*GreetingOutput, error) {
	env, ok := h.config.Lookup(EnvKey)
	if !ok {
		applog.LogError(ctx, "configuration property not set", nil, zap.String("key", EnvKey))
		return nil, huma.Error500InternalServerError("configuration property " + EnvKey + " is not set")
	}

	name, authenticated := h.identity.CallerName(ctx)
	if !authenticated {
		name = anonymous
	}

	applog.LogInfo(ctx, "example hello", zap.String("path", helloPath), zap.Bool("authenticated", authenticated))
	return &GreetingOutput{Body: Greeting{Name: name, Env: env}}, nil
}
