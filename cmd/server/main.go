package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/janisto/ecs-example/internal/http/api"
	"github.com/janisto/ecs-example/internal/http/v1/example"
	"github.com/janisto/ecs-example/internal/http/v1/routes"
	"github.com/janisto/ecs-example/internal/platform/auth"
	"github.com/janisto/ecs-example/internal/platform/config"
	"github.com/janisto/ecs-example/internal/platform/firebase"
	applog "github.com/janisto/ecs-example/internal/platform/logging"
	appmiddleware "github.com/janisto/ecs-example/internal/platform/middleware"
	"github.com/janisto/ecs-example/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const (
	apiTitle        = "Example API"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Run the example HTTP service",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.Load(envFile)
			if err != nil {
				applog.LogError(cmd.Context(), "config load failed", err)
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetString("port")
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringP("port", "p", "8080", "Port to listen on (overrides PORT)")
	cmd.Flags().StringP("env-file", "e", os.Getenv("ENV_FILE"), "Dotenv file to load before reading the environment")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Configure(applog.Options{
		Service: applog.DefaultService,
		Version: Version,
		Level:   cfg.LogLevel,
	}); err != nil {
		applog.LogError(ctx, "logger init error", err)
		return err
	}

	if err := cfg.Require(example.EnvKey); err != nil {
		applog.LogError(ctx, "startup check failed", err)
		return err
	}

	verifier, err := newVerifier(ctx, cfg.Auth)
	if err != nil {
		applog.LogError(ctx, "auth init failed", err, zap.String("provider", cfg.Auth.Provider))
		return err
	}

	srv := newServer(cfg.Port, newHandler(verifier, cfg.Properties))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	return serve(srv, stop)
}

// newVerifier builds the token verifier for the configured provider. A nil
// verifier leaves every caller anonymous.
func newVerifier(ctx context.Context, cfg config.AuthConfig) (auth.Verifier, error) {
	switch cfg.Provider {
	case config.AuthFirebase:
		client, err := firebase.NewAuthClient(ctx, firebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentials,
		})
		if err != nil {
			return nil, err
		}
		return auth.NewFirebaseVerifier(client), nil
	case config.AuthJWT:
		return auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience), nil
	case config.AuthNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

func newHandler(verifier auth.Verifier, props example.ConfigProvider) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(api.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For; run behind a trusted proxy only.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	humaAPI := humachi.New(router, api.NewConfig(apiTitle, Version))
	routes.Register(humaAPI, verifier, props, Version)
	return router
}

func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs srv until it fails to listen or a value arrives on stop, then
// shuts it down gracefully.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		return err
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		applog.LogError(ctx, "server shutdown error", err)
		return err
	}
	applog.LogInfo(context.Background(), "server exited")
	return nil
}
