package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNoProject is returned when no Firebase project is configured.
var ErrNoProject = errors.New("firebase project id is required")

// Config holds Firebase configuration.
type Config struct {
	ProjectID       string
	CredentialsFile string // service account JSON; empty uses application default credentials
}

// NewAuthClient initializes a Firebase app and returns its Auth client, which
// verifies ID tokens for the caller identity.
func NewAuthClient(ctx context.Context, cfg Config) (*auth.Client, error) {
	if cfg.ProjectID == "" {
		return nil, ErrNoProject
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		creds, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read firebase credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return client, nil
}
