package firebase

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"eduverse/backend/internal/config"
	"eduverse/backend/internal/logging"
)

// App is the process-wide Firebase handle.
type App struct {
	*firebase.App
	projectID string
}

// ProjectID reports the project the handle was initialized for.
func (a *App) ProjectID() string { return a.projectID }

// registry holds the single App of this process. The mutex makes the
// check-and-set atomic so concurrent callers always share one handle.
var registry struct {
	mu  sync.Mutex
	app *App
}

// ProvideApp returns the process's Firebase handle, initializing it on the
// first call. Later calls return the same *App without touching the
// credential resource. A failed initialization registers nothing.
//
// When cfg.ProjectID is empty the credential's own project_id is used.
func ProvideApp(ctx context.Context, cfg config.Firebase, log *zap.Logger) (*App, error) {
	log = logging.Named(log, "firebase")
	log.Info("initializing firebase app", zap.String("project", cfg.ProjectID))

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if registry.app != nil {
		log.Info("firebase app already initialized", zap.String("project", registry.app.projectID))
		return registry.app, nil
	}

	creds, err := LoadCredentials(ctx, cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = creds.ProjectID
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	registry.app = &App{App: fbApp, projectID: projectID}
	log.Info("firebase app initialized", zap.String("project", projectID))
	return registry.app, nil
}
