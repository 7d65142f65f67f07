package firebase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"eduverse/backend/internal/logging"
)

var ErrNilApp = errors.New("firebase app is nil")

type Firestore struct {
	Client *firestore.Client
}

// NewFirestore derives a document-store client from an initialized handle.
// The credential was resolved when the handle was built, so no file is read
// here.
func NewFirestore(ctx context.Context, app *App, log *zap.Logger) (*Firestore, error) {
	if app == nil || app.App == nil {
		return nil, ErrNilApp
	}

	log = logging.Named(log, "firestore")
	log.Info("creating firestore client", zap.String("project", app.ProjectID()))

	c, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Firestore{Client: c}, nil
}

// Close releases the client's connections. It is safe on a nil receiver
// and on repeated calls; only the first call reaches the client.
func (f *Firestore) Close() error {
	if f == nil {
		return nil
	}
	c := f.Client
	f.Client = nil
	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("close firestore client: %w", err)
	}
	return nil
}
