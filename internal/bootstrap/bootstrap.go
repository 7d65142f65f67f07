package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"eduverse/backend/internal/config"
	"eduverse/backend/internal/firebase"
)

// Bootstrap bundles the components built at startup and handed to the
// rest of the application.
type Bootstrap struct {
	Log       *zap.Logger
	App       *firebase.App
	Firestore *firebase.Firestore
}

// Run builds the component graph: Firebase handle first, then the Firestore
// client derived from it. The first error aborts startup.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) (*Bootstrap, error) {
	if log == nil {
		log = zap.NewNop()
	}
	bs := &Bootstrap{Log: log}

	app, err := firebase.ProvideApp(ctx, cfg.Firebase, log)
	if err != nil {
		return nil, fmt.Errorf("firebase app init failed: %w", err)
	}
	bs.App = app

	fs, err := firebase.NewFirestore(ctx, app, log)
	if err != nil {
		return nil, fmt.Errorf("firestore init failed: %w", err)
	}
	bs.Firestore = fs

	return bs, nil
}

// Close releases clients. The Firebase handle itself lives until exit.
func (b *Bootstrap) Close() {
	if b == nil {
		return
	}
	if err := b.Firestore.Close(); err != nil && b.Log != nil {
		b.Log.Warn("firestore close failed", zap.Error(err))
	}
}
