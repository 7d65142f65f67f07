package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"eduverse/backend/internal/bootstrap"
	"eduverse/backend/internal/config"
	apihttp "eduverse/backend/internal/http"
	"eduverse/backend/internal/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "api",
		Short:        "EduVerse learning platform API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath, cmd.Flags())
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to application.yaml (default: ./application.yaml or ./config/application.yaml)")
	root.Flags().String("port", "", "listen port, overrides server.port")

	root.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Initialize Firebase and Firestore once, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return check(cmd.Context(), cmd.OutOrStdout(), configPath, cmd.Flags())
		},
	})

	return root
}

func setup(configPath string, flags *pflag.FlagSet) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

// serve blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// the server down. A listener failure is returned instead.
func serve(ctx context.Context, configPath string, flags *pflag.FlagSet) error {
	cfg, log, err := setup(configPath, flags)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bs, err := bootstrap.Run(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return err
	}
	defer bs.Close()

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:       cfg,
		Log:       log,
		ProjectID: bs.App.ProjectID(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Info("API listening", zap.String("addr", srv.Addr), zap.String("project", bs.App.ProjectID()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
	case err := <-listenErr:
		log.Error("listen failed", zap.Error(err))
		return fmt.Errorf("listen failed: %w", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	log.Info("shutting down")
	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Warn("graceful shutdown incomplete", zap.Error(err))
	}
	return nil
}

// check runs the startup sequence once and reports the project on out.
func check(ctx context.Context, out io.Writer, configPath string, flags *pflag.FlagSet) error {
	cfg, log, err := setup(configPath, flags)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bs, err := bootstrap.Run(ctx, cfg, log)
	if err != nil {
		log.Error("startup check failed", zap.Error(err))
		return err
	}
	defer bs.Close()

	fmt.Fprintln(out, "ok: firebase initialized for project", bs.App.ProjectID())
	return nil
}
