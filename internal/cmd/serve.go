package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognicore/paperiq/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Start the HTTP API.

Routes:
  POST /analyze          JSON body {"text": "..."}
  POST /analyze/upload   multipart form with a "file" field
  GET  /reports          archived report summaries, newest first
  GET  /reports/{id}     one archived report
  GET  /health           liveness probe`,
	Args:         cobra.NoArgs,
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "Listen address (default from config, :8080)")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := setup(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	addr := s.cfg.Server.Addr
	if listenAddr != "" {
		addr = listenAddr
	}

	handler := api.NewHandler(api.Options{
		Logger:         s.logger,
		Analyzer:       s.comp.Analyzer,
		Archive:        s.comp.Archive,
		MaxUploadBytes: s.cfg.Server.MaxUploadBytes,
		Timeout:        time.Duration(s.cfg.Sentiment.TimeoutSeconds) * time.Second,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown", zap.Error(err))
		return err
	}
	return nil
}
