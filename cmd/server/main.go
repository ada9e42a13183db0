// Command server exposes the scansion engine as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/scan?line=<verse>[&meter=hexameter][&optional_transform=true][&dactyl_smoothing=true]
//	POST /api/scan/text   body: {"text":"...","meter":"hendecasyllable"}
//	GET  /api/meters
//	GET  /healthz
//
// Configuration comes from the YAML file named by -config or CONFIG_PATH,
// overridden by environment variables (see internal/config).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cours-de-latin/scansion"
	"github.com/cours-de-latin/scansion/internal/config"
	"github.com/cours-de-latin/scansion/internal/logging"
	"github.com/cours-de-latin/scansion/internal/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: CONFIG_PATH or ./config.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	logger := logging.New(cfg.Log)

	scanner, err := newScanner(cfg.Scan, logger)
	if err != nil {
		return err
	}

	a := &app{
		scanner:  scanner,
		defaults: cfg.Scan,
		maxBody:  cfg.Server.MaxBodyBytes,
		logger:   logger,
	}
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(newRouter(a))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr), slog.String("default_meter", cfg.Scan.Meter))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newScanner builds the scanner, with the configured lexicon as
// macronizer when there is one.
func newScanner(cfg config.ScanConfig, logger *slog.Logger) (*scansion.Scanner, error) {
	opts := []scansion.Option{scansion.WithLogger(logger)}
	if cfg.Lexicon != "" {
		lx, err := scansion.LoadLexicon(cfg.Lexicon)
		if err != nil {
			return nil, err
		}
		logger.Info("lexicon loaded", slog.String("path", cfg.Lexicon), slog.Int("forms", lx.Len()))
		opts = append(opts, scansion.WithMacronizer(lx))
	}
	return scansion.New(opts...), nil
}
