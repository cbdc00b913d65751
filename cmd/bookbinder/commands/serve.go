package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/metrics"
	"git.home.luguber.info/inful/bookbinder/internal/site"
)

// ServeCmd builds the site and serves the output directory locally, with
// build and request metrics exposed on /metrics.
type ServeCmd struct {
	Config string `arg:"" help:"Path to the book configuration file." type:"existingfile"`
	Output string `short:"o" help:"Output directory." default:"dist"`
	Addr   string `name:"addr" help:"Listen address." default:":8080"`
}

// siteHandler routes the metrics endpoint and a request-counted file server
// over the built site.
func siteHandler(reg *prom.Registry, dir string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", promhttp.InstrumentHandlerCounter(metrics.NewRequestCounter(reg),
		http.FileServer(http.Dir(dir))))
	return mux
}

func (s *ServeCmd) Run(_ *Global, _ *CLI) error {
	cfg, err := config.Load(s.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	root, err := filepath.Abs(filepath.Dir(s.Config))
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}

	reg := prom.NewRegistry()
	builder := site.NewBuilder(cfg, root, s.Output)
	builder.SetRecorder(metrics.NewPrometheusRecorder(reg))

	res, err := builder.Build()
	if err != nil {
		return err
	}
	slog.Info("Site built for serving", "output", res.OutputDir, "pages", res.Pages)

	server := &http.Server{Addr: s.Addr, Handler: siteHandler(reg, res.OutputDir)}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	fmt.Printf("Serving %s on http://localhost%s (metrics on /metrics)\n", res.OutputDir, s.Addr)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve site: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received, stopping server")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := server.Shutdown(stopCtx); err != nil {
		return fmt.Errorf("stop server: %w", err)
	}
	return nil
}
