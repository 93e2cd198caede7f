package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"git.home.luguber.info/inful/rf24docs/internal/builder"
	ferrors "git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
	"git.home.luguber.info/inful/rf24docs/internal/metrics"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Source   string        `short:"s" help:"Source directory (overrides output.source_dir)" type:"path"`
	Output   string        `short:"o" help:"Output directory (defaults to <output.directory>/html)" type:"path"`
	Port     int           `short:"p" help:"Port to serve on" default:"8000"`
	Debounce time.Duration `help:"Quiet period after a change before rebuilding" default:"300ms"`
	Offline  bool          `help:"Skip loading cross-reference inventories"`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	cfg, reg, err := loadWithStyles(root.Config)
	if err != nil {
		return err
	}
	logger := g.logger()
	job := buildJob{
		cfg:     cfg,
		reg:     reg,
		format:  builder.FormatHTML,
		srcDir:  sourceDir(cfg, root.Config, p.Source),
		outDir:  outputDir(cfg, root.Config, p.Output, builder.FormatHTML),
		base:    baseDir(root.Config),
		offline: p.Offline,
		logger:  logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	promReg := metrics.NewRegistry()
	rec := metrics.NewPrometheusRecorder(promReg)

	// Inventories are loaded once; rebuilds only re-read the sources.
	set, err := job.inventories(ctx, rec)
	if err != nil {
		return err
	}
	b := builder.New(cfg, reg).WithInventories(set).WithRecorder(rec).WithLogger(logger)
	rebuild := func(ctx context.Context) error {
		report, _, err := job.rebuild(ctx, b)
		if err != nil {
			return err
		}
		logger.Info("Rebuilt documentation", slog.String("summary", report.Summary()))
		return nil
	}
	if err := rebuild(ctx); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(promReg))
	mux.Handle("/", http.FileServer(http.Dir(job.outDir)))
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(p.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	_, _ = fmt.Fprintf(g.out(), "Serving %s on http://localhost:%d/\n", job.outDir, p.Port)

	watcher := builder.Watcher{Debounce: p.Debounce, Ignore: []string{job.outDir}, Logger: logger}
	watchErr := make(chan error, 1)
	go func() { watchErr <- watcher.Run(ctx, job.srcDir, rebuild) }()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			runErr = ferrors.WrapError(err, ferrors.CategoryNetwork, "preview server failed").
				WithContext("port", p.Port).
				Build()
		}
	case err := <-watchErr:
		runErr = err
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Preview server shutdown", logfields.Error(err))
	}
	return runErr
}
