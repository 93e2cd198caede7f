package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"git.home.luguber.info/inful/rf24docs/internal/builder"
	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/inventory"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
	"git.home.luguber.info/inful/rf24docs/internal/metrics"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Format  string `short:"f" help:"Output format" enum:"html,latex,man,texinfo" default:"html"`
	Source  string `short:"s" help:"Source directory (overrides output.source_dir)" type:"path"`
	Output  string `short:"o" help:"Output directory (defaults to <output.directory>/<format>)" type:"path"`
	Offline bool   `help:"Skip loading cross-reference inventories"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, reg, err := loadWithStyles(root.Config)
	if err != nil {
		return err
	}
	format, err := builder.ParseFormat(b.Format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := buildJob{
		cfg:     cfg,
		reg:     reg,
		format:  format,
		srcDir:  sourceDir(cfg, root.Config, b.Source),
		outDir:  outputDir(cfg, root.Config, b.Output, format),
		offline: b.Offline,
		base:    baseDir(root.Config),
		logger:  g.logger(),
	}
	report, changed, err := job.run(ctx, metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.out(), report.Summary())
	_, _ = fmt.Fprintf(g.out(), "changed pages: %d\n", len(changed))
	for _, w := range report.Warnings {
		_, _ = fmt.Fprintf(g.out(), "warning: %s\n", w)
	}
	_, _ = fmt.Fprintf(g.out(), "output written to %s\n", job.outDir)
	return nil
}

// buildJob is one configured build shared by 'build' and 'preview'.
type buildJob struct {
	cfg     *config.Config
	reg     *style.Registry
	format  builder.Format
	srcDir  string
	outDir  string
	base    string
	offline bool
	logger  *slog.Logger
}

func (j buildJob) inventories(ctx context.Context, rec metrics.Recorder) (inventory.Set, error) {
	if j.offline || len(j.cfg.Intersphinx) == 0 {
		return inventory.Set{}, nil
	}
	res, err := inventory.FromConfig(j.cfg, j.base).
		WithRecorder(rec).
		WithLogger(j.logger).
		LoadAll(ctx, j.cfg.Targets())
	if err != nil {
		return nil, err
	}
	return res.Inventories, nil
}

func (j buildJob) run(ctx context.Context, rec metrics.Recorder) (*builder.Report, []string, error) {
	set, err := j.inventories(ctx, rec)
	if err != nil {
		return nil, nil, err
	}
	j.logger.Info("Building documentation",
		logfields.Builder(string(j.format)),
		logfields.Path(j.srcDir),
		slog.String("output", j.outDir))
	b := builder.New(j.cfg, j.reg).
		WithInventories(set).
		WithRecorder(rec).
		WithLogger(j.logger)
	return j.rebuild(ctx, b)
}

// rebuild runs b and lists the documents whose content differs from the
// report the previous build left in the output directory.
func (j buildJob) rebuild(ctx context.Context, b *builder.Builder) (*builder.Report, []string, error) {
	prev, err := builder.ReadReport(j.outDir)
	if err != nil {
		prev = nil
	}
	report, err := b.Build(ctx, j.format, j.srcDir, j.outDir)
	if err != nil {
		return report, nil, err
	}
	changed := report.Changed(prev)
	if len(changed) > 0 {
		j.logger.Info("Pages changed since last build",
			logfields.Count(len(changed)),
			slog.Any("pages", changed))
	}
	return report, changed, nil
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// sourceDir resolves the source tree: the flag, else output.source_dir
// relative to the configuration file.
func sourceDir(cfg *config.Config, configPath, flag string) string {
	if flag != "" {
		return flag
	}
	return resolve(baseDir(configPath), cfg.Output.SourceDir)
}

func outputDir(cfg *config.Config, configPath, flag string, format builder.Format) string {
	if flag != "" {
		return flag
	}
	return filepath.Join(resolve(baseDir(configPath), cfg.Output.Directory), string(format))
}

func resolve(base, p string) string {
	if p == "" {
		return base
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
