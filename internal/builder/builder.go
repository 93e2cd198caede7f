package builder

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/highlight"
	"git.home.luguber.info/inful/rf24docs/internal/inventory"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
	"git.home.luguber.info/inful/rf24docs/internal/metrics"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

// Builder renders documentation for one configuration. Configuration and
// style registry are only read, so a Builder may run several builds.
type Builder struct {
	cfg         *config.Config
	styles      *style.Registry
	highlighter *highlight.Highlighter
	refs        inventory.Set
	recorder    metrics.Recorder
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a builder highlighting through reg.
func New(cfg *config.Config, reg *style.Registry) *Builder {
	return &Builder{
		cfg:         cfg,
		styles:      reg,
		highlighter: highlight.New(reg),
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
		now:         time.Now,
	}
}

// WithInventories sets the inventories "ref:" links resolve against.
func (b *Builder) WithInventories(set inventory.Set) *Builder {
	b.refs = set
	return b
}

// WithRecorder attaches a metrics recorder.
func (b *Builder) WithRecorder(r metrics.Recorder) *Builder {
	if r != nil {
		b.recorder = r
		b.highlighter.WithRecorder(r)
	}
	return b
}

// WithLogger sets the build logger.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// Config returns the configuration the builder reads.
func (b *Builder) Config() *config.Config { return b.cfg }

// buildContext carries per-build state through the format writers.
type buildContext struct {
	ctx     context.Context
	format  Format
	outDir  string
	pages   []*Page
	entries []Entry
	report  *Report
	logger  *slog.Logger
}

func (bc *buildContext) page(doc string) *Page {
	for _, p := range bc.pages {
		if p.DocName == doc {
			return p
		}
	}
	return nil
}

// write stores data under outDir and records it in the report.
func (bc *buildContext) write(rel string, data []byte) error {
	if err := bc.ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(bc.outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write output").
			WithContext("path", path).
			Build()
	}
	bc.report.addOutput(rel, data)
	return nil
}

// Build renders every source under srcDir in format into outDir and persists
// the build report there.
func (b *Builder) Build(ctx context.Context, format Format, srcDir, outDir string) (*Report, error) {
	report := newReport(uuid.NewString(), format)
	report.Project = b.cfg.Project.Name
	report.Release = b.cfg.Project.Release
	report.Style = b.cfg.Highlight.Style
	report.Start = b.now()
	logger := b.logger.With(logfields.BuildID(report.BuildID), logfields.Builder(string(format)))
	logger.Info("Starting build", logfields.Path(srcDir), logfields.Style(report.Style))

	err := b.run(ctx, format, srcDir, outDir, report, logger)
	report.finish(err)
	report.End = b.now()

	b.recorder.ObserveBuildDuration(string(format), report.Duration())
	b.recorder.IncBuildOutcome(string(format), report.Outcome)
	if err != nil {
		logger.Error("Build failed", logfields.Error(err))
		return report, err
	}
	b.recorder.AddPagesRendered(string(format), len(report.Pages))

	if err := report.Persist(outDir); err != nil {
		return report, err
	}
	logger.Info("Build complete",
		logfields.Count(len(report.Pages)),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000),
		slog.Int("warnings", len(report.Warnings)))
	return report, nil
}

func (b *Builder) run(ctx context.Context, format Format, srcDir, outDir string, report *Report, logger *slog.Logger) error {
	if _, err := b.styles.Select(b.cfg.Highlight.Style); err != nil {
		return err
	}
	entries, err := Plan(b.cfg, format)
	if err != nil {
		return err
	}
	sources, err := Discover(srcDir, b.cfg.General)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		logger.Warn("No sources found", logfields.Path(srcDir))
		report.Warn("no sources found in %s", srcDir)
	}

	pages := make([]*Page, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := Load(src)
		if err != nil {
			return err
		}
		pages = append(pages, p)
		report.Pages = append(report.Pages, PageReport{DocName: p.DocName, Title: p.Title, Fingerprint: p.Fingerprint})
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", outDir).
			Build()
	}

	bc := &buildContext{ctx: ctx, format: format, outDir: outDir, pages: pages, entries: entries, report: report, logger: logger}
	for _, e := range entries {
		if bc.page(e.StartDoc) == nil {
			return errors.BuildError("start document not found").
				WithContext("doc", e.StartDoc).
				WithContext("format", string(format)).
				Build()
		}
	}

	switch format {
	case FormatHTML:
		return b.writeHTML(bc, srcDir)
	case FormatMan:
		return b.writeMan(bc)
	case FormatLaTeX:
		return b.writeLaTeX(bc)
	case FormatTexinfo:
		return b.writeTexinfo(bc)
	}
	return errors.ValidationError("unknown output format").WithContext("format", string(format)).Build()
}
