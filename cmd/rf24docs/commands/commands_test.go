package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rf24docs/internal/builder"
	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/inventory"
	"git.home.luguber.info/inful/rf24docs/internal/metrics"
)

// workspace writes the default configuration and an index page into a
// temporary directory and returns the CLI pointing at it.
func workspace(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, config.Init(cfgPath, false))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o750))
	index := "# nRF24L01 Library\n\nDriver for the radio.\n\n```python\nimport time\n```\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "index.md"), []byte(index), 0o600))
	return &CLI{Config: cfgPath}, dir
}

func TestInitRefusesOverwrite(t *testing.T) {
	root, _ := workspace(t)
	var out bytes.Buffer
	g := &Global{Out: &out}

	err := (&InitCmd{}).Run(g, root)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Initialization failed")

	out.Reset()
	require.NoError(t, (&InitCmd{Force: true}).Run(g, root))
	assert.Contains(t, out.String(), "initialized successfully")
}

func TestCheckPrintsSummary(t *testing.T) {
	root, _ := workspace(t)
	var out bytes.Buffer
	require.NoError(t, (&CheckCmd{}).Run(&Global{Out: &out}, root))

	s := out.String()
	assert.Contains(t, s, "nRF24L01 Library")
	assert.Contains(t, s, "2.0.0")
	assert.Contains(t, s, "dark_plus")
	assert.Contains(t, s, "https://docs.python.org/3.7/objects.inv")
	assert.Contains(t, s, "nRF24L01library.1")
	assert.Contains(t, s, "configuration OK")
}

func TestCheckWarnsWhenNoOutputStartsAtMasterDoc(t *testing.T) {
	root, _ := workspace(t)
	data, err := os.ReadFile(root.Config)
	require.NoError(t, err)
	require.Contains(t, string(data), "master_doc: index\n")
	data = []byte(strings.Replace(string(data), "master_doc: index\n", "master_doc: intro\n", 1))
	require.NoError(t, os.WriteFile(root.Config, data, 0o600))

	var out bytes.Buffer
	require.NoError(t, (&CheckCmd{}).Run(&Global{Out: &out}, root))
	s := out.String()
	assert.Contains(t, s, `warning: no man output starts at master doc "intro"`)
	assert.Contains(t, s, `warning: no latex output starts at master doc "intro"`)
	assert.NotContains(t, s, "warning: no html output")
	assert.Contains(t, s, "configuration OK")
}

func TestCheckDefaultsHaveNoWarnings(t *testing.T) {
	root, _ := workspace(t)
	var out bytes.Buffer
	require.NoError(t, (&CheckCmd{}).Run(&Global{Out: &out}, root))
	assert.NotContains(t, out.String(), "warning:")
}

func TestBuildReportsChangedPages(t *testing.T) {
	root, dir := workspace(t)
	cfg, reg, err := loadWithStyles(root.Config)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "examples.md"), []byte("# Examples\n"), 0o600))
	job := buildJob{
		cfg:     cfg,
		reg:     reg,
		format:  builder.FormatMan,
		srcDir:  sourceDir(cfg, root.Config, ""),
		outDir:  filepath.Join(dir, "out"),
		base:    baseDir(root.Config),
		offline: true,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, changed, err := job.run(context.Background(), metrics.NoopRecorder{})
	require.NoError(t, err)
	assert.Equal(t, []string{"examples", "index"}, changed)

	_, changed, err = job.run(context.Background(), metrics.NoopRecorder{})
	require.NoError(t, err)
	assert.Empty(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "examples.md"), []byte("# Examples\n\nMore.\n"), 0o600))
	_, changed, err = job.run(context.Background(), metrics.NoopRecorder{})
	require.NoError(t, err)
	assert.Equal(t, []string{"examples"}, changed)
}

func TestBuildCommandPrintsChangedCount(t *testing.T) {
	root, _ := workspace(t)
	var out bytes.Buffer
	cmd := &BuildCmd{Format: "man", Offline: true}
	require.NoError(t, cmd.Run(&Global{Out: &out}, root))
	assert.Contains(t, out.String(), "changed pages: 1\n")

	out.Reset()
	require.NoError(t, cmd.Run(&Global{Out: &out}, root))
	assert.Contains(t, out.String(), "changed pages: 0\n")
}

func TestStylesMarksActive(t *testing.T) {
	root, _ := workspace(t)
	var out bytes.Buffer
	require.NoError(t, (&StylesCmd{}).Run(&Global{Out: &out}, root))

	assert.Contains(t, out.String(), "* dark_plus\n")
	assert.Contains(t, out.String(), "  monokai\n")
}

func TestHighlightSpans(t *testing.T) {
	root, dir := workspace(t)
	src := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(src, []byte("# note\nx = 'radio'\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, (&HighlightCmd{File: src, Spans: true}).Run(&Global{Out: &out}, root))
	assert.Contains(t, out.String(), "Comment.Single")
	assert.Contains(t, out.String(), "#")
}

func TestHighlightCSS(t *testing.T) {
	root, _ := workspace(t)
	var out bytes.Buffer
	require.NoError(t, (&HighlightCmd{CSS: true}).Run(&Global{Out: &out}, root))
	assert.Contains(t, out.String(), "background-color")
}

func TestHighlightUnknownStyle(t *testing.T) {
	root, _ := workspace(t)
	var out bytes.Buffer
	err := (&HighlightCmd{CSS: true, Style: "no-such-style"}).Run(&Global{Out: &out}, root)
	require.Error(t, err)
}

func TestBuildManOffline(t *testing.T) {
	root, dir := workspace(t)
	var out bytes.Buffer
	cmd := &BuildCmd{Format: "man", Offline: true}
	require.NoError(t, cmd.Run(&Global{Out: &out}, root))

	page, err := os.ReadFile(filepath.Join(dir, "_build", "man", "nRF24L01library.1"))
	require.NoError(t, err)
	assert.Contains(t, string(page), ".TH \"NRF24L01LIBRARY\" \"1\"")
	assert.Contains(t, out.String(), "output written to")
}

func TestBuildHTMLExplicitOutput(t *testing.T) {
	root, dir := workspace(t)
	outDir := filepath.Join(dir, "site")
	var out bytes.Buffer
	cmd := &BuildCmd{Format: "html", Offline: true, Output: outDir}
	require.NoError(t, cmd.Run(&Global{Out: &out}, root))

	_, err := os.Stat(filepath.Join(outDir, "index.html"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "build-report.json"))
	require.NoError(t, err)
}

func TestInventoryLocalTarget(t *testing.T) {
	dir := t.TempDir()
	inv := inventory.New("Radio", "1.0", "https://example.org/docs/", []inventory.Object{
		{Name: "RF24.send", Domain: "py", Role: "method", Priority: 1, URI: "api.html#RF24.send", DispName: "RF24.send"},
	})
	f, err := os.Create(filepath.Join(dir, "objects.inv"))
	require.NoError(t, err)
	require.NoError(t, inventory.Encode(f, inv))
	require.NoError(t, f.Close())

	cfgYAML := strings.Join([]string{
		"intersphinx:",
		"  - name: radio",
		"    base_url: https://example.org/docs/",
		"    inventory: objects.inv",
		"",
	}, "\n")
	cfgPath := filepath.Join(dir, "docs.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o600))

	var out bytes.Buffer
	cmd := &InventoryCmd{Lookup: []string{"radio:RF24.send", "radio:missing"}}
	require.NoError(t, cmd.Run(&Global{Out: &out}, &CLI{Config: cfgPath}))

	s := out.String()
	assert.Contains(t, s, "1 objects")
	assert.Contains(t, s, "https://example.org/docs/api.html#RF24.send")
	assert.Contains(t, s, "unresolved")
}

func TestInventoryUnknownTarget(t *testing.T) {
	root, _ := workspace(t)
	err := (&InventoryCmd{Target: []string{"nope"}}).Run(&Global{Out: &bytes.Buffer{}}, root)
	require.Error(t, err)
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "nRF24L01 Library", cfg.Project.Name)

	require.NoError(t, config.Init(DefaultConfigFile, false))
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.Project.Release)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	for _, name := range []string{DefaultConfigFile, "custom.yaml"} {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "typo", name))
		require.Error(t, err, name)
		assert.Nil(t, cfg)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	}
}

func TestConfigPathDefaultsToWorkingDirectory(t *testing.T) {
	assert.Equal(t, DefaultConfigFile, (&CLI{}).ConfigPath())
	assert.Equal(t, "docs.yaml", (&CLI{Config: "docs.yaml"}).ConfigPath())
}

func TestParseLogLevel(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	assert.Equal(t, "INFO", parseLogLevel(false).String())
	assert.Equal(t, "DEBUG", parseLogLevel(true).String())
	t.Setenv(config.EnvLogLevel, "warn")
	assert.Equal(t, "WARN", parseLogLevel(true).String())
}
