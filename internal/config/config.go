package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/rf24docs/internal/foundation"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

// Config is the documentation build configuration. It is populated once by
// Default or Load and treated as read-only for the rest of the build.
type Config struct {
	Project     ProjectConfig          `yaml:"project"`
	General     GeneralConfig          `yaml:"general"`
	Autodoc     AutodocConfig          `yaml:"autodoc"`
	Intersphinx []CrossReferenceTarget `yaml:"intersphinx"`
	Inventory   InventoryFetchConfig   `yaml:"inventory_fetch"`
	Highlight   HighlightConfig        `yaml:"highlight"`
	HTML        HTMLConfig             `yaml:"html"`
	LaTeX       LaTeXConfig            `yaml:"latex"`
	Man         ManConfig              `yaml:"man"`
	Texinfo     TexinfoConfig          `yaml:"texinfo"`
	Output      OutputConfig           `yaml:"output"`
}

// ProjectConfig holds project metadata.
type ProjectConfig struct {
	Name      string `yaml:"name"`
	Author    string `yaml:"author"`
	Copyright string `yaml:"copyright"`
	Version   string `yaml:"version"` // short X.Y.Z version
	Release   string `yaml:"release"` // full version including pre-release tags
}

// GeneralConfig holds source discovery settings and feature toggles.
type GeneralConfig struct {
	Extensions             []string `yaml:"extensions"`
	TemplatesPath          []string `yaml:"templates_path"`
	SourceSuffix           string   `yaml:"source_suffix"`
	MasterDoc              string   `yaml:"master_doc"`
	Language               string   `yaml:"language"`
	ExcludePatterns        []string `yaml:"exclude_patterns"`
	DefaultRole            string   `yaml:"default_role"`
	AddFunctionParentheses bool     `yaml:"add_function_parentheses"` // append "()" to function cross-references
	TodoIncludeTodos       bool     `yaml:"todo_include_todos"`
	TodoEmitWarnings       bool     `yaml:"todo_emit_warnings"`
	NapoleonNumpyDocstring bool     `yaml:"napoleon_numpy_docstring"`
}

// AutodocConfig controls API reference generation.
type AutodocConfig struct {
	MockImports []string    `yaml:"mock_imports"`
	MemberOrder MemberOrder `yaml:"member_order"`
}

// CrossReferenceTarget is an external documentation project whose symbols
// can be linked to. Inventory is None when the inventory is fetched from
// BaseURL at build time.
type CrossReferenceTarget struct {
	Name      string                    `yaml:"name"`
	BaseURL   string                    `yaml:"base_url"`
	Inventory foundation.Option[string] `yaml:"inventory"`
}

// InventoryURL is the remote location of the target's object inventory.
func (t CrossReferenceTarget) InventoryURL() string {
	return strings.TrimRight(t.BaseURL, "/") + "/objects.inv"
}

// InventoryFetchConfig tunes remote inventory downloads.
type InventoryFetchConfig struct {
	Timeout     time.Duration    `yaml:"timeout"`
	Backoff     RetryBackoffMode `yaml:"backoff"`
	Initial     time.Duration    `yaml:"initial_delay"`
	MaxDelay    time.Duration    `yaml:"max_delay"`
	MaxRetries  int              `yaml:"max_retries"`
	Concurrency int              `yaml:"concurrency"`
}

// HighlightConfig selects the active style and declares extra styles.
type HighlightConfig struct {
	Style  string                      `yaml:"style"`
	Styles map[string]style.Definition `yaml:"styles,omitempty"`
}

// HTMLConfig holds HTML builder options.
type HTMLConfig struct {
	Theme        string              `yaml:"theme"`
	ThemeOptions ThemeOptions        `yaml:"theme_options"`
	BaseURL      string              `yaml:"base_url"`
	Title        string              `yaml:"title"`
	StaticPath   []string            `yaml:"static_path"`
	CSSFiles     []string            `yaml:"css_files"`
	Favicon      string              `yaml:"favicon"`
	Logo         string              `yaml:"logo"`
	Sidebars     map[string][]string `yaml:"sidebars"`
	HelpBasename string              `yaml:"htmlhelp_basename"`
}

// ThemeOptions are consumed by the HTML theme.
type ThemeOptions struct {
	NavTitle               string    `yaml:"nav_title"`
	NavLinks               []NavLink `yaml:"nav_links"`
	ColorPrimary           string    `yaml:"color_primary"`
	ColorAccent            string    `yaml:"color_accent"`
	RepoURL                string    `yaml:"repo_url"`
	RepoName               string    `yaml:"repo_name"`
	GlobalTOCDepth         int       `yaml:"globaltoc_depth"` // -1 means unlimited
	GlobalTOCCollapse      bool      `yaml:"globaltoc_collapse"`
	GlobalTOCIncludeHidden bool      `yaml:"globaltoc_includehidden"`
}

// NavLink is an entry of the theme's navigation bar. Internal links name a
// document and are resolved relative to the site.
type NavLink struct {
	Href     string `yaml:"href"`
	Title    string `yaml:"title"`
	Internal bool   `yaml:"internal"`
}

// LaTeXConfig holds LaTeX builder options.
type LaTeXConfig struct {
	Elements  map[string]string `yaml:"elements,omitempty"`
	Documents []LaTeXDocument   `yaml:"documents"`
}

// LaTeXDocument groups the document tree into one .tex file.
type LaTeXDocument struct {
	StartDoc      string        `yaml:"start_doc"`
	TargetName    string        `yaml:"target_name"`
	Title         string        `yaml:"title"`
	Author        string        `yaml:"author"`
	DocumentClass DocumentClass `yaml:"document_class"`
}

// ManConfig holds manual page builder options.
type ManConfig struct {
	Pages []ManPage `yaml:"pages"`
}

// ManPage is one manual page.
type ManPage struct {
	StartDoc    string   `yaml:"start_doc"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Authors     []string `yaml:"authors"`
	Section     int      `yaml:"section"`
}

// TexinfoConfig holds Texinfo builder options.
type TexinfoConfig struct {
	Documents []TexinfoDocument `yaml:"documents"`
}

// TexinfoDocument groups the document tree into one Texinfo file.
type TexinfoDocument struct {
	StartDoc    string `yaml:"start_doc"`
	TargetName  string `yaml:"target_name"`
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	DirEntry    string `yaml:"dir_entry"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

// OutputConfig locates sources and build output.
type OutputConfig struct {
	SourceDir string `yaml:"source_dir"`
	Directory string `yaml:"directory"`
}

// Load reads a YAML configuration file layered over Default, applies
// environment overrides and validates the result.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithContext("path", configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").
			WithContext("path", configPath).
			Build()
	}
	return Parse(data)
}

// Parse decodes YAML configuration content layered over Default.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal default config").Build()
	}
	header := "# Documentation build configuration. Values omitted here fall back to built-in defaults.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}

// Targets returns the cross-reference targets sorted by name.
func (c *Config) Targets() []CrossReferenceTarget {
	out := make([]CrossReferenceTarget, len(c.Intersphinx))
	copy(out, c.Intersphinx)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Target looks up a cross-reference target by name.
func (c *Config) Target(name string) (CrossReferenceTarget, bool) {
	for _, t := range c.Intersphinx {
		if t.Name == name {
			return t, true
		}
	}
	return CrossReferenceTarget{}, false
}
