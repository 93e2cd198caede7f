package config

import (
	"time"

	"git.home.luguber.info/inful/rf24docs/internal/foundation"
)

const (
	projectName = "nRF24L01 Library"
	author      = "Brendan Doherty"
	masterDoc   = "index"
)

// Default returns the declared configuration of the nRF24L01 Library
// documentation. Every call returns a fresh copy.
func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Name:      projectName,
			Author:    author,
			Copyright: "2019 Brendan Doherty",
			Version:   "2.0.0",
			Release:   "2.0.0",
		},
		General: GeneralConfig{
			Extensions: []string{
				"sphinx.ext.autodoc",
				"sphinx.ext.intersphinx",
				"sphinx.ext.napoleon",
				"sphinx.ext.todo",
				"sphinx.ext.viewcode",
				"sphinx_copybutton",
			},
			TemplatesPath: []string{"_templates"},
			SourceSuffix:  ".rst",
			MasterDoc:     masterDoc,
			Language:      "en",
			ExcludePatterns: []string{
				"_build",
				"Thumbs.db",
				".DS_Store",
				".env",
				"CODE_OF_CONDUCT.md",
				"requirements.txt",
			},
			DefaultRole:            "any",
			AddFunctionParentheses: true,
			TodoIncludeTodos:       false,
			TodoEmitWarnings:       false,
			NapoleonNumpyDocstring: false,
		},
		Autodoc: AutodocConfig{
			MockImports: []string{"digitalio", "busio", "usb_hid", "microcontroller"},
			MemberOrder: MemberOrderBySource,
		},
		Intersphinx: []CrossReferenceTarget{
			{Name: "python", BaseURL: "https://docs.python.org/3.7", Inventory: foundation.None[string]()},
			{Name: "BusDevice", BaseURL: "https://circuitpython.readthedocs.io/projects/busdevice/en/latest/", Inventory: foundation.None[string]()},
			{Name: "CircuitPython", BaseURL: "https://circuitpython.readthedocs.io/en/latest/", Inventory: foundation.None[string]()},
		},
		Inventory: InventoryFetchConfig{
			Timeout:     10 * time.Second,
			Backoff:     RetryBackoffLinear,
			Initial:     time.Second,
			MaxDelay:    30 * time.Second,
			MaxRetries:  2,
			Concurrency: 4,
		},
		Highlight: HighlightConfig{Style: "dark_plus"},
		HTML: HTMLConfig{
			Theme: "sphinx_material",
			ThemeOptions: ThemeOptions{
				NavTitle: "CircuitPython-nRF24L01",
				NavLinks: []NavLink{
					{Href: "examples", Title: "Examples", Internal: true},
					{Href: "basic_api", Title: "Basic RF24 API", Internal: true},
					{Href: "advanced_api", Title: "Advanced RF24 API", Internal: true},
					{Href: "configure_api", Title: "Configurable RF24 API", Internal: true},
					{Href: "ble_api", Title: "BLE API Reference", Internal: true},
					{Href: "troubleshooting", Title: "Troubleshooting", Internal: true},
				},
				ColorPrimary:           "blue",
				ColorAccent:            "light-blue",
				RepoURL:                "https://github.com/2bndy5/CircuitPython_nRF24L01/",
				RepoName:               "CircuitPython_nRF24L01",
				GlobalTOCDepth:         1,
				GlobalTOCCollapse:      false,
				GlobalTOCIncludeHidden: true,
			},
			BaseURL:    "https://circuitpython-nrf24l01.readthedocs.io/",
			Title:      "Introduction",
			StaticPath: []string{"_static"},
			CSSFiles:   []string{"dark_material.css"},
			Favicon:    "_static/new_favicon.ico",
			Logo:       "_static/Logo.png",
			Sidebars: map[string][]string{
				"**": {"logo-text.html", "globaltoc.html", "localtoc.html", "searchbox.html"},
			},
			HelpBasename: "nRF24L01_Library_doc",
		},
		LaTeX: LaTeXConfig{
			Documents: []LaTeXDocument{{
				StartDoc:      masterDoc,
				TargetName:    "nRF24L01Library.tex",
				Title:         "nRF24L01 Library Documentation",
				Author:        author,
				DocumentClass: DocumentClassManual,
			}},
		},
		Man: ManConfig{
			Pages: []ManPage{{
				StartDoc:    masterDoc,
				Name:        "nRF24L01library",
				Description: "nRF24L01 Library Documentation",
				Authors:     []string{author},
				Section:     1,
			}},
		},
		Texinfo: TexinfoConfig{
			Documents: []TexinfoDocument{{
				StartDoc:    masterDoc,
				TargetName:  "nRF24L01Library",
				Title:       "nRF24L01 Library Documentation",
				Author:      author,
				DirEntry:    "nRF24L01Library",
				Description: "nRF24L01 on CircuitPython devices.",
				Category:    "Wireless",
			}},
		},
		Output: OutputConfig{
			SourceDir: "docs",
			Directory: "_build",
		},
	}
}

// applyDefaults fills fields a configuration file may have blanked out.
func applyDefaults(cfg *Config) {
	if cfg.General.SourceSuffix == "" {
		cfg.General.SourceSuffix = ".rst"
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "_build"
	}
	if cfg.Output.SourceDir == "" {
		cfg.Output.SourceDir = "."
	}
	if cfg.HTML.Title == "" {
		cfg.HTML.Title = cfg.Project.Name
	}
	if cfg.Project.Release == "" {
		cfg.Project.Release = cfg.Project.Version
	}
	for i := range cfg.LaTeX.Documents {
		if cfg.LaTeX.Documents[i].DocumentClass == "" {
			cfg.LaTeX.Documents[i].DocumentClass = DocumentClassManual
		}
	}
	if cfg.Inventory.Backoff == "" {
		cfg.Inventory.Backoff = RetryBackoffLinear
	}
	if cfg.Inventory.Timeout <= 0 {
		cfg.Inventory.Timeout = 10 * time.Second
	}
	if cfg.Autodoc.MemberOrder == "" {
		cfg.Autodoc.MemberOrder = MemberOrderAlphabetical
	}
}
