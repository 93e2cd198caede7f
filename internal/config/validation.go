package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/rf24docs/internal/foundation"
	"git.home.luguber.info/inful/rf24docs/internal/style"
)

// Validate checks the configuration and returns a classified validation
// error listing every problem found.
func (c *Config) Validate() error {
	return newConfigurationValidator(c).validate().ToError()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() foundation.ValidationResult {
	return cv.validateProject().
		Combine(cv.validateGeneral()).
		Combine(cv.validateTargets()).
		Combine(cv.validateInventoryFetch()).
		Combine(cv.validateHighlight()).
		Combine(cv.validateHTML()).
		Combine(cv.validateDocuments())
}

func (cv *configurationValidator) validateProject() foundation.ValidationResult {
	p := cv.config.Project
	return foundation.Required("project.name", p.Name).
		Combine(foundation.Required("project.version", p.Version)).
		Combine(foundation.Required("project.release", p.Release))
}

func (cv *configurationValidator) validateGeneral() foundation.ValidationResult {
	g := cv.config.General
	result := foundation.Required("general.master_doc", g.MasterDoc)

	if _, err := language.Parse(g.Language); err != nil {
		result = result.Combine(foundation.Invalid(foundation.NewValidationError(
			"general.language", "language", fmt.Sprintf("%q is not a valid language tag", g.Language))))
	}
	if !strings.HasPrefix(g.SourceSuffix, ".") {
		result = result.Combine(foundation.Invalid(foundation.NewValidationError(
			"general.source_suffix", "suffix", "must start with '.'")))
	}
	if _, err := NormalizeMemberOrder(string(cv.config.Autodoc.MemberOrder)); err != nil {
		result = result.Combine(foundation.Invalid(foundation.NewValidationError(
			"autodoc.member_order", "one_of", err.Error())))
	}
	return result
}

// validateTargets requires unique names and absolute base URLs. An explicit
// empty inventory path is rejected; absence is expressed with null.
func (cv *configurationValidator) validateTargets() foundation.ValidationResult {
	result := foundation.Valid()
	seen := make(map[string]bool, len(cv.config.Intersphinx))
	for i, t := range cv.config.Intersphinx {
		field := fmt.Sprintf("intersphinx[%d]", i)
		result = result.Combine(foundation.Required(field+".name", t.Name))
		if seen[t.Name] {
			result = result.Combine(foundation.Invalid(foundation.NewValidationError(
				field+".name", "duplicate", fmt.Sprintf("duplicate target %q", t.Name))))
		}
		seen[t.Name] = true
		result = result.Combine(foundation.AbsoluteURL(field+".base_url", t.BaseURL))
		if path, ok := t.Inventory.Get(); ok && strings.TrimSpace(path) == "" {
			result = result.Combine(foundation.Invalid(foundation.NewValidationError(
				field+".inventory", "empty", "use null to fetch the inventory remotely")))
		}
	}
	return result
}

func (cv *configurationValidator) validateInventoryFetch() foundation.ValidationResult {
	f := cv.config.Inventory
	result := foundation.Valid()
	if _, err := NormalizeRetryBackoffMode(string(f.Backoff)); err != nil {
		result = result.Combine(foundation.Invalid(foundation.NewValidationError("inventory_fetch.backoff", "one_of", err.Error())))
	}
	if f.MaxRetries < 0 {
		result = result.Combine(foundation.Invalid(foundation.NewValidationError("inventory_fetch.max_retries", "range", "must not be negative")))
	}
	if f.Concurrency < 1 {
		result = result.Combine(foundation.Invalid(foundation.NewValidationError("inventory_fetch.concurrency", "range", "must be at least 1")))
	}
	return result
}

func (cv *configurationValidator) validateHighlight() foundation.ValidationResult {
	h := cv.config.Highlight
	result := foundation.Required("highlight.style", h.Style)
	for name, def := range h.Styles {
		if _, err := style.FromDefinition(name, def); err != nil {
			result = result.Combine(foundation.Invalid(foundation.NewValidationError(
				"highlight.styles."+name, "style", err.Error())))
		}
	}
	return result
}

func (cv *configurationValidator) validateHTML() foundation.ValidationResult {
	h := cv.config.HTML
	result := foundation.Valid()
	if h.BaseURL != "" {
		result = result.Combine(foundation.AbsoluteURL("html.base_url", h.BaseURL))
	}
	if h.ThemeOptions.RepoURL != "" {
		result = result.Combine(foundation.AbsoluteURL("html.theme_options.repo_url", h.ThemeOptions.RepoURL))
	}
	if h.ThemeOptions.GlobalTOCDepth < -1 {
		result = result.Combine(foundation.Invalid(foundation.NewValidationError(
			"html.theme_options.globaltoc_depth", "range", "must be -1 (unlimited) or >= 0")))
	}
	for i, link := range h.ThemeOptions.NavLinks {
		result = result.Combine(foundation.Required(fmt.Sprintf("html.theme_options.nav_links[%d].href", i), link.Href))
	}
	return result
}

func (cv *configurationValidator) validateDocuments() foundation.ValidationResult {
	result := foundation.Valid()
	for i, d := range cv.config.LaTeX.Documents {
		field := fmt.Sprintf("latex.documents[%d]", i)
		result = result.Combine(foundation.Required(field+".start_doc", d.StartDoc)).
			Combine(foundation.Required(field+".target_name", d.TargetName))
		if _, err := NormalizeDocumentClass(string(d.DocumentClass)); err != nil {
			result = result.Combine(foundation.Invalid(foundation.NewValidationError(field+".document_class", "one_of", err.Error())))
		}
	}
	for i, p := range cv.config.Man.Pages {
		field := fmt.Sprintf("man.pages[%d]", i)
		result = result.Combine(foundation.Required(field+".start_doc", p.StartDoc)).
			Combine(foundation.Required(field+".name", p.Name))
		if p.Section < 1 || p.Section > 9 {
			result = result.Combine(foundation.Invalid(foundation.NewValidationError(
				field+".section", "range", fmt.Sprintf("section %d is not between 1 and 9", p.Section))))
		}
	}
	for i, d := range cv.config.Texinfo.Documents {
		field := fmt.Sprintf("texinfo.documents[%d]", i)
		result = result.Combine(foundation.Required(field+".start_doc", d.StartDoc)).
			Combine(foundation.Required(field+".target_name", d.TargetName))
	}
	return result
}
