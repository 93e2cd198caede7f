package builder

import (
	"git.home.luguber.info/inful/rf24docs/internal/foundation"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
)

// Format names an output builder.
type Format string

const (
	FormatHTML    Format = "html"
	FormatLaTeX   Format = "latex"
	FormatMan     Format = "man"
	FormatTexinfo Format = "texinfo"
)

var formatNormalizer = foundation.NewNormalizer(map[string]Format{
	"html":    FormatHTML,
	"latex":   FormatLaTeX,
	"tex":     FormatLaTeX,
	"man":     FormatMan,
	"texinfo": FormatTexinfo,
	"texi":    FormatTexinfo,
})

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatHTML, FormatLaTeX, FormatMan, FormatTexinfo}
}

// ParseFormat accepts a format name or common alias.
func ParseFormat(raw string) (Format, error) {
	f, err := formatNormalizer.NormalizeWithError(raw)
	if err != nil {
		return "", errors.ValidationError("unknown output format").
			WithCause(err).
			WithContext("format", raw).
			Build()
	}
	return f, nil
}
