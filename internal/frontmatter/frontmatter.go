// Package frontmatter separates YAML page metadata from document sources.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta is the page metadata recognised by the builders.
type Meta struct {
	Title  string         // overrides the first heading
	Orphan bool           // page is built but left out of navigation and combined outputs
	Fields map[string]any // every frontmatter field, including the ones above
}

// Split separates YAML frontmatter (`---` delimited) from the body.
//
// If the document does not start with a frontmatter delimiter, had is false
// and body is the full input. Both LF and CRLF line endings are accepted.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// ParseYAML parses raw YAML frontmatter (without --- delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(frontmatter) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Parse splits content and decodes its metadata. raw is the frontmatter text
// exactly as it appeared in the source.
func Parse(content []byte) (meta Meta, raw []byte, body []byte, err error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Meta{}, nil, nil, err
	}
	meta.Fields = map[string]any{}
	if !had {
		return meta, nil, body, nil
	}
	fields, err := ParseYAML(raw)
	if err != nil {
		return Meta{}, nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Fields = fields
	if t, ok := fields["title"].(string); ok {
		meta.Title = t
	}
	if o, ok := fields["orphan"].(bool); ok {
		meta.Orphan = o
	}
	return meta, raw, body, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
