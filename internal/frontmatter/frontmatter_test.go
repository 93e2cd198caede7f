package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\nkey: value\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestParseYAML_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseYAML([]byte("key: [unterminated\n"))
	require.Error(t, err)
}

func TestParse_RecognisedFields(t *testing.T) {
	meta, raw, body, err := Parse([]byte("---\ntitle: Troubleshooting\norphan: true\nauthor: someone\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "Troubleshooting", meta.Title)
	assert.True(t, meta.Orphan)
	assert.Equal(t, "someone", meta.Fields["author"])
	assert.Equal(t, "title: Troubleshooting\norphan: true\nauthor: someone\n", string(raw))
	assert.Equal(t, "body\n", string(body))
}

func TestParse_WithoutFrontmatter(t *testing.T) {
	meta, raw, body, err := Parse([]byte("Introduction\n============\n"))
	require.NoError(t, err)
	assert.Empty(t, meta.Title)
	assert.NotNil(t, meta.Fields)
	assert.Nil(t, raw)
	assert.Equal(t, "Introduction\n============\n", string(body))
}
