package inventory

import (
	"bytes"
	"compress/zlib"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
)

// rawInventory builds an objects.inv payload from uncompressed body lines.
func rawInventory(t *testing.T, project, version string, lines ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("# Sphinx inventory version 2\n")
	buf.WriteString("# Project: " + project + "\n")
	buf.WriteString("# Version: " + version + "\n")
	buf.WriteString("# The remainder of this file is compressed using zlib.\n")
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestParseExpandsAbbreviations(t *testing.T) {
	data := rawInventory(t, "Python", "3.7",
		"os.path.join py:function 1 library/os.path.html#$ -",
		"str py:class 1 library/stdtypes.html#$ -",
		"string formatting std:label -1 library/string.html#formatstrings Format String Syntax",
	)

	inv, err := Parse(bytes.NewReader(data), "https://docs.python.org/3.7")
	require.NoError(t, err)
	assert.Equal(t, "Python", inv.Project)
	assert.Equal(t, "3.7", inv.Version)
	require.Equal(t, 3, inv.Len())

	join, ok := inv.Lookup("os.path.join")
	require.True(t, ok)
	assert.Equal(t, "py", join.Domain)
	assert.Equal(t, "function", join.Role)
	assert.Equal(t, "library/os.path.html#os.path.join", join.URI)
	assert.Equal(t, "os.path.join", join.DispName)

	label, ok := inv.LookupRole("std:label", "string formatting")
	require.True(t, ok)
	assert.Equal(t, "Format String Syntax", label.DispName)
	assert.Equal(t, -1, label.Priority)

	u, ok := inv.Resolve("str")
	require.True(t, ok)
	assert.Equal(t, "https://docs.python.org/3.7/library/stdtypes.html#str", u)
}

func TestParseRejectsForeignData(t *testing.T) {
	_, err := Parse(strings.NewReader("<html>not here</html>\n"), "")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryInventory))

	_, err = Parse(strings.NewReader("# Sphinx inventory version 1\n# Project: x\n# Version: 1\n"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported inventory version")
}

func TestParseSkipsMalformedLines(t *testing.T) {
	data := rawInventory(t, "P", "1", "garbage", "ok py:data 1 index.html#$ -")
	inv, err := Parse(bytes.NewReader(data), "https://example.org/")
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Len())
}

func TestEncodeParseRoundTrip(t *testing.T) {
	src := New("nRF24L01 Library", "2.0.0", "https://example.org/docs", []Object{
		{Name: "RF24.begin", Domain: "py", Role: "method", Priority: 1, URI: "api.html#RF24.begin", DispName: "RF24.begin"},
		{Name: "quickstart", Domain: "std", Role: "doc", Priority: -1, URI: "quickstart.html", DispName: "Quick start"},
	})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src))
	assert.Contains(t, buf.String(), "# Project: nRF24L01 Library\n")

	got, err := Parse(&buf, src.BaseURL)
	require.NoError(t, err)
	assert.Equal(t, src.Objects, got.Objects)
}

func TestSetResolve(t *testing.T) {
	set := Set{
		"python":        New("Python", "3.7", "https://docs.python.org/3.7", []Object{{Name: "int", Domain: "py", Role: "class", URI: "functions.html#int"}}),
		"CircuitPython": New("CircuitPython", "8", "https://docs.circuitpython.org/en/latest", []Object{{Name: "board", Domain: "py", Role: "module", URI: "board.html"}}),
	}
	assert.Equal(t, []string{"CircuitPython", "python"}, set.Names())

	u, ok := set.Resolve("python:int")
	require.True(t, ok)
	assert.Equal(t, "https://docs.python.org/3.7/functions.html#int", u)

	u, ok = set.Resolve("board")
	require.True(t, ok)
	assert.Equal(t, "https://docs.circuitpython.org/en/latest/board.html", u)

	_, ok = set.Resolve("missing")
	assert.False(t, ok)
}
