package style

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
)

func TestDefaultRegistryContainsDarkPlusAndBuiltins(t *testing.T) {
	r := NewDefaultRegistry()

	s, ok := r.Get(DarkPlusName)
	require.True(t, ok)
	assert.Equal(t, DarkPlusName, s.Name)

	_, ok = r.Get("monokai")
	assert.True(t, ok, "chroma built-ins should be seeded")
	assert.Greater(t, r.Len(), 1)
	assert.Contains(t, r.Names(), DarkPlusName)
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	s := DarkPlus()

	require.NoError(t, r.Register(DarkPlusName, s))
	first, err := r.Select(DarkPlusName)
	require.NoError(t, err)

	require.NoError(t, r.Register(DarkPlusName, s))
	second, err := r.Select(DarkPlusName)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, r.Len())
}

func TestRegisterOverwritesSilently(t *testing.T) {
	r := NewDefaultRegistry()
	before := r.Len()

	replacement := DarkPlus()
	require.NoError(t, r.Register("monokai", replacement))

	got, ok := r.Get("monokai")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, before, r.Len())
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	r := NewRegistry()
	assert.True(t, errors.HasCategory(r.Register("", DarkPlus()), errors.CategoryStyle))
	assert.True(t, errors.HasCategory(r.Register("x", nil), errors.CategoryStyle))
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	require.NoError(t, a.Register(DarkPlusName, DarkPlus()))

	_, ok := b.Get(DarkPlusName)
	assert.False(t, ok)
}

func TestSelectUnknownStyle(t *testing.T) {
	_, err := NewDefaultRegistry().Select("dark_minus")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestRegisterDefinition(t *testing.T) {
	r := NewRegistry()
	err := r.RegisterDefinition("mono", Definition{
		BackgroundColor: "#000000",
		Tokens:          map[string]string{"Text": "#ffffff", "Keyword": "bold #ff00ff"},
	})
	require.NoError(t, err)

	s, err := r.Select("mono")
	require.NoError(t, err)
	entry := s.Get(chroma.Keyword)
	assert.Equal(t, "#ff00ff", entry.Colour.String())
	assert.Equal(t, chroma.Yes, entry.Bold)

	err = r.RegisterDefinition("broken", Definition{Tokens: map[string]string{"Not.A.Category": "#fff"}})
	assert.True(t, errors.HasCategory(err, errors.CategoryStyle))
}

func TestMustGet(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Same(t, r.MustGet(DarkPlusName), r.MustGet(DarkPlusName))
	assert.Panics(t, func() { NewRegistry().MustGet(DarkPlusName) })
}
