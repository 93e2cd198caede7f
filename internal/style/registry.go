package style

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
)

// Registry is a name -> style table owned by whoever builds documentation.
// It is safe for concurrent use; styles themselves are immutable.
type Registry struct {
	mu     sync.RWMutex
	styles map[string]*chroma.Style
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{styles: make(map[string]*chroma.Style)}
}

// NewDefaultRegistry returns a registry seeded with chroma's built-in styles
// and dark_plus.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range styles.Names() {
		r.styles[name] = styles.Get(name)
	}
	r.styles[DarkPlusName] = DarkPlus()
	return r
}

// Register installs s under name. An existing entry with the same name is
// replaced without error, so registering the same style twice is a no-op.
func (r *Registry) Register(name string, s *chroma.Style) error {
	if name == "" {
		return errors.StyleError("style name must not be empty").Build()
	}
	if s == nil {
		return errors.StyleError("style definition must not be nil").WithContext("style", name).Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, exists := r.styles[name]; exists && prev != s {
		slog.Debug("Replacing registered style", logfields.Style(name))
	}
	r.styles[name] = s
	return nil
}

// RegisterDefinition builds a style from def and registers it under name.
func (r *Registry) RegisterDefinition(name string, def Definition) error {
	s, err := FromDefinition(name, def)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStyle, "invalid style definition").
			WithContext("style", name).
			Build()
	}
	return r.Register(name, s)
}

// Get looks up a style by name.
func (r *Registry) Get(name string) (*chroma.Style, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[name]
	return s, ok
}

// MustGet is Get for names known to be registered; it panics otherwise.
func (r *Registry) MustGet(name string) *chroma.Style {
	s, ok := r.Get(name)
	if !ok {
		panic("style not registered: " + name)
	}
	return s
}

// Select returns the style a build should highlight with, or a not_found error.
func (r *Registry) Select(name string) (*chroma.Style, error) {
	if s, ok := r.Get(name); ok {
		return s, nil
	}
	return nil, errors.NotFoundError("highlighting style is not registered").
		WithContext("style", name).
		Build()
}

// Names returns the registered style names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.styles))
	for name := range r.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered styles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.styles)
}
