package inventory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"git.home.luguber.info/inful/rf24docs/internal/config"
	"git.home.luguber.info/inful/rf24docs/internal/foundation/errors"
	"git.home.luguber.info/inful/rf24docs/internal/logfields"
	"git.home.luguber.info/inful/rf24docs/internal/metrics"
	"git.home.luguber.info/inful/rf24docs/internal/retry"
)

const maxInventoryBytes = 16 * 1024 * 1024

// Resolver loads inventories for cross-reference targets.
type Resolver struct {
	client      *http.Client
	policy      retry.Policy
	baseDir     string
	recorder    metrics.Recorder
	logger      *slog.Logger
	concurrency int
}

// NewHTTPClient creates a client suitable for inventory downloads. Redirects
// are followed at most five times.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return nil
		},
	}
}

// NewResolver creates a resolver. A nil client selects NewHTTPClient defaults.
func NewResolver(client *http.Client) *Resolver {
	if client == nil {
		client = NewHTTPClient(0)
	}
	return &Resolver{
		client:      client,
		policy:      retry.DefaultPolicy(),
		recorder:    metrics.NoopRecorder{},
		logger:      slog.Default(),
		concurrency: 4,
	}
}

// FromConfig creates a resolver tuned by the inventory_fetch section.
// Relative inventory paths are resolved against baseDir.
func FromConfig(cfg *config.Config, baseDir string) *Resolver {
	return NewResolver(NewHTTPClient(cfg.Inventory.Timeout)).
		WithPolicy(retry.FromConfig(cfg.Inventory)).
		WithConcurrency(cfg.Inventory.Concurrency).
		WithBaseDir(baseDir)
}

// WithPolicy sets the retry policy for downloads.
func (r *Resolver) WithPolicy(p retry.Policy) *Resolver {
	r.policy = p
	return r
}

// WithBaseDir sets the directory relative inventory paths are resolved against.
func (r *Resolver) WithBaseDir(dir string) *Resolver {
	r.baseDir = dir
	return r
}

// WithRecorder attaches a metrics recorder.
func (r *Resolver) WithRecorder(rec metrics.Recorder) *Resolver {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	r.recorder = rec
	return r
}

// WithLogger sets the logger used for retry and degradation messages.
func (r *Resolver) WithLogger(l *slog.Logger) *Resolver {
	if l != nil {
		r.logger = l
	}
	return r
}

// WithConcurrency bounds the number of parallel loads in LoadAll.
func (r *Resolver) WithConcurrency(n int) *Resolver {
	if n > 0 {
		r.concurrency = n
	}
	return r
}

// Load returns the inventory of a single target.
func (r *Resolver) Load(ctx context.Context, target config.CrossReferenceTarget) (*Inventory, error) {
	if path, ok := target.Inventory.Get(); ok {
		return r.loadFile(target, path)
	}
	return r.fetch(ctx, target)
}

func (r *Resolver) loadFile(target config.CrossReferenceTarget, path string) (*Inventory, error) {
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}
	f, err := os.Open(path) // #nosec G304 -- path comes from the build configuration
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("inventory file not found").
				WithCause(err).
				WithContext("target", target.Name).
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open inventory file").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()
	return Parse(f, target.BaseURL)
}

func (r *Resolver) fetch(ctx context.Context, target config.CrossReferenceTarget) (*Inventory, error) {
	url := target.InventoryURL()
	start := time.Now()
	var inv *Inventory
	err := r.policy.Do(ctx, func(ctx context.Context) error {
		body, err := r.get(ctx, url)
		if err != nil {
			return err
		}
		parsed, err := Parse(bytes.NewReader(body), target.BaseURL)
		if err != nil {
			return &retry.Permanent{Err: err}
		}
		inv = parsed
		return nil
	}, func(attempt int, err error) {
		r.recorder.IncInventoryRetry(target.Name)
		r.logger.Debug("Retrying inventory download",
			logfields.Target(target.Name),
			logfields.URL(url),
			logfields.Attempt(attempt),
			logfields.Error(err))
	})
	r.recorder.ObserveInventoryFetch(target.Name, time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *Resolver) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &retry.Permanent{Err: errors.WrapError(err, errors.CategoryConfig, "invalid inventory URL").
			WithContext("url", url).
			Build()}
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNetwork, "inventory download failed").
			Retryable().
			WithContext("url", url).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &retry.Permanent{Err: errors.NotFoundError("inventory not published").
			WithContext("url", url).
			Build()}
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.NetworkError(fmt.Sprintf("inventory download failed: HTTP %d", resp.StatusCode)).
			WithContext("url", url).
			Build()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &retry.Permanent{Err: errors.InventoryError(fmt.Sprintf("unexpected HTTP status %d", resp.StatusCode)).
			WithContext("url", url).
			Build()}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxInventoryBytes+1))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNetwork, "failed to read inventory response").
			Retryable().
			Build()
	}
	if len(data) > maxInventoryBytes {
		return nil, &retry.Permanent{Err: errors.InventoryError("inventory response too large").
			WithContext("url", url).
			Build()}
	}
	return data, nil
}

// Result is the outcome of LoadAll.
type Result struct {
	Inventories Set
	Failures    map[string]error
}

// LoadAll loads every target concurrently. Failing targets are logged as
// warnings and reported in Failures; they never abort the other loads.
// Only cancellation of ctx is returned as an error.
func (r *Resolver) LoadAll(ctx context.Context, targets []config.CrossReferenceTarget) (Result, error) {
	res := Result{Inventories: Set{}, Failures: map[string]error{}}
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, r.concurrency)
	)
	for _, t := range targets {
		wg.Add(1)
		go func(t config.CrossReferenceTarget) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				mu.Lock()
				res.Failures[t.Name] = ctx.Err()
				mu.Unlock()
				return
			}
			defer func() { <-sem }()

			inv, err := r.Load(ctx, t)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failures[t.Name] = err
				r.logger.Warn("Cross-reference target unavailable; links to it will not resolve",
					logfields.Target(t.Name),
					logfields.Error(err))
				return
			}
			res.Inventories[t.Name] = inv
			r.logger.Debug("Loaded inventory", logfields.Target(t.Name), logfields.Count(inv.Len()))
		}(t)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}
