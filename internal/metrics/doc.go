// Package metrics provides observability hooks for documentation builds,
// inventory fetches and code highlighting.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never need nil checks:
//
//	resolver := inventory.NewResolver(client).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The Prometheus implementation registers its collectors on a caller-provided
// registry; HTTPHandler exposes that registry for scraping.
package metrics
