package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyBuilder    = "builder"
	KeyStyle      = "style"
	KeyLanguage   = "language"
	KeyTarget     = "target"
	KeyURL        = "url"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyAttempt    = "attempt"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Builder(name string) slog.Attr   { return slog.String(KeyBuilder, name) }
func Style(name string) slog.Attr     { return slog.String(KeyStyle, name) }
func Language(lang string) slog.Attr  { return slog.String(KeyLanguage, lang) }
func Target(name string) slog.Attr    { return slog.String(KeyTarget, name) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Attempt(n int) slog.Attr         { return slog.Int(KeyAttempt, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
