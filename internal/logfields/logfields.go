package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPage       = "page"
	KeyPages      = "pages"
	KeySymbol     = "symbol"
	KeyURL        = "url"
	KeyStage      = "stage"
	KeyWorkers    = "workers"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Page(url string) slog.Attr        { return slog.String(KeyPage, url) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Symbol(name string) slog.Attr     { return slog.String(KeySymbol, name) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Workers(n int) slog.Attr          { return slog.Int(KeyWorkers, n) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
