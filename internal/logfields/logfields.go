package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyMode       = "mode"
	KeyProfile    = "profile"
	KeyOutput     = "output"
	KeyContent    = "content"
	KeyCommand    = "command"
	KeyRevision   = "revision"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyAddr       = "addr"
	KeyCurrent    = "current_page"
	KeyTotal      = "total_pages"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func Profile(p string) slog.Attr      { return slog.String(KeyProfile, p) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func Content(dir string) slog.Attr    { return slog.String(KeyContent, dir) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Revision(r string) slog.Attr     { return slog.String(KeyRevision, r) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func CurrentPage(n int) slog.Attr     { return slog.Int(KeyCurrent, n) }
func TotalPages(n int) slog.Attr      { return slog.Int(KeyTotal, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
