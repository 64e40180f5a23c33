package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyTask       = "task"
	KeyStage      = "stage"
	KeyTemplate   = "template"
	KeyFile       = "file"
	KeyFolder     = "folder"
	KeyOutput     = "output"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyCategory   = "category"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Task(name string) slog.Attr      { return slog.String(KeyTask, name) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Folder(name string) slog.Attr    { return slog.String(KeyFolder, name) }
func Output(path string) slog.Attr    { return slog.String(KeyOutput, path) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Category(c string) slog.Attr     { return slog.String(KeyCategory, c) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
