package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names shared across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyCategory   = "category"
	KeyTitle      = "title"
	KeyLine       = "line"
	KeyCount      = "count"
	KeyPattern    = "pattern"
	KeyURL        = "url"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr        { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr          { return slog.String(KeyOutput, p) }
func Category(c string) slog.Attr        { return slog.String(KeyCategory, c) }
func Title(t string) slog.Attr           { return slog.String(KeyTitle, t) }
func Line(n int) slog.Attr               { return slog.Int(KeyLine, n) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Pattern(p string) slog.Attr         { return slog.String(KeyPattern, p) }
func URL(u string) slog.Attr             { return slog.String(KeyURL, u) }
func Duration(d time.Duration) slog.Attr { return slog.Int64(KeyDurationMS, d.Milliseconds()) }

// Error returns an error attribute; a nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
