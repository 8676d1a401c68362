package config

import (
	"sort"
	"strings"
)

// LinkMode controls post-build link verification.
type LinkMode string

const (
	LinkModeOff    LinkMode = "off"
	LinkModeWarn   LinkMode = "warn"
	LinkModeStrict LinkMode = "strict"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var (
	linkModes  = enumSet(LinkModeOff, LinkModeWarn, LinkModeStrict)
	logLevels  = enumSet(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
	logFormats = enumSet(LogFormatJSON, LogFormatText)
)

func enumSet[T ~string](values ...T) map[string]T {
	m := make(map[string]T, len(values))
	for _, v := range values {
		m[string(v)] = v
	}
	return m
}

func normalizeEnum[T ~string](set map[string]T, raw string, def T) (T, bool) {
	v, ok := set[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return def, false
	}
	return v, true
}

func enumKeys[T ~string](set map[string]T) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeLinkMode maps raw input to a LinkMode, reporting whether it was recognized.
func NormalizeLinkMode(raw string) (LinkMode, bool) {
	return normalizeEnum(linkModes, raw, LinkModeOff)
}

// NormalizeLogLevel maps raw input to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	v, _ := normalizeEnum(logLevels, raw, LogLevelInfo)
	return v
}

// NormalizeLogFormat maps raw input to a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	v, _ := normalizeEnum(logFormats, raw, LogFormatText)
	return v
}
