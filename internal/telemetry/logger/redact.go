// Package logger provides structured logging for SkyWalker.
package logger

import (
	"log/slog"
	"strings"
)

// Key fragments whose values are never logged.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"bearer",
	"credential",
}

const redactedValue = "***REDACTED***"

// redact masks credential-bearing attributes. Values shaped like an
// Authorization header keep their scheme; anything under a sensitive key is
// replaced entirely.
func redact(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		v := a.Value.String()
		if v == "" {
			return a
		}
		if IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
		if hasBearerPrefix(v) {
			return slog.String(a.Key, RedactString(v))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redact(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

func hasBearerPrefix(v string) bool {
	return len(v) > 7 && strings.EqualFold(v[:7], "bearer ")
}

// RedactString masks a bearer credential, keeping the scheme and a short
// hint of the token. Other values are returned unchanged.
func RedactString(value string) string {
	if !hasBearerPrefix(value) {
		return value
	}
	tok := value[7:]
	if len(tok) <= 8 {
		return value[:7] + "***"
	}
	return value[:7] + tok[:3] + "..." + tok[len(tok)-3:]
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, p := range sensitiveKeyPatterns {
		if strings.Contains(k, p) {
			return true
		}
	}
	return false
}
