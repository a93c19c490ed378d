package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a minimal structured logger with secret redaction.
func New() *slog.Logger {
	return NewWithLevel("info")
}

// NewWithLevel is New with an explicit level (debug, info, warn, error).
func NewWithLevel(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if isSecretKey(a.Key) {
				a.Value = slog.StringValue("[redacted]")
			}
			if a.Value.Kind() == slog.KindString {
				a.Value = slog.StringValue(RedactURL(a.Value.String()))
			}
			return a
		},
	})
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isSecretKey(k string) bool {
	k = strings.ToLower(k)
	return strings.Contains(k, "token") || strings.Contains(k, "secret") || strings.Contains(k, "key") || strings.Contains(k, "pass")
}

// RedactURL masks the userinfo portion of node URLs so basic-auth
// credentials never reach the log output.
func RedactURL(s string) string {
	at := strings.Index(s, "@")
	if at < 0 {
		return s
	}
	scheme := strings.Index(s, "://")
	if scheme < 0 || scheme > at {
		return s
	}
	return s[:scheme+3] + "[redacted]@" + s[at+1:]
}
