// Package logger provides context-aware logging helpers on top of logrus.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/roguepikachu/namesmith/pkg/ctxutil"
)

// InitLogging configures the logger from LOG_LEVEL and LOG_FORMAT.
func InitLogging() {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	setLogLevel(logLevel)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func setLogLevel(level string) {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logrus.Infof("invalid LOG_LEVEL=[%s], defaulting to info", level)
		logrus.SetLevel(logrus.InfoLevel)
		return
	}
	logrus.SetLevel(lvl)
}

// Sprintf is fmt.Sprintf that returns "" for an empty format regardless of args.
func Sprintf(format string, args ...any) string {
	if format == "" {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

// entry returns a logrus entry carrying the request and client ids found in ctx.
func entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return e
	}
	if id := ctxutil.RequestID(ctx); id != "" {
		e = e.WithField("request_id", id)
	}
	if id := ctxutil.ClientID(ctx); id != "" {
		e = e.WithField("client_id", id)
	}
	return e
}

// With returns an entry with the given fields plus the ids from ctx.
func With(ctx context.Context, fields map[string]any) *logrus.Entry {
	return entry(ctx).WithFields(logrus.Fields(fields))
}

// WithField returns an entry with a single extra field.
func WithField(ctx context.Context, key string, value any) *logrus.Entry {
	return entry(ctx).WithField(key, value)
}

func Info(ctx context.Context, msg string, args ...any) {
	entry(ctx).Info(Sprintf(msg, args...))
}

func Debug(ctx context.Context, msg string, args ...any) {
	entry(ctx).Debug(Sprintf(msg, args...))
}

func Warn(ctx context.Context, msg string, args ...any) {
	entry(ctx).Warn(Sprintf(msg, args...))
}

func Error(ctx context.Context, msg string, args ...any) {
	entry(ctx).Error(Sprintf(msg, args...))
}

func Trace(ctx context.Context, msg string, args ...any) {
	entry(ctx).Trace(Sprintf(msg, args...))
}

func Fatal(ctx context.Context, msg string, args ...any) {
	entry(ctx).Fatal(Sprintf(msg, args...))
}
