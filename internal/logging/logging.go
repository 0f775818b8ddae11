// Package logging configures logrus and bridges chi's request logging to it.
package logging

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fake-auth/internal/config"

	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Setup applies the configured level and formatter to the standard logrus logger.
func Setup(cfg config.LogConfig, out io.Writer) error {
	level, err := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if out != nil {
		log.SetOutput(out)
	}
	return nil
}

// RequestFormatter implements middleware.LogFormatter on top of a logrus logger.
type RequestFormatter struct {
	Logger log.FieldLogger
}

func NewRequestFormatter(logger log.FieldLogger) *RequestFormatter {
	return &RequestFormatter{Logger: logger}
}

func (f *RequestFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	fields := log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"remote": r.RemoteAddr,
	}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		fields["request_id"] = reqID
	}
	return &requestEntry{logger: f.Logger.WithFields(fields)}
}

type requestEntry struct {
	logger log.FieldLogger
}

func (e *requestEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	e.logger.WithFields(log.Fields{
		"status":  status,
		"bytes":   bytes,
		"elapsed": elapsed.String(),
	}).Info("request completed")
}

func (e *requestEntry) Panic(v interface{}, stack []byte) {
	e.logger.WithFields(log.Fields{
		"panic": fmt.Sprintf("%+v", v),
		"stack": string(stack),
	}).Error("request panicked")
}
