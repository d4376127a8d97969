package logger

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Logger is the logging interface used across the application.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithComponent(name string) Logger
}

type Opts struct {
	Env       string
	SentryUrl string
}

type Impl struct {
	sl *slog.Logger
}

var _ Logger = (*Impl)(nil)

// New builds a logger that writes through zerolog and, when a Sentry DSN is
// configured, also forwards warnings and errors to Sentry.
func New(opts Opts) *Impl {
	level := slog.LevelDebug
	var zl zerolog.Logger
	if opts.Env == "production" {
		level = slog.LevelInfo
		zl = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryUrl != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryUrl,
			Environment: opts.Env,
		})
		if err != nil {
			zl.Warn().Err(err).Msg("Sentry initialization failed, continuing without it")
		} else {
			handlers = append(handlers,
				slogsentry.Option{Level: slog.LevelWarn}.NewSentryHandler(),
			)
		}
	}

	return &Impl{sl: slog.New(slogmulti.Fanout(handlers...))}
}

func (l *Impl) Debug(msg string, args ...any) { l.sl.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.sl.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.sl.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.sl.Error(msg, args...) }

func (l *Impl) With(args ...any) Logger {
	return &Impl{sl: l.sl.With(args...)}
}

func (l *Impl) WithComponent(name string) Logger {
	return &Impl{sl: l.sl.With("component", name)}
}

// Printf lets the logger satisfy fx.Printer so fx lifecycle events land in
// the same output stream.
func (l *Impl) Printf(format string, args ...any) {
	l.sl.Debug(fmt.Sprintf(format, args...))
}
