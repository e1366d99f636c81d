package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atelierhq/atelier/pkg/environment"
)

// Format selects the logger output encoding.
type Format string

const (
	// FormatJSON emits structured records for log aggregation.
	FormatJSON Format = "json"
	// FormatText emits human-readable records for development.
	FormatText Format = "text"
)

type settings struct {
	level       slog.Level
	format      Format
	output      io.Writer
	attrs       []slog.Attr
	handlerOpts *slog.HandlerOptions
	extractors  []ContextExtractor
}

// defaultSettings is production-safe: JSON at INFO to stdout.
func defaultSettings() *settings {
	return &settings{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// Option configures logger creation.
type Option func(*settings)

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option {
	return func(s *settings) { s.level = l }
}

// WithFormat sets the output encoding. Panics on unknown formats so a
// misconfigured process fails at startup instead of at first log call.
func WithFormat(f Format) Option {
	return func(s *settings) {
		switch f {
		case FormatJSON, FormatText:
			s.format = f
		default:
			panic(fmt.Sprintf("logger: unknown format %q", f))
		}
	}
}

// WithTextFormatter selects text output.
func WithTextFormatter() Option {
	return func(s *settings) { s.format = FormatText }
}

// WithJSONFormatter selects JSON output.
func WithJSONFormatter() Option {
	return func(s *settings) { s.format = FormatJSON }
}

// WithOutput redirects log output. Nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithHandlerOptions replaces the slog.HandlerOptions entirely; it takes
// precedence over WithLevel. Nil options are ignored.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(s *settings) {
		if opts != nil {
			s.handlerOpts = opts
		}
	}
}

// WithAttr stamps static attributes onto every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) {
		s.attrs = append(s.attrs, attrs...)
	}
}

// WithContextExtractors registers functions that pull request-scoped
// attributes (request id, tenant id, ...) out of the context at log time.
// Nil extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) {
		for _, ex := range extractors {
			if ex != nil {
				s.extractors = append(s.extractors, ex)
			}
		}
	}
}

// WithDevelopment configures development defaults: text format, debug
// level, service and env attributes.
func WithDevelopment(service string) Option {
	return preset(service, slog.LevelDebug, FormatText, environment.Development)
}

// WithStaging configures staging defaults: JSON format, info level.
func WithStaging(service string) Option {
	return preset(service, slog.LevelInfo, FormatJSON, environment.Staging)
}

// WithProduction configures production defaults: JSON format, info level.
func WithProduction(service string) Option {
	return preset(service, slog.LevelInfo, FormatJSON, environment.Production)
}

// WithEnvironment picks the preset matching env, defaulting to development
// for anything unrecognized.
func WithEnvironment(env environment.Environment, service string) Option {
	switch env {
	case environment.Production, "prod":
		return WithProduction(service)
	case environment.Staging, "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

func preset(service string, level slog.Level, format Format, env environment.Environment) Option {
	return func(s *settings) {
		if service == "" {
			return
		}
		s.level = level
		s.format = format
		if s.output == nil {
			s.output = os.Stdout
		}
		s.attrs = append(s.attrs,
			slog.String("service", service),
			slog.String("env", string(env)),
		)
	}
}

// SetAsDefault installs l as the process-wide slog default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New creates a configured slog.Logger. When context extractors are
// registered, the handler is wrapped so they run on every record.
func New(opts ...Option) *slog.Logger {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}

	hopts := s.handlerOpts
	if hopts == nil {
		hopts = &slog.HandlerOptions{Level: s.level}
	}

	var h slog.Handler
	switch s.format {
	case FormatText:
		h = slog.NewTextHandler(s.output, hopts)
	default:
		h = slog.NewJSONHandler(s.output, hopts)
	}
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}

	return slog.New(newContextHandler(h, s.extractors))
}
