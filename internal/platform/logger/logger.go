// Package logger owns the process zerolog logger. Request ids come from the
// chi request id on the context, so any C(ctx) line is correlated
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"fertilitydash/internal/platform/config/raw"
	pnet "fertilitydash/internal/platform/net"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger under the project name
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level        string
	Format       string // console or json
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw config view, which does not log
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:        rc.GetEnum("LEVEL", "info", "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"),
		Format:       rc.GetEnum("FORMAT", "console", "console", "json"),
		Service:      rc.Get("SERVICE", ""),
		Component:    rc.Get("COMPONENT", ""),
		WithCaller:   rc.GetBool("CALLER", false),
		SampleEvery:  rc.GetInt("SAMPLE_EVERY", 0),
		StaticFields: rc.GetKV("FIELDS"),
	}
}

func levelOf(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// New builds a logger from opt without touching the process root
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(w).Level(levelOf(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		fields = fields.Str("go_version", bi.GoVersion)
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			fields = fields.Str(k, v)
		}
	}
	for k, v := range opt.StaticFields {
		fields = fields.Str(k, v)
	}
	if opt.WithCaller {
		fields = fields.Caller()
	}

	l := fields.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

var (
	rootOnce sync.Once
	root     Logger
)

// Init sets the root logger; only the first call, or the first Get, counts
func Init(opt Options) {
	rootOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		root = New(opt)
	})
}

// Get returns the root logger, initialising it from the environment if needed
func Get() *Logger {
	Init(FromEnv())
	return &root
}

// Named returns a child logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}

type opKey struct{}

// WithOp labels ctx with the operation being served, e.g. "figures"
func WithOp(ctx context.Context, op string) context.Context {
	if op == "" {
		return ctx
	}
	return context.WithValue(ctx, opKey{}, op)
}

// C returns a child logger carrying the request id and op found on ctx
func C(ctx context.Context) *Logger {
	fields := Get().With()
	if id := pnet.RequestID(ctx); id != "" {
		fields = fields.Str("request_id", id)
	}
	if op, _ := ctx.Value(opKey{}).(string); op != "" {
		fields = fields.Str("op", op)
	}
	l := fields.Logger()
	return &l
}
