// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/z5labs/panelcfg/internal/otelslog"
	"github.com/z5labs/panelcfg/internal/try"
	"github.com/z5labs/panelcfg/screen"
	"github.com/z5labs/panelcfg/screenfile"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/z5labs/panelcfg/internal/cli"

// session holds what every command needs once settings are read.
type session struct {
	app      *App
	settings Settings
	log      *slog.Logger
	tp       trace.TracerProvider
	sdkTP    *sdktrace.TracerProvider
}

func (s *session) init(settings Settings) error {
	s.settings = settings
	s.log = otelslog.New(slog.NewTextHandler(s.app.stderr, &slog.HandlerOptions{
		Level: settings.Log.Level,
	}))

	if !settings.Trace {
		s.tp = noop.NewTracerProvider()
		return nil
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(s.app.stderr),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return err
	}
	s.sdkTP = sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", s.app.name),
		)),
	)
	s.tp = s.sdkTP
	return nil
}

func (s *session) shutdown(ctx context.Context) error {
	if s.sdkTP == nil {
		return nil
	}
	return s.sdkTP.Shutdown(ctx)
}

func (s *session) loader(opts ...screen.Option) (*screenfile.Loader, error) {
	if s.settings.Strict {
		opts = append(opts, screen.Strict())
	}
	return screenfile.New(
		s.app.fs,
		screenfile.Encoding(s.settings.Encoding),
		screenfile.Logger(s.log),
		screenfile.TracerProvider(s.tp),
		screenfile.ParseOptions(opts...),
	)
}

// load reads path with l, or stdin when path is "-".
func (s *session) load(ctx context.Context, l *screenfile.Loader, in io.Reader, path string) (screen.Document, error) {
	if path == "-" {
		return l.Decode(ctx, path, in)
	}
	return l.Load(ctx, path)
}

// runE wraps f with panic recovery and a span named after the command.
func (s *session) runE(f func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer try.Recover(&err)

		ctx, span := s.tp.Tracer(instrumentationName).Start(cmd.Context(), cmd.CommandPath())
		defer span.End()

		err = f(ctx, cmd, args)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
