// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package screenfile loads screen config files from disk. Screen configs are
// written in a single byte encoding, KOI8-R unless configured otherwise,
// so the raw bytes are decoded before being handed to [screen.Parse].
package screenfile

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/z5labs/panelcfg/config"
	"github.com/z5labs/panelcfg/internal/try"
	"github.com/z5labs/panelcfg/screen"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the encoding screen configs are written in.
const DefaultEncoding = "koi8-r"

const instrumentationName = "github.com/z5labs/panelcfg/screenfile"

// UnknownEncodingError occurs when an encoding name is not known.
type UnknownEncodingError struct {
	Name  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e UnknownEncodingError) Error() string {
	return fmt.Sprintf("unknown encoding %q: %s", e.Name, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e UnknownEncodingError) Unwrap() error {
	return e.Cause
}

// ReadError occurs when a screen config could not be read.
type ReadError struct {
	Path  string
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ReadError) Error() string {
	return fmt.Sprintf("failed to read screen config %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ReadError) Unwrap() error {
	return e.Cause
}

// DecodeError occurs when the bytes of a screen config are not valid
// in the configured encoding.
type DecodeError struct {
	Encoding string
	Cause    error
}

// Error implements the [builtin.error] interface.
func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode screen config from %s: %s", e.Encoding, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e DecodeError) Unwrap() error {
	return e.Cause
}

// LookupEncoding resolves an encoding by its WHATWG or IANA name,
// e.g. "koi8-r", "windows-1251" or "utf-8".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, UnknownEncodingError{Name: name, Cause: err}
	}
	return enc, nil
}

// Option configures a Loader.
type Option func(*Loader)

// Encoding sets the name of the encoding files are decoded from.
func Encoding(name string) Option {
	return func(l *Loader) {
		l.encName = name
	}
}

// ParseOptions are passed to [screen.Parse] for every file.
func ParseOptions(opts ...screen.Option) Option {
	return func(l *Loader) {
		l.parseOpts = append(l.parseOpts, opts...)
	}
}

// Logger sets the logger used by the Loader and the parser.
func Logger(log *slog.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// TracerProvider sets the provider spans are created with. The global
// provider is used by default.
func TracerProvider(tp trace.TracerProvider) Option {
	return func(l *Loader) {
		l.tracer = tp.Tracer(instrumentationName)
	}
}

// Loader reads and parses screen configs from an fs.FS. A Loader holds
// no per-file state and is safe for concurrent use.
type Loader struct {
	fs        fs.FS
	encName   string
	enc       encoding.Encoding
	parseOpts []screen.Option
	log       *slog.Logger
	tracer    trace.Tracer
}

// New returns a Loader reading files from fsys.
func New(fsys fs.FS, opts ...Option) (*Loader, error) {
	l := &Loader{
		fs:      fsys,
		encName: DefaultEncoding,
		log:     slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(l)
	}

	enc, err := LookupEncoding(l.encName)
	if err != nil {
		return nil, err
	}
	l.enc = enc
	l.parseOpts = append([]screen.Option{screen.Logger(l.log)}, l.parseOpts...)
	return l, nil
}

// Load reads, decodes and parses the file at path.
func (l *Loader) Load(ctx context.Context, path string) (screen.Document, error) {
	ctx, span := l.tracer.Start(ctx, "Loader.Load", trace.WithAttributes(
		attribute.String("screenfile.path", path),
		attribute.String("screenfile.encoding", l.encName),
	))
	defer span.End()

	doc, err := l.load(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.log.ErrorContext(ctx, "failed to load screen config", slog.String("path", path), slog.Any("error", err))
		return screen.Document{}, err
	}

	span.SetAttributes(
		attribute.Int("screen.radio_stations", len(doc.RadioStations)),
		attribute.Int("screen.phone_panels", len(doc.PhonePanels)),
		attribute.Int("screen.radio_panels", len(doc.RadioPanels)),
	)
	l.log.InfoContext(
		ctx,
		"loaded screen config",
		slog.String("path", path),
		slog.Int("radio_stations", len(doc.RadioStations)),
		slog.Int("phone_panels", len(doc.PhonePanels)),
		slog.Int("radio_panels", len(doc.RadioPanels)),
	)
	return doc, nil
}

func (l *Loader) load(ctx context.Context, path string) (_ screen.Document, err error) {
	if err := ctx.Err(); err != nil {
		return screen.Document{}, err
	}

	r := config.NewFileReader(l.fs, path)
	defer try.Close(&err, r)

	b, err := io.ReadAll(r)
	if err != nil {
		return screen.Document{}, ReadError{Path: path, Cause: err}
	}
	return l.parse(ctx, b)
}

// Decode decodes and parses a screen config read from r. The name is
// only used to identify r in errors and spans, e.g. "-" for stdin.
func (l *Loader) Decode(ctx context.Context, name string, r io.Reader) (screen.Document, error) {
	ctx, span := l.tracer.Start(ctx, "Loader.Decode", trace.WithAttributes(
		attribute.String("screenfile.path", name),
		attribute.String("screenfile.encoding", l.encName),
	))
	defer span.End()

	b, err := io.ReadAll(r)
	if err != nil {
		err = ReadError{Path: name, Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return screen.Document{}, err
	}

	doc, err := l.parse(ctx, b)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return screen.Document{}, err
	}
	return doc, nil
}

func (l *Loader) parse(ctx context.Context, b []byte) (screen.Document, error) {
	_, span := l.tracer.Start(ctx, "screen.Parse")
	defer span.End()

	s, err := l.enc.NewDecoder().String(string(b))
	if err != nil {
		return screen.Document{}, DecodeError{Encoding: l.encName, Cause: err}
	}
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.TrimSpace(s)
	span.SetAttributes(attribute.Int("screen.text_length", len(s)))

	return screen.Parse(s, l.parseOpts...)
}
