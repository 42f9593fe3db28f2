package storage

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "gamekit/storage"

// TraceOption configures Traced.
type TraceOption func(*Traced)

// WithTracerProvider sets the provider used instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) TraceOption {
	return func(t *Traced) {
		t.tracer = tp.Tracer(defaultTracerName)
	}
}

// WithBackendName sets the storage.backend span attribute.
func WithBackendName(name string) TraceOption {
	return func(t *Traced) {
		t.backend = name
	}
}

// Traced wraps a Storage and records an OpenTelemetry span per operation.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given.
type Traced struct {
	next    Storage
	tracer  trace.Tracer
	backend string
	opts    []TraceOption
}

// NewTraced wraps next.
func NewTraced(next Storage, opts ...TraceOption) *Traced {
	t := &Traced{
		next:    next,
		tracer:  otel.Tracer(defaultTracerName),
		backend: "unknown",
		opts:    opts,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Unwrap returns the wrapped storage.
func (t *Traced) Unwrap() Storage {
	return t.next
}

func (t *Traced) start(ctx context.Context, op, name string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "storage."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("storage.backend", t.backend),
			attribute.String("storage.name", name),
		),
	)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (t *Traced) Read(ctx context.Context, name string) ([]byte, error) {
	ctx, span := t.start(ctx, "read", name)
	data, err := t.next.Read(ctx, name)
	span.SetAttributes(attribute.Int("storage.bytes", len(data)))
	finish(span, err)
	return data, err
}

func (t *Traced) Write(ctx context.Context, name string, data []byte) error {
	ctx, span := t.start(ctx, "write", name)
	span.SetAttributes(attribute.Int("storage.bytes", len(data)))
	err := t.next.Write(ctx, name, data)
	finish(span, err)
	return err
}

func (t *Traced) Exists(ctx context.Context, name string) (bool, error) {
	ctx, span := t.start(ctx, "exists", name)
	ok, err := t.next.Exists(ctx, name)
	span.SetAttributes(attribute.Bool("storage.exists", ok))
	finish(span, err)
	return ok, err
}

func (t *Traced) Delete(ctx context.Context, name string) error {
	ctx, span := t.start(ctx, "delete", name)
	err := t.next.Delete(ctx, name)
	finish(span, err)
	return err
}

func (t *Traced) List(ctx context.Context, dir string) ([]Entry, error) {
	ctx, span := t.start(ctx, "list", dir)
	entries, err := t.next.List(ctx, dir)
	span.SetAttributes(attribute.Int("storage.entries", len(entries)))
	finish(span, err)
	return entries, err
}

func (t *Traced) DeleteDirectory(ctx context.Context, dir string) error {
	ctx, span := t.start(ctx, "delete_directory", dir)
	err := t.next.DeleteDirectory(ctx, dir)
	finish(span, err)
	return err
}

// Sub returns a traced view of the wrapped storage's sub directory.
func (t *Traced) Sub(dir string) (Storage, error) {
	sub, err := t.next.Sub(dir)
	if err != nil {
		return nil, err
	}
	return NewTraced(sub, t.opts...), nil
}
