package middleware

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for Soar sites.
const defaultTracerName = "soar"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "soar").
	TracerName string

	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider

	// IncludePageSize records the rendered size as a span attribute.
	// Enabled by default.
	IncludePageSize bool

	// Filter determines which paths to trace.
	// Return true to trace the render, false to skip.
	// If nil, all renders are traced.
	Filter func(path string) bool

	// AttributeExtractor adds custom attributes for a path.
	AttributeExtractor func(ctx context.Context, path string) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider used instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludePageSize enables/disables the page size attribute.
func WithIncludePageSize(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludePageSize = include
	}
}

// WithPathFilter sets a filter function for paths.
func WithPathFilter(filter func(path string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx context.Context, path string) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:      defaultTracerName,
		IncludePageSize: true,
	}
}

// OpenTelemetry creates middleware that traces every page render.
//
// The middleware:
//   - Creates a span per render named after the page path
//   - Passes the span context to the renderer, so components see it
//   - Records errors and sets span status
//
// Example:
//
//	s := site.New(cfg, site.WithMiddleware(
//	    middleware.OpenTelemetry(middleware.WithTracerName("docs")),
//	))
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before building:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return func(next Handler) Handler {
		return func(ctx context.Context, path string) ([]byte, error) {
			if config.Filter != nil && !config.Filter(path) {
				return next(ctx, path)
			}

			attrs := []attribute.KeyValue{
				attribute.String("soar.path", normalizePath(path)),
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(ctx, path)...)
			}

			spanCtx, span := config.tracer.Start(ctx, formatSpanName(path),
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			page, err := next(spanCtx, path)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(attribute.String("soar.error_code", errorCode(err)))
				return page, err
			}

			span.SetStatus(codes.Ok, "")
			if config.IncludePageSize {
				span.SetAttributes(attribute.Int("soar.page_bytes", len(page)))
			}
			return page, nil
		}
	}
}

// SpanFromContext returns the render span carried by ctx, or nil when ctx
// carries no recording span. Components receive this context, so they can
// annotate the page's span:
//
//	func(ctx context.Context, props soar.Props) (*soar.VNode, error) {
//	    if span := middleware.SpanFromContext(ctx); span != nil {
//	        span.SetAttributes(attribute.Int("posts", len(posts)))
//	    }
//	    ...
//	}
func SpanFromContext(ctx context.Context) trace.Span {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil
	}
	return span
}

// formatSpanName creates a span name from the page path.
func formatSpanName(path string) string {
	return fmt.Sprintf("soar %s", normalizePath(path))
}
