// Package middleware provides production-grade middleware for page renders.
//
// A Handler renders the page registered at a path; a Middleware wraps one.
// The site package runs every page render through the chain, whether the
// page is written by a static build or served by the dev server.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//   - Logging and timeout middleware
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware opens a span per render. The span context is
// handed to the renderer, so components receive it through their
// context.Context argument:
//
//	s := site.New(cfg, site.WithMiddleware(
//	    middleware.OpenTelemetry(
//	        middleware.WithTracerName("docs"),
//	        middleware.WithPathFilter(func(path string) bool {
//	            return path != "/healthz"
//	        }),
//	    ),
//	))
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - soar_renders_total: Total renders by path and status
//   - soar_render_duration_seconds: Render duration histogram
//   - soar_render_errors_total: Failed renders by path and error code
//   - soar_page_size_bytes: Rendered page size histogram
//
// Error codes are the codes of the structured errors returned by the
// renderer (E001, E010, ...), so label cardinality stays bounded.
//
//	s := site.New(cfg, site.WithMiddleware(middleware.Prometheus()))
//	http.Handle("/metrics", promhttp.Handler())
//
// # Ordering
//
// Chain applies middleware outermost first. Put Logging first to include
// the time spent in the other middleware:
//
//	h := middleware.Chain(render,
//	    middleware.Logging(logger),
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(),
//	)
package middleware
