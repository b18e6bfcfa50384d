package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Handler renders the page registered at path.
type Handler func(ctx context.Context, path string) ([]byte, error)

// Middleware wraps a Handler with additional behavior.
type Middleware func(next Handler) Handler

// Chain wraps h with mws. The first middleware is the outermost, so it
// sees the request first and the result last.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

// Logging creates middleware that logs every render at Info and failed
// renders at Error.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, path string) ([]byte, error) {
			start := time.Now()
			page, err := next(ctx, path)
			if err != nil {
				logger.ErrorContext(ctx, "render failed",
					"path", normalizePath(path),
					"code", errorCode(err),
					"error", err,
					"duration", time.Since(start),
				)
				return page, err
			}
			logger.InfoContext(ctx, "page rendered",
				"path", normalizePath(path),
				"bytes", len(page),
				"duration", time.Since(start),
			)
			return page, nil
		}
	}
}

// Timeout bounds every render with a deadline. Components that honor the
// context stop early; the render itself is not preempted.
func Timeout(d time.Duration) Middleware {
	return func(next Handler) Handler {
		if d <= 0 {
			return next
		}
		return func(ctx context.Context, path string) ([]byte, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			page, err := next(ctx, path)
			if err == nil && ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return page, err
		}
	}
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
