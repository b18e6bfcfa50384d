package site

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/soar/internal/errors"
)

// Handler returns an http.Handler serving the site's pages, rendered on
// every request, and its static directory.
//
// Routes:
//   - GET /healthz: liveness probe
//   - GET /*: "/about", "/about/" and "/about/index.html" render the page
//     registered at "/about"; other paths are looked up in the static
//     directory, and stylesheets there are transformed like in Build
//
// Paths with backslashes, NUL bytes, malformed escapes or ".." segments
// above the root answer 400. Unknown paths answer 404. Render failures
// answer 500 and are logged.
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/*", s.serve)

	return r
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request) {
	if _, err := canonicalPath(r.URL.EscapedPath()); err != nil {
		s.logger.Warn("invalid request path", "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if url, ok := requestURL(r.URL.Path); ok {
		if _, found := s.Lookup(url); found {
			s.servePage(w, r, url)
			return
		}
	}
	if s.serveStatic(w, r) {
		return
	}
	s.notFound(w, r)
}

func (s *Site) servePage(w http.ResponseWriter, r *http.Request, url string) {
	page, err := s.RenderPage(r.Context(), url)
	if err != nil {
		if errors.HasCode(err, "E200") {
			s.notFound(w, r)
			return
		}
		s.logger.Error("render failed",
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// serveStatic serves a regular file from the static directory. It reports
// false when there is no such file.
func (s *Site) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if s.static == "" {
		return false
	}
	name := filepath.Join(s.static, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if !isStylesheet(r.URL.Path) {
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		return true
	}

	data, err := io.ReadAll(f)
	if err == nil {
		data, err = s.transformStylesheet(r.URL.Path, data)
	}
	if err != nil {
		s.logger.Error("stylesheet failed",
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return true
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), bytes.NewReader(data))
	return true
}

func (s *Site) notFound(w http.ResponseWriter, r *http.Request) {
	err := errors.New("E200").WithDetail("no page or file at " + r.URL.Path)
	s.logger.Warn("not found", "path", r.URL.Path)
	http.Error(w, err.Error(), http.StatusNotFound)
}

func (s *Site) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// Serve runs the dev server on addr until ctx is done, then shuts it down
// gracefully.
func (s *Site) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dev server started", "addr", addr, "pages", len(s.Pages()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("dev server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}
