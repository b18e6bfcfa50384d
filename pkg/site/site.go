package site

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path"
	"sort"
	"sync"

	"github.com/vango-dev/soar/internal/config"
	"github.com/vango-dev/soar/internal/errors"
	"github.com/vango-dev/soar/pkg/dom"
	"github.com/vango-dev/soar/pkg/middleware"
	"github.com/vango-dev/soar/pkg/render"
	"github.com/vango-dev/soar/pkg/stylesheet"
	"github.com/vango-dev/soar/pkg/vdom"
)

// GeneratorName is the value of the "generator" prop every page receives.
const GeneratorName = "Soar"

// Site is a registry of pages rendered through one renderer and one
// middleware chain. Pages are registered up front; rendering is safe for
// concurrent use once registration is done.
type Site struct {
	config   *config.Config
	renderer *render.Renderer
	logger   *slog.Logger
	static   string

	mu    sync.RWMutex
	pages map[string]vdom.Component

	middleware []middleware.Middleware
	handler    middleware.Handler
	once       sync.Once
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger for builds and requests.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// WithMiddleware appends middleware to the page render chain.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(s *Site) {
		s.middleware = append(s.middleware, mws...)
	}
}

// WithRenderer replaces the renderer built from the configuration.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Site) {
		s.renderer = r
	}
}

// WithStatic sets a directory whose files are copied into builds and
// served by the dev server next to the pages.
func WithStatic(dir string) Option {
	return func(s *Site) {
		s.static = dir
	}
}

// New creates a Site. A nil cfg uses the defaults. The renderer follows
// cfg.Render and cfg.CSS unless WithRenderer is given.
func New(cfg *config.Config, opts ...Option) (*Site, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Site{
		config: cfg,
		pages:  make(map[string]vdom.Component),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if s.renderer == nil {
		var transformer stylesheet.Transformer = stylesheet.Passthrough{}
		if cfg.CSS.Minify || len(cfg.CSS.Targets) > 0 {
			esb, err := stylesheet.NewEsbuild(cfg.CSS.Targets, cfg.CSS.Minify)
			if err != nil {
				return nil, err
			}
			transformer = esb
		}
		s.renderer = render.NewRenderer(render.RendererConfig{
			ScopeAttr:   cfg.Render.ScopeAttr,
			HashLength:  cfg.Render.HashLength,
			Transformer: transformer,
			Logger:      s.logger,
		})
	}
	return s, nil
}

// Config returns the site configuration.
func (s *Site) Config() *config.Config {
	return s.config
}

// Page registers a page component at url. The url is cleaned, so "about",
// "/about/" and "/about" name the same page.
func (s *Site) Page(url string, page vdom.Component) error {
	url = CleanURL(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[url]; ok {
		return errors.New("E203").WithDetail("a page is already registered at " + url)
	}
	s.pages[url] = page
	return nil
}

// Generator registers one page per slug under dir. Slugs are registered in
// sorted order; registration stops at the first duplicate.
func (s *Site) Generator(dir string, pages map[string]vdom.Component) error {
	slugs := make([]string, 0, len(pages))
	for slug := range pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		if err := s.Page(path.Join("/", dir, slug), pages[slug]); err != nil {
			return err
		}
	}
	return nil
}

// Pages returns the registered urls in sorted order.
func (s *Site) Pages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	urls := make([]string, 0, len(s.pages))
	for url := range s.pages {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Lookup returns the page registered at url.
func (s *Site) Lookup(url string) (vdom.Component, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[CleanURL(url)]
	return page, ok
}

// RenderPage renders the page at url through the middleware chain and
// returns the serialized document.
func (s *Site) RenderPage(ctx context.Context, url string) ([]byte, error) {
	s.once.Do(func() {
		s.handler = middleware.Chain(s.render, s.middleware...)
	})
	return s.handler(ctx, CleanURL(url))
}

// render is the innermost handler of the chain.
func (s *Site) render(ctx context.Context, url string) ([]byte, error) {
	page, ok := s.Lookup(url)
	if !ok {
		return nil, errors.New("E200").WithDetail("no page is registered at " + url)
	}

	doc, err := dom.New()
	if err != nil {
		return nil, err
	}
	props := vdom.Props{
		"url":       url,
		"generator": GeneratorName,
	}
	styles, err := s.renderer.Render(ctx, vdom.Comp(page, props), doc)
	if err != nil {
		return nil, err
	}
	if styles.CSS != "" {
		middleware.RecordStylesheet()
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
