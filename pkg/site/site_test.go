package site

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/soar/internal/config"
	"github.com/vango-dev/soar/internal/errors"
	"github.com/vango-dev/soar/pkg/middleware"
	"github.com/vango-dev/soar/pkg/render"
	"github.com/vango-dev/soar/pkg/stylesheet"
	"github.com/vango-dev/soar/pkg/vdom"
)

func newTestSite(t *testing.T, opts ...Option) *Site {
	t.Helper()
	opts = append([]Option{
		WithRenderer(render.NewRenderer(render.RendererConfig{Transformer: stylesheet.Passthrough{}})),
	}, opts...)
	s, err := New(nil, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

// echo renders the props every page receives.
func echo(title string) vdom.Component {
	return vdom.ComponentFunc(func(_ context.Context, props vdom.Props) (*vdom.VNode, error) {
		return vdom.Main(
			vdom.H1(title),
			vdom.P(vdom.Text(fmt.Sprintf("%v by %v", props["url"], props["generator"]))),
		), nil
	})
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := New(nil)
		if err != nil {
			t.Fatalf("New() error: %v", err)
		}
		if s.Config().Render.ScopeAttr != stylesheet.DefaultScopeAttr {
			t.Errorf("ScopeAttr = %q", s.Config().Render.ScopeAttr)
		}
		if s.renderer == nil || s.logger == nil {
			t.Error("renderer and logger should be set")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.New()
		cfg.Render.HashLength = 40
		if _, err := New(cfg); !errors.HasCode(err, "E122") {
			t.Fatalf("err = %v, want E122", err)
		}
	})

	t.Run("invalid targets", func(t *testing.T) {
		cfg := config.New()
		cfg.CSS.Targets = []string{"netscape4"}
		if _, err := New(cfg); !errors.HasCode(err, "E122") {
			t.Fatalf("err = %v, want E122", err)
		}
	})
}

func TestPage(t *testing.T) {
	s := newTestSite(t)

	if err := s.Page("about/", echo("About")); err != nil {
		t.Fatalf("Page() error: %v", err)
	}
	if err := s.Page("/", echo("Home")); err != nil {
		t.Fatalf("Page() error: %v", err)
	}

	err := s.Page("/about", echo("Again"))
	if !errors.HasCode(err, "E203") {
		t.Fatalf("duplicate Page() err = %v, want E203", err)
	}

	if got := strings.Join(s.Pages(), ","); got != "/,/about" {
		t.Errorf("Pages() = %q", got)
	}
	for _, url := range []string{"/about", "about", "/about/", "/docs/../about"} {
		if _, ok := s.Lookup(url); !ok {
			t.Errorf("Lookup(%q) found nothing", url)
		}
	}
	if _, ok := s.Lookup("/missing"); ok {
		t.Error("Lookup(/missing) should fail")
	}
}

func TestGenerator(t *testing.T) {
	s := newTestSite(t)

	err := s.Generator("posts", map[string]vdom.Component{
		"zebra": echo("Z"),
		"alpha": echo("A"),
		"mid":   echo("M"),
	})
	if err != nil {
		t.Fatalf("Generator() error: %v", err)
	}

	want := "/posts/alpha,/posts/mid,/posts/zebra"
	if got := strings.Join(s.Pages(), ","); got != want {
		t.Errorf("Pages() = %q, want %q", got, want)
	}

	err = s.Generator("/posts/", map[string]vdom.Component{
		"alpha": echo("dup"),
		"beta":  echo("B"),
	})
	if !errors.HasCode(err, "E203") {
		t.Fatalf("err = %v, want E203", err)
	}
	// "alpha" sorts first, so nothing after it was registered.
	if _, ok := s.Lookup("/posts/beta"); ok {
		t.Error("registration should stop at the first duplicate")
	}
}

func TestRenderPage(t *testing.T) {
	s := newTestSite(t)
	s.Page("/docs/intro", echo("Intro"))

	page, err := s.RenderPage(context.Background(), "/docs/intro/")
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}

	want := `<!DOCTYPE html><html><head></head><body>` +
		`<main><h1>Intro</h1><p>/docs/intro by Soar</p></main>` +
		`</body></html>`
	if string(page) != want {
		t.Errorf("got  %q\nwant %q", page, want)
	}
}

func TestRenderPage_Styled(t *testing.T) {
	s := newTestSite(t)
	s.Page("/", vdom.Func(func() *vdom.VNode {
		return vdom.P("hi").Styled("color: red;")
	}))

	page, err := s.RenderPage(context.Background(), "/")
	if err != nil {
		t.Fatalf("RenderPage() error: %v", err)
	}
	id, _ := render.Digest("color: red;", render.DefaultHashLength)
	for _, want := range []string{
		`<style>p[scope="` + id + `"] {`,
		`color: red;`,
		`<p scope="` + id + `">hi</p>`,
	} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page %q missing %q", page, want)
		}
	}
}

func TestRenderPage_Errors(t *testing.T) {
	s := newTestSite(t)
	s.Page("/broken", vdom.ComponentFunc(func(context.Context, vdom.Props) (*vdom.VNode, error) {
		return nil, fmt.Errorf("database down")
	}))

	if _, err := s.RenderPage(context.Background(), "/missing"); !errors.HasCode(err, "E200") {
		t.Errorf("missing page err = %v, want E200", err)
	}
	_, err := s.RenderPage(context.Background(), "/broken")
	if !errors.HasCode(err, "E001") {
		t.Errorf("broken page err = %v, want E001", err)
	}
	if err == nil || !strings.Contains(err.Error(), "database down") {
		t.Errorf("err = %v, want the component's cause", err)
	}
}

func TestRenderPage_Middleware(t *testing.T) {
	var seen []string
	record := func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, url string) ([]byte, error) {
			seen = append(seen, url)
			return next(ctx, url)
		}
	}

	s := newTestSite(t, WithMiddleware(record))
	s.Page("/a", echo("A"))

	s.RenderPage(context.Background(), "a/")
	s.RenderPage(context.Background(), "/nope")

	if got := strings.Join(seen, ","); got != "/a,/nope" {
		t.Errorf("middleware saw %q", got)
	}
}
