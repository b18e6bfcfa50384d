package main

import (
	"context"
	"fmt"

	"github.com/vango-dev/soar"
	"github.com/vango-dev/soar/pkg/site"
)

type post struct {
	Title   string
	Summary string
	Body    []string
}

var posts = map[string]post{
	"scoped-styles": {
		Title:   "Scoped styles",
		Summary: "Styles attached to a component only match inside it.",
		Body: []string{
			"Every styled node gets a scope id derived from its CSS.",
			"Selectors in the block are rewritten to require that id.",
		},
	},
	"global-escapes": {
		Title:   "Escaping the scope",
		Summary: ":global() marks the parts of a selector that stay unscoped.",
		Body: []string{
			"Wrap a compound in :global() to match outside the component.",
		},
	},
}

// register adds the demo pages to s.
func register(s *site.Site) error {
	if err := s.Page("/", soar.ComponentFunc(home)); err != nil {
		return err
	}
	pages := make(map[string]soar.Component, len(posts))
	for slug, p := range posts {
		pages[slug] = soar.Named("Post", postPage(p))
	}
	return s.Generator("/posts", pages)
}

func layout(title string, props soar.Props, children ...any) *soar.VNode {
	return soar.Html(soar.Lang("en"),
		soar.Head(
			soar.Meta(soar.Charset("utf-8")),
			soar.Meta(soar.Name("generator"), soar.Content(fmt.Sprint(props["generator"]))),
			soar.Title(title),
		),
		soar.Body(
			nav(props["url"]),
			soar.Main(children...).Styled(`
				max-width: 42rem;
				margin: 0 auto;
				h1 { font-size: 2rem; }
			`),
		).GlobalStyled(`
			body { font-family: system-ui, sans-serif; margin: 0; }
		`),
	)
}

func nav(current any) *soar.VNode {
	link := func(href, label string) *soar.VNode {
		a := soar.A(soar.Href(href), label)
		if current == href {
			a = soar.A(soar.Href(href), soar.Class("current"), label)
		}
		return soar.Li(a)
	}
	return soar.Nav(
		soar.Ul(
			link("/", "Home"),
			link("/posts/scoped-styles", "Scoped styles"),
			link("/posts/global-escapes", "Escaping the scope"),
		),
	).Styled(`
		ul { display: flex; gap: 1rem; list-style: none; }
		.current { font-weight: bold; }
		:global(body.print) & { display: none; }
	`)
}

func home(_ context.Context, props soar.Props) (*soar.VNode, error) {
	var items []any
	for _, slug := range []string{"scoped-styles", "global-escapes"} {
		p := posts[slug]
		items = append(items, soar.Article(
			soar.H2(soar.A(soar.Href("/posts/"+slug), p.Title)),
			soar.P(p.Summary),
		))
	}
	return layout("Soar", props,
		soar.H1("Soar"),
		soar.Section(items...).Styled(`
			article + article { border-top: 1px solid #ddd; }
			&:hover h2 { text-decoration: underline; }
		`),
	), nil
}

func postPage(p post) soar.Component {
	return soar.ComponentFunc(func(_ context.Context, props soar.Props) (*soar.VNode, error) {
		var paragraphs []any
		for _, text := range p.Body {
			paragraphs = append(paragraphs, soar.P(text))
		}
		return layout(p.Title, props,
			soar.H1(p.Title),
			soar.Article(paragraphs...).Styled("p { line-height: 1.6; }"),
		), nil
	})
}
