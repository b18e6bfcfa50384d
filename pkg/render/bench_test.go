package render

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/vango-dev/soar/pkg/stylesheet"
	"github.com/vango-dev/soar/pkg/vdom"
)

func BenchmarkRenderSimple(b *testing.B) {
	renderer := NewRenderer(RendererConfig{Transformer: stylesheet.Passthrough{}})
	ctx := context.Background()
	node := vdom.Div(vdom.Class("card"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.RenderToString(ctx, node)
	}
}

func BenchmarkRenderLargeTree(b *testing.B) {
	renderer := NewRenderer(RendererConfig{Transformer: stylesheet.Passthrough{}})
	ctx := context.Background()

	// Build a tree with 1000 elements
	var items []any
	for i := 0; i < 1000; i++ {
		items = append(items, vdom.Li(vdom.Text(fmt.Sprintf("Item %d", i))))
	}
	node := vdom.Ul(items...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.RenderToString(ctx, node)
	}
}

func BenchmarkRenderDeepNesting(b *testing.B) {
	renderer := NewRenderer(RendererConfig{Transformer: stylesheet.Passthrough{}})
	ctx := context.Background()

	// Build a deeply nested tree (20 levels)
	var node *vdom.VNode = vdom.Span(vdom.Text("Leaf"))
	for i := 0; i < 20; i++ {
		node = vdom.Div(node)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.RenderToWriter(ctx, io.Discard, node)
	}
}

func BenchmarkRenderStyled(b *testing.B) {
	renderer := NewRenderer(RendererConfig{Transformer: stylesheet.Passthrough{}})
	ctx := context.Background()

	var rows []any
	for i := 0; i < 50; i++ {
		rows = append(rows, vdom.Tr(
			vdom.Td(vdom.Text(fmt.Sprintf("%d", i+1))),
			vdom.Td(vdom.Text(fmt.Sprintf("User %d", i))),
		).Styled("td { padding: 4px } &:hover { background: #eee }"))
	}
	node := vdom.Main(
		vdom.H1("Users").Styled("font-size: 2rem;"),
		vdom.Table(vdom.Tbody(rows...)),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.RenderToString(ctx, node)
	}
}

func BenchmarkRenderEsbuild(b *testing.B) {
	renderer := NewRenderer(RendererConfig{})
	ctx := context.Background()
	node := vdom.Div(
		vdom.Span("a").Styled("color: red; &:hover { color: blue }"),
		vdom.P("b").Styled(":global(body) & { margin: 0 }"),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.RenderToString(ctx, node)
	}
}
