// Package soar renders component trees to HTML documents with
// component-scoped CSS.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/soar"
//
// Usage:
//
//	page := soar.Div(
//	    soar.H1("Hello"),
//	    soar.P("scoped paragraph").Styled("color: teal; &:hover { color: navy }"),
//	)
//	html, err := soar.RenderToString(ctx, page)
package soar

import (
	"context"
	"io"
	"log/slog"

	"github.com/vango-dev/soar/pkg/render"
	"github.com/vango-dev/soar/pkg/stylesheet"
	"github.com/vango-dev/soar/pkg/vdom"
)

// =============================================================================
// Node model (re-export from pkg/vdom)
// =============================================================================

// VNode is a node of the tree being rendered.
type VNode = vdom.VNode

// Props holds a node's attributes.
type Props = vdom.Props

// Attr is a single attribute.
type Attr = vdom.Attr

// Component renders to a VNode tree.
type Component = vdom.Component

// ComponentFunc adapts a function to Component.
type ComponentFunc = vdom.ComponentFunc

// Document is the output tree a render pass writes into.
type Document = render.Document

// Styles holds the style fragments collected by a render pass.
type Styles = render.Styles

var (
	H        = vdom.H
	Comp     = vdom.Comp
	Func     = vdom.Func
	Named    = vdom.Named
	Text     = vdom.Text
	Textf    = vdom.Textf
	Fragment = vdom.Fragment
	CSS      = vdom.CSS
)

// Common elements and attributes.
var (
	Html    = vdom.Html
	Head    = vdom.Head
	Body    = vdom.Body
	Title   = vdom.Title
	Meta    = vdom.Meta
	Link    = vdom.Link
	Header  = vdom.Header
	Footer  = vdom.Footer
	Main    = vdom.Main
	Nav     = vdom.Nav
	Section = vdom.Section
	Article = vdom.Article
	Div     = vdom.Div
	Span    = vdom.Span
	P       = vdom.P
	A       = vdom.A
	H1      = vdom.H1
	H2      = vdom.H2
	H3      = vdom.H3
	Ul      = vdom.Ul
	Li      = vdom.Li
	Img     = vdom.Img
	Button  = vdom.Button

	ID      = vdom.ID
	Class   = vdom.Class
	Href    = vdom.Href
	Src     = vdom.Src
	Alt     = vdom.Alt
	Lang    = vdom.Lang
	Charset = vdom.Charset
	Content = vdom.Content
	Name    = vdom.NameAttr
)

// =============================================================================
// Rendering
// =============================================================================

// Option configures a render call.
type Option func(*render.RendererConfig)

// WithScopeAttr sets the attribute that marks scoped elements.
func WithScopeAttr(attr string) Option {
	return func(c *render.RendererConfig) { c.ScopeAttr = attr }
}

// WithHashLength sets the number of hex characters in scope ids.
func WithHashLength(n int) Option {
	return func(c *render.RendererConfig) { c.HashLength = n }
}

// WithTransformer replaces the stylesheet post-processor.
func WithTransformer(t stylesheet.Transformer) Option {
	return func(c *render.RendererConfig) { c.Transformer = t }
}

// WithoutMinify emits the compiled stylesheet as written.
func WithoutMinify() Option {
	return WithTransformer(stylesheet.Passthrough{})
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *render.RendererConfig) { c.Logger = l }
}

// NewRenderer builds a renderer from options.
func NewRenderer(opts ...Option) *render.Renderer {
	var cfg render.RendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return render.NewRenderer(cfg)
}

// RenderToString renders root into a fresh document and returns the
// serialized HTML.
func RenderToString(ctx context.Context, root *VNode, opts ...Option) (string, error) {
	return NewRenderer(opts...).RenderToString(ctx, root)
}

// RenderTo renders root into a fresh document and writes it to w.
func RenderTo(ctx context.Context, w io.Writer, root *VNode, opts ...Option) error {
	return NewRenderer(opts...).RenderToWriter(ctx, w, root)
}

// Render renders root into doc and returns the collected styles.
func Render(ctx context.Context, root *VNode, doc Document, opts ...Option) (*Styles, error) {
	return NewRenderer(opts...).Render(ctx, root, doc)
}
