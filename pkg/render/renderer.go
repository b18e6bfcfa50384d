package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/soar/internal/errors"
	"github.com/vango-dev/soar/pkg/dom"
	"github.com/vango-dev/soar/pkg/stylesheet"
	"github.com/vango-dev/soar/pkg/vdom"
)

// Document is the output tree a render pass writes into. *dom.Document
// implements it.
type Document interface {
	CreateElement(tag string) *html.Node
	CreateTextNode(text string) *html.Node
	SetAttribute(el *html.Node, key, value string)
	AppendChild(parent, child *html.Node)

	// Root returns the html, head or body singleton, or nil.
	Root(tag string) *html.Node
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	// ScopeAttr is the attribute that marks elements of a styled subtree.
	// Defaults to "scope".
	ScopeAttr string

	// HashLength is the number of hex characters in a scope id.
	// Defaults to 6; must be within 1..16.
	HashLength int

	// Transformer post-processes the compiled stylesheet. Defaults to
	// esbuild minification for stylesheet.DefaultTargets.
	Transformer stylesheet.Transformer

	// Logger receives debug output. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Renderer expands VNode trees into a Document. It holds no per-pass
// state, so one Renderer may serve concurrent passes on distinct
// documents.
type Renderer struct {
	config   RendererConfig
	compiler *stylesheet.Compiler
	logger   *slog.Logger
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.ScopeAttr == "" {
		config.ScopeAttr = stylesheet.DefaultScopeAttr
	}
	if config.HashLength == 0 {
		config.HashLength = DefaultHashLength
	}
	if config.Transformer == nil {
		// DefaultTargets always parse.
		tr, _ := stylesheet.NewEsbuild(nil, true)
		config.Transformer = tr
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{
		config: config,
		compiler: &stylesheet.Compiler{
			Attr:        config.ScopeAttr,
			Transformer: config.Transformer,
			Logger:      config.Logger,
		},
		logger: config.Logger,
	}
}

// Config returns the effective configuration.
func (r *Renderer) Config() RendererConfig {
	return r.config
}

// RenderToString renders root into a fresh document and serializes it.
func (r *Renderer) RenderToString(ctx context.Context, root *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(ctx, &buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter renders root into a fresh document and writes the
// serialized document to w.
func (r *Renderer) RenderToWriter(ctx context.Context, w io.Writer, root *vdom.VNode) error {
	doc, err := dom.New()
	if err != nil {
		return err
	}
	if _, err := r.Render(ctx, root, doc); err != nil {
		return err
	}
	return doc.Render(w)
}

// Render expands root into doc, compiles the collected style fragments and
// appends them to the head as a single <style> element. Roots other than
// html, head and body are mounted under body.
//
// On failure the nodes appended so far stay in doc and no stylesheet is
// added.
func (r *Renderer) Render(ctx context.Context, root *vdom.VNode, doc Document) (*Styles, error) {
	body := doc.Root("body")
	if body == nil {
		return nil, errors.New("E003").WithDetail("document has no body")
	}

	p := &pass{
		r:      r,
		ctx:    ctx,
		doc:    doc,
		styles: NewStyles(),
	}
	if err := p.node(root, frame{parent: body}); err != nil {
		return nil, err
	}

	css, err := r.compiler.Compile(p.styles.Fragments())
	if err != nil {
		return nil, err
	}
	p.styles.CSS = css
	if css == "" {
		return p.styles, nil
	}

	head := doc.Root("head")
	if head == nil {
		return nil, errors.New("E003").WithDetail("document has no head")
	}
	style := doc.CreateElement("style")
	doc.AppendChild(style, doc.CreateTextNode(css))
	doc.AppendChild(head, style)
	return p.styles, nil
}

// frame is the traversal state handed from a node to its children.
type frame struct {
	parent *html.Node

	// scope is the inherited scope id; empty when unscoped.
	scope string

	// boundary is the scope whose top elements are still being looked for.
	// It is set below a styled component until the first element is
	// created.
	boundary string
}

// pass is one render of one tree into one document.
type pass struct {
	r      *Renderer
	ctx    context.Context
	doc    Document
	styles *Styles
}

// node dispatches rendering based on node kind.
func (p *pass) node(node *vdom.VNode, f frame) error {
	if node == nil {
		return nil
	}
	if node.Isolated {
		f.scope = ""
		f.boundary = ""
	}
	if node.GlobalStyle != "" {
		p.styles.AddGlobal(node.GlobalStyle)
	}

	switch node.Kind {
	case vdom.KindElement:
		return p.element(node, f)
	case vdom.KindText:
		if strings.TrimSpace(node.Style) != "" {
			return errors.New("E010").
				WithDetail("style attached to text node " + strconv.Quote(node.Text) + " has no element to scope")
		}
		p.doc.AppendChild(f.parent, p.doc.CreateTextNode(node.Text))
		return nil
	case vdom.KindFragment:
		return p.fragment(node, f)
	case vdom.KindComponent:
		return p.component(node, f)
	default:
		if text := unknownText(node); text != "" {
			p.doc.AppendChild(f.parent, p.doc.CreateTextNode(text))
		}
		return nil
	}
}

func (p *pass) children(children []*vdom.VNode, f frame) error {
	for _, child := range children {
		if err := p.node(child, f); err != nil {
			return err
		}
	}
	return nil
}

// scope opens a new scope when the node carries its own style.
func (p *pass) scope(node *vdom.VNode, f frame) (frame, bool, error) {
	if strings.TrimSpace(node.Style) == "" {
		return f, false, nil
	}
	id, err := Digest(node.Style, p.r.config.HashLength)
	if err != nil {
		return f, false, err
	}
	if p.styles.Add(id, node.Style) {
		p.r.logger.Debug("scope introduced", "scope", id, "node", node.String())
	}
	f.scope = id
	return f, true, nil
}

func (p *pass) element(node *vdom.VNode, f frame) error {
	f, opened, err := p.scope(node, f)
	if err != nil {
		return err
	}

	var el *html.Node
	switch node.Tag {
	case "html", "head", "body":
		el = p.doc.Root(node.Tag)
		if el == nil {
			return errors.New("E003").WithDetail("document has no " + node.Tag)
		}
	default:
		el = p.doc.CreateElement(node.Tag)
		p.doc.AppendChild(f.parent, el)
	}

	applyProps(p.doc, el, node.Props)
	if f.scope != "" {
		p.doc.SetAttribute(el, p.r.config.ScopeAttr, f.scope)
	}

	switch {
	case opened:
		p.styles.AddRoot(f.scope, node.Tag)
	case f.boundary != "":
		p.styles.AddRoot(f.boundary, node.Tag)
	}

	return p.children(node.Children, frame{parent: el, scope: f.scope})
}

// fragment renders a list in place. A styled fragment scopes its
// children the way a styled component scopes its output.
func (p *pass) fragment(node *vdom.VNode, f frame) error {
	f, opened, err := p.scope(node, f)
	if err != nil {
		return err
	}
	if opened {
		f.boundary = f.scope
	}
	return p.children(node.Children, f)
}

func (p *pass) component(node *vdom.VNode, f frame) error {
	f, opened, err := p.scope(node, f)
	if err != nil {
		return err
	}
	if opened {
		f.boundary = f.scope
	}

	out, err := p.invoke(node)
	if err != nil {
		return err
	}
	return p.node(out, f)
}

// invoke calls the component with a copy of its props plus children.
func (p *pass) invoke(node *vdom.VNode) (out *vdom.VNode, err error) {
	if node.Comp == nil {
		return nil, nil
	}
	props := node.Props.Clone()
	props[vdom.ChildrenKey] = node.Children

	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("E002").
				WithDetail(fmt.Sprintf("%s: %v", node.String(), rec))
		}
	}()

	out, err = node.Comp.Render(p.ctx, props)
	if err != nil {
		return nil, errors.New("E001").WithDetail(node.String()).Wrap(err)
	}
	return out, nil
}

func unknownText(node *vdom.VNode) string {
	if node.Value == nil {
		return ""
	}
	return fmt.Sprint(node.Value)
}
