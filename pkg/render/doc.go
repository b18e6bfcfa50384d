// Package render expands VNode trees into an HTML document.
//
// A render pass walks the tree depth first. Components are invoked with
// their props and children, and whatever they return is rendered in their
// place. Elements are appended to the current parent; html, head and body
// resolve to the document's existing singletons. Siblings are rendered
// strictly in order.
//
// # Scopes
//
// A node with its own style opens a scope whose id is a digest of the
// style text. Every element below it carries the id in the scope attribute
// until a descendant opens its own scope or is isolated. The collected
// style fragments are compiled by package stylesheet and appended to the
// head as one <style> element.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(ctx, node)
//
// To render into a document you manage yourself:
//
//	doc, _ := dom.New()
//	styles, err := renderer.Render(ctx, node, doc)
//
// # Errors
//
// A failing or panicking component aborts the pass. Nodes already appended
// stay in the document and no stylesheet is added.
package render
