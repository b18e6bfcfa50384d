package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/soar/internal/errors"
)

// Skeleton is the markup every new Document is seeded with.
const Skeleton = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is a mutable HTML document backed by golang.org/x/net/html.
// It is not safe for concurrent use; one render pass owns it at a time.
type Document struct {
	root *html.Node
	html *html.Node
	head *html.Node
	body *html.Node
}

// New returns a document parsed from Skeleton.
func New() (*Document, error) {
	return Parse(strings.NewReader(Skeleton))
}

// Parse builds a document from existing markup. The html5 parser always
// synthesizes html, head and body elements.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.New("E020").Wrap(err)
	}
	d := &Document{root: root}
	d.html = find(root, atom.Html)
	if d.html != nil {
		d.head = find(d.html, atom.Head)
		d.body = find(d.html, atom.Body)
	}
	if d.html == nil || d.head == nil || d.body == nil {
		return nil, errors.New("E003")
	}
	return d, nil
}

// find returns the first element with the given atom in document order.
func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateTextNode returns a detached text node.
func (d *Document) CreateTextNode(text string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: text,
	}
}

// SetAttribute sets or replaces an attribute on el.
func (d *Document) SetAttribute(el *html.Node, key, value string) {
	for i := range el.Attr {
		if el.Attr[i].Namespace == "" && el.Attr[i].Key == key {
			el.Attr[i].Val = value
			return
		}
	}
	el.Attr = append(el.Attr, html.Attribute{Key: key, Val: value})
}

// AppendChild appends a detached child to parent.
func (d *Document) AppendChild(parent, child *html.Node) {
	parent.AppendChild(child)
}

// Root returns the singleton html, head or body element, or nil for any
// other tag.
func (d *Document) Root(tag string) *html.Node {
	switch tag {
	case "html":
		return d.html
	case "head":
		return d.head
	case "body":
		return d.body
	default:
		return nil
	}
}

// Node returns the underlying document node.
func (d *Document) Node() *html.Node {
	return d.root
}

// Render serializes the document to w.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.New("E020").Wrap(err)
	}
	return nil
}

// String serializes the document. Serialization errors yield "".
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Attr returns the value of an attribute on el.
func Attr(el *html.Node, key string) (string, bool) {
	for _, a := range el.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent returns the concatenated text of n's descendants in
// document order.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// FindAll returns every element with the given tag under n, in document
// order.
func FindAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}
