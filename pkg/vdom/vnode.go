package vdom

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync/atomic"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindUnknown   VKind = iota // Value of unrecognized shape, rendered as text
	KindElement                // <div>, <span>, etc.
	KindText                   // Plain text node
	KindFragment               // Ordered list of children without a wrapper
	KindComponent              // Functional component, expanded at render time
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// nextID hands out process-unique node ids.
var nextID atomic.Uint64

func newID() uint64 {
	return nextID.Add(1)
}

// VNode is the virtual DOM node.
type VNode struct {
	ID       uint64    // Process-unique, assigned at construction
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes; never holds children
	Children []*VNode  // Child nodes; nil entries render nothing
	Text     string    // For KindText
	Comp     Component // For KindComponent
	Name     string    // Debug name for KindComponent
	Value    any       // For KindUnknown

	// Style is raw CSS attached with Styled. A non-empty Style opens a new
	// style scope at this node.
	Style string

	// GlobalStyle is raw CSS attached with GlobalStyled; it is emitted
	// without scoping.
	GlobalStyle string

	// Isolated nodes do not inherit the scope of their ancestors.
	Isolated bool
}

// String formats the node as "<tag>-<id>" or "<component>-<id>".
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind {
	case KindElement:
		return fmt.Sprintf("%s-%d", v.Tag, v.ID)
	case KindComponent:
		name := v.Name
		if name == "" {
			name = componentName(v.Comp)
		}
		return fmt.Sprintf("%s-%d", name, v.ID)
	case KindText:
		return fmt.Sprintf("text-%d", v.ID)
	case KindFragment:
		return fmt.Sprintf("fragment-%d", v.ID)
	default:
		return fmt.Sprintf("unknown-%d", v.ID)
	}
}

// Props holds attributes. Keys starting with "_" are bookkeeping and are
// never emitted.
type Props map[string]any

// ChildrenKey is the props key under which components receive their children.
const ChildrenKey = "children"

// Children returns the children passed to a component.
func (p Props) Children() []*VNode {
	if p == nil {
		return nil
	}
	children, _ := p[ChildrenKey].([]*VNode)
	return children
}

// String returns the prop as a string, or "" when absent.
func (p Props) String(key string) string {
	if p == nil {
		return ""
	}
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Clone returns a shallow copy of the props.
func (p Props) Clone() Props {
	out := make(Props, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode tree. Render may block;
// a nil node renders nothing.
type Component interface {
	Render(ctx context.Context, props Props) (*VNode, error)
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(ctx context.Context, props Props) (*VNode, error)

// Render implements Component.
func (f ComponentFunc) Render(ctx context.Context, props Props) (*VNode, error) {
	return f(ctx, props)
}

// Func creates a component from a render function that cannot fail.
func Func(render func() *VNode) Component {
	return ComponentFunc(func(context.Context, Props) (*VNode, error) {
		return render(), nil
	})
}

// named carries an explicit debug name.
type named struct {
	Component
	name string
}

// Named attaches a debug name to a component; it shows up in VNode.String
// and in render errors.
func Named(name string, c Component) Component {
	return named{Component: c, name: name}
}

// componentName derives a readable name for a component.
func componentName(c Component) string {
	switch v := c.(type) {
	case nil:
		return "component"
	case named:
		return v.name
	case ComponentFunc:
		return funcName(v)
	default:
		t := reflect.TypeOf(c)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Name() != "" {
			return t.Name()
		}
		return "component"
	}
}

func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "component"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Comp wraps a component in a KindComponent node.
func Comp(c Component, props Props, children ...any) *VNode {
	node := &VNode{
		ID:       newID(),
		Kind:     KindComponent,
		Comp:     c,
		Props:    withoutChildren(props),
		Children: normalizeChildren(children),
	}
	if n, ok := c.(named); ok {
		node.Name = n.name
	}
	if len(children) == 0 {
		node.Children = propChildren(props)
	}
	return node
}

// H builds a node from a type and props, the way a JSX front-end would.
// A string type yields an element, a Component or component function yields
// a component node, and any other value yields a KindUnknown node. A
// "children" entry in props is used when no explicit children are given.
func H(typ any, props Props, children ...any) *VNode {
	var node *VNode
	switch t := typ.(type) {
	case string:
		node = &VNode{
			ID:       newID(),
			Kind:     KindElement,
			Tag:      t,
			Props:    withoutChildren(props),
			Children: normalizeChildren(children),
		}
	case Component:
		return Comp(t, props, children...)
	case func(context.Context, Props) (*VNode, error):
		return Comp(ComponentFunc(t), props, children...)
	default:
		node = &VNode{
			ID:       newID(),
			Kind:     KindUnknown,
			Value:    typ,
			Props:    withoutChildren(props),
			Children: normalizeChildren(children),
		}
	}
	if len(children) == 0 {
		node.Children = propChildren(props)
	}
	return node
}

func withoutChildren(props Props) Props {
	out := make(Props, len(props))
	for k, v := range props {
		if k == ChildrenKey {
			continue
		}
		out[k] = v
	}
	return out
}

func propChildren(props Props) []*VNode {
	if props == nil {
		return nil
	}
	v, ok := props[ChildrenKey]
	if !ok {
		return nil
	}
	return normalizeChildren([]any{v})
}

// normalizeChildren turns the Children union into nodes. Strings become
// text nodes, nested lists become fragments, booleans and nil are dropped.
func normalizeChildren(children []any) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, child := range children {
		if node := toNode(child); node != nil {
			out = append(out, node)
		}
	}
	return out
}

func toNode(child any) *VNode {
	switch v := child.(type) {
	case nil, bool:
		return nil
	case *VNode:
		return v
	case string:
		return Text(v)
	case []*VNode:
		return Fragment(v)
	case []any:
		return Fragment(v...)
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return Fragment(items...)
	case Component:
		return Comp(v, nil)
	case func(context.Context, Props) (*VNode, error):
		return Comp(ComponentFunc(v), nil)
	default:
		return &VNode{ID: newID(), Kind: KindUnknown, Value: v}
	}
}
