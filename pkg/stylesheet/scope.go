package stylesheet

import "fmt"

// DefaultScopeAttr is the attribute that carries the scope id on elements.
const DefaultScopeAttr = "scope"

// Marker returns the attribute selector component for a scope id.
func Marker(attr, id string) Component {
	return Component{Kind: Attribute, Value: fmt.Sprintf("[%s=%q]", attr, id)}
}

// Scope rewrites sel so that it only matches inside the subtree marked with
// the scope id.
//
// The selector is processed compound by compound, left to right. A
// compound holding :global(...) is unwrapped and left unscoped. A compound
// starting with & refers to the enclosing rule, which is constrained
// already, so it is kept as written; a global compound followed by &
// continuations therefore stays global until the next plain compound.
// Every other compound gets the marker: it replaces a bare *, follows a
// type and otherwise precedes the first component.
func Scope(sel Selector, attr, id string) Selector {
	marker := Marker(attr, id)
	out := make(Selector, 0, len(sel)+2)

	compound := make([]Component, 0, 4)
	flush := func() {
		if len(compound) == 0 {
			return
		}
		switch {
		case hasGlobal(compound):
			out = append(out, unwrap(compound)...)
		case compound[0].Kind == Nesting:
			out = append(out, compound...)
		default:
			out = append(out, inject(compound, marker)...)
		}
		compound = compound[:0]
	}

	for _, c := range sel {
		if c.Kind == Combinator {
			flush()
			out = append(out, c)
			continue
		}
		compound = append(compound, c)
	}
	flush()
	return out
}

// Resolve replaces every & in sel with subject. It is used for rules at
// the top level of a fragment, where & stands for the styled element.
func Resolve(sel Selector, subject Selector) Selector {
	out := make(Selector, 0, len(sel)+len(subject))
	for _, c := range sel {
		if c.Kind == Nesting {
			out = append(out, subject...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// HasNesting reports whether sel contains &.
func HasNesting(sel Selector) bool {
	for _, c := range sel {
		if c.Kind == Nesting {
			return true
		}
	}
	return false
}

// Unscoped strips :global wrappers without adding any marker.
func Unscoped(sel Selector) Selector {
	return unwrap(sel)
}

func hasGlobal(compound []Component) bool {
	for _, c := range compound {
		if c.Kind == Global {
			return true
		}
	}
	return false
}

func unwrap(components []Component) []Component {
	out := make([]Component, 0, len(components))
	for _, c := range components {
		if c.Kind == Global {
			out = append(out, unwrap(c.Inner)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func inject(compound []Component, marker Component) []Component {
	out := make([]Component, 0, len(compound)+1)
	switch compound[0].Kind {
	case Universal:
		out = append(out, marker)
		out = append(out, compound[1:]...)
	case Type:
		out = append(out, compound[0], marker)
		out = append(out, compound[1:]...)
	default:
		out = append(out, marker)
		out = append(out, compound...)
	}
	return out
}
