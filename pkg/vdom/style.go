package vdom

import (
	"fmt"
	"strings"
)

// Styled attaches scoped CSS to the node and returns the same node.
//
// The source may hold bare declarations, which apply to the node's own
// element, and nested rules:
//
//	Div(Class("card"), H2("Title")).Styled(`
//	    padding: 1rem;
//	    h2 { margin: 0; }
//	    :global(body.dark) & { background: #222; }
//	`)
//
// A styled fragment scopes each of its children. Text nodes have no
// element to carry the scope, and rendering a styled text node fails.
func (v *VNode) Styled(css string) *VNode {
	v.Style = css
	return v
}

// StyledTemplate is the template form of Styled: literal fragments are
// interleaved with the stringified values.
func (v *VNode) StyledTemplate(literals []string, values ...any) *VNode {
	return v.Styled(CSS(literals, values...))
}

// GlobalStyled attaches CSS that is emitted without scoping.
func (v *VNode) GlobalStyled(css string) *VNode {
	v.GlobalStyle += css
	return v
}

// Isolate stops the node from inheriting its ancestors' style scope.
func (v *VNode) Isolate() *VNode {
	v.Isolated = true
	return v
}

// CSS concatenates literal fragments with the values between them:
// literals[0] + values[0] + literals[1] + ... Extra values are appended.
func CSS(literals []string, values ...any) string {
	var b strings.Builder
	for i, lit := range literals {
		b.WriteString(lit)
		if i < len(values) && i < len(literals)-1 {
			b.WriteString(fmt.Sprint(values[i]))
		}
	}
	if len(literals) == 0 {
		for _, v := range values {
			b.WriteString(fmt.Sprint(v))
		}
		return b.String()
	}
	for i := len(literals) - 1; i < len(values); i++ {
		b.WriteString(fmt.Sprint(values[i]))
	}
	return b.String()
}

// Compose concatenates style blocks, so shared declarations can be reused:
//
//	base := "padding: 1rem;"
//	Div().Styled(Compose(base, "color: red;"))
func Compose(styles ...string) string {
	return strings.Join(styles, "")
}
