package stylesheet

import (
	"strings"

	"github.com/gorilla/css/scanner"

	"github.com/vango-dev/soar/internal/errors"
)

// Kind classifies a selector component.
type Kind uint8

const (
	Type          Kind = iota // div
	Universal                 // *
	Class                     // .card
	ID                        // #main
	Attribute                 // [href^="http"]
	PseudoClass               // :hover, :not(.a)
	PseudoElement             // ::before
	Nesting                   // &
	Combinator                // " ", ">", "+", "~"
	Global                    // :global(...)
)

// Component is one element of a parsed selector.
type Component struct {
	Kind  Kind
	Value string   // source text; for Combinator one of " ", ">", "+", "~"
	Inner Selector // for Global
}

// Selector is a complex selector as a flat component sequence.
type Selector []Component

// String serializes the selector. :global wrappers are written back out
// verbatim; Scope unwraps them.
func (s Selector) String() string {
	var b strings.Builder
	for _, c := range s {
		switch c.Kind {
		case Combinator:
			if c.Value == " " {
				b.WriteString(" ")
			} else {
				b.WriteString(" " + c.Value + " ")
			}
		case Global:
			b.WriteString(":global(" + c.Inner.String() + ")")
		default:
			b.WriteString(c.Value)
		}
	}
	return strings.TrimSpace(b.String())
}

// ParseSelectorList parses a comma separated selector list.
func ParseSelectorList(src string) ([]Selector, error) {
	toks, err := tokenize("selector", src)
	if err != nil {
		return nil, err
	}
	return parseSelectorList("selector", src, toks)
}

func parseSelectorList(name, src string, toks []*scanner.Token) ([]Selector, error) {
	var (
		out   []Selector
		start int
		depth int
	)
	emit := func(part []*scanner.Token, at *scanner.Token) error {
		sel, err := parseSelector(name, src, part)
		if err != nil {
			return err
		}
		if len(sel) == 0 {
			return selectorError(name, src, at, "empty selector in list")
		}
		out = append(out, sel)
		return nil
	}
	for i, t := range toks {
		depth += depthDelta(t)
		if depth == 0 && isChar(t, ",") {
			if err := emit(toks[start:i], t); err != nil {
				return nil, err
			}
			start = i + 1
		}
	}
	var last *scanner.Token
	if len(toks) > 0 {
		last = toks[len(toks)-1]
	}
	if err := emit(toks[start:], last); err != nil {
		return nil, err
	}
	return out, nil
}

// parseSelector parses one complex selector.
func parseSelector(name, src string, toks []*scanner.Token) (Selector, error) {
	toks = trimSpace(toks)
	var sel Selector
	pendingSpace := false
	lastIsCombinator := func() bool {
		return len(sel) > 0 && sel[len(sel)-1].Kind == Combinator
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]

		if isSpace(t) {
			pendingSpace = true
			continue
		}
		if t.Type == scanner.TokenChar && strings.Contains(">+~", t.Value) {
			if lastIsCombinator() {
				return nil, selectorError(name, src, t, "two combinators in a row")
			}
			sel = append(sel, Component{Kind: Combinator, Value: t.Value})
			pendingSpace = false
			continue
		}
		if t.Type == scanner.TokenIncludes {
			// "~=" only appears inside attribute selectors
			return nil, selectorError(name, src, t, "unexpected "+quote(t.Value))
		}

		if pendingSpace && len(sel) > 0 && !lastIsCombinator() {
			sel = append(sel, Component{Kind: Combinator, Value: " "})
		}
		pendingSpace = false

		switch {
		case t.Type == scanner.TokenIdent:
			sel = append(sel, Component{Kind: Type, Value: t.Value})

		case isChar(t, "*"):
			sel = append(sel, Component{Kind: Universal, Value: "*"})

		case isChar(t, "&"):
			sel = append(sel, Component{Kind: Nesting, Value: "&"})

		case t.Type == scanner.TokenHash:
			sel = append(sel, Component{Kind: ID, Value: t.Value})

		case isChar(t, "."):
			if i+1 >= len(toks) || toks[i+1].Type != scanner.TokenIdent {
				return nil, selectorError(name, src, t, "expected class name after '.'")
			}
			i++
			sel = append(sel, Component{Kind: Class, Value: "." + toks[i].Value})

		case isChar(t, "["):
			end := matching(toks, i)
			if end < 0 {
				return nil, selectorError(name, src, t, "unclosed attribute selector")
			}
			sel = append(sel, Component{Kind: Attribute, Value: raw(toks[i : end+1])})
			i = end

		case isChar(t, ":"):
			c, next, err := parsePseudo(name, src, toks, i)
			if err != nil {
				return nil, err
			}
			sel = append(sel, c)
			i = next

		default:
			return nil, selectorError(name, src, t, "unexpected "+quote(t.Value))
		}
	}

	if lastIsCombinator() {
		return nil, selectorError(name, src, toks[len(toks)-1], "selector ends with a combinator")
	}
	return sel, nil
}

// parsePseudo parses a pseudo-class, pseudo-element or :global(...) starting
// at the ':' token at i. It returns the index of the last consumed token.
func parsePseudo(name, src string, toks []*scanner.Token, i int) (Component, int, error) {
	colon := toks[i]
	prefix := ":"
	kind := PseudoClass
	if i+1 < len(toks) && isChar(toks[i+1], ":") {
		prefix = "::"
		kind = PseudoElement
		i++
	}
	if i+1 >= len(toks) {
		return Component{}, 0, selectorError(name, src, colon, "expected pseudo-class name")
	}
	i++
	t := toks[i]
	switch t.Type {
	case scanner.TokenIdent:
		return Component{Kind: kind, Value: prefix + t.Value}, i, nil

	case scanner.TokenFunction:
		end := matching(toks, i)
		if end < 0 {
			return Component{}, 0, selectorError(name, src, t, "unclosed "+quote(t.Value))
		}
		if kind == PseudoClass && strings.EqualFold(t.Value, "global(") {
			inner, err := parseSelector(name, src, toks[i+1:end])
			if err != nil {
				return Component{}, 0, err
			}
			if len(inner) == 0 {
				return Component{}, 0, selectorError(name, src, t, "empty :global()")
			}
			return Component{Kind: Global, Inner: inner}, end, nil
		}
		return Component{Kind: kind, Value: prefix + raw(toks[i:end+1])}, end, nil
	}
	return Component{}, 0, selectorError(name, src, t, "expected pseudo-class name")
}

// matching returns the index of the token closing the bracket or function
// opened at i, or -1.
func matching(toks []*scanner.Token, i int) int {
	depth := 0
	for j := i; j < len(toks); j++ {
		depth += depthDelta(toks[j])
		if depth == 0 {
			return j
		}
	}
	return -1
}

func selectorError(name, src string, at *scanner.Token, detail string) error {
	err := errors.New("E011").WithDetail(detail)
	if at != nil {
		err.WithSource(name, src, at.Line, at.Column)
	}
	return err
}
