package render

import "github.com/vango-dev/soar/pkg/stylesheet"

// Fragment is a style block collected during a render pass.
type Fragment = stylesheet.Fragment

// Styles accumulates the style fragments of one render pass in discovery
// order. Each scope is recorded once; identical global blocks are recorded
// once as well.
type Styles struct {
	fragments []Fragment
	index     map[string]int

	// CSS is the compiled stylesheet, set once the pass completes.
	CSS string
}

// NewStyles returns an empty accumulator.
func NewStyles() *Styles {
	return &Styles{index: make(map[string]int)}
}

// Add records the style block for a scope. It reports whether the scope
// was new; a repeated scope leaves the accumulator unchanged.
func (s *Styles) Add(scope, source string) bool {
	if _, ok := s.index[scope]; ok {
		return false
	}
	s.index[scope] = len(s.fragments)
	s.fragments = append(s.fragments, Fragment{Scope: scope, Source: source})
	return true
}

// AddRoot records tag as one of the elements at the top of a scope.
func (s *Styles) AddRoot(scope, tag string) {
	i, ok := s.index[scope]
	if !ok {
		return
	}
	s.fragments[i].Roots = append(s.fragments[i].Roots, tag)
}

// AddGlobal records an unscoped style block.
func (s *Styles) AddGlobal(source string) bool {
	key := "\x00global:" + source
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.fragments)
	s.fragments = append(s.fragments, Fragment{Source: source, Global: true})
	return true
}

// Fragments returns the collected fragments in discovery order.
func (s *Styles) Fragments() []Fragment {
	out := make([]Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Scopes returns the scope ids in discovery order.
func (s *Styles) Scopes() []string {
	var out []string
	for _, f := range s.fragments {
		if !f.Global {
			out = append(out, f.Scope)
		}
	}
	return out
}

// Len returns the number of collected fragments.
func (s *Styles) Len() int {
	return len(s.fragments)
}
