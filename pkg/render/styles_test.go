package render

import "testing"

func TestStylesAdd(t *testing.T) {
	s := NewStyles()
	if !s.Add("a1", "color: red;") {
		t.Error("first Add should report a new scope")
	}
	if s.Add("a1", "color: red;") {
		t.Error("repeated Add should be a no-op")
	}
	s.Add("b2", "color: blue;")
	s.AddRoot("a1", "div")
	s.AddRoot("missing", "p")

	frags := s.Fragments()
	if len(frags) != 2 {
		t.Fatalf("fragments = %d, want 2", len(frags))
	}
	if frags[0].Scope != "a1" || frags[1].Scope != "b2" {
		t.Errorf("order = %q, %q", frags[0].Scope, frags[1].Scope)
	}
	if len(frags[0].Roots) != 1 || frags[0].Roots[0] != "div" {
		t.Errorf("roots = %v", frags[0].Roots)
	}

	frags[0].Scope = "mutated"
	if s.Fragments()[0].Scope != "a1" {
		t.Error("Fragments should return a copy")
	}
}

func TestStylesGlobal(t *testing.T) {
	s := NewStyles()
	s.Add("a1", "x: y;")
	s.AddGlobal("body { margin: 0 }")
	s.AddGlobal("body { margin: 0 }")
	s.AddGlobal("html { color: red }")

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if got := s.Scopes(); len(got) != 1 || got[0] != "a1" {
		t.Errorf("Scopes() = %v", got)
	}
	if !s.Fragments()[1].Global {
		t.Error("fragment 1 should be global")
	}
}
