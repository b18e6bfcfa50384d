package stylesheet

import "testing"

func TestScope(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"div", `div[scope="x"]`},
		{"*", `[scope="x"]`},
		{"*.a", `[scope="x"].a`},
		{".a", `[scope="x"].a`},
		{"#main", `[scope="x"]#main`},
		{`[href^="http"]`, `[scope="x"][href^="http"]`},
		{"div span", `div[scope="x"] span[scope="x"]`},
		{"a:hover", `a[scope="x"]:hover`},
		{"input::placeholder", `input[scope="x"]::placeholder`},
		{":not(.a)", `[scope="x"]:not(.a)`},
		{"ul > li + li", `ul[scope="x"] > li[scope="x"] + li[scope="x"]`},
		{"h1 ~ p", `h1[scope="x"] ~ p[scope="x"]`},
		{":global(p)", "p"},
		{":global(.dark) .btn", `.dark [scope="x"].btn`},
		{"a:global(.x)", "a.x"},
		{".btn :global(svg)", `[scope="x"].btn svg`},
		{":global(body) &", "body &"},
		{"&.active", "&.active"},
		{"& > span", `& > span[scope="x"]`},
		{"> span", `> span[scope="x"]`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sels, err := ParseSelectorList(tt.in)
			if err != nil {
				t.Fatalf("ParseSelectorList(%q) error: %v", tt.in, err)
			}
			if len(sels) != 1 {
				t.Fatalf("got %d selectors, want 1", len(sels))
			}
			if got := Scope(sels[0], "scope", "x").String(); got != tt.want {
				t.Errorf("Scope(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestScopeSubjectAlwaysConstrained(t *testing.T) {
	inputs := []string{"div", "a b", "a > b", ":global(.x) b", "a:hover", "p::after"}
	for _, in := range inputs {
		sels, err := ParseSelectorList(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		scoped := Scope(sels[0], "scope", "x")

		// the last compound must hold the marker
		i := len(scoped) - 1
		for i > 0 && scoped[i-1].Kind != Combinator {
			i--
		}
		marker := Marker("scope", "x")
		found := false
		for _, c := range scoped[i:] {
			if c.Kind == marker.Kind && c.Value == marker.Value {
				found = true
			}
		}
		if !found {
			t.Errorf("Scope(%q) = %q: subject not scoped", in, scoped)
		}
	}
}

func TestScopeRoundTrip(t *testing.T) {
	sels, err := ParseSelectorList("div")
	if err != nil {
		t.Fatal(err)
	}
	out := Scope(sels[0], "scope", "abc123").String()
	if out != `div[scope="abc123"]` {
		t.Fatalf("got %q", out)
	}

	again, err := ParseSelectorList(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if got := again[0].String(); got != out {
		t.Errorf("reparsed = %q, want %q", got, out)
	}
	if len(again[0]) != 2 || again[0][1].Kind != Attribute {
		t.Errorf("reparsed components = %#v", again[0])
	}
}

func TestScopeCustomAttr(t *testing.T) {
	sels, _ := ParseSelectorList("p")
	if got := Scope(sels[0], "data-s", "7").String(); got != `p[data-s="7"]` {
		t.Errorf("got %q", got)
	}
}

func TestResolve(t *testing.T) {
	sels, err := ParseSelectorList("&:hover > span")
	if err != nil {
		t.Fatal(err)
	}
	subject := Selector{{Kind: Type, Value: "button"}, Marker("scope", "x")}
	got := Resolve(Scope(sels[0], "scope", "x"), subject).String()
	if want := `button[scope="x"]:hover > span[scope="x"]`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if HasNesting(Resolve(sels[0], subject)) {
		t.Error("Resolve should remove every &")
	}
}

func TestUnscoped(t *testing.T) {
	sels, _ := ParseSelectorList(":global(html) body:global(.dark)")
	if got := Unscoped(sels[0]).String(); got != "html body.dark" {
		t.Errorf("got %q", got)
	}
}
