package stylesheet

import (
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/soar/internal/errors"
)

func TestParseTargets(t *testing.T) {
	engines, err := ParseTargets([]string{"chrome109", " Safari15.6 ", "ios16"})
	if err != nil {
		t.Fatal(err)
	}
	want := []api.Engine{
		{Name: api.EngineChrome, Version: "109"},
		{Name: api.EngineSafari, Version: "15.6"},
		{Name: api.EngineIOS, Version: "16"},
	}
	if len(engines) != len(want) {
		t.Fatalf("got %d engines, want %d", len(engines), len(want))
	}
	for i := range want {
		if engines[i] != want[i] {
			t.Errorf("engine %d = %+v, want %+v", i, engines[i], want[i])
		}
	}
}

func TestParseTargetsErrors(t *testing.T) {
	for _, in := range []string{"chrome", "109", "netscape4", ""} {
		_, err := ParseTargets([]string{in})
		if !errors.HasCode(err, "E122") {
			t.Errorf("ParseTargets(%q) error = %v, want E122", in, err)
		}
	}
}

func TestEsbuildMinifies(t *testing.T) {
	tr, err := NewEsbuild(nil, true)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tr.Transform("span[scope=\"abc\"] {\n  color: red;\n}\n")
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if !strings.Contains(out, "color:red") {
		t.Errorf("output not minified: %q", out)
	}
	if strings.Contains(out, "\n  ") {
		t.Errorf("output still indented: %q", out)
	}
}

func TestEsbuildLowersNesting(t *testing.T) {
	tr, err := NewEsbuild([]string{"chrome100"}, true)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tr.Transform("div {\n  &:hover {\n    color: red;\n  }\n}\n")
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if strings.Contains(out, "&") {
		t.Errorf("nesting not lowered: %q", out)
	}
	if !strings.Contains(out, "div:hover") {
		t.Errorf("output = %q", out)
	}
}

func TestPassthrough(t *testing.T) {
	in := "a {\n  color: red;\n}\n"
	out, err := Passthrough{}.Transform(in)
	if err != nil || out != in {
		t.Errorf("Passthrough = %q, %v", out, err)
	}
}
