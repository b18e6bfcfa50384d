package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "render error",
			code:    "E001",
			wantMsg: "Component render failed",
			wantCat: CategoryRender,
		},
		{
			name:    "style error",
			code:    "E010",
			wantMsg: "Style block parse failed",
			wantCat: CategoryStyle,
		},
		{
			name:    "config error",
			code:    "E141",
			wantMsg: "Configuration file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "E999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategorySite, "page %q not found", "/about")
	if err.Message != `page "/about" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Category != CategorySite {
		t.Errorf("Category = %q, want %q", err.Category, CategorySite)
	}
}

func TestSoarError_Error(t *testing.T) {
	err := New("E001")
	if got, want := err.Error(), "E001: Component render failed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("E001").Wrap(stderrors.New("boom"))
	if got, want := wrapped.Error(), "E001: Component render failed: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &SoarError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestUnwrapAndHasCode(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New("E201").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !HasCode(err, "E201") {
		t.Error("HasCode(E201) = false, want true")
	}
	outer := New("E001").Wrap(New("E010"))
	if !HasCode(outer, "E010") {
		t.Error("HasCode should walk the wrap chain")
	}
	if HasCode(cause, "E201") {
		t.Error("HasCode on a plain error should be false")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("E012")
	if FromError(orig, "E001") != orig {
		t.Error("FromError should return an existing SoarError unchanged")
	}
	wrapped := FromError(stderrors.New("x"), "E020")
	if wrapped.Code != "E020" || wrapped.Wrapped == nil {
		t.Errorf("FromError = %+v", wrapped)
	}
}

func TestWithSource(t *testing.T) {
	source := "a {\n  color: red;\n  b {\n}"
	err := New("E010").WithSource("style:abc", source, 3, 3)

	if err.Location.String() != "style:abc:3:3" {
		t.Errorf("Location = %q", err.Location.String())
	}
	if len(err.Context) != 4 {
		t.Fatalf("Context len = %d, want 4 (%q)", len(err.Context), err.Context)
	}
	if err.Context[0] != "a {" {
		t.Errorf("Context[0] = %q", err.Context[0])
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E010").
		WithSource("style:abc", "a {\n  color red\n}", 2, 3).
		WithSuggestion("add a colon").
		Wrap(stderrors.New("missing ':'"))
	out := err.Format()

	for _, want := range []string{
		"ERROR E010: Style block parse failed",
		"   1 │ a {",
		"style:abc:2:3",
		"→    2 │   color red",
		"│   ^",
		"Cause: missing ':'",
		"Hint: add a colon",
		"Learn more: https://soar.dev/docs/errors/E010",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatWithoutLocation(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("E200").WithDetail("no page at /x").Format()
	if !strings.HasPrefix(out, "\nERROR E200: Page not found\n") {
		t.Errorf("Format() header wrong:\n%s", out)
	}
	if strings.Contains(out, "→") || strings.Contains(out, "Cause:") {
		t.Errorf("Format() should skip empty sections:\n%s", out)
	}
	if !strings.Contains(out, "  no page at /x\n") {
		t.Errorf("Format() missing detail:\n%s", out)
	}
}
