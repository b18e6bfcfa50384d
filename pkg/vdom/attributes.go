package vdom

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attr_ creates an arbitrary attribute.
func Attr_(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute as a list of tokens. Tokens from repeated
// Class attributes accumulate.
func Class(classes ...string) Attr { return attr("class", classes) }

// StyleAttr sets the inline style attribute verbatim.
func StyleAttr(style string) Attr { return attr("style", style) }

// StyleProps sets the inline style from individual properties. Keys may be
// camelCase ("backgroundColor") or kebab-case ("background-color").
func StyleProps(props map[string]any) Attr { return attr("style", props) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// Link and media attributes

func Href(url string) Attr      { return attr("href", url) }
func Src(url string) Attr       { return attr("src", url) }
func Alt(text string) Attr      { return attr("alt", text) }
func Rel(rel string) Attr       { return attr("rel", rel) }
func Target(t string) Attr      { return attr("target", t) }
func Width(w int) Attr          { return attr("width", w) }
func Height(h int) Attr         { return attr("height", h) }
func TitleAttr(s string) Attr   { return attr("title", s) }
func Lang(lang string) Attr     { return attr("lang", lang) }
func Charset(cs string) Attr    { return attr("charset", cs) }
func Content(c string) Attr     { return attr("content", c) }
func NameAttr(name string) Attr { return attr("name", name) }

// Form attributes

func Type(t string) Attr        { return attr("type", t) }
func Value(v any) Attr          { return attr("value", v) }
func Placeholder(p string) Attr { return attr("placeholder", p) }
func Disabled(d bool) Attr      { return attr("disabled", d) }
