package render

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/vango-dev/soar/pkg/vdom"
)

// booleanAttrs are attributes that are present or absent rather than
// carrying a value.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"ismap":           true,
	"itemscope":       true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"nomodule":        true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

// applyProps sets the node's props on el in sorted key order.
func applyProps(doc Document, el *html.Node, props vdom.Props) {
	if len(props) == 0 {
		return
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]

		// Skip internal props
		if strings.HasPrefix(key, "_") || key == vdom.ChildrenKey {
			continue
		}
		if value == nil || isFunc(value) {
			continue
		}

		switch key {
		case "style":
			doc.SetAttribute(el, "style", styleToString(value))
			continue
		case "class", "className":
			if key == "className" && props["class"] != nil {
				continue
			}
			doc.SetAttribute(el, "class", mergeClasses(props["class"], props["className"]))
			continue
		case "htmlFor":
			key = "for"
		}

		if b, ok := value.(bool); ok && booleanAttrs[key] {
			if b {
				doc.SetAttribute(el, key, "")
			}
			continue
		}
		doc.SetAttribute(el, key, attrToString(value))
	}
}

// isFunc reports whether v is a function value; handlers have no markup
// representation.
func isFunc(v any) bool {
	return reflect.TypeOf(v).Kind() == reflect.Func
}

// styleToString formats a style prop. Strings are used verbatim; maps
// become sorted "property: value;" declarations.
func styleToString(value any) string {
	var m map[string]any
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		m = v
	case vdom.Props:
		m = v
	case map[string]string:
		m = make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
	default:
		return attrToString(value)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := attrToString(m[k])
		if v == "" {
			continue
		}
		parts = append(parts, kebabCase(k)+": "+v+";")
	}
	return strings.Join(parts, " ")
}

// classToString joins a class token list with single spaces.
func classToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		tokens := make([]string, 0, len(v))
		for _, c := range v {
			if c = strings.TrimSpace(c); c != "" {
				tokens = append(tokens, c)
			}
		}
		return strings.Join(tokens, " ")
	case []any:
		tokens := make([]string, 0, len(v))
		for _, c := range v {
			if s := attrToString(c); s != "" {
				tokens = append(tokens, s)
			}
		}
		return strings.Join(tokens, " ")
	default:
		return attrToString(value)
	}
}

// mergeClasses joins the class and className props, in that order.
func mergeClasses(class, className any) string {
	var tokens []string
	for _, v := range []any{class, className} {
		if v == nil {
			continue
		}
		if s := classToString(v); s != "" {
			tokens = append(tokens, s)
		}
	}
	return strings.Join(tokens, " ")
}

// kebabCase converts a camelCase style property name. Custom properties
// and names that are already kebab-case are returned unchanged.
func kebabCase(name string) string {
	if strings.HasPrefix(name, "--") || strings.ToLower(name) == name {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 || isVendorPrefix(name) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isVendorPrefix(name string) bool {
	for _, p := range []string{"Webkit", "Moz", "Ms", "O"} {
		if strings.HasPrefix(name, p) && len(name) > len(p) && unicode.IsUpper(rune(name[len(p)])) {
			return true
		}
	}
	return false
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
