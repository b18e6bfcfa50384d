package vdom

import (
	"reflect"
	"testing"
)

func TestCreateElementArgs(t *testing.T) {
	node := Div(
		nil,
		false,
		ID("main"),
		[]Attr{Data("x", "1"), Role("region")},
		Props{"lang": "en", "children": "from props"},
		"text",
		Span(),
		[]*VNode{P(), nil},
		[]any{"a", "b"},
		7,
	)

	if node.Tag != "div" || node.Kind != KindElement {
		t.Fatalf("got tag=%q kind=%v", node.Tag, node.Kind)
	}
	for key, want := range map[string]any{"id": "main", "data-x": "1", "role": "region", "lang": "en"} {
		if node.Props[key] != want {
			t.Errorf("Props[%q] = %v, want %v", key, node.Props[key], want)
		}
	}

	kinds := make([]VKind, len(node.Children))
	for i, c := range node.Children {
		kinds[i] = c.Kind
	}
	want := []VKind{KindText, KindText, KindElement, KindFragment, KindFragment, KindUnknown}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("child kinds = %v, want %v", kinds, want)
	}
	if got := len(node.Children[3].Children); got != 1 {
		t.Errorf("nil entries should be dropped from []*VNode, got %d children", got)
	}
}

func TestClassTokensAccumulate(t *testing.T) {
	node := Div(Class("a", "b"), Class("c"))
	got, ok := node.Props["class"].([]string)
	if !ok {
		t.Fatalf("class = %T, want []string", node.Props["class"])
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("class = %v", got)
	}

	node = Div(Attr_("className", "x y"))
	if node.Props["class"] != "x y" {
		t.Errorf("className should be stored as class, got %v", node.Props)
	}
}

func TestIsVoidElement(t *testing.T) {
	for _, tag := range []string{"br", "img", "input", "meta"} {
		if !IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = false", tag)
		}
	}
	if IsVoidElement("div") {
		t.Error("div is not a void element")
	}
}

func TestCustomElement(t *testing.T) {
	node := CustomElement("my-widget", ID("w"))
	if node.Tag != "my-widget" || node.Props["id"] != "w" {
		t.Errorf("got %+v", node)
	}
}
