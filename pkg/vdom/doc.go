// Package vdom provides the virtual node tree rendered by Soar.
//
// A tree describes UI intent: elements, text, fragments (ordered lists of
// children) and components whose expansion is deferred until render time.
// Components may block, fail, and return further trees.
//
// # Core Types
//
// VNode is the fundamental building block. Kind is a closed discriminator
// (Element, Text, Fragment, Component, plus Unknown for values of an
// unrecognized shape). Props holds attributes; children are carried
// separately and never appear in Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P(Text("Content")),
//	)
//
// or from a type and props, the way a JSX front-end does:
//
//	H("a", Props{"href": "/"}, "home")
//	H(Card, Props{"title": "Hello"}, P("body"))
//
// # Styles
//
// Styled attaches raw CSS to a node. The renderer derives a scope id from a
// content hash of that CSS, marks every element in the subtree with it, and
// rewrites the CSS selectors so they only match inside the subtree:
//
//	Span("hello").Styled("color: blue;")
//
// GlobalStyled attaches CSS emitted as-is, and Isolate stops a subtree from
// inheriting its ancestors' scope.
package vdom
