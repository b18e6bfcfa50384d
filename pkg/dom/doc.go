// Package dom provides the output document a render pass writes into.
//
// A Document wraps a golang.org/x/net/html node tree seeded with an empty
// html/head/body skeleton. The renderer only needs element and text
// creation, attribute mutation, child appending, lookup of the three root
// singletons and serialization.
package dom
