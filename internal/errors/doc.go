// Package errors provides structured, actionable error messages for Soar.
//
// Every failure surfaced by a render pass, the stylesheet compiler, the
// configuration loader or the site layer is a *SoarError carrying a code
// from the registry, a category, and optionally the underlying cause.
//
// # Error Categories
//
//   - render: component failures, missing document roots, digest failures
//   - style: style block and selector parse errors, CSS transform errors
//   - config: soar.json / soar.yaml problems
//   - site: page lookup, build output and publish failures
//
// # Usage
//
//	err := errors.New("E010").
//	    WithSource("style:s1a2b3c", source, 3, 7).
//	    WithSuggestion("Close the block opened on line 2")
//
//	fmt.Println(err.Format())
package errors
