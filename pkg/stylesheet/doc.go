// Package stylesheet compiles component style blocks into one scoped
// stylesheet.
//
// Every element rendered inside a styled subtree carries a scope attribute
// (scope="3fa9c1" by default). Compiling a fragment rewrites each selector
// so that it also requires that attribute:
//
//	.card > h2     →  [scope="3fa9c1"].card > h2[scope="3fa9c1"]
//	:global(p) a   →  p a[scope="3fa9c1"]
//
// Declarations written outside any rule apply to the styled element
// itself, and & at the top level of a fragment refers to it too. CSS
// nesting is preserved in the output and lowered by the Esbuild
// transformer for the configured browser targets.
package stylesheet
