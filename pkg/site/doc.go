// Package site turns a set of page components into a static website.
//
// Pages are registered by url, either one at a time or as a generator that
// maps slugs under a directory to components:
//
//	s, err := site.New(cfg, site.WithStatic("static"))
//	s.Page("/", Home)
//	s.Generator("/posts", map[string]soar.Component{
//	    "hello-world": Post("Hello, world"),
//	})
//
// Every page receives two props: "url", its cleaned url, and "generator",
// set to "Soar". Pages render through the site's middleware chain both in
// Build, which writes <output>/<url>/index.html per page, and in Handler,
// which renders pages on request for development.
//
// Command wires the site into a CLI with build, serve, publish and version
// subcommands:
//
//	func main() {
//	    site.Execute(s)
//	}
package site
