package stylesheet

import (
	"io"
	"log/slog"
	"strings"

	"github.com/aymerick/douceur/css"

	"github.com/vango-dev/soar/internal/errors"
)

// Fragment is one style block discovered during a render pass.
type Fragment struct {
	// Scope is the id carried by the elements of the styled subtree. It is
	// empty for global fragments.
	Scope string

	// Source is the raw CSS text.
	Source string

	// Roots are the tag names of the first elements created inside the
	// scope boundary. Bare declarations apply to them.
	Roots []string

	// Global fragments are emitted without scoping.
	Global bool
}

// Name identifies the fragment in error messages.
func (f Fragment) Name() string {
	if f.Global {
		return "style:global"
	}
	return "style:" + f.Scope
}

// Compiler turns collected fragments into a single stylesheet.
type Compiler struct {
	// Attr is the scope marker attribute. Defaults to DefaultScopeAttr.
	Attr string

	// Transformer post-processes the compiled text. Nil means Passthrough.
	Transformer Transformer

	Logger *slog.Logger
}

// NewCompiler returns a compiler with default settings.
func NewCompiler() *Compiler {
	return &Compiler{
		Attr:        DefaultScopeAttr,
		Transformer: Passthrough{},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Compile rewrites every fragment and concatenates the result in input
// order. Fragments with no content contribute nothing. The output is fully
// determined by the input.
func (c *Compiler) Compile(fragments []Fragment) (string, error) {
	var b strings.Builder
	for _, f := range fragments {
		if err := c.compile(&b, f); err != nil {
			return "", err
		}
	}
	if b.Len() == 0 {
		return "", nil
	}

	t := c.Transformer
	if t == nil {
		t = Passthrough{}
	}
	out, err := t.Transform(b.String())
	if err != nil {
		return "", err
	}
	c.logger().Debug("stylesheet compiled",
		"fragments", len(fragments),
		"bytes", len(out),
	)
	return out, nil
}

// CompileFragment rewrites a single fragment without transforming it.
func (c *Compiler) CompileFragment(f Fragment) (string, error) {
	var b strings.Builder
	if err := c.compile(&b, f); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (c *Compiler) compile(b *strings.Builder, f Fragment) error {
	if strings.TrimSpace(f.Source) == "" {
		return nil
	}
	name := f.Name()
	block, err := ParseBlock(name, f.Source)
	if err != nil {
		return err
	}
	if block.Empty() {
		return nil
	}

	if f.Global {
		if len(block.Decls) > 0 {
			return errors.New("E010").
				WithDetail("declaration " + quote(block.Decls[0].Property) + " outside a rule in global style")
		}
		e := &emitter{b: b, rewrite: Unscoped}
		e.rules(block.Rules, 0)
		return nil
	}

	attr := c.attr()
	subjects := c.subjects(f)
	e := &emitter{
		b: b,
		rewrite: func(sel Selector) Selector {
			return Scope(sel, attr, f.Scope)
		},
	}
	e.top(block, subjects, 0)
	return nil
}

// subjects are the selectors standing for the styled element itself.
func (c *Compiler) subjects(f Fragment) []Selector {
	marker := Marker(c.attr(), f.Scope)
	if len(f.Roots) == 0 {
		return []Selector{{marker}}
	}
	seen := make(map[string]bool, len(f.Roots))
	var out []Selector
	for _, tag := range f.Roots {
		tag = strings.ToLower(tag)
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, Selector{{Kind: Type, Value: tag}, marker})
	}
	return out
}

func (c *Compiler) attr() string {
	if c.Attr == "" {
		return DefaultScopeAttr
	}
	return c.Attr
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// emitter writes rules back out as CSS text, with nesting preserved.
type emitter struct {
	b       *strings.Builder
	rewrite func(Selector) Selector
}

// top writes the outermost block of a scoped fragment, where declarations
// and & refer to the styled element. At-rule bodies at this level are
// treated the same way.
func (e *emitter) top(block *Block, subjects []Selector, depth int) {
	if len(block.Decls) > 0 {
		e.open(depth, joinSelectors(subjects))
		e.decls(block.Decls, depth+1)
		e.close(depth)
	}
	for _, r := range block.Rules {
		switch {
		case r.Selectors != nil:
			var sels []Selector
			for _, sel := range r.Selectors {
				scoped := e.rewrite(sel)
				if !HasNesting(scoped) {
					sels = append(sels, scoped)
					continue
				}
				for _, s := range subjects {
					sels = append(sels, Resolve(scoped, s))
				}
			}
			e.open(depth, joinSelectors(sels))
			e.body(r.Body, depth+1)
			e.close(depth)
		case r.Body != nil:
			e.open(depth, r.Prelude)
			e.top(r.Body, subjects, depth+1)
			e.close(depth)
		default:
			e.rule(r, depth)
		}
	}
}

func (e *emitter) rules(rules []*Rule, depth int) {
	for _, r := range rules {
		e.rule(r, depth)
	}
}

func (e *emitter) rule(r *Rule, depth int) {
	switch {
	case r.Statement:
		e.indent(depth)
		e.b.WriteString(r.Prelude)
		e.b.WriteString(";\n")
	case r.Selectors != nil:
		sels := make([]Selector, len(r.Selectors))
		for i, sel := range r.Selectors {
			sels[i] = e.rewrite(sel)
		}
		e.open(depth, joinSelectors(sels))
		e.body(r.Body, depth+1)
		e.close(depth)
	case r.Body != nil:
		e.open(depth, r.Prelude)
		e.body(r.Body, depth+1)
		e.close(depth)
	default:
		e.open(depth, r.Prelude)
		if r.Verbatim != "" {
			e.indent(depth + 1)
			e.b.WriteString(r.Verbatim)
			e.b.WriteString("\n")
		}
		e.close(depth)
	}
}

func (e *emitter) body(block *Block, depth int) {
	e.decls(block.Decls, depth)
	e.rules(block.Rules, depth)
}

func (e *emitter) decls(decls []*css.Declaration, depth int) {
	for _, d := range decls {
		e.indent(depth)
		e.b.WriteString(Declaration(d))
		e.b.WriteString("\n")
	}
}

func (e *emitter) open(depth int, prelude string) {
	e.indent(depth)
	e.b.WriteString(prelude)
	e.b.WriteString(" {\n")
}

func (e *emitter) close(depth int) {
	e.indent(depth)
	e.b.WriteString("}\n")
}

func (e *emitter) indent(depth int) {
	for i := 0; i < depth; i++ {
		e.b.WriteString("  ")
	}
}

// Declaration formats a parsed declaration as "prop: value;".
func Declaration(d *css.Declaration) string {
	s := d.Property + ": " + d.Value
	if d.Important {
		s += " !important"
	}
	return s + ";"
}

func joinSelectors(sels []Selector) string {
	parts := make([]string, len(sels))
	for i, s := range sels {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
