package stylesheet

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"

	"github.com/vango-dev/soar/internal/errors"
)

// Block is the body of a style fragment or of a rule: declarations plus
// nested rules, in source order per kind.
type Block struct {
	Decls []*css.Declaration
	Rules []*Rule
}

// Empty reports whether the block contributes nothing.
func (b *Block) Empty() bool {
	return b == nil || (len(b.Decls) == 0 && len(b.Rules) == 0)
}

// Rule is a qualified rule, a block at-rule or an at-rule statement.
type Rule struct {
	// Selectors is set for qualified rules.
	Selectors []Selector

	// AtName is the lowercased at-keyword ("@media"); Prelude is the full
	// at-rule prelude as written.
	AtName  string
	Prelude string

	// Body holds the parsed contents. Nil for statements and verbatim
	// at-rules.
	Body *Block

	// Verbatim holds the contents of at-rules whose bodies are not made of
	// selectors (@keyframes, @font-face, ...).
	Verbatim string

	// Statement marks body-less at-rules such as @import.
	Statement bool
}

// verbatimAtRules have bodies that must not be scoped.
var verbatimAtRules = map[string]bool{
	"@keyframes":           true,
	"@-webkit-keyframes":   true,
	"@font-face":           true,
	"@page":                true,
	"@property":            true,
	"@counter-style":       true,
	"@font-feature-values": true,
	"@view-transition":     true,
}

// ParseBlock parses style source: declarations, nested rules and at-rules.
// The name is used in error locations.
func ParseBlock(name, src string) (*Block, error) {
	toks, err := tokenize(name, src)
	if err != nil {
		return nil, err
	}
	p := &blockParser{name: name, src: src, toks: toks}
	return p.block(false)
}

type blockParser struct {
	name string
	src  string
	toks []*scanner.Token
	pos  int
}

func (p *blockParser) block(nested bool) (*Block, error) {
	b := &Block{}
	var buf []*scanner.Token
	depth := 0

	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		if depth == 0 && t.Type == scanner.TokenChar {
			switch t.Value {
			case ";":
				p.pos++
				if err := p.flush(b, buf, t); err != nil {
					return nil, err
				}
				buf = nil
				continue
			case "{":
				p.pos++
				rule, err := p.rule(buf, t)
				if err != nil {
					return nil, err
				}
				b.Rules = append(b.Rules, rule)
				buf = nil
				continue
			case "}":
				if !nested {
					return nil, p.errorAt(t, "unexpected '}'")
				}
				p.pos++
				if err := p.flush(b, buf, t); err != nil {
					return nil, err
				}
				return b, nil
			}
		}
		depth += depthDelta(t)
		if depth < 0 {
			return nil, p.errorAt(t, "unbalanced "+quote(t.Value))
		}
		buf = append(buf, t)
		p.pos++
	}

	if nested {
		return nil, p.errorAt(p.last(), "unclosed block")
	}
	if err := p.flush(b, buf, p.last()); err != nil {
		return nil, err
	}
	return b, nil
}

// flush turns the pending tokens into a declaration or an at-rule
// statement.
func (p *blockParser) flush(b *Block, buf []*scanner.Token, at *scanner.Token) error {
	buf = trimSpace(buf)
	if len(buf) == 0 {
		return nil
	}
	if buf[0].Type == scanner.TokenAtKeyword {
		b.Rules = append(b.Rules, &Rule{
			AtName:    strings.ToLower(buf[0].Value),
			Prelude:   raw(buf),
			Statement: true,
		})
		return nil
	}
	text := raw(buf)
	decls, err := parser.ParseDeclarations(text + ";")
	if err != nil {
		return p.errorAt(buf[0], "invalid declaration "+quote(text)).Wrap(err)
	}
	if len(decls) != 1 || decls[0].Property == "" || decls[0].Value == "" {
		return p.errorAt(buf[0], "invalid declaration "+quote(text))
	}
	b.Decls = append(b.Decls, decls[0])
	return nil
}

// rule parses the rule whose prelude is buf; the opening brace has been
// consumed.
func (p *blockParser) rule(buf []*scanner.Token, brace *scanner.Token) (*Rule, error) {
	prelude := trimSpace(buf)
	if len(prelude) == 0 {
		return nil, p.errorAt(brace, "block without a selector")
	}

	if prelude[0].Type == scanner.TokenAtKeyword {
		r := &Rule{
			AtName:  strings.ToLower(prelude[0].Value),
			Prelude: raw(prelude),
		}
		if verbatimAtRules[r.AtName] {
			body, err := p.verbatim(brace)
			if err != nil {
				return nil, err
			}
			r.Verbatim = body
			return r, nil
		}
		body, err := p.block(true)
		if err != nil {
			return nil, err
		}
		r.Body = body
		return r, nil
	}

	selectors, err := parseSelectorList(p.name, p.src, prelude)
	if err != nil {
		return nil, err
	}
	body, err := p.block(true)
	if err != nil {
		return nil, err
	}
	return &Rule{Selectors: selectors, Body: body}, nil
}

// verbatim collects raw text up to the brace closing the current block.
func (p *blockParser) verbatim(open *scanner.Token) (string, error) {
	var b strings.Builder
	depth := 1
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		p.pos++
		switch {
		case isChar(t, "{"):
			depth++
		case isChar(t, "}"):
			depth--
			if depth == 0 {
				return strings.TrimSpace(b.String()), nil
			}
		}
		if t.Type != scanner.TokenComment {
			b.WriteString(t.Value)
		}
	}
	return "", p.errorAt(open, "unclosed block")
}

func (p *blockParser) last() *scanner.Token {
	if len(p.toks) == 0 {
		return nil
	}
	return p.toks[len(p.toks)-1]
}

func (p *blockParser) errorAt(at *scanner.Token, detail string) *errors.SoarError {
	err := errors.New("E010").WithDetail(detail)
	if at != nil {
		err.WithSource(p.name, p.src, at.Line, at.Column)
	}
	return err
}
