package stylesheet

import (
	"strings"

	"github.com/gorilla/css/scanner"

	"github.com/vango-dev/soar/internal/errors"
)

// tokenize splits CSS source into scanner tokens. Whitespace and comments
// are kept so raw text can be reassembled.
func tokenize(name, src string) ([]*scanner.Token, error) {
	s := scanner.New(src)
	var out []*scanner.Token
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF:
			return out, nil
		case scanner.TokenError:
			return nil, errors.New("E010").
				WithSource(name, src, tok.Line, tok.Column).
				WithDetail("unreadable token " + quote(tok.Value))
		case scanner.TokenBOM:
			continue
		}
		out = append(out, tok)
	}
}

func isChar(tok *scanner.Token, c string) bool {
	return tok.Type == scanner.TokenChar && tok.Value == c
}

func isSpace(tok *scanner.Token) bool {
	return tok.Type == scanner.TokenS || tok.Type == scanner.TokenComment
}

// raw reassembles tokens, dropping comments.
func raw(toks []*scanner.Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Type == scanner.TokenComment {
			continue
		}
		b.WriteString(t.Value)
	}
	return b.String()
}

// trimSpace drops leading and trailing whitespace/comment tokens.
func trimSpace(toks []*scanner.Token) []*scanner.Token {
	start, end := 0, len(toks)
	for start < end && isSpace(toks[start]) {
		start++
	}
	for end > start && isSpace(toks[end-1]) {
		end--
	}
	return toks[start:end]
}

// depthDelta reports how a token changes (), [] nesting depth.
func depthDelta(tok *scanner.Token) int {
	switch {
	case tok.Type == scanner.TokenFunction:
		return 1
	case isChar(tok, "("), isChar(tok, "["):
		return 1
	case isChar(tok, ")"), isChar(tok, "]"):
		return -1
	}
	return 0
}

func quote(s string) string {
	return "\"" + s + "\""
}
