package stylesheet

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/vango-dev/soar/internal/errors"
)

// Transformer post-processes a compiled stylesheet.
type Transformer interface {
	Transform(css string) (string, error)
}

// Passthrough returns its input unchanged. Useful when debugging selector
// rewriting.
type Passthrough struct{}

func (Passthrough) Transform(css string) (string, error) { return css, nil }

// DefaultTargets are the browsers the stylesheet is lowered for.
var DefaultTargets = []string{"chrome109", "edge120", "firefox115", "safari15.6", "ios15.6"}

var engineNames = map[string]api.EngineName{
	"chrome":  api.EngineChrome,
	"edge":    api.EngineEdge,
	"firefox": api.EngineFirefox,
	"ie":      api.EngineIE,
	"ios":     api.EngineIOS,
	"opera":   api.EngineOpera,
	"safari":  api.EngineSafari,
}

// Esbuild minifies and lowers CSS (nesting included) for a set of browser
// engines.
type Esbuild struct {
	engines []api.Engine
	minify  bool
}

// NewEsbuild returns a transformer for targets such as "chrome109" or
// "safari15.6". Nil targets mean DefaultTargets.
func NewEsbuild(targets []string, minify bool) (*Esbuild, error) {
	if targets == nil {
		targets = DefaultTargets
	}
	engines, err := ParseTargets(targets)
	if err != nil {
		return nil, err
	}
	return &Esbuild{engines: engines, minify: minify}, nil
}

// ParseTargets converts "name+version" strings into esbuild engines.
func ParseTargets(targets []string) ([]api.Engine, error) {
	engines := make([]api.Engine, 0, len(targets))
	for _, t := range targets {
		t = strings.ToLower(strings.TrimSpace(t))
		i := strings.IndexAny(t, "0123456789")
		if i <= 0 {
			return nil, errors.New("E122").
				WithDetail(fmt.Sprintf("css target %q needs an engine name and a version", t)).
				WithSuggestion("Use targets like \"chrome109\" or \"safari15.6\".")
		}
		name, ok := engineNames[t[:i]]
		if !ok {
			return nil, errors.New("E122").
				WithDetail(fmt.Sprintf("unknown css target engine %q", t[:i]))
		}
		engines = append(engines, api.Engine{Name: name, Version: t[i:]})
	}
	return engines, nil
}

func (e *Esbuild) Transform(css string) (string, error) {
	result := api.Transform(css, api.TransformOptions{
		Loader:           api.LoaderCSS,
		Engines:          e.engines,
		MinifyWhitespace: e.minify,
		MinifySyntax:     e.minify,
		LogLevel:         api.LogLevelSilent,
		Sourcefile:       "style.css",
	})
	if len(result.Errors) > 0 {
		msg := result.Errors[0]
		err := errors.New("E012").WithDetail(msg.Text)
		if msg.Location != nil {
			err.WithSource(msg.Location.File, css, msg.Location.Line, msg.Location.Column+1)
		}
		return "", err
	}
	return string(result.Code), nil
}
