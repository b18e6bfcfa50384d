package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/soar/internal/errors"
	"github.com/vango-dev/soar/pkg/stylesheet"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "soar.json"

	// YAMLConfigFileName is the name of the YAML configuration file. It is
	// used when no soar.json exists.
	YAMLConfigFileName = "soar.yaml"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"

	// DefaultHashLength is the default number of hex characters in a
	// scope id.
	DefaultHashLength = 6
)

// Config represents the complete soar.json configuration.
type Config struct {
	// Name is the site name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Render contains renderer settings.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty"`

	// CSS contains stylesheet compilation settings.
	CSS CSSConfig `json:"css,omitempty" yaml:"css,omitempty"`

	// Build contains static build settings.
	Build BuildConfig `json:"build,omitempty" yaml:"build,omitempty"`

	// Dev contains development server settings.
	Dev DevConfig `json:"dev,omitempty" yaml:"dev,omitempty"`

	// Publish contains object storage upload settings.
	Publish PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RenderConfig contains renderer settings.
type RenderConfig struct {
	// ScopeAttr is the attribute that marks scoped elements.
	ScopeAttr string `json:"scopeAttr,omitempty" yaml:"scopeAttr,omitempty"`

	// HashLength is the number of hex characters in a scope id (1-16).
	HashLength int `json:"hashLength,omitempty" yaml:"hashLength,omitempty"`
}

// CSSConfig contains stylesheet compilation settings.
type CSSConfig struct {
	// Targets are the browsers the stylesheet is lowered for, such as
	// "chrome109" or "safari15.6".
	Targets []string `json:"targets,omitempty" yaml:"targets,omitempty"`

	// Minify enables stylesheet minification.
	Minify bool `json:"minify" yaml:"minify"`
}

// BuildConfig contains static build settings.
type BuildConfig struct {
	// Output is the output directory for builds.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Clean removes the output directory before building.
	Clean bool `json:"clean,omitempty" yaml:"clean,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
}

// PublishConfig contains object storage upload settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region is the bucket region.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the storage endpoint, for S3-compatible services.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Render: RenderConfig{
			ScopeAttr:  stylesheet.DefaultScopeAttr,
			HashLength: DefaultHashLength,
		},
		CSS: CSSConfig{
			Targets: append([]string(nil), stylesheet.DefaultTargets...),
			Minify:  true,
		},
		Build: BuildConfig{
			Output: DefaultOutput,
		},
		Dev: DevConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// soar.json first, then soar.yaml.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		yamlPath := filepath.Join(dir, YAMLConfigFileName)
		if _, yerr := os.Stat(yamlPath); yerr == nil {
			path = yamlPath
		}
	}
	return LoadFile(path)
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create soar.json at the site root")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML or JSON
// depending on the extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Render.ScopeAttr == "" {
		c.Render.ScopeAttr = stylesheet.DefaultScopeAttr
	}
	if c.Render.HashLength == 0 {
		c.Render.HashLength = DefaultHashLength
	}
	if len(c.CSS.Targets) == 0 {
		c.CSS.Targets = append([]string(nil), stylesheet.DefaultTargets...)
	}
	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Render.HashLength < 1 || c.Render.HashLength > 16 {
		return errors.New("E122").
			WithDetail("render.hashLength must be between 1 and 16")
	}
	if !validAttrName(c.Render.ScopeAttr) {
		return errors.New("E122").
			WithDetail("render.scopeAttr " + strconv.Quote(c.Render.ScopeAttr) + " is not a valid attribute name")
	}
	if _, err := stylesheet.ParseTargets(c.CSS.Targets); err != nil {
		return err
	}
	return nil
}

// ValidatePublish checks the settings needed to upload a build.
func (c *Config) ValidatePublish() error {
	if c.Publish.Bucket == "" {
		return errors.New("E122").
			WithDetail("publish.bucket is required").
			WithSuggestion("Set publish.bucket in " + ConfigFileName + " or pass --bucket")
	}
	return nil
}

// validAttrName accepts lowercase attribute names made of letters, digits,
// '-' and '_', starting with a letter.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return net.JoinHostPort(c.Dev.Host, strconv.Itoa(c.Dev.Port))
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// OutputPath returns the path to the build output directory.
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Build.Output) {
		return c.Build.Output
	}
	return filepath.Join(c.Dir(), c.Build.Output)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing soar.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Create soar.json at the site root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest parent holding a config file. Without one, the
// defaults are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.HasCode(err, "E141") {
			return New(), nil
		}
		return nil, err
	}

	return Load(root)
}
