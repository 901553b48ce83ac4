package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".assetmirror"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .assetmirror configuration file.
// Every field is optional; zero values leave the flag/default value in
// place.
type File struct {
	// KnownHosts replaces the built-in CDN host allow-list.
	KnownHosts []string `yaml:"knownHosts,omitempty"`

	// LazyAttrs replaces the default lazy-load data attribute list.
	LazyAttrs []string `yaml:"lazyAttrs,omitempty"`

	// BaseURL is the remote base location for resolving relative
	// references.
	BaseURL string `yaml:"baseURL,omitempty"`

	// UserAgent overrides the download User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are custom HTTP headers included in download requests.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Dirs overrides the asset-category directories.
	Dirs DirsConfig `yaml:"dirs,omitempty"`

	// Tags overrides the expected local asset tag targets.
	Tags TagsConfig `yaml:"tags,omitempty"`
}

// DirsConfig holds the asset-category directory overrides.
type DirsConfig struct {
	Images   string `yaml:"images,omitempty"`
	CSS      string `yaml:"css,omitempty"`
	JS       string `yaml:"js,omitempty"`
	FramerJS string `yaml:"framerJS,omitempty"`
	Fonts    string `yaml:"fonts,omitempty"`
}

// TagsConfig holds the expected tag target overrides.
type TagsConfig struct {
	Stylesheet   string `yaml:"stylesheet,omitempty"`
	EventsScript string `yaml:"eventsScript,omitempty"`
	ModuleScript string `yaml:"moduleScript,omitempty"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply merges the file's non-zero values into the configuration.
// File values override defaults but not explicit CLI flags; the caller
// applies flags after this.
func (cf *File) Apply(cfg *Config) {
	if len(cf.KnownHosts) > 0 {
		cfg.KnownHosts = cf.KnownHosts
	}
	if len(cf.LazyAttrs) > 0 {
		cfg.LazyAttrs = cf.LazyAttrs
	}
	if cf.BaseURL != "" {
		cfg.BaseURL = cf.BaseURL
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if len(cf.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		for k, v := range cf.Headers {
			cfg.Headers[k] = v
		}
	}
	if cf.Dirs.Images != "" {
		cfg.Layout.ImagesDir = cf.Dirs.Images
	}
	if cf.Dirs.CSS != "" {
		cfg.Layout.CSSDir = cf.Dirs.CSS
	}
	if cf.Dirs.JS != "" {
		cfg.Layout.JSDir = cf.Dirs.JS
	}
	if cf.Dirs.FramerJS != "" {
		cfg.Layout.FramerJSDir = cf.Dirs.FramerJS
	}
	if cf.Dirs.Fonts != "" {
		cfg.Layout.FontsDir = cf.Dirs.Fonts
	}
	if cf.Tags.Stylesheet != "" {
		cfg.Tags.Stylesheet = cf.Tags.Stylesheet
	}
	if cf.Tags.EventsScript != "" {
		cfg.Tags.EventsScript = cf.Tags.EventsScript
	}
	if cf.Tags.ModuleScript != "" {
		cfg.Tags.ModuleScript = cf.Tags.ModuleScript
	}
}

// FindConfigFile searches for the configuration file:
//  1. an explicit path, used directly when it exists
//  2. .assetmirror in the current directory
//  3. .assetmirror in the user's home directory
//
// Returns the path if found, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
