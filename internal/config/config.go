// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds the configuration from the site.yaml file.
// The `yaml` tags are used by the parser to map file keys to struct fields.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	BaseURL     string `yaml:"baseurl"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`

	// Where posts live and how they are recognized.
	ContentDir string `yaml:"contentDir"`
	Extension  string `yaml:"extension"`

	BlogPath    string   `yaml:"blogPath"`
	OutputDir   string   `yaml:"outputDir"`
	StaticDir   string   `yaml:"staticDir"`
	TemplateDir string   `yaml:"templateDir"`
	Routes      []string `yaml:"routes"`
	HomePosts   int      `yaml:"homePosts"`
}

// Defaults returns a config with every optional field filled in.
func Defaults() SiteConfig {
	cfg := SiteConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadSiteConfig reads site.yaml and fills in defaults for anything left out.
func LoadSiteConfig(path string) (SiteConfig, error) {
	cfg := SiteConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("could not parse config file %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *SiteConfig) applyDefaults() {
	if c.Template == "" {
		c.Template = "simple"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.Extension == "" {
		c.Extension = ".mdx"
	}
	if c.BlogPath == "" {
		c.BlogPath = "/blog"
	}
	c.BlogPath = "/" + strings.Trim(c.BlogPath, "/")
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.TemplateDir == "" {
		c.TemplateDir = "templates"
	}
	if c.Routes == nil {
		c.Routes = []string{"", c.BlogPath}
	}
	if c.HomePosts <= 0 {
		c.HomePosts = 5
	}
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// Validate reports settings that would produce broken output.
func (c SiteConfig) Validate() error {
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	if c.BlogPath == "/" {
		return fmt.Errorf("blogPath must not be the site root")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("baseurl %q: %w", c.BaseURL, err)
		}
		if !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("baseurl %q must be an absolute URL", c.BaseURL)
		}
	}
	return nil
}

// Within returns a copy of the config whose relative directories are
// resolved against root, typically the directory holding site.yaml.
func (c SiteConfig) Within(root string) SiteConfig {
	rebase := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(root, dir)
	}
	c.ContentDir = rebase(c.ContentDir)
	c.OutputDir = rebase(c.OutputDir)
	c.StaticDir = rebase(c.StaticDir)
	c.TemplateDir = rebase(c.TemplateDir)
	return c
}
