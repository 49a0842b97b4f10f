package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSiteConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "title: My Portfolio\nbaseurl: https://example.com/\n")
	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Title != "My Portfolio" {
		t.Fatalf("unexpected title %q", cfg.Title)
	}
	if cfg.BaseURL != "https://example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.ContentDir != "content/posts" || cfg.Extension != ".mdx" || cfg.BlogPath != "/blog" {
		t.Fatalf("unexpected content defaults %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Routes, []string{"", "/blog"}) {
		t.Fatalf("unexpected routes %v", cfg.Routes)
	}
	if cfg.HomePosts != 5 || cfg.Template != "simple" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadSiteConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
contentDir: posts
extension: .md
blogPath: writing/
routes: ["", "/writing", "/projects"]
homePosts: 3
`)
	cfg, err := LoadSiteConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ContentDir != "posts" || cfg.Extension != ".md" || cfg.BlogPath != "/writing" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Routes) != 3 || cfg.HomePosts != 3 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadSiteConfigErrors(t *testing.T) {
	cases := map[string]string{
		"bad extension": "extension: mdx\n",
		"relative base": "baseurl: example.com\n",
		"root blog":     "blogPath: /\n",
		"broken yaml":   "title: [unclosed\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadSiteConfig(writeConfig(t, content)); err == nil {
				t.Fatalf("expected error for %q", content)
			}
		})
	}

	_, err := LoadSiteConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "could not read config file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestWithinRebasesRelativeDirs(t *testing.T) {
	cfg := Defaults()
	cfg.StaticDir = filepath.Join(string(filepath.Separator), "srv", "static")
	got := cfg.Within("site")
	if got.ContentDir != filepath.Join("site", "content", "posts") {
		t.Fatalf("unexpected content dir %q", got.ContentDir)
	}
	if got.OutputDir != filepath.Join("site", "public") || got.TemplateDir != filepath.Join("site", "templates") {
		t.Fatalf("unexpected dirs %+v", got)
	}
	if got.StaticDir != cfg.StaticDir {
		t.Fatalf("absolute dir must be kept, got %q", got.StaticDir)
	}
	if cfg.ContentDir != "content/posts" {
		t.Fatalf("Within must not modify the receiver")
	}
}
