// internal/scaffold/scaffold.go
package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"folio/internal/config"
	"folio/internal/posts"
)

// CreateNewSite writes a starter site into the directory name.
func CreateNewSite(name string) error {
	fmt.Println("Scaffolding new site in:", name)
	mkdir := func(path string) error { return os.MkdirAll(filepath.Join(name, path), 0755) }
	writeFile := func(path, content string) error {
		return os.WriteFile(filepath.Join(name, path), []byte(content), 0644)
	}
	dirs := []string{"content/posts", "static/css", "static/images", "templates/simple"}
	for _, dir := range dirs {
		if err := mkdir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"site.yaml":                     siteYamlContent,
		"content/posts/hello-world.mdx": helloWorldContent,
		"static/css/style.css":          staticCssContent,
		"templates/simple/layout.html":  templateLayoutHtmlContent,
		"templates/simple/header.html":  templateHeaderHtmlContent,
		"templates/simple/footer.html":  templateFooterHtmlContent,
	}
	for path, content := range files {
		if err := writeFile(path, content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", path, err)
		}
	}
	fmt.Println("Site scaffolded. You can now:")
	fmt.Println("  cd", name)
	fmt.Println("  folio new post \"My first post\"")
	fmt.Println("  folio serve")
	return nil
}

// CreateNewPost writes an empty post titled title into the content directory
// and returns its path. Existing files are never overwritten.
func CreateNewPost(site config.SiteConfig, title string, now time.Time) (string, error) {
	if strings.ContainsAny(title, "\r\n") {
		return "", fmt.Errorf("title %q must fit on one line", title)
	}
	name, err := slug.Normalize(title)
	if err != nil {
		return "", fmt.Errorf("could not derive slug from %q: %w", title, err)
	}
	if name == "" {
		return "", fmt.Errorf("title %q produces an empty slug", title)
	}

	if err := os.MkdirAll(site.ContentDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(site.ContentDir, name+site.Extension)

	meta := posts.Metadata{
		"title":       title,
		"publishedAt": now.Format("2006-01-02"),
		"summary":     "",
	}
	content := posts.FormatFrontMatter(meta, "\nWrite something meaningful here.\n")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("post %s already exists", path)
		}
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return "", err
	}

	fmt.Println("Created:", path)
	return path, nil
}

// Constants for default file contents
const siteYamlContent = `title: My Portfolio
author: Your Name
baseurl: https://example.com
description: Notes on software, finance and everything in between.
template: simple
contentDir: content/posts
extension: .mdx
blogPath: /blog
`

const helloWorldContent = `---
title: Hello, World
publishedAt: 2024-01-01
summary: The first post on this site.
---

Welcome! Posts live in ` + "`content/posts`" + ` and start with a front matter block.
`

const staticCssContent = `body {
  font-family: sans-serif;
  max-width: 700px;
  margin: 2em auto;
  padding: 0 1em;
  line-height: 1.6;
  color: #222;
  background: #fdfdfd;
}
header nav a { margin-right: 1em; color: #444; }
.post-list { list-style: none; padding: 0; }
.post-list li { margin-bottom: 1em; }
.post-date { color: #777; font-size: 0.9em; }
main { margin-bottom: 3em; }
footer { text-align: center; font-size: 0.9em; color: #555; }
`

const templateLayoutHtmlContent = `{{ define "main" }}
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{ .Title }} | {{ .Site.Title }}</title>
  <link rel="stylesheet" href="{{ .BaseHref }}css/style.css">
  <link rel="alternate" type="application/rss+xml" href="{{ .BaseHref }}rss.xml">
  <meta name="description" content="{{ .Description }}">
</head>
<body>
  {{ template "header" . }}
  <main>
  {{ if eq .Kind "post" }}
    <h1>{{ .Title }}</h1>
    <p class="post-date">{{ .Post.Date }}</p>
    {{ .Content }}
  {{ else }}
    <h1>{{ .Title }}</h1>
    <ul class="post-list">
    {{ range .Posts }}
      <li>
        <a href="{{ $.BaseHref }}{{ .Path }}">{{ .Title }}</a>
        <span class="post-date">{{ .Date }}</span>
        {{ if .Summary }}<p>{{ .Summary }}</p>{{ end }}
      </li>
    {{ end }}
    </ul>
  {{ end }}
  </main>
  {{ template "footer" . }}
</body>
</html>
{{ end }}`

const templateHeaderHtmlContent = `{{ define "header" }}
<header>
  <nav>
    <a href="{{ .BaseHref }}index.html">home</a>
    <a href="{{ .BaseHref }}{{ slice .Site.BlogPath 1 }}/index.html">blog</a>
    <a href="{{ .BaseHref }}rss.xml">rss</a>
  </nav>
</header>
{{ end }}`

const templateFooterHtmlContent = `{{ define "footer" }}
<footer>
  <div class="copyright">
    &copy; {{ .Author }}
  </div>
</footer>
{{ end }}`
