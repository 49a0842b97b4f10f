// Package sitemap turns the post listing into sitemap.xml and robots.txt.
package sitemap

import (
	"fmt"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/posts"
	"folio/internal/util"
)

// Entry is one URL in the sitemap.
type Entry struct {
	URL          string
	LastModified string
}

// Entries lists the static routes followed by one entry per post. Routes get
// today's date; posts carry their publishedAt value exactly as written.
func Entries(site config.SiteConfig, list []posts.Post, now time.Time) []Entry {
	today := now.Format("2006-01-02")
	entries := make([]Entry, 0, len(site.Routes)+len(list))
	for _, route := range site.Routes {
		entries = append(entries, Entry{URL: absoluteURL(site.BaseURL, route), LastModified: today})
	}
	for _, p := range list {
		entries = append(entries, Entry{
			URL:          PostURL(site, p.Slug),
			LastModified: p.Metadata.PublishedAt(),
		})
	}
	return entries
}

// PostURL is the public address of a post.
func PostURL(site config.SiteConfig, slug string) string {
	return absoluteURL(site.BaseURL, site.BlogPath) + "/" + slug
}

func absoluteURL(base, route string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = "http://localhost"
	}
	route = strings.TrimSpace(route)
	if route == "" || route == "/" {
		return base
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}

// Render writes entries as a sitemaps.org urlset document.
func Render(entries []Entry) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", util.EscapeXML(entry.URL)))
		if entry.LastModified != "" {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", util.EscapeXML(entry.LastModified)))
		}
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

// Robots allows everything and points crawlers at the sitemap.
func Robots(baseURL string) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n\n")
	builder.WriteString(fmt.Sprintf("Sitemap: %s\n", absoluteURL(baseURL, "/sitemap.xml")))
	return builder.String()
}
