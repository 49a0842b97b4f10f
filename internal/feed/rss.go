// Package feed renders the post listing as an RSS 2.0 document.
package feed

import (
	"fmt"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/posts"
	"folio/internal/sitemap"
	"folio/internal/util"
)

// RSS builds the feed in the order the posts are given. Items whose
// publishedAt does not parse are emitted without a pubDate.
func RSS(site config.SiteConfig, list []posts.Post) string {
	link := sitemap.PostURL(site, "")
	link = strings.TrimSuffix(link, "/")

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", util.EscapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", util.EscapeXML(link)))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", util.EscapeXML(site.Description)))
	for _, p := range list {
		url := sitemap.PostURL(site, p.Slug)
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", util.EscapeXML(p.DisplayTitle())))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", util.EscapeXML(url)))
		builder.WriteString(fmt.Sprintf("      <guid>%s</guid>\n", util.EscapeXML(url)))
		if summary := p.Metadata.Summary(); summary != "" {
			builder.WriteString(fmt.Sprintf("      <description>%s</description>\n", util.EscapeXML(summary)))
		}
		if t, err := posts.ParseDate(p.Metadata.PublishedAt()); err == nil {
			builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", t.UTC().Format(time.RFC1123Z)))
		}
		builder.WriteString("    </item>\n")
	}
	builder.WriteString("  </channel>\n")
	builder.WriteString(`</rss>` + "\n")
	return builder.String()
}
