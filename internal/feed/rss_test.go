package feed

import (
	"strings"
	"testing"

	"folio/internal/config"
	"folio/internal/posts"
)

func TestRSS(t *testing.T) {
	site := config.Defaults()
	site.Title = "Notes & Essays"
	site.Description = "Writing"
	site.BaseURL = "https://example.com"

	list := []posts.Post{
		{Slug: "amm", Metadata: posts.Metadata{"title": "AMMs", "publishedAt": "2024-10-23", "summary": "Pools <3"}},
		{Slug: "broken", Metadata: posts.Metadata{"title": "Broken", "publishedAt": "yesterday"}},
	}
	out := RSS(site, list)

	for _, want := range []string{
		"<title>Notes &amp; Essays</title>",
		"<link>https://example.com/blog</link>",
		"<link>https://example.com/blog/amm</link>",
		"<description>Pools &lt;3</description>",
		"<pubDate>Wed, 23 Oct 2024 00:00:00 +0000</pubDate>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in feed:\n%s", want, out)
		}
	}
	if strings.Count(out, "<pubDate>") != 1 {
		t.Errorf("unparseable dates must not produce a pubDate:\n%s", out)
	}
	if strings.Index(out, "blog/amm") > strings.Index(out, "blog/broken") {
		t.Errorf("feed must keep the given order")
	}
}

func TestRSSUntitledPostUsesSlugTitle(t *testing.T) {
	site := config.Defaults()
	site.BaseURL = "https://example.com"

	out := RSS(site, []posts.Post{{Slug: "my-first-post", Metadata: posts.Metadata{"publishedAt": "2024-10-23"}}})
	if !strings.Contains(out, "<title>My First Post</title>") {
		t.Fatalf("expected a title derived from the slug:\n%s", out)
	}
	if strings.Contains(out, "<title></title>") {
		t.Fatalf("feed has an empty item title:\n%s", out)
	}
}
