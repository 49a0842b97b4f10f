// internal/builder/models.go
package builder

import (
	"folio/internal/config"
	"html/template"
)

// Page kinds understood by the layout template.
const (
	KindHome = "home"
	KindList = "list"
	KindPost = "post"
)

// PostSummary is the listing view of a post.
type PostSummary struct {
	Slug        string
	Title       string
	Path        string // site-relative link, e.g. "blog/my-post/"
	PublishedAt string // raw front matter value
	Date        string // display form
	Summary     string
	Image       string
}

// PageData is the struct passed to templates. Front matter is exposed
// verbatim through Params so templates can use freeform keys.
type PageData struct {
	Kind        string
	Content     template.HTML
	Title       string
	BaseHref    string
	Author      string
	Description string
	Site        config.SiteConfig
	Posts       []PostSummary
	Post        *PostSummary
	Params      map[string]string
}
