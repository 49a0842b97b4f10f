package posts

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Post is a single article: its slug, parsed front matter and raw body markup.
type Post struct {
	Slug     string
	Metadata Metadata
	Content  string
}

// DisplayTitle is the title to show for the post. Without a title in the
// front matter it is derived from the slug: "my-first-post" becomes
// "My First Post".
func (p Post) DisplayTitle() string {
	if title := strings.TrimSpace(p.Metadata.Title()); title != "" {
		return title
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(slugWords.Replace(p.Slug))
}

var slugWords = strings.NewReplacer("-", " ", "_", " ")

// Warning describes a metadata problem that did not stop the post from
// being listed.
type Warning struct {
	Slug    string
	Field   string
	Value   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("post %q: %s %q: %s", w.Slug, w.Field, w.Value, w.Message)
}

// Assemble parses each raw file into a Post, keeping the input order.
func Assemble(files []RawFile) []Post {
	out := make([]Post, 0, len(files))
	for _, f := range files {
		meta, body := ParseFrontMatter(f.Text)
		out = append(out, Post{Slug: f.Slug, Metadata: meta, Content: body})
	}
	return out
}

// SortByPublishedAt orders posts newest first by comparing publishedAt as a
// plain string. Dates are not parsed, so a malformed value lands wherever
// string comparison puts it. Equal dates are ordered by slug.
func SortByPublishedAt(list []Post) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Metadata.PublishedAt(), list[j].Metadata.PublishedAt()
		if a != b {
			return a > b
		}
		return list[i].Slug < list[j].Slug
	})
}

// Validate checks the publishedAt field of every post.
func Validate(list []Post) []Warning {
	var warnings []Warning
	for _, p := range list {
		raw, ok := p.Metadata["publishedAt"]
		switch {
		case !ok || raw == "":
			warnings = append(warnings, Warning{Slug: p.Slug, Field: "publishedAt", Message: "missing"})
		default:
			if _, err := ParseDate(raw); err != nil {
				warnings = append(warnings, Warning{Slug: p.Slug, Field: "publishedAt", Value: raw, Message: "not a valid YYYY-MM-DD date"})
			}
		}
	}
	return warnings
}

// Options configures a Repository.
type Options struct {
	Dir    string
	Ext    string
	Logger *log.Logger
}

// Repository serves posts straight from the content directory. Every call
// rescans the directory; nothing is cached between calls.
type Repository struct {
	scanner *Scanner
	logger  *log.Logger
}

// NewRepository creates a Repository. A nil logger falls back to log.Default().
func NewRepository(opts Options) *Repository {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{
		scanner: NewScanner(opts.Dir, opts.Ext),
		logger:  logger,
	}
}

// Dir returns the content directory the repository reads from.
func (r *Repository) Dir() string {
	return r.scanner.Dir
}

// ListAll returns every post, newest first. Metadata problems are logged
// and do not fail the listing.
func (r *Repository) ListAll() ([]Post, error) {
	list, _, err := r.load()
	return list, err
}

// Check loads all posts and returns the metadata warnings found.
func (r *Repository) Check() ([]Warning, error) {
	_, warnings, err := r.load()
	return warnings, err
}

// FindBySlug returns the post with the given slug. Unknown slugs produce an
// error wrapping ErrNotFound.
func (r *Repository) FindBySlug(slug string) (Post, error) {
	list, err := r.ListAll()
	if err != nil {
		return Post{}, err
	}
	for _, p := range list {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, fmt.Errorf("slug %q: %w", slug, ErrNotFound)
}

func (r *Repository) load() ([]Post, []Warning, error) {
	files, err := r.scanner.Scan()
	if err != nil {
		return nil, nil, err
	}
	list := Assemble(files)
	warnings := Validate(list)
	for _, w := range warnings {
		r.logger.Printf("warning: %s", w)
	}
	SortByPublishedAt(list)
	return list, warnings, nil
}
