// internal/builder/builder.go
package builder

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/feed"
	"folio/internal/posts"
	"folio/internal/sitemap"
	"folio/internal/util"
)

type BuildOptions struct {
	CleanDestination bool
	Unsafe           bool
	Debug            bool

	// Now is used for relative dates and sitemap route dates. Zero means time.Now().
	Now time.Time
}

// Lister is the part of the post repository the builder needs.
type Lister interface {
	ListAll() ([]posts.Post, error)
}

// BuildSite renders the home page, the blog index, one page per post and the
// sitemap, robots.txt and RSS documents, then copies static assets. It
// returns the number of HTML pages written.
func BuildSite(site config.SiteConfig, repo Lister, tmpl *template.Template, opts BuildOptions) (int, error) {
	outputDir := site.OutputDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}

	if opts.CleanDestination {
		fmt.Println("Cleaning destination directory...")
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	list, err := repo.ListAll()
	if err != nil {
		return 0, fmt.Errorf("failed to list posts: %w", err)
	}

	blogDir := strings.Trim(site.BlogPath, "/")
	summaries := make([]PostSummary, 0, len(list))
	for _, p := range list {
		summaries = append(summaries, summarize(p, blogDir, now))
	}

	pages := 0
	write := func(relPath string, data PageData) error {
		data.Site = site
		data.BaseHref = util.ComputeBaseHref(filepath.FromSlash(relPath))
		if data.Author == "" {
			data.Author = site.Author
		}
		if data.Description == "" {
			data.Description = site.Description
		}
		outputPath := filepath.Join(outputDir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			return err
		}
		if err := renderPage(tmpl, outputPath, data); err != nil {
			return fmt.Errorf("failed to render page %s: %w", relPath, err)
		}
		if opts.Debug {
			log.Printf("wrote %s", outputPath)
		}
		pages++
		return nil
	}

	home := summaries
	if len(home) > site.HomePosts {
		home = home[:site.HomePosts]
	}
	if err := write("index.html", PageData{Kind: KindHome, Title: site.Title, Posts: home}); err != nil {
		return 0, err
	}
	if err := write(path.Join(blogDir, "index.html"), PageData{Kind: KindList, Title: "Blog", Posts: summaries}); err != nil {
		return 0, err
	}

	md := newMarkdown(site.Extension)
	for i, p := range list {
		htmlOut, err := renderBody(md, p.Content, opts)
		if err != nil {
			return 0, fmt.Errorf("failed to process content for %s: %w", p.Slug, err)
		}
		summary := summaries[i]
		data := PageData{
			Kind:        KindPost,
			Content:     template.HTML(htmlOut),
			Title:       summary.Title,
			Description: summary.Summary,
			Author:      p.Metadata.Get("author"),
			Post:        &summary,
			Params:      p.Metadata,
		}
		if err := write(path.Join(blogDir, p.Slug, "index.html"), data); err != nil {
			return 0, err
		}
	}

	documents := map[string]string{
		"sitemap.xml": sitemap.Render(sitemap.Entries(site, list, now)),
		"robots.txt":  sitemap.Robots(site.BaseURL),
		"rss.xml":     feed.RSS(site, list),
	}
	for name, content := range documents {
		if err := os.WriteFile(filepath.Join(outputDir, name), []byte(content), 0644); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := copyStaticAssets(site.StaticDir, outputDir); err != nil {
		return 0, err
	}
	return pages, nil
}

func summarize(p posts.Post, blogDir string, now time.Time) PostSummary {
	return PostSummary{
		Slug:        p.Slug,
		Title:       p.DisplayTitle(),
		Path:        path.Join(blogDir, p.Slug) + "/",
		PublishedAt: p.Metadata.PublishedAt(),
		Date:        posts.FormatDate(p.Metadata.PublishedAt(), now, false),
		Summary:     p.Metadata.Summary(),
		Image:       p.Metadata.Image(),
	}
}

// copyStaticAssets copies files from the static directory to the output
// directory. A missing static directory is not an error.
func copyStaticAssets(staticDir, outputDir string) error {
	allowedExts := map[string]bool{
		".css": true, ".js": true, ".txt": true, ".svg": true, ".ico": true,
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
		".woff": true, ".woff2": true,
	}
	if _, err := os.Stat(staticDir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !allowedExts[strings.ToLower(filepath.Ext(info.Name()))] {
			return nil
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(outputDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := os.Create(dest)
		if err != nil {
			return err
		}
		defer dst.Close()
		_, err = io.Copy(dst, src)
		return err
	})
}

// renderPage executes the Go template and writes the output to a file.
func renderPage(tmpl *template.Template, outPath string, data PageData) error {
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	// "main" is the name of the template defined within our layout file.
	return tmpl.ExecuteTemplate(outFile, "main", data)
}

// LoadTemplates parses the layout, header and footer of a theme directory.
func LoadTemplates(templateDir, templateName string) (*template.Template, error) {
	dir := filepath.Join(templateDir, templateName)
	tmpl, err := template.ParseFiles(
		filepath.Join(dir, "layout.html"),
		filepath.Join(dir, "header.html"),
		filepath.Join(dir, "footer.html"),
	)
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}
