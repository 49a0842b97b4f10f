// cmd/folio/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/builder"
	"folio/internal/config"
	"folio/internal/posts"
	"folio/internal/scaffold"
	"folio/internal/server"
)

type appConfig struct {
	debug      bool
	port       int
	unsafe     bool
	configFile string
}

func main() {
	appCfg := appConfig{}
	flag.BoolVar(&appCfg.debug, "debug", false, "Enable debug mode for verbose output.")
	flag.IntVar(&appCfg.port, "port", 1313, "Port for the local development server.")
	flag.BoolVar(&appCfg.unsafe, "unsafe", false, "Disable HTML sanitization. Allows all raw HTML.")
	flag.StringVar(&appCfg.configFile, "config", "site.yaml", "Path to the site configuration file.")
	flag.Usage = printHelp
	flag.Parse()

	if err := run(appCfg, flag.Args(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func run(appCfg appConfig, args []string, out io.Writer) error {
	if len(args) == 0 {
		flag.Usage()
		return nil
	}

	opts := builder.BuildOptions{
		Unsafe: appCfg.unsafe,
		Debug:  appCfg.debug,
	}

	switch args[0] {
	case "gen":
		siteCfg, err := loadSiteConfig(appCfg.configFile)
		if err != nil {
			return err
		}
		opts.CleanDestination = true
		fmt.Fprintln(out, "--- Generating site from content ---")
		pageCount, err := runBuild(siteCfg, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Success! Generated %d pages.\n", pageCount)
		return nil

	case "serve":
		siteCfg, err := loadSiteConfig(appCfg.configFile)
		if err != nil {
			return err
		}
		return server.Run(server.Options{
			Port:       appCfg.port,
			Root:       siteCfg.OutputDir,
			WatchPaths: []string{siteCfg.ContentDir, siteCfg.TemplateDir, siteCfg.StaticDir, appCfg.configFile},
			Build: func(buildOpts builder.BuildOptions) error {
				// Reload the config so edits to site.yaml apply without a restart.
				cfg, err := loadSiteConfig(appCfg.configFile)
				if err != nil {
					return err
				}
				pageCount, err := runBuild(cfg, buildOpts)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "📄 Site: %d pages generated.\n", pageCount)
				return nil
			},
		}, opts)

	case "list":
		siteCfg, err := loadSiteConfig(appCfg.configFile)
		if err != nil {
			return err
		}
		return listPosts(newRepository(siteCfg), out, time.Now())

	case "show":
		if len(args) < 2 {
			return errors.New("usage: folio show <slug>")
		}
		siteCfg, err := loadSiteConfig(appCfg.configFile)
		if err != nil {
			return err
		}
		return showPost(newRepository(siteCfg), args[1], out)

	case "check":
		siteCfg, err := loadSiteConfig(appCfg.configFile)
		if err != nil {
			return err
		}
		return checkPosts(newRepository(siteCfg), out)

	case "new":
		if len(args) < 3 {
			flag.Usage()
			return nil
		}
		switch args[1] {
		case "site":
			return scaffold.CreateNewSite(args[2])
		case "post":
			siteCfg, err := loadSiteConfig(appCfg.configFile)
			if err != nil {
				return err
			}
			_, err = scaffold.CreateNewPost(siteCfg, strings.Join(args[2:], " "), time.Now())
			return err
		}
		return fmt.Errorf("unknown content type %q", args[1])

	default:
		flag.Usage()
	}

	return nil
}

func runBuild(siteCfg config.SiteConfig, opts builder.BuildOptions) (int, error) {
	tmpl, err := builder.LoadTemplates(siteCfg.TemplateDir, siteCfg.Template)
	if err != nil {
		return 0, fmt.Errorf("failed to load templates: %w", err)
	}
	pageCount, err := builder.BuildSite(siteCfg, newRepository(siteCfg), tmpl, opts)
	if err != nil {
		return 0, fmt.Errorf("site generation failed: %w", err)
	}
	return pageCount, nil
}

func listPosts(repo *posts.Repository, out io.Writer, now time.Time) error {
	list, err := repo.ListAll()
	if err != nil {
		return describeListingError(err)
	}
	if len(list) == 0 {
		fmt.Fprintf(out, "No posts in %s.\n", repo.Dir())
		return nil
	}
	for _, p := range list {
		fmt.Fprintf(out, "%-32s %s  %s\n", p.Slug, posts.FormatDate(p.Metadata.PublishedAt(), now, true), p.Metadata.Title())
	}
	return nil
}

func showPost(repo *posts.Repository, slug string, out io.Writer) error {
	p, err := repo.FindBySlug(slug)
	if errors.Is(err, posts.ErrNotFound) {
		return fmt.Errorf("no post with slug %q in %s", slug, repo.Dir())
	}
	if err != nil {
		return describeListingError(err)
	}
	fmt.Fprint(out, posts.FormatFrontMatter(p.Metadata, p.Content))
	return nil
}

func checkPosts(repo *posts.Repository, out io.Writer) error {
	warnings, err := repo.Check()
	if err != nil {
		return describeListingError(err)
	}
	if len(warnings) > 0 {
		return fmt.Errorf("%d post(s) have metadata problems", len(warnings))
	}
	fmt.Fprintln(out, "✅ All posts have valid metadata.")
	return nil
}

func describeListingError(err error) error {
	var fsErr *posts.FilesystemError
	if errors.As(err, &fsErr) && errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("content directory %s does not exist", fsErr.Path)
	}
	return err
}

func newRepository(siteCfg config.SiteConfig) *posts.Repository {
	return posts.NewRepository(posts.Options{Dir: siteCfg.ContentDir, Ext: siteCfg.Extension})
}

// loadSiteConfig loads the config and resolves its directories relative to
// the config file's location.
func loadSiteConfig(path string) (config.SiteConfig, error) {
	siteCfg, err := config.LoadSiteConfig(path)
	if err != nil {
		return config.SiteConfig{}, fmt.Errorf("failed to load site config: %w", err)
	}
	return siteCfg.Within(filepath.Dir(path)), nil
}

func printHelp() {
	fmt.Println("folio - a small generator for a portfolio and blog")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  folio [global-flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  gen                Generate the site from content")
	fmt.Println("  serve              Run a local dev server with auto-rebuild")
	fmt.Println("  list               List posts, newest first")
	fmt.Println("  show <slug>        Print a single post")
	fmt.Println("  check              Report posts with missing or invalid dates")
	fmt.Println("  new site <name>    Create a new site scaffold")
	fmt.Println("  new post <title>   Create a new post dated today")
	fmt.Println()
	fmt.Println("Global Flags:")
	flag.PrintDefaults()
}
