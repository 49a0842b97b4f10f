// internal/server/server.go
package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"folio/internal/builder"
)

// Options configures the preview server.
type Options struct {
	Port  int
	Build func(builder.BuildOptions) error

	// Root is served over HTTP; it should be the build output directory.
	Root string

	// WatchPaths are directories or files whose changes trigger a rebuild.
	WatchPaths []string
}

// Run builds the site once, then serves it and rebuilds on every change to
// the watched paths, telling connected browsers to reload.
func Run(srv Options, opts builder.BuildOptions) error {
	opts.CleanDestination = true
	if err := srv.Build(opts); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	hub := newReloadHub()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchPaths(watcher, srv.WatchPaths); err != nil {
		return err
	}

	opts.CleanDestination = false
	go watchForChanges(watcher, hub, srv.Build, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.Port),
		Handler: newMux(hub, srv.Root),
	}
	errc := make(chan error, 1)
	go func() { errc <- httpServer.ListenAndServe() }()
	fmt.Printf("Serving site on http://localhost%s\n", httpServer.Addr)
	fmt.Println("Press Ctrl+C to stop")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	fmt.Println("\nShutting down...")
	hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// reloadPath is where browsers open the live-reload socket. It is unlikely
// to collide with a generated page.
const reloadPath = "/_folio/reload"

func newMux(hub *reloadHub, root string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(reloadPath, hub)
	mux.Handle("/", injectReload(http.FileServer(http.Dir(root))))
	return mux
}

// watchPaths registers every directory under the given paths. Files are
// watched through their parent directory so editors that save by renaming
// still trigger events. Missing paths are skipped.
func watchPaths(watcher *fsnotify.Watcher, paths []string) error {
	watched := make(map[string]bool)
	addWatch := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] {
			return
		}
		if err := watcher.Add(dir); err != nil {
			log.Printf("Error adding watch on %s: %v", dir, err)
			return
		}
		fmt.Printf("Watching directory: %s\n", dir)
		watched[dir] = true
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not stat path %s: %w", path, err)
		}
		if !info.IsDir() {
			addWatch(filepath.Dir(path))
			continue
		}
		if err := filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				addWatch(walkPath)
			}
			return nil
		}); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
	}
	return nil
}

func watchForChanges(watcher *fsnotify.Watcher, hub *reloadHub, buildFunc func(builder.BuildOptions) error, opts builder.BuildOptions) {
	var lastBuildTime time.Time
	const debounceDuration = 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) || time.Since(lastBuildTime) <= debounceDuration {
				continue
			}
			// Let editors finish writing before reading the content back.
			time.Sleep(100 * time.Millisecond)

			log.Printf("Change detected in %s, rebuilding...", event.Name)
			if err := buildFunc(opts); err != nil {
				log.Printf("Error rebuilding site: %v", err)
			} else {
				log.Printf("Site rebuilt, reloading %d browser(s).", hub.broadcast())
			}
			lastBuildTime = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// injectReload buffers every response and, when it turns out to be an HTML
// page served with 200, splices the reload snippet into it. Caching is
// disabled so a reload always fetches the rebuilt file.
func injectReload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")

		page := &pageBuffer{header: h}
		next.ServeHTTP(page, r)

		body := page.body.Bytes()
		if page.code() == http.StatusOK && strings.HasPrefix(h.Get("Content-Type"), "text/html") {
			body = withReloadScript(body)
			h.Set("Content-Length", strconv.Itoa(len(body)))
		}
		w.WriteHeader(page.code())
		if r.Method != http.MethodHead {
			w.Write(body)
		}
	})
}

// pageBuffer is a ResponseWriter that holds the body back. Headers go
// straight to the real writer's header map.
type pageBuffer struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (p *pageBuffer) Header() http.Header { return p.header }

func (p *pageBuffer) WriteHeader(status int) {
	if p.status == 0 {
		p.status = status
	}
}

func (p *pageBuffer) Write(b []byte) (int, error) {
	p.WriteHeader(http.StatusOK)
	return p.body.Write(b)
}

func (p *pageBuffer) code() int {
	if p.status == 0 {
		return http.StatusOK
	}
	return p.status
}

// withReloadScript places the snippet before the last closing body tag, or
// at the end of pages that have none.
func withReloadScript(page []byte) []byte {
	tag := []byte("</body>")
	at := len(page)
	for i := len(page) - len(tag); i >= 0; i-- {
		if bytes.EqualFold(page[i:i+len(tag)], tag) {
			at = i
			break
		}
	}
	out := make([]byte, 0, len(page)+len(reloadSnippet))
	out = append(out, page[:at]...)
	out = append(out, reloadSnippet...)
	return append(out, page[at:]...)
}

const reloadSnippet = `<script>(() => {
  const scheme = location.protocol === "https:" ? "wss://" : "ws://";
  const ws = new WebSocket(scheme + location.host + "` + reloadPath + `");
  ws.addEventListener("message", (e) => { if (e.data === "` + reloadMessage + `") location.reload(); });
})();</script>`
