// internal/server/hub.go
package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	reloadMessage = "reload"
	writeTimeout  = time.Second
)

// reloadHub is the websocket endpoint of the preview server. It remembers
// every open browser tab so a finished rebuild can refresh all of them.
type reloadHub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func newReloadHub() *reloadHub {
	return &reloadHub{
		// The preview server only listens locally, so any origin may connect.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		conns:    make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and holds the socket until the tab closes.
// Browsers never send anything, the read loop only notices the disconnect.
func (h *reloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("live reload: upgrade failed: %v", err)
		return
	}
	conn.SetReadLimit(512)

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
	h.drop(conn)
}

func (h *reloadHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
	}
}

func (h *reloadHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// broadcast asks every connected tab to reload and returns how many got the
// message. Sockets that cannot be written to are forgotten.
func (h *reloadHub) broadcast() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	sent := 0
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reloadMessage)); err != nil {
			log.Printf("live reload: dropping client: %v", err)
			delete(h.conns, conn)
			conn.Close()
			continue
		}
		sent++
	}
	return sent
}

// closeAll says goodbye to every tab before the server stops.
func (h *reloadHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	bye := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopped")
	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage, bye, time.Now().Add(writeTimeout))
		conn.Close()
		delete(h.conns, conn)
	}
}
