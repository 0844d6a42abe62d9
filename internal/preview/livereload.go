package preview

import (
	"bufio"
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	liveReloadPath       = "/livereload"
	liveReloadScriptPath = "/livereload.js"
	heartbeatInterval    = 30 * time.Second
	maxInjectSize        = 512 * 1024
)

// liveReloadScript reloads the page whenever the server announces a build
// ID different from the first one the page saw. The ID survives reconnects,
// so a build finished while disconnected still reloads.
const liveReloadScript = `(() => {
  if (window.__KBITS_LR__) return;
  window.__KBITS_LR__ = true;
  let current = null;
  function connect() {
    const es = new EventSource('` + liveReloadPath + `');
    es.onmessage = (e) => {
      try {
        const p = JSON.parse(e.data);
        if (current === null) { current = p.build; return; }
        if (p.build && p.build !== current) { location.reload(); }
      } catch (_) {}
    };
    es.onerror = () => { es.close(); setTimeout(connect, 2000); };
  }
  connect();
})();
`

// liveReloadHub fans out build IDs to connected browsers over server-sent
// events.
type liveReloadHub struct {
	mu      sync.Mutex
	nextID  int
	clients map[int]chan string
	closed  bool
	last    string
	done    chan struct{}
}

func newLiveReloadHub() *liveReloadHub {
	return &liveReloadHub{clients: map[int]chan string{}, done: make(chan struct{})}
}

func (h *liveReloadHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		http.Error(w, "livereload shutting down", http.StatusServiceUnavailable)
		return
	}
	id := h.nextID
	h.nextID++
	ch := make(chan string, 8)
	h.clients[id] = ch
	current := h.last
	h.mu.Unlock()
	defer h.remove(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	bw := bufio.NewWriter(w)
	send := func(s string) bool {
		if _, err := bw.WriteString(s); err != nil {
			slog.Debug("livereload write", "error", err)
			return false
		}
		if err := bw.Flush(); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	// The first event carries the current build so the page knows what it
	// was rendered from.
	if !send(": connected\n\n" + event(current)) {
		return
	}

	hb := time.NewTicker(heartbeatInterval)
	defer hb.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-h.done:
			return
		case <-hb.C:
			if !send(": ping\n\n") {
				return
			}
		case build, ok := <-ch:
			if !ok || !send(event(build)) {
				return
			}
		}
	}
}

func event(build string) string {
	return `data: {"build":"` + build + `"}` + "\n\n"
}

func (h *liveReloadHub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// broadcast announces a new build; clients that cannot keep up are dropped.
func (h *liveReloadHub) broadcast(build string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || build == "" || build == h.last {
		return
	}
	h.last = build
	for id, ch := range h.clients {
		select {
		case ch <- build:
		default:
			delete(h.clients, id)
			close(ch)
		}
	}
	slog.Debug("livereload broadcast", "build", build, "clients", len(h.clients))
}

func (h *liveReloadHub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *liveReloadHub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
	h.clients = map[int]chan string{}
}

func serveLiveReloadScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	if _, err := w.Write([]byte(liveReloadScript)); err != nil {
		slog.Error("failed to write livereload script", "error", err)
	}
}

// injectLiveReload adds the client script to HTML pages served by next.
func injectLiveReload(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if !(p == "" || strings.HasSuffix(p, "/") || strings.HasSuffix(p, ".html")) {
			next.ServeHTTP(w, r)
			return
		}
		inj := &liveReloadInjector{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(inj, r)
		inj.finalize()
	})
}

// liveReloadInjector buffers an HTML response to insert the script before
// </body>. Non-HTML and oversized responses pass through untouched.
type liveReloadInjector struct {
	http.ResponseWriter
	status        int
	buf           bytes.Buffer
	passthrough   bool
	headerWritten bool
}

func (l *liveReloadInjector) WriteHeader(code int) {
	l.status = code
	if l.passthrough {
		l.writeHeader()
	}
}

func (l *liveReloadInjector) writeHeader() {
	if !l.headerWritten {
		l.headerWritten = true
		l.ResponseWriter.WriteHeader(l.status)
	}
}

func (l *liveReloadInjector) Write(data []byte) (int, error) {
	if !l.passthrough && l.buf.Len() == 0 {
		ct := l.Header().Get("Content-Type")
		if ct != "" && !strings.Contains(ct, "text/html") {
			l.passthrough = true
		}
	}
	if !l.passthrough && l.buf.Len()+len(data) > maxInjectSize {
		l.passthrough = true
		l.Header().Del("Content-Length")
		l.writeHeader()
		if _, err := l.ResponseWriter.Write(l.buf.Bytes()); err != nil {
			return 0, err
		}
		l.buf.Reset()
	}
	if l.passthrough {
		l.writeHeader()
		return l.ResponseWriter.Write(data)
	}
	return l.buf.Write(data)
}

func (l *liveReloadInjector) finalize() {
	if l.passthrough {
		l.writeHeader()
		return
	}
	body := l.buf.Bytes()
	if i := bytes.LastIndex(body, []byte("</body>")); i >= 0 {
		tag := []byte(`<script src="` + liveReloadScriptPath + `"></script>`)
		body = append(body[:i:i], append(tag, body[i:]...)...)
		l.Header().Del("Content-Length")
	}
	l.writeHeader()
	_, _ = l.ResponseWriter.Write(body)
}
