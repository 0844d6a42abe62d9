package preview

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectLiveReload(t *testing.T) {
	pages := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/style.css":
			w.Header().Set("Content-Type", "text/css")
			_, _ = io.WriteString(w, "body{}</body>")
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = io.WriteString(w, "<html><body><p>hi</p></body></html>")
		}
	})
	h := injectLiveReload(pages)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `<html><body><p>hi</p><script src="/livereload.js"></script></body></html>`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))
	assert.Equal(t, "body{}</body>", rec.Body.String())
}

func TestInjectLiveReload_PassesThroughNonHTMLContentType(t *testing.T) {
	h := injectLiveReload(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, `{"a":"</body>"}`)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, `{"a":"</body>"}`, rec.Body.String())
}

func TestInjectLiveReload_LargePage(t *testing.T) {
	big := strings.Repeat("x", maxInjectSize+10) + "</body>"
	h := injectLiveReload(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, big[:100])
		_, _ = io.WriteString(w, big[100:])
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/big.html", nil))
	assert.Equal(t, big, rec.Body.String())
}

func TestLiveReloadHub(t *testing.T) {
	hub := newLiveReloadHub()
	hub.broadcast("first")
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	nextData := func() string {
		for {
			line, err := r.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}

	assert.Equal(t, `{"build":"first"}`, nextData())
	require.Equal(t, 1, hub.clientCount())

	hub.broadcast("first") // unchanged builds are not announced
	hub.broadcast("second")
	assert.Equal(t, `{"build":"second"}`, nextData())

	hub.shutdown()
	_, err = r.ReadString('\n')
	assert.Error(t, err)
	hub.broadcast("third")
}

func TestLiveReloadReconnectSeesMissedBuild(t *testing.T) {
	rec := httptest.NewRecorder()
	serveLiveReloadScript(rec, httptest.NewRequest(http.MethodGet, liveReloadScriptPath, nil))
	script := rec.Body.String()
	seen := strings.Index(script, "let current = null;")
	connect := strings.Index(script, "function connect()")
	require.NotEqual(t, -1, seen)
	require.NotEqual(t, -1, connect)
	assert.Less(t, seen, connect, "build ID must outlive a single connection")
	assert.Equal(t, 1, strings.Count(script, "current = null"))

	hub := newLiveReloadHub()
	hub.broadcast("first")
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	t.Cleanup(hub.shutdown)

	firstEvent := func() string {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		r := bufio.NewReader(resp.Body)
		for {
			line, err := r.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "data: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
			}
		}
	}

	assert.Equal(t, `{"build":"first"}`, firstEvent())
	hub.broadcast("second")
	assert.Equal(t, `{"build":"second"}`, firstEvent())
}
