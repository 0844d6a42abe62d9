package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/kbits/internal/config"
	ferrors "git.home.luguber.info/inful/kbits/internal/foundation/errors"
	"git.home.luguber.info/inful/kbits/internal/generator"
)

// siteBuilder writes a page naming the build into the output directory.
type siteBuilder struct {
	output string

	mu    sync.Mutex
	runs  int
	fail  error
	modes []generator.Mode
}

func (b *siteBuilder) Run(_ context.Context, mode generator.Mode) (*generator.Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.runs++
	b.modes = append(b.modes, mode)
	if b.fail != nil {
		return &generator.Report{}, b.fail
	}
	id := fmt.Sprintf("build-%d", b.runs)
	if err := os.MkdirAll(b.output, 0o750); err != nil {
		return nil, err
	}
	page := "<html><body>" + id + "</body></html>"
	if err := os.WriteFile(filepath.Join(b.output, "index.html"), []byte(page), 0o600); err != nil {
		return nil, err
	}
	return &generator.Report{ID: id, Mode: mode}, nil
}

func (b *siteBuilder) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.runs
}

type previewSite struct {
	content string
	output  string
	builder *siteBuilder
}

func newPreviewSite(t *testing.T) previewSite {
	t.Helper()
	root := t.TempDir()
	content := filepath.Join(root, "content")
	require.NoError(t, os.MkdirAll(filepath.Join(content, "posts"), 0o750))
	output := filepath.Join(root, "output")
	return previewSite{content: content, output: output, builder: &siteBuilder{output: output}}
}

func (p previewSite) options() Options {
	return Options{
		Addr:        "127.0.0.1:0",
		ContentDir:  p.content,
		OutputDir:   p.output,
		QuietWindow: 20 * time.Millisecond,
		LiveReload:  true,
	}
}

func startServer(t *testing.T, s *Server) (url string, stop func() error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-s.Ready():
	case err := <-done:
		cancel()
		t.Fatalf("server exited early: %v", err)
	case <-time.After(10 * time.Second):
		cancel()
		t.Fatal("server not ready")
	}

	var once sync.Once
	var runErr error
	stop = func() error {
		once.Do(func() {
			cancel()
			select {
			case runErr = <-done:
			case <-time.After(10 * time.Second):
				runErr = errors.New("server did not stop")
			}
		})
		return runErr
	}
	t.Cleanup(func() { _ = stop() })
	return "http://" + s.Addr(), stop
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) // #nosec G107 -- test server
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_ServesAndRebuildsOnChange(t *testing.T) {
	site := newPreviewSite(t)
	url, stop := startServer(t, New(site.builder, site.options()))

	code, body := get(t, url+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "build-1")
	assert.Contains(t, body, `<script src="/livereload.js"></script>`)

	code, script := get(t, url+"/livereload.js")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, script, "EventSource")

	require.NoError(t, os.WriteFile(filepath.Join(site.content, "posts", "hello.rst"), []byte("Hello"), 0o600))
	require.Eventually(t, func() bool { return site.builder.count() >= 2 }, 5*time.Second, 20*time.Millisecond)

	// Directories created while serving are watched too.
	require.NoError(t, os.MkdirAll(filepath.Join(site.content, "notes"), 0o750))
	time.Sleep(100 * time.Millisecond)
	before := site.builder.count()
	require.NoError(t, os.WriteFile(filepath.Join(site.content, "notes", "n.rst"), []byte("note"), 0o600))
	require.Eventually(t, func() bool { return site.builder.count() > before }, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, stop())
	for _, m := range site.builder.modes {
		assert.Equal(t, generator.ModeBuild, m)
	}
}

func TestServer_IgnoredFilesDoNotRebuild(t *testing.T) {
	site := newPreviewSite(t)
	opts := site.options()
	opts.IgnoreFiles = []string{"*.draft"}
	_, stop := startServer(t, New(site.builder, opts))

	require.NoError(t, os.WriteFile(filepath.Join(site.content, "post.draft"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(site.content, ".hidden"), []byte("x"), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, site.builder.count())
	require.NoError(t, stop())
}

func TestServer_FailedBuildIsReported(t *testing.T) {
	site := newPreviewSite(t)
	site.builder.fail = errors.New("theme missing")
	url, stop := startServer(t, New(site.builder, site.options()))

	code, body := get(t, url+"/")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, "build failed: theme missing")
	require.NoError(t, stop())
}

func TestServer_PeriodicRebuild(t *testing.T) {
	site := newPreviewSite(t)
	opts := site.options()
	opts.RebuildInterval = 50 * time.Millisecond
	_, stop := startServer(t, New(site.builder, opts))

	require.Eventually(t, func() bool { return site.builder.count() >= 3 }, 5*time.Second, 20*time.Millisecond)
	require.NoError(t, stop())
}

func TestServer_MissingContentDir(t *testing.T) {
	site := newPreviewSite(t)
	opts := site.options()
	opts.ContentDir = filepath.Join(t.TempDir(), "nope")

	err := New(site.builder, opts).Run(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.Zero(t, site.builder.count())
}

func TestServer_ListenFailure(t *testing.T) {
	site := newPreviewSite(t)
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })
	opts := site.options()
	opts.Addr = busy.Addr().String()

	err = New(site.builder, opts).Run(context.Background())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryServe))
}

func TestHandler_MetricsAndNoLiveReload(t *testing.T) {
	site := newPreviewSite(t)
	opts := site.options()
	opts.LiveReload = false
	opts.MetricsPath = "/metrics"
	opts.MetricsHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "kbits_up 1\n")
	})
	s := New(site.builder, opts)
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "kbits_up 1\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not been built yet")

	s.rebuild(context.Background())
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "livereload.js")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livereload.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code, "falls through to the site handler")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Source = "/site/site.yaml"
	cfg.Serve.Bind = "::1"
	cfg.Serve.Port = 8080
	cfg.Serve.RebuildInterval = config.Duration(time.Minute)
	cfg.Paths.IgnoreFiles = []string{".#*"}

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "[::1]:8080", opts.Addr)
	assert.Equal(t, "/site/content", opts.ContentDir)
	assert.Equal(t, "/site/output", opts.OutputDir)
	assert.Equal(t, time.Minute, opts.RebuildInterval)
	assert.Equal(t, []string{".#*"}, opts.IgnoreFiles)
	assert.True(t, opts.LiveReload)
}
