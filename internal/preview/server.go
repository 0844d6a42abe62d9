package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"git.home.luguber.info/inful/kbits/internal/config"
	ferrors "git.home.luguber.info/inful/kbits/internal/foundation/errors"
	"git.home.luguber.info/inful/kbits/internal/generator"
	"git.home.luguber.info/inful/kbits/internal/logfields"
	"git.home.luguber.info/inful/kbits/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Builder regenerates the site.
type Builder interface {
	Run(ctx context.Context, mode generator.Mode) (*generator.Report, error)
}

// Options configures a preview Server.
type Options struct {
	Addr            string
	ContentDir      string
	OutputDir       string
	IgnoreFiles     []string
	RebuildInterval time.Duration
	QuietWindow     time.Duration
	LiveReload      bool

	// MetricsPath mounts MetricsHandler when both are set.
	MetricsPath    string
	MetricsHandler http.Handler
}

// OptionsFromConfig derives server options from site settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Addr:            net.JoinHostPort(cfg.Serve.Bind, strconv.Itoa(cfg.Serve.Port)),
		ContentDir:      cfg.ContentDir(),
		OutputDir:       cfg.OutputDir(),
		IgnoreFiles:     cfg.Paths.IgnoreFiles,
		RebuildInterval: cfg.Serve.RebuildInterval.Std(),
		LiveReload:      cfg.Serve.LiveReload,
		MetricsPath:     cfg.Serve.MetricsPath,
	}
}

// Server is the local preview server.
type Server struct {
	opts     Options
	builder  Builder
	recorder metrics.Recorder
	status   *buildStatus
	hub      *liveReloadHub
	filter   eventFilter
	debounce *debouncer

	rebuildReq chan struct{}
	ready      chan struct{}
	addr       string
}

// New creates a Server that rebuilds through b.
func New(b Builder, opts Options) *Server {
	s := &Server{
		opts:       opts,
		builder:    b,
		recorder:   metrics.NoopRecorder{},
		status:     &buildStatus{},
		filter:     eventFilter{patterns: opts.IgnoreFiles, output: opts.OutputDir},
		rebuildReq: make(chan struct{}, 1),
		ready:      make(chan struct{}),
	}
	if opts.LiveReload {
		s.hub = newLiveReloadHub()
	}
	s.debounce = newDebouncer(opts.QuietWindow, func() { s.request("watch") })
	return s
}

// WithRecorder attaches a metrics recorder.
func (s *Server) WithRecorder(r metrics.Recorder) *Server {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Ready is closed once the server accepts connections.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Addr returns the listening address; valid after Ready is closed.
func (s *Server) Addr() string { return s.addr }

// request queues a rebuild unless one is already queued.
func (s *Server) request(reason string) {
	s.recorder.IncRebuildTrigger(reason)
	select {
	case s.rebuildReq <- struct{}{}:
	default:
	}
}

// Run builds the site, serves it, and rebuilds on change until ctx is
// canceled. A failing initial build does not stop the server.
func (s *Server) Run(ctx context.Context) error {
	if st, err := os.Stat(s.opts.ContentDir); err != nil || !st.IsDir() {
		return ferrors.NotFoundError("content directory not found").
			WithContext("path", s.opts.ContentDir).WithCause(err).Build()
	}

	watcher, err := newWatcher(s.opts.ContentDir)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "watch content directory").Build()
	}
	defer func() { _ = watcher.Close() }()

	s.rebuild(ctx)

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryServe, "listen").
			WithContext("addr", s.opts.Addr).Fatal().Build()
	}
	s.addr = ln.Addr().String()
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	slog.Info("Preview server listening", logfields.Addr(s.addr), slog.String("url", "http://"+s.addr+"/"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.worker(ctx)
	}()

	if s.opts.RebuildInterval > 0 {
		periodic, err := newPeriodicRebuild(s.opts.RebuildInterval, func() { s.request("schedule") })
		if err != nil {
			slog.Warn("Periodic rebuild disabled", logfields.Error(err))
		} else {
			periodic.start(s.opts.RebuildInterval)
			defer periodic.stop()
		}
	}
	close(s.ready)

	var runErr error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err, ok := <-serveErr:
			if ok {
				runErr = ferrors.WrapError(err, ferrors.CategoryServe, "serve").Build()
			}
			break loop
		case ev, ok := <-watcher.Events:
			if !ok {
				break loop
			}
			s.handleEvent(watcher, ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				break loop
			}
			slog.Warn("watcher error", logfields.Error(err))
		}
	}

	slog.Info("Shutting down preview server...")
	s.debounce.stop()
	if s.hub != nil {
		s.hub.shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	wg.Wait()
	return runErr
}

// worker runs queued rebuilds one at a time until ctx is done.
func (s *Server) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.rebuildReq:
			slog.Info("Change detected; rebuilding site")
			s.rebuild(ctx)
		}
	}
}

func (s *Server) rebuild(ctx context.Context) {
	report, err := s.builder.Run(ctx, generator.ModeBuild)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("rebuild failed", logfields.Error(err))
		}
		s.status.setError(err)
		return
	}
	s.status.setSuccess(report.ID)
	if s.hub != nil {
		s.hub.broadcast(report.ID)
	}
}

// Handler returns the HTTP handler serving the output directory.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.opts.MetricsPath != "" && s.opts.MetricsHandler != nil {
		mux.Handle(s.opts.MetricsPath, s.opts.MetricsHandler)
	}

	site := http.Handler(http.FileServer(http.Dir(s.opts.OutputDir)))
	if s.hub != nil {
		mux.Handle(liveReloadPath, s.hub)
		mux.HandleFunc(liveReloadScriptPath, serveLiveReloadScript)
		site = injectLiveReload(site)
	}
	mux.Handle("/", s.guard(site))
	return mux
}

// guard answers with the build error until a build has succeeded.
func (s *Server) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastErr, good := s.status.get()
		if !good {
			msg := "site has not been built yet"
			if lastErr != nil {
				msg = fmt.Sprintf("build failed: %v", lastErr)
			}
			http.Error(w, msg, http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}
