package commands

import (
	"context"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/kbits/internal/generator"
	"git.home.luguber.info/inful/kbits/internal/metrics"
	"git.home.luguber.info/inful/kbits/internal/preview"
)

// ServeCmd builds the site, serves it, and regenerates it on change.
type ServeCmd struct {
	Bind         string `name:"bind" help:"Address to bind to (overrides serve.bind)"`
	Port         int    `name:"port" help:"Port to listen on (overrides serve.port)"`
	NoLiveReload bool   `name:"no-live-reload" help:"Disable browser reload after rebuilds"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return s.serve(ctx, g, root)
}

func (s *ServeCmd) serve(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(root.Config)
	if err != nil {
		return err
	}
	if s.Bind != "" {
		cfg.Serve.Bind = s.Bind
	}
	if s.Port != 0 {
		cfg.Serve.Port = s.Port
	}
	if s.NoLiveReload {
		cfg.Serve.LiveReload = false
	}

	opts := preview.OptionsFromConfig(cfg)
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if opts.MetricsPath != "" {
		reg := prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(reg)
		opts.MetricsHandler = metrics.HTTPHandler(reg)
	}

	b := generator.NewBuilder(cfg, g.runner()).WithRecorder(recorder)
	return preview.New(b, opts).WithRecorder(recorder).Run(ctx)
}
