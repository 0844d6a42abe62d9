// Package metrics records generator and preview-server activity.
//
// Components take a Recorder and default to NoopRecorder, so metrics cost
// nothing unless the preview server is asked to expose them:
//
//	reg := prometheus.NewRegistry()
//	builder := generator.NewBuilder(cfg, runner).WithRecorder(metrics.NewPrometheusRecorder(reg))
//	mux.Handle("/metrics", metrics.HTTPHandler(reg))
package metrics
