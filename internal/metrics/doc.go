// Package metrics records build metrics for styleguide runs.
//
// Components receive a Recorder. NoopRecorder is the default and does nothing;
// PrometheusRecorder registers its collectors on a private registry and can dump
// them in the node-exporter textfile format after a build:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	report, err := site.Run(ctx, cfg, site.WithRecorder(rec))
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/styleguide.prom")
package metrics
