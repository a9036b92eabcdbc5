// Package metrics records build metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	svc := build.NewService()                          // NoopRecorder
//	svc = svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// PrometheusRecorder registers its collectors on a caller-supplied registry.
// A one-shot CLI build has nothing to scrape it, so the registry is written
// out in the node-exporter textfile format with WriteTextfile.
package metrics
