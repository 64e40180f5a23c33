// Package metrics provides build observability for the site generator.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder backs the same interface
// with client_golang collectors:
//
//	reg := prom.NewRegistry()
//	gen.Recorder = metrics.NewPrometheusRecorder(reg)
//	...
//	_ = metrics.WriteTextfile(path, reg)
//
// A batch run has no scrape endpoint, so the registry is exported once at the
// end of the run in the node-exporter textfile format.
package metrics
