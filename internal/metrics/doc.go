// Package metrics records per-run extraction counters.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics cost nothing unless a real implementation is
// wired in:
//
//	reg := prom.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run the pipeline with rec ...
//	err := metrics.WriteTextfile(reg, "mdcollect.prom")
//
// The textfile export targets the node_exporter textfile collector, which is
// how a one-shot build step gets scraped.
package metrics
