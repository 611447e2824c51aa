// Package metrics exports fault-analysis progress and verdicts as Prometheus
// metrics.
//
// A Collector implements fault.Observer, so it plugs straight into
// fault.Analyze via fault.WithObserver; verdicts are recorded with
// ObserveReport. Batch validators that do not run an HTTP endpoint can dump
// the registry in node-exporter textfile format with WriteTextfile.
//
//	reg := prometheus.NewRegistry()
//	col, err := metrics.NewCollector(&metrics.Config{Registry: reg})
//	events, err := fault.Analyze(ctx, fc, part, fault.WithObserver(col))
//	col.ObserveReport(verdict.Evaluate(events))
//	err = col.WriteTextfile("qfault.prom")
package metrics
