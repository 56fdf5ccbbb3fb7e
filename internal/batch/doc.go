// Package batch masks or unmasks many values concurrently. Values are
// spread over a bounded errgroup, results keep the input order, and every
// run is traced and measured through OpenTelemetry and the Prometheus
// collectors of package metrics.
package batch
