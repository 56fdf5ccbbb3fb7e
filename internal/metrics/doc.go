// Package metrics exposes moneymask activity as Prometheus metrics on a
// dedicated registry.
package metrics
