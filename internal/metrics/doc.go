// Package metrics provides observability hooks for site builds.
//
// It follows the Null Object pattern: components receive a Recorder through
// dependency injection and default to NoopRecorder, so metrics can be
// enabled by swapping in NewPrometheusRecorder without nil checks at call
// sites. The preview server exposes the Prometheus registry over HTTP.
package metrics
