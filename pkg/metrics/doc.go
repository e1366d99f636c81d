// Package metrics exposes the service's Prometheus instruments: request
// counters and latency histograms for HTTP traffic, plus counters for
// tenant-context rejections and bypass sessions, the two signals worth
// alerting on in a multi-tenant deployment.
package metrics
