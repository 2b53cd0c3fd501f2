// Package instrumentation provides OpenTelemetry metrics for the Drive
// wrapper: operation counts and latencies, retry counts and export byte
// volume.
//
// The package exposes only the OTel metric API; wiring a MeterProvider
// (and any exporter) is left to the embedding application. A nil
// *Metrics records nothing, so instrumentation is strictly opt-in.
package instrumentation
