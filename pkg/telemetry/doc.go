// Package telemetry provides structured logging via zerolog and
// Prometheus metrics for the kubeact pipeline.
package telemetry
