// Package orchestrator wires the UI schema → form holder → renderer pipeline
// behind a single Generate call for callers that only want rendered output.
package orchestrator
