// Package observation defines the EnvironmentalObservation record collected
// by the simulation form, its per-field constraints and display conventions,
// and the pure update function renderers use to derive a new record from a
// single edit.
//
// Records are plain values. WithField never mutates its input, so a record
// handed to a submission callback cannot be altered through the form that
// produced it.
package observation
