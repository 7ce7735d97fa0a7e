// Package form holds the state of the environmental observation form and the
// submission boundary with its caller.
//
// A Form owns one observation.Observation. Widgets report edits through
// UpdateTextField, UpdateNumericField and UpdateSliderField; each edit
// replaces the record with a copy that differs in exactly one field. Submit
// hands a copy of the record to the caller's SubmitFunc.
//
// The loading flag is not form state. Callers pass it to Submit and View on
// every call, so the holder never tracks pending work of its own.
//
// Non-numeric text typed into a numeric input is rejected and the previous
// value retained; see UpdateNumericField.
package form
