// Package uischema loads presentation overrides for the observation form
// (captions, help text and inline SVG icons) from JSON or YAML documents and
// turns them into form options. The form holder stays unaware of where its
// captions come from.
package uischema
