// Package httpform serves the observation form over net/http.
//
// GET and HEAD render the form with its defaults. POST accepts a
// form-urlencoded body, applies every submitted field through a fresh form
// holder and submits it: accepted submissions redirect back with
// ?submitted=1, invalid ones re-render with 422 and field errors, and
// submissions made while the caller reports work in progress get 409 with
// the disabled form. The record schema is served as JSON next to the form.
package httpform
