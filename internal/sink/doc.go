// Package sink delivers accepted observations to downstream stores.
//
// The Dispatcher is the submission callback handed to the form. It stamps
// each record into an Envelope and publishes it to every configured Sink in
// the background, so the form only ever sees a synchronous, non-blocking
// callback. Busy reports whether deliveries are still running, which the
// HTTP layer turns into the form's loading state.
package sink
