// Package errs defines the error shape returned to API clients.
//
// HTTPError carries a machine-friendly code, a human message and the status;
// the global error handler serializes it as JSON. Submit validation problems
// are not errors (they are stored and echoed as text), so what reaches this
// package is request-shape problems, unknown routes and storage failures.
package errs
