// Package errs defines the error shape returned to API clients.
//
// Every failure leaves the service as an HTTPError serialized to JSON, so
// clients always see a machine-readable code, a human-readable message,
// the HTTP status and, for rejected input, per-field errors.
package errs
