// Package middleware holds the global and route-specific Echo middleware:
// request ids, request-scoped loggers, request logging, CORS, secure
// headers, panic recovery, rate limiting, API key checks, New Relic tracing
// and the global error handler.
package middleware
