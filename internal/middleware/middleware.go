// Package middleware holds the Echo middleware shared by every route.
//
// It covers request ids, the request-scoped logger, New Relic tracing,
// request logging and metrics, CORS, secure headers, panic recovery and the
// global error handler.
package middleware
