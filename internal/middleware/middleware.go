// Package middleware stores global middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request-scoped logging, access logs,
// secure headers and panic recovery, and hold the global error handler.
package middleware
