// Package middleware stores global middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request IDs, request-scoped logging, New Relic tracing, CORS, secure
// headers and panic recovery. GlobalMiddlewares.GlobalErrorHandler is the
// single place errors are turned into HTTP responses.
package middleware
