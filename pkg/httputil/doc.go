// Package httputil provides HTTP helpers for JSON responses, request parsing and
// middleware.
//
// # Responses
//
//	httputil.WriteSuccess(w, report)
//	httputil.WriteBadRequest(w, "unknown format")
//	httputil.WriteNotFoundError(w, "record not found")
//
// Errors are always written as {"error": "..."} with an optional details map.
//
// # Requests
//
//	data, ok := httputil.ReadBodyOrError(w, r, maxBytes)
//	if !ok {
//		return // error response already written
//	}
//	limit, err := httputil.ParseQueryInt(r, "limit", 50)
//
// # Middleware
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//		httputil.MaxBytesMiddleware(10<<20),
//	)(router)
package httputil
