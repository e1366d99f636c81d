// Package environment propagates the application runtime environment
// (development, staging, production) through context.Context, HTTP
// middleware and structured logs.
//
// Attach an environment to every request with Middleware, read it back with
// FromContext, and branch with the IsDevelopment/IsStaging/IsProduction
// predicates. LoggerExtractor exposes the value to slog handlers that support
// context extractors.
//
// All helpers are allocation-free on the read path and never return errors;
// a missing value yields the zero Environment ("").
package environment
