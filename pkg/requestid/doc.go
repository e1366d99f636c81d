// Package requestid propagates a correlation id for every HTTP request.
//
// Middleware keeps a valid client-supplied X-Request-ID or generates a UUID,
// echoes it on the response, and stores it in the request context. Handlers
// read it back with FromContext; LoggerExtractor exposes it to the logging
// pipeline so every log line of a request carries the same id.
package requestid
