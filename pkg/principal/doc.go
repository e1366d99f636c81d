// Package principal identifies the authenticated caller of a request.
//
// The middleware decodes the bearer token (or any configured fallback
// source) into a Principal and stores it in the request context. It never
// rejects: anonymous requests pass through unchanged, and enforcement
// belongs to the layers that need it, such as the tenant middleware's
// authenticated-without-tenant rejection or an admin-prefix check.
package principal
