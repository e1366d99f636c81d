// Package session provides server-side sessions with pluggable storage
// back-ends and transports.
//
// A Manager orchestrates the session life-cycle: a Transport carries the
// opaque token between client and server (cookie or header), and a Store
// persists session state (in-memory or Redis). Session data holds small
// request-scoped values; the platform uses it for the caller's active
// tenant selection, which the tenant middleware reads as one of its
// derivation sources.
//
// # Usage
//
//	manager := session.New() // in-memory store, "sid" cookie
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    // Ensure returns an existing session or creates an anonymous one.
//	    sess, _ := manager.Ensure(r.Context(), w, r)
//
//	    // Promote the session after login; the token is rotated.
//	    _ = manager.Authenticate(r.Context(), w, r, userID)
//
//	    // Record the active tenant for later requests.
//	    _ = manager.SetValue(r.Context(), w, r, "tenant_id", tenantID.String())
//	}
//
// Redis-backed sessions with a header transport:
//
//	manager := session.New(
//	    session.WithStore(session.NewRedisStore(client)),
//	    session.WithTransport(session.NewHeaderTransport("X-Session-Token")),
//	)
//
// Configuration comes from Option functions or a Config struct populated
// from environment variables via NewFromConfig.
package session
