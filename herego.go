// Package herego provides clients for the HERE Location Services REST APIs.
//
// Each service has its own client package (routing, weather); this package
// holds what they share: credentials, ordered query parameter building, the
// error taxonomy, and the single-attempt GET helper. Every call performs
// exactly one outbound request with no retries and no caching.
//
// Clients are safe for concurrent use as long as credentials are not replaced
// via SetCredentials while calls are in flight; guarding that is the caller's
// responsibility.
package herego

import (
	"net/http"
	"time"
)

// DefaultTimeout is the default per-request timeout used by service clients.
const DefaultTimeout = 20 * time.Second

// Credentials are the two static strings issued by the HERE developer portal.
// Both are sent as query parameters on every request.
type Credentials struct {
	// AppID is the application identifier.
	AppID string

	// AppCode is the application code paired with the AppID.
	AppCode string
}

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}
