package didweb

import (
	"net/http"
	"time"
)

// Option configures a Resolver at construction, following the teacher's
// functional-option convention (massifs/readeroptions.go's With... builders).
type Option func(*Resolver)

// WithTimeout overrides the default 5s resolution timeout (§4.3).
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// WithHTTPClient overrides the resolver's HTTP client entirely. Callers
// using this option are responsible for preserving the SSRF guard and
// zero-redirect policy themselves; NewResolver's default client is
// strongly preferred.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) { r.client = client }
}
