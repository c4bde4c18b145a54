package trustanchor

import "github.com/grcorsair/trustcore/keystore"

// JWKS is the `{keys: [...]}` document of §6, active key first then every
// retired key, so a relying party extending trust to a rotated-out key can
// still validate historical CPOEs.
type JWKS struct {
	Keys []keystore.JWK `json:"keys"`
}
