package trustanchor

import (
	"fmt"

	"github.com/grcorsair/trustcore/didweb"
	"github.com/grcorsair/trustcore/keystore"
)

// BuildJWKS exports every key ks knows about (active first, then retired,
// oldest first) as a public-only JWKS document.
func BuildJWKS(ks *keystore.KeyStore) JWKS {
	var out JWKS
	if active, ok := ks.Active(); ok {
		out.Keys = append(out.Keys, keystore.ExportJWK(active, false))
	}
	for _, retired := range ks.Retired() {
		out.Keys = append(out.Keys, keystore.ExportJWK(retired, false))
	}
	return out
}

// BuildDIDDocument constructs the did:web document identifying issuerDID,
// with one verificationMethod per key in ks (active and retired), so a
// resolver can validate CPOEs signed under any key this store has ever
// held.
func BuildDIDDocument(issuerDID string, ks *keystore.KeyStore) (*didweb.Document, error) {
	doc := &didweb.Document{
		Context: []string{"https://www.w3.org/ns/did/v1"},
		ID:      issuerDID,
	}

	add := func(kp *keystore.Keypair) {
		vmID := fmt.Sprintf("%s#%s", issuerDID, kp.KeyID)
		jwk := keystore.ExportJWK(kp, false)
		vm := didweb.VerificationMethod{
			ID:         vmID,
			Type:       "JsonWebKey2020",
			Controller: issuerDID,
			PublicKeyJwk: didweb.PublicKeyJwk{
				Kty: jwk.Kty,
				Crv: jwk.Crv,
				X:   jwk.X,
			},
		}
		doc.VerificationMethod = append(doc.VerificationMethod, vm)
		doc.Authentication = append(doc.Authentication, vmID)
		doc.AssertionMethod = append(doc.AssertionMethod, vmID)
	}

	active, ok := ks.Active()
	if !ok {
		return nil, keystore.ErrKeyMissing
	}
	add(active)
	for _, retired := range ks.Retired() {
		add(retired)
	}

	return doc, nil
}
