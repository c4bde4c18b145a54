package didweb

// Document is the subset of a W3C DID document this resolver parses.
type Document struct {
	Context            any                 `json:"@context,omitempty"`
	ID                 string              `json:"id"`
	VerificationMethod []VerificationMethod `json:"verificationMethod"`
	Authentication     []string            `json:"authentication,omitempty"`
	AssertionMethod    []string            `json:"assertionMethod,omitempty"`
}

// VerificationMethod is one entry of a DID document's verificationMethod
// array.
type VerificationMethod struct {
	ID           string       `json:"id"`
	Type         string       `json:"type"`
	Controller   string       `json:"controller"`
	PublicKeyJwk PublicKeyJwk `json:"publicKeyJwk"`
}

// PublicKeyJwk is the JWK embedded in a verification method. Only the OKP
// (Ed25519) shape is understood by this resolver; any other kty/crv is
// skipped when searching for a suitable key.
type PublicKeyJwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
}

// ResolvedKey is the outcome of a successful Resolve: the verification
// method's fragment identifier (the part after "#") and its decoded
// Ed25519 public key bytes.
type ResolvedKey struct {
	DID          string
	KeyFragment  string
	PublicKeyRaw []byte
}
