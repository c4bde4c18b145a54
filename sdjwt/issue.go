package sdjwt

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/grcorsair/trustcore/canon"
	"github.com/grcorsair/trustcore/cpoe"
	"github.com/grcorsair/trustcore/signer"
)

const saltBytes = 16 // 128 bits, per §4.6

func b64url(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// Issue signs a reduced JWT-VC with the named fields of credentialSubject
// replaced by sha-256 digests in `_sd`, and returns the full
// `<jwt>~<disclosure>~..~` wire form.
func Issue(key signer.Key, in signer.SignInput, disclose []string) (string, error) {
	for _, name := range disclose {
		if !isDisclosable(name) {
			return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
	}

	subject := in.VC.CredentialSubject
	var disclosures []string
	var sdDigests []string

	for _, name := range disclose {
		val, ok := fieldValue(subject, name)
		if !ok {
			continue
		}
		salt := make([]byte, saltBytes)
		if _, err := rand.Read(salt); err != nil {
			return "", fmt.Errorf("sdjwt: generating salt: %w", err)
		}
		discBytes, err := canon.Marshal([]any{b64url(salt), name, val})
		if err != nil {
			return "", fmt.Errorf("sdjwt: encoding disclosure for %q: %w", name, err)
		}
		discB64 := b64url(discBytes)
		digest := sha256.Sum256([]byte(discB64))

		disclosures = append(disclosures, discB64)
		sdDigests = append(sdDigests, b64url(digest[:]))
		clearField(&subject, name)
	}

	subject.SD = sdDigests
	subject.SDAlg = "sha-256"

	reduced := in
	reduced.VC = cpoe.VC{
		Context:           in.VC.Context,
		Type:              in.VC.Type,
		CredentialSubject: subject,
	}

	jwt, err := signer.Sign(key, reduced)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(jwt)
	b.WriteByte('~')
	for _, d := range disclosures {
		b.WriteString(d)
		b.WriteByte('~')
	}
	return b.String(), nil
}
