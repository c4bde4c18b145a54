package sdjwt

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/grcorsair/trustcore/signer"
)

// Verify checks the JWT segment of sdjwtWire and, for every disclosure
// presented, requires its digest to be a member of the signed `_sd` claim
// (P4). A single mismatching disclosure fails the whole call.
func Verify(sdjwtWire string, keys []signer.TrustedKey, now time.Time) (*VerifyResult, error) {
	jwt, disclosures := split(sdjwtWire)

	jwtResult, err := signer.Verify(jwt, keys, now)
	if err != nil {
		return &VerifyResult{JWT: jwtResult}, err
	}

	subject := jwtResult.Claims.VC.CredentialSubject
	sdSet := make(map[string]bool, len(subject.SD))
	for _, digest := range subject.SD {
		sdSet[digest] = true
	}

	disclosed := make(map[string]json.RawMessage, len(disclosures))
	matched := make(map[string]bool, len(disclosures))

	for _, d := range disclosures {
		raw, err := base64.RawURLEncoding.DecodeString(d)
		if err != nil {
			return nil, ErrMalformedDisclosure
		}
		var triple []json.RawMessage
		if err := json.Unmarshal(raw, &triple); err != nil || len(triple) != 3 {
			return nil, ErrMalformedDisclosure
		}
		var name string
		if err := json.Unmarshal(triple[1], &name); err != nil {
			return nil, ErrMalformedDisclosure
		}

		sum := sha256.Sum256([]byte(d))
		digest := base64.RawURLEncoding.EncodeToString(sum[:])
		if !sdSet[digest] {
			return nil, ErrDisclosureMismatch
		}
		matched[digest] = true
		disclosed[name] = triple[2]
	}

	var undisclosed []string
	for digest := range sdSet {
		if !matched[digest] {
			undisclosed = append(undisclosed, digest)
		}
	}

	return &VerifyResult{
		JWT:                jwtResult,
		DisclosedClaims:    disclosed,
		UndisclosedDigests: undisclosed,
	}, nil
}
