package translog

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grcorsair/trustcore/cpoe"
)

const maxStatementBytes = 50 * 1024

type statementHeader struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
	Kid string `json:"kid"`
}

// parseStatement validates that raw is a well-formed three-segment JWT with
// a decodable header, not exceeding maxStatementBytes, and extracts the
// issuer/framework fields recorded at registration time for later
// filtering. Framework is taken as the lexicographically first framework
// key present, a deterministic (if arbitrary) choice since §4.9's
// listEntries filters on a single framework value per entry.
func parseStatement(raw []byte) (issuer, framework string, err error) {
	if len(raw) > maxStatementBytes {
		return "", "", ErrStatementTooLarge
	}
	segments := strings.Split(string(raw), ".")
	if len(segments) != 3 {
		return "", "", ErrStatementMalformed
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(segments[0])
	if err != nil {
		return "", "", fmt.Errorf("%w: header: %v", ErrStatementMalformed, err)
	}
	var h statementHeader
	if err := json.Unmarshal(headerBytes, &h); err != nil {
		return "", "", fmt.Errorf("%w: header json: %v", ErrStatementMalformed, err)
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		// Payload need not decode for registration to succeed (§4.9 only
		// requires a "decodable header"), issuer/framework simply stay
		// empty for projection purposes.
		return "", "", nil
	}
	var claims cpoe.Claims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return "", "", nil
	}

	framework = firstFrameworkKey(claims.VC.CredentialSubject.Frameworks)
	return claims.Issuer, framework, nil
}

func firstFrameworkKey(frameworks map[string]cpoe.Framework) string {
	var first string
	for k := range frameworks {
		if first == "" || k < first {
			first = k
		}
	}
	return first
}
