package sdjwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// split separates an sdjwt wire string into its JWT and its (possibly zero)
// disclosure segments, tolerating both a trailing "~" and its absence.
func split(sdjwtWire string) (jwt string, disclosures []string) {
	parts := strings.Split(sdjwtWire, "~")
	jwt = parts[0]
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		disclosures = append(disclosures, p)
	}
	return jwt, disclosures
}

func disclosureName(disclosure string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(disclosure)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDisclosure, err)
	}
	var triple []json.RawMessage
	if err := json.Unmarshal(raw, &triple); err != nil || len(triple) != 3 {
		return "", ErrMalformedDisclosure
	}
	var name string
	if err := json.Unmarshal(triple[1], &name); err != nil {
		return "", ErrMalformedDisclosure
	}
	return name, nil
}

// Present filters sdjwtWire's disclosures down to reveal, leaving the JWT
// segment untouched byte-for-byte (§4.6 "JWT bytes never change").
func Present(sdjwtWire string, reveal []string) (string, error) {
	jwt, disclosures := split(sdjwtWire)

	wanted := make(map[string]bool, len(reveal))
	for _, name := range reveal {
		wanted[name] = true
	}

	var b strings.Builder
	b.WriteString(jwt)
	b.WriteByte('~')
	for _, d := range disclosures {
		name, err := disclosureName(d)
		if err != nil {
			return "", err
		}
		if wanted[name] {
			b.WriteString(d)
			b.WriteByte('~')
		}
	}
	return b.String(), nil
}
