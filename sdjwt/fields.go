package sdjwt

import "github.com/grcorsair/trustcore/cpoe"

// DisclosableFields enumerates the credentialSubject fields this codec will
// ever hide behind a digest. "type" is permanently excluded (§4.6): a reader
// must always be able to see that a blob is a CorsairCPOE credential subject
// without needing any disclosure.
var DisclosableFields = []string{"scope", "provenance", "summary", "frameworks", "processProvenance", "extensions"}

func isDisclosable(name string) bool {
	for _, f := range DisclosableFields {
		if f == name {
			return true
		}
	}
	return false
}

// fieldValue returns subject's current value for name and whether it is
// present (non-zero) at all; absent fields are simply skipped by Issue
// rather than disclosed as empty.
func fieldValue(subject cpoe.Subject, name string) (any, bool) {
	switch name {
	case "scope":
		if subject.Scope == "" {
			return nil, false
		}
		return subject.Scope, true
	case "provenance":
		return subject.Provenance, true
	case "summary":
		return subject.Summary, true
	case "frameworks":
		if len(subject.Frameworks) == 0 {
			return nil, false
		}
		return subject.Frameworks, true
	case "processProvenance":
		if subject.ProcessProvenance == nil {
			return nil, false
		}
		return *subject.ProcessProvenance, true
	case "extensions":
		if len(subject.Extensions) == 0 {
			return nil, false
		}
		return subject.Extensions, true
	default:
		return nil, false
	}
}

// clearField zeroes name on subject so it no longer serializes, once its
// value has been moved into a disclosure.
func clearField(subject *cpoe.Subject, name string) {
	switch name {
	case "scope":
		subject.Scope = ""
	case "provenance":
		subject.Provenance = cpoe.Provenance{}
	case "summary":
		subject.Summary = cpoe.Summary{}
	case "frameworks":
		subject.Frameworks = nil
	case "processProvenance":
		subject.ProcessProvenance = nil
	case "extensions":
		subject.Extensions = nil
	}
}
