package builder

import (
	"strings"

	"github.com/grcorsair/trustcore/cpoe"
)

// auditorFormats and toolFormats are the recognized format hints that
// classify evidence provenance per §4.4: "SOC-2 reports → auditor;
// scanner output → tool; free-form → self". Matching is case-insensitive
// and substring-based so format strings like "soc2-report" or
// "vulnerability-scanner" classify correctly without an exhaustive
// enumeration.
var (
	auditorFormats = []string{"soc2", "soc-2", "iso27001", "iso-27001", "attestation", "audit"}
	toolFormats    = []string{"scanner", "sarif", "nessus", "qualys", "scan", "automated"}
)

// classifySource determines the Provenance.Source for a normalization
// request based on its declared format, falling back to "self" for any
// free-form input.
func classifySource(format string) cpoe.SourceKind {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return cpoe.SourceSelf
	}
	for _, hint := range auditorFormats {
		if strings.Contains(f, hint) {
			return cpoe.SourceAuditor
		}
	}
	for _, hint := range toolFormats {
		if strings.Contains(f, hint) {
			return cpoe.SourceTool
		}
	}
	return cpoe.SourceSelf
}
