// Package dqc implements the XBRL US Data Quality Committee consistency
// checks over a resolved instance document: fact matching across dimensional
// contexts, decimals-aware value comparison, and structured diagnostics
// rendered from versioned message templates.
package dqc

import (
	"regexp"

	"dqc_validation/pkg/core/xbrl"
)

// namespacePatterns maps each well-known taxonomy family to a pattern its
// target namespace must match in full. The date token keeps the rules
// independent of taxonomy release years.
var namespacePatterns = map[string]*regexp.Regexp{
	"country":  regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/country/[0-9-]{10}$`),
	"currency": regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/currency/[0-9-]{10}$`),
	"dei":      regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/dei/[0-9-]{10}$`),
	"exch":     regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/exch/[0-9-]{10}$`),
	"invest":   regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/invest/[0-9-]{10}$`),
	"naics":    regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/naics/[0-9-]{10}$`),
	"sic":      regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/sic/[0-9-]{10}$`),
	"stpr":     regexp.MustCompile(`^http://xbrl\.(us|sec\.gov)/stpr/[0-9-]{10}$`),
	"us-gaap":  regexp.MustCompile(`^http://(xbrl\.us|fasb\.org)/us-gaap/[0-9-]{10}$`),
}

// StandardNamespaces maps canonical short prefixes to the namespace URIs of
// the loaded schemas they matched. A family whose schema is not loaded is
// simply absent, and every rule depending on it degrades to a no-op.
func StandardNamespaces(tax *xbrl.Taxonomy) map[string]string {
	namespaces := make(map[string]string)
	for _, ns := range tax.Schemas() {
		for prefix, pattern := range namespacePatterns {
			if pattern.MatchString(ns) {
				namespaces[prefix] = ns
			}
		}
	}
	return namespaces
}
