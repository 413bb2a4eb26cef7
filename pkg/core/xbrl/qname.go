// Package xbrl provides a read-only, fully resolved model of an XBRL
// instance document: concepts, periods, dimensional contexts, units and
// facts, plus the fact-population queries the validation rules run against.
// Parsing a filing into this model is someone else's job; this package only
// binds the already-materialized model.
package xbrl

// QName identifies a concept, dimension, member, type or measure by
// namespace URI and local name.
type QName struct {
	Namespace string `json:"namespace"`
	LocalName string `json:"localName"`
}

// IsZero reports whether the QName is the empty value.
func (q QName) IsZero() bool {
	return q.Namespace == "" && q.LocalName == ""
}

// String renders the QName in Clark notation, e.g. {http://fasb.org/us-gaap/2024}Assets.
func (q QName) String() string {
	if q.Namespace == "" {
		return q.LocalName
	}
	return "{" + q.Namespace + "}" + q.LocalName
}
