package xbrl

// Taxonomy is the discoverable taxonomy set of a document: the loaded
// schemas, the concepts they define, prefix declarations, per-dimension
// default members and the item-type derivation hierarchy. It is immutable
// once the document is decoded.
type Taxonomy struct {
	schemas  []string          // target namespace URIs of loaded schemas
	prefixes map[string]string // namespace URI -> declared prefix
	concepts map[QName]*Concept
	defaults map[QName]QName // dimension -> default member
	types    map[QName]QName // item type -> base type
}

// NewTaxonomy creates an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{
		prefixes: make(map[string]string),
		concepts: make(map[QName]*Concept),
		defaults: make(map[QName]QName),
		types:    make(map[QName]QName),
	}
}

// AddSchema records a loaded schema by its target namespace.
func (t *Taxonomy) AddSchema(targetNamespace string) {
	t.schemas = append(t.schemas, targetNamespace)
}

// Schemas returns the target namespaces of all loaded schemas, in load order.
func (t *Taxonomy) Schemas() []string {
	return t.schemas
}

// DeclarePrefix binds a short prefix to a namespace URI for display purposes.
func (t *Taxonomy) DeclarePrefix(prefix, namespace string) {
	t.prefixes[namespace] = prefix
}

// PrefixedName renders a QName as prefix:localName, or the bare local name
// when no prefix is declared for its namespace.
func (t *Taxonomy) PrefixedName(q QName) string {
	if p, ok := t.prefixes[q.Namespace]; ok && p != "" {
		return p + ":" + q.LocalName
	}
	return q.LocalName
}

// AddConcept registers a concept and returns it.
func (t *Taxonomy) AddConcept(c *Concept) *Concept {
	c.tax = t
	t.concepts[c.Name] = c
	return c
}

// ResolveConcept returns the concept with the given qualified name, or nil
// when the taxonomy does not define it. A zero QName never resolves.
func (t *Taxonomy) ResolveConcept(q QName) *Concept {
	if q.IsZero() {
		return nil
	}
	return t.concepts[q]
}

// SetDefaultMember records the default member of a dimension.
func (t *Taxonomy) SetDefaultMember(dimension, member QName) {
	t.defaults[dimension] = member
}

// DefaultMember returns the default member of a dimension, or the zero QName
// when none is declared.
func (t *Taxonomy) DefaultMember(dimension QName) QName {
	return t.defaults[dimension]
}

// AddType records a derivation step in the item-type hierarchy.
func (t *Taxonomy) AddType(typ, base QName) {
	t.types[typ] = base
}

// HasType reports whether the taxonomy defines the given item type, either
// directly or as the base of another type.
func (t *Taxonomy) HasType(typ QName) bool {
	if _, ok := t.types[typ]; ok {
		return true
	}
	for _, base := range t.types {
		if base == typ {
			return true
		}
	}
	return false
}

// TypeDerivedFrom reports whether typ is, or is transitively derived from,
// base in the item-type hierarchy.
func (t *Taxonomy) TypeDerivedFrom(typ, base QName) bool {
	for !typ.IsZero() {
		if typ == base {
			return true
		}
		next, ok := t.types[typ]
		if !ok || next == typ {
			return false
		}
		typ = next
	}
	return false
}
