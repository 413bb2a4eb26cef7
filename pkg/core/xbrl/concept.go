package xbrl

// RoleLabel is the standard label role defined by XBRL 2.1.
const RoleLabel = "http://www.xbrl.org/2003/role/label"

// Label is a human-readable concept label keyed by language and role.
type Label struct {
	Lang string `json:"lang"`
	Role string `json:"role"`
	Text string `json:"text"`
}

// Concept is a named, typed reporting element defined by a taxonomy schema.
// Dimensions (axes) and domain members are concepts too.
type Concept struct {
	Name     QName   `json:"name"`
	ItemType QName   `json:"itemType"`
	Numeric  bool    `json:"numeric"`
	Labels   []Label `json:"labels,omitempty"`

	tax *Taxonomy
}

// PrefixedName renders the concept name as prefix:localName using the
// document's declared prefixes, falling back to the bare local name.
func (c *Concept) PrefixedName() string {
	if c.tax == nil {
		return c.Name.LocalName
	}
	return c.tax.PrefixedName(c.Name)
}

// StandardLabel returns the text of the first English standard label, or the
// prefixed name when the concept carries no such label.
func (c *Concept) StandardLabel() string {
	for _, l := range c.Labels {
		if l.Lang == "en" && l.Role == RoleLabel {
			return l.Text
		}
	}
	return c.PrefixedName()
}
