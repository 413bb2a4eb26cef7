package xbrl

// ConstraintSet is a transient query against the fact population: a concept
// plus the context aspects (period, dimensions) a matching fact must carry.
type ConstraintSet struct {
	Concept    *Concept
	Period     Period
	Dimensions map[QName]QName
}

// ConstraintsFromFact copies a fact's full context into a constraint set.
// The caller typically substitutes the concept before filtering, which is
// how "the same economic reality under a different concept" is expressed.
func ConstraintsFromFact(f *Fact) ConstraintSet {
	dims := make(map[QName]QName, len(f.Dimensions))
	for dim, member := range f.Dimensions {
		dims[dim] = member
	}
	return ConstraintSet{Concept: f.Concept, Period: f.Period, Dimensions: dims}
}

// Instance is the fact population of one document, in document order, plus
// its taxonomy. It is immutable for the whole validation run.
type Instance struct {
	DocumentID string
	Taxonomy   *Taxonomy
	facts      []*Fact
}

// NewInstance creates an empty instance for the given taxonomy.
func NewInstance(documentID string, tax *Taxonomy) *Instance {
	return &Instance{DocumentID: documentID, Taxonomy: tax}
}

// AddFact appends a fact, assigning its document-order index.
func (in *Instance) AddFact(f *Fact) *Fact {
	f.Index = len(in.facts)
	in.facts = append(in.facts, f)
	return f
}

// Facts returns all facts in document order.
func (in *Instance) Facts() []*Fact {
	return in.facts
}

// FactsByConcept returns all facts reported against the given concept, in
// document order. Nil-valued facts are excluded unless allowNil is set. A
// nil concept matches nothing, so rules whose concepts are absent from the
// taxonomy degrade to a no-op.
func (in *Instance) FactsByConcept(c *Concept, allowNil bool) []*Fact {
	if c == nil {
		return nil
	}
	var out []*Fact
	for _, f := range in.facts {
		if f.Concept != c {
			continue
		}
		if f.Nil && !allowNil {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Filter returns the facts satisfying a constraint set: same concept, same
// period, and matching dimensions. With allowAdditionalDimensions unset the
// dimension sets must match exactly; when set, candidate facts may carry
// extra dimensions beyond those constrained.
func (in *Instance) Filter(cs ConstraintSet, allowNil, allowAdditionalDimensions bool) []*Fact {
	if cs.Concept == nil {
		return nil
	}
	var out []*Fact
	for _, f := range in.facts {
		if f.Concept != cs.Concept {
			continue
		}
		if f.Nil && !allowNil {
			continue
		}
		if !f.Period.Equal(cs.Period) {
			continue
		}
		if !dimensionsMatch(cs.Dimensions, f.Dimensions, allowAdditionalDimensions) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func dimensionsMatch(want, have map[QName]QName, allowAdditional bool) bool {
	if !allowAdditional && len(have) != len(want) {
		return false
	}
	for dim, member := range want {
		if have[dim] != member {
			return false
		}
	}
	return true
}

// FactsWithExplicitDimension returns the facts carrying any explicit member
// for the given dimension, i.e. everything not on the dimension's default.
func (in *Instance) FactsWithExplicitDimension(dimension *Concept) []*Fact {
	if dimension == nil {
		return nil
	}
	var out []*Fact
	for _, f := range in.facts {
		if _, ok := f.Dimensions[dimension.Name]; ok {
			out = append(out, f)
		}
	}
	return out
}

// FactsWithDimensionValue returns the facts reporting the given member on
// the given dimension.
func (in *Instance) FactsWithDimensionValue(dimension, member *Concept) []*Fact {
	if dimension == nil || member == nil {
		return nil
	}
	var out []*Fact
	for _, f := range in.facts {
		if f.Dimensions[dimension.Name] == member.Name {
			out = append(out, f)
		}
	}
	return out
}

// FactsInNamespace returns the facts whose concept lives in the given
// namespace, skipping the ignored local names.
func (in *Instance) FactsInNamespace(namespace string, ignored ...string) []*Fact {
	skip := make(map[string]bool, len(ignored))
	for _, name := range ignored {
		skip[name] = true
	}
	var out []*Fact
	for _, f := range in.facts {
		q := f.Concept.Name
		if q.Namespace == namespace && !skip[q.LocalName] {
			out = append(out, f)
		}
	}
	return out
}

// EntityOf resolves the entity a fact reports for: the fact's explicit
// member on the given axis, or the axis default member when the fact is
// undimensioned on it. This is the named fallback every per-entity lookup
// goes through.
func EntityOf(f *Fact, axis *Concept) QName {
	if axis == nil {
		return QName{}
	}
	if member, ok := f.Dimensions[axis.Name]; ok {
		return member
	}
	if axis.tax != nil {
		return axis.tax.DefaultMember(axis.Name)
	}
	return QName{}
}
