package dqc

import "dqc_validation/pkg/core/xbrl"

// checkElementValueRelations verifies every A-must-not-exceed-B row of the
// rule table (the DQC.US.0009 family): wherever both concepts are reported
// in equivalent dimensional contexts, A's value must be less than or equal
// to B's at the least accurate reported precision.
func (v *Validator) checkElementValueRelations() error {
	for _, pair := range v.tables.LessOrEqualPairs {
		concept1 := v.concept(pair.Prefix1, pair.Name1)
		concept2 := v.concept(pair.Prefix2, pair.Name2)
		if concept1 == nil || concept2 == nil {
			continue
		}
		for _, fact1 := range v.instance.FactsByConcept(concept1, false) {
			cs := xbrl.ConstraintsFromFact(fact1)
			cs.Concept = concept2
			for _, fact2 := range v.instance.Filter(cs, false, false) {
				if DecimalComparison(fact1, fact2, LessOrEqual) {
					continue
				}
				if err := v.reporter.Report(pair.RuleID, Args{"fact1": fact1, "fact2": fact2}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
