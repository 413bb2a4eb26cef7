package dqc

// checkNonNegativeValues verifies every must-not-be-negative row of the rule
// table (the DQC.US.0015 family). Facts whose context carries an exception
// member, such as a contra account or an elimination, are allowed to be
// negative and are filtered by the member-exclusion trees.
func (v *Validator) checkNonNegativeValues() error {
	for _, rule := range v.tables.NonNegative {
		concept := v.concept(rule.Prefix, rule.Name)
		for _, f := range v.instance.FactsByConcept(concept, false) {
			if !f.Numeric.IsNegative() {
				continue
			}
			excluded, err := excludedByMember(v.tables.MemberExclusions, f)
			if err != nil {
				return err
			}
			if excluded {
				continue
			}
			if err := v.reporter.Report(rule.RuleID, Args{"fact1": f}); err != nil {
				return err
			}
		}
	}
	return nil
}
