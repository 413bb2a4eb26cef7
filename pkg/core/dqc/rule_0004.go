package dqc

import "dqc_validation/pkg/core/xbrl"

// checkBalanceSheetBalance verifies that total assets equal total
// liabilities and equity on every reported balance sheet (DQC.US.0004.16).
func (v *Validator) checkBalanceSheetBalance() error {
	return v.checkEqualValues("DQC.US.0004.16",
		v.concept("us-gaap", "Assets"),
		v.concept("us-gaap", "LiabilitiesAndStockholdersEquity"))
}

// checkEqualValues compares every pair of facts reported against the two
// concepts in equivalent dimensional contexts and reports each pair whose
// values differ beyond the rounding tolerance.
func (v *Validator) checkEqualValues(ruleID string, concept1, concept2 *xbrl.Concept) error {
	if concept1 == nil || concept2 == nil {
		return nil
	}
	for _, fact1 := range v.instance.FactsByConcept(concept1, false) {
		cs := xbrl.ConstraintsFromFact(fact1)
		cs.Concept = concept2
		for _, fact2 := range v.instance.Filter(cs, false, false) {
			if DecimalComparison(fact1, fact2, EqualWithinTolerance) {
				continue
			}
			if err := v.reporter.Report(ruleID, Args{"fact1": fact1, "fact2": fact2}); err != nil {
				return err
			}
		}
	}
	return nil
}
