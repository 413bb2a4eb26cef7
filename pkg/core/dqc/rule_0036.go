package dqc

// checkDocumentPeriodEndDateValue verifies that the value of every
// DocumentPeriodEndDate fact agrees with the end date of its own context
// within 3 days (DQC.US.0036.1). Unparseable values are left to schema
// validation.
func (v *Validator) checkDocumentPeriodEndDateValue() error {
	for _, f := range v.instance.FactsByConcept(v.concept("dei", "DocumentPeriodEndDate"), true) {
		end, ok := schemaEndOfDay(f)
		if !ok || withinDays(end, f.Period.End, 3) {
			continue
		}
		if err := v.reporter.Report("DQC.US.0036.1", Args{"fact1": f}); err != nil {
			return err
		}
	}
	return nil
}
