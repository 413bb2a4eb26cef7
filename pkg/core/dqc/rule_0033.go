package dqc

import (
	"time"

	"dqc_validation/pkg/core/xbrl"
)

// documentPeriod is one entity's DocumentPeriodEndDate fact plus whether its
// value agrees with its own context. A disagreeing fact cannot anchor other
// facts' contexts; the value mismatch itself is reported separately.
type documentPeriod struct {
	fact  *xbrl.Fact
	valid bool
}

// schemaEndOfDay parses a date-valued fact and returns the end-of-day time
// it denotes, which per XBRL 2.1 is midnight of the following day.
func schemaEndOfDay(f *xbrl.Fact) (time.Time, bool) {
	val, err := time.Parse("2006-01-02", f.Value)
	if err != nil {
		return time.Time{}, false
	}
	return val.AddDate(0, 0, 1), true
}

func withinDays(a, b time.Time, days int) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(diff/(24*time.Hour)) <= days
}

// ignoredReportingPeriodConcepts are DEI concepts legitimately reported
// outside the document's reporting period, such as shares outstanding as of
// the cover date.
var ignoredReportingPeriodConcepts = []string{
	"EntityCommonStockSharesOutstanding",
	"EntityPublicFloat",
	"DocumentPeriodEndDate",
	"EntityNumberOfEmployees",
	"EntityListingDepositoryReceiptRatio",
}

// checkReportingPeriodContexts verifies that every DEI fact uses the same
// period end date as the entity's DocumentPeriodEndDate context
// (DQC.US.0033.2).
func (v *Validator) checkReportingPeriodContexts() error {
	axis := v.legalEntityAxis()

	periods := make(map[xbrl.QName]documentPeriod)
	for _, f := range v.instance.FactsByConcept(v.concept("dei", "DocumentPeriodEndDate"), true) {
		valid := false
		if end, ok := schemaEndOfDay(f); ok {
			valid = withinDays(end, f.Period.End, 3)
		}
		periods[xbrl.EntityOf(f, axis)] = documentPeriod{fact: f, valid: valid}
	}
	if len(periods) == 0 {
		return nil
	}

	facts := v.instance.FactsInNamespace(v.namespaces["dei"], ignoredReportingPeriodConcepts...)
	for _, f := range facts {
		period, ok := entityLookup(periods, f, axis, v.instance.Taxonomy)
		if !ok || !period.valid {
			continue
		}
		if f.Period.EndDate().Equal(period.fact.Period.EndDate()) {
			continue
		}
		args := Args{"fact1": f, "dei:DocumentPeriodEndDate": period.fact}
		if err := v.reporter.Report("DQC.US.0033.2", args); err != nil {
			return err
		}
	}
	return nil
}
