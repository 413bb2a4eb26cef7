package dqc

import (
	"time"

	"dqc_validation/pkg/core/xbrl"
)

// reportingPeriodEnd is the DocumentPeriodEndDate fact of one legal entity
// together with its context end date.
type reportingPeriodEnd struct {
	fact *xbrl.Fact
	end  time.Time
}

// reportingPeriodEnds collects the reporting period end per legal entity,
// keeping the latest context end when an entity reports several. The context
// end date is authoritative here, not the fact's value; value/context
// mismatches are covered separately.
func (v *Validator) reportingPeriodEnds(axis *xbrl.Concept) map[xbrl.QName]reportingPeriodEnd {
	ends := make(map[xbrl.QName]reportingPeriodEnd)
	for _, f := range v.instance.FactsByConcept(v.concept("dei", "DocumentPeriodEndDate"), true) {
		entity := xbrl.EntityOf(f, axis)
		end := f.Period.End
		if known, ok := ends[entity]; ok && !known.end.Before(end) {
			continue
		}
		ends[entity] = reportingPeriodEnd{fact: f, end: end}
	}
	return ends
}

// checkContextDatesAfterPeriodEnd covers the DQC.US.0005 family: facts whose
// context must not end before (or, for subsequent events and forecasts, must
// end strictly after) the entity's reporting period end date.
func (v *Validator) checkContextDatesAfterPeriodEnd() error {
	axis := v.legalEntityAxis()
	ends := v.reportingPeriodEnds(axis)
	if len(ends) == 0 {
		return nil
	}

	onOrAfter := func(end, periodEnd time.Time) bool { return !end.Before(periodEnd) }
	after := func(end, periodEnd time.Time) bool { return end.After(periodEnd) }

	shares := v.instance.FactsByConcept(v.concept("dei", "EntityCommonStockSharesOutstanding"), true)
	if err := v.checkFactsAgainstPeriodEnd("DQC.US.0005.17", shares, ends, axis, onOrAfter, nil); err != nil {
		return err
	}

	if subsequentEvents := v.concept("us-gaap", "SubsequentEventTypeAxis"); subsequentEvents != nil {
		facts := v.instance.FactsWithExplicitDimension(subsequentEvents)
		extra := Args{"us-gaap:SubsequentEventTypeAxis": subsequentEvents}
		if err := v.checkFactsAgainstPeriodEnd("DQC.US.0005.48", facts, ends, axis, after, extra); err != nil {
			return err
		}
	}

	if scenario := v.concept("us-gaap", "StatementScenarioAxis"); scenario != nil {
		forecast := v.concept("us-gaap", "ScenarioForecastMember")
		facts := v.instance.FactsWithDimensionValue(scenario, forecast)
		extra := Args{
			"us-gaap:StatementScenarioAxis":  scenario,
			"us-gaap:ScenarioForecastMember": forecast,
		}
		if err := v.checkFactsAgainstPeriodEnd("DQC.US.0005.49", facts, ends, axis, after, extra); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) checkFactsAgainstPeriodEnd(ruleID string, facts []*xbrl.Fact, ends map[xbrl.QName]reportingPeriodEnd, axis *xbrl.Concept, ok func(end, periodEnd time.Time) bool, extra Args) error {
	for _, f := range facts {
		periodEnd, found := entityLookup(ends, f, axis, v.instance.Taxonomy)
		if !found {
			continue
		}
		if ok(f.Period.EndDate(), periodEnd.end) {
			continue
		}
		args := Args{"fact1": f, "dei:DocumentPeriodEndDate": periodEnd.fact}
		for name, val := range extra {
			args[name] = val
		}
		if err := v.reporter.Report(ruleID, args); err != nil {
			return err
		}
	}
	return nil
}
