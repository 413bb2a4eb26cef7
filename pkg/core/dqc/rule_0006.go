package dqc

import (
	"strings"

	"dqc_validation/pkg/core/xbrl"
)

// textBlockItemType is the data type registry type all text block concepts
// derive from.
var textBlockItemType = xbrl.QName{
	Namespace: "http://www.xbrl.org/dtr/type/non-numeric",
	LocalName: "textBlockItemType",
}

// textBlockFacts returns the facts whose concept's item type is, or derives
// from, textBlockItemType. The per-concept answer is cached; text blocks
// repeat heavily across a filing's contexts.
func (v *Validator) textBlockFacts() []*xbrl.Fact {
	tax := v.instance.Taxonomy
	if !tax.HasType(textBlockItemType) {
		return nil
	}
	cache := make(map[*xbrl.Concept]bool)
	var out []*xbrl.Fact
	for _, f := range v.instance.Facts() {
		isTextBlock, ok := cache[f.Concept]
		if !ok {
			isTextBlock = tax.TypeDerivedFrom(f.Concept.ItemType, textBlockItemType)
			cache[f.Concept] = isTextBlock
		}
		if isTextBlock {
			out = append(out, f)
		}
	}
	return out
}

// deiDurationConcepts are the document and entity information concepts whose
// contexts must span the fiscal period the filing declares.
var deiDurationConcepts = []string{
	"AmendmentDescription",
	"AmendmentFlag",
	"CurrentFiscalYearEndDate",
	"DocumentPeriodEndDate",
	"DocumentFiscalYearFocus",
	"DocumentFiscalPeriodFocus",
	"DocumentType",
	"EntityRegistrantName",
	"EntityCentralIndexKey",
	"EntityFilerCategory",
}

// checkDocumentPeriodDurations verifies that DEI and text block facts cover
// a period consistent with the declared fiscal period focus (DQC.US.0006.14).
// Transition period filings change the fiscal year and may legitimately
// cover unusual spans, so form types ending in T (or T/A) are not tested,
// and neither are documents without exactly one DocumentType fact.
func (v *Validator) checkDocumentPeriodDurations() error {
	documentTypes := v.instance.FactsByConcept(v.concept("dei", "DocumentType"), true)
	if len(documentTypes) != 1 {
		return nil
	}
	if docType := documentTypes[0].Value; strings.HasSuffix(docType, "T") || strings.HasSuffix(docType, "T/A") {
		return nil
	}

	axis := v.legalEntityAxis()
	focusByEntity := make(map[xbrl.QName]*xbrl.Fact)
	for _, f := range v.instance.FactsByConcept(v.concept("dei", "DocumentFiscalPeriodFocus"), true) {
		focusByEntity[xbrl.EntityOf(f, axis)] = f
	}
	if len(focusByEntity) == 0 {
		return nil
	}

	for _, name := range deiDurationConcepts {
		facts := v.instance.FactsByConcept(v.concept("dei", name), true)
		if err := v.checkDurations(facts, focusByEntity, axis); err != nil {
			return err
		}
	}
	return v.checkDurations(v.textBlockFacts(), focusByEntity, axis)
}

func (v *Validator) checkDurations(facts []*xbrl.Fact, focusByEntity map[xbrl.QName]*xbrl.Fact, axis *xbrl.Concept) error {
	for _, f := range facts {
		focus, ok := entityLookup(focusByEntity, f, axis, v.instance.Taxonomy)
		if !ok {
			continue
		}
		allowed, ok := v.tables.PeriodFocusDurations[focus.Value]
		if !ok {
			continue
		}
		days := f.Period.DurationDays()
		if days >= allowed.Min && days <= allowed.Max {
			continue
		}
		args := Args{"fact1": f, "dei:DocumentFiscalPeriodFocus": focus}
		if err := v.reporter.Report("DQC.US.0006.14", args); err != nil {
			return err
		}
	}
	return nil
}
