package dqc

import (
	"fmt"
	"regexp"
	"strings"

	"dqc_validation/pkg/core/dqc/ruledata"
	"dqc_validation/pkg/core/xbrl"
)

var ruleCodePattern = regexp.MustCompile(`^DQC\.US\.[0-9]{4}(\.[0-9]+)?$`)

// ParseSuppressedCodes parses a |-delimited list of rule codes. A code naming
// a whole family (DQC.US.0015) suppresses every numbered test of that family.
func ParseSuppressedCodes(list string) (map[string]bool, error) {
	suppress := make(map[string]bool)
	for _, code := range strings.Split(list, "|") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if !ruleCodePattern.MatchString(code) {
			return nil, fmt.Errorf("invalid rule code %q in suppression list", code)
		}
		suppress[code] = true
	}
	return suppress, nil
}

// Options configure a validation run.
type Options struct {
	// SuppressErrors is a |-delimited list of rule codes or families whose
	// findings are not reported.
	SuppressErrors string
}

// fixedRules are the rule codes evaluated unconditionally; the table-driven
// families contribute their per-row codes on top of these.
var fixedRules = []string{
	"DQC.US.0004.16",
	"DQC.US.0005.17",
	"DQC.US.0005.48",
	"DQC.US.0005.49",
	"DQC.US.0006.14",
	"DQC.US.0033.2",
	"DQC.US.0036.1",
}

// Validator evaluates the rule catalogue against one instance document.
type Validator struct {
	instance   *xbrl.Instance
	tables     *ruledata.Tables
	reporter   *Reporter
	namespaces map[string]string
}

// NewValidator prepares a validation run. Every rule code the run can emit is
// checked against the template table up front, so a missing or malformed
// template fails here rather than at the first finding.
func NewValidator(instance *xbrl.Instance, tables *ruledata.Tables, opts Options, sink Sink) (*Validator, error) {
	suppress, err := ParseSuppressedCodes(opts.SuppressErrors)
	if err != nil {
		return nil, err
	}
	v := &Validator{
		instance:   instance,
		tables:     tables,
		reporter:   NewReporter(instance.Taxonomy, tables.Templates, suppress, sink),
		namespaces: StandardNamespaces(instance.Taxonomy),
	}

	ruleIDs := append([]string{}, fixedRules...)
	for _, pair := range tables.LessOrEqualPairs {
		ruleIDs = append(ruleIDs, pair.RuleID)
	}
	for _, rule := range tables.NonNegative {
		ruleIDs = append(ruleIDs, rule.RuleID)
	}
	if err := v.reporter.CheckTemplates(ruleIDs); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate runs every rule family in catalogue order. The rules only apply
// to SEC filings, recognized by a loaded DEI schema; anything else passes
// without findings.
func (v *Validator) Validate() error {
	if v.namespaces["dei"] == "" {
		return nil
	}
	checks := []func() error{
		v.checkBalanceSheetBalance,
		v.checkContextDatesAfterPeriodEnd,
		v.checkDocumentPeriodDurations,
		v.checkElementValueRelations,
		v.checkNonNegativeValues,
		v.checkReportingPeriodContexts,
		v.checkDocumentPeriodEndDateValue,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// concept resolves a local name against the matched standard namespace of
// the given prefix. Nil when either the schema or the concept is absent,
// which downstream fact queries treat as an empty fact set.
func (v *Validator) concept(prefix, localName string) *xbrl.Concept {
	ns, ok := v.namespaces[prefix]
	if !ok {
		return nil
	}
	return v.instance.Taxonomy.ResolveConcept(xbrl.QName{Namespace: ns, LocalName: localName})
}

func (v *Validator) legalEntityAxis() *xbrl.Concept {
	return v.concept("dei", "LegalEntityAxis")
}

// entityLookup reads a per-entity table for the entity the fact reports on
// the given axis, falling back to the entry of the axis default member.
func entityLookup[T any](m map[xbrl.QName]T, f *xbrl.Fact, axis *xbrl.Concept, tax *xbrl.Taxonomy) (T, bool) {
	if val, ok := m[xbrl.EntityOf(f, axis)]; ok {
		return val, true
	}
	var def xbrl.QName
	if axis != nil {
		def = tax.DefaultMember(axis.Name)
	}
	val, ok := m[def]
	return val, ok
}
