package dqc

import (
	"fmt"
	"strconv"
	"strings"

	"dqc_validation/pkg/core/dqc/ruledata"
	"dqc_validation/pkg/core/xbrl"
)

// propertyTemplates are the informational lines attached beneath every
// headline diagnostic, describing the primary fact.
var propertyTemplates = []string{
	"The properties of this ${fact1.name} fact are:",
	"Period: ${fact1.period}",
	"Dimensions: ${fact1.dimensions}",
	"Unit: ${fact1.unit}",
	"Rule version: ${ruleVersion}",
}

// Reporter turns rule findings into diagnostic trees. Templates are resolved
// by exact rule code first and by rule family as a fallback, so a table
// shipping one entry per family still covers every numbered variant.
type Reporter struct {
	tax       *xbrl.Taxonomy
	templates map[string]ruledata.MessageTemplate
	suppress  map[string]bool
	sink      Sink
}

func NewReporter(tax *xbrl.Taxonomy, templates map[string]ruledata.MessageTemplate, suppress map[string]bool, sink Sink) *Reporter {
	return &Reporter{tax: tax, templates: templates, suppress: suppress, sink: sink}
}

// familyCode strips a trailing numeric variant from a rule code:
// DQC.US.0015.3 belongs to family DQC.US.0015. Codes without a numeric tail
// are their own family.
func familyCode(ruleID string) string {
	dot := strings.LastIndex(ruleID, ".")
	if dot < 0 {
		return ruleID
	}
	if _, err := strconv.Atoi(ruleID[dot+1:]); err != nil {
		return ruleID
	}
	return ruleID[:dot]
}

func (r *Reporter) suppressed(ruleID string) bool {
	return r.suppress[ruleID] || r.suppress[familyCode(ruleID)]
}

func (r *Reporter) lookup(ruleID string) (ruledata.MessageTemplate, error) {
	if tmpl, ok := r.templates[ruleID]; ok {
		return tmpl, nil
	}
	if tmpl, ok := r.templates[familyCode(ruleID)]; ok {
		return tmpl, nil
	}
	return ruledata.MessageTemplate{}, fmt.Errorf("no message template for rule %s", ruleID)
}

// CheckTemplates verifies a template exists and parses for every given rule
// code, so a broken table fails the run up front instead of at the first
// finding.
func (r *Reporter) CheckTemplates(ruleIDs []string) error {
	for _, id := range ruleIDs {
		tmpl, err := r.lookup(id)
		if err != nil {
			return err
		}
		if _, err := parseMsgTemplate(tmpl.Msg); err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
		if tmpl.Hint != "" {
			if _, err := parseMsgTemplate(tmpl.Hint); err != nil {
				return fmt.Errorf("rule %s hint: %w", id, err)
			}
		}
	}
	for _, text := range propertyTemplates {
		if _, err := parseMsgTemplate(text); err != nil {
			return fmt.Errorf("property template: %w", err)
		}
	}
	return nil
}

// Report builds and emits the diagnostic tree for one rule finding. The args
// must include fact1, the primary fact the finding is located at. Suppressed
// rule codes are checked before any message work.
func (r *Reporter) Report(ruleID string, args Args) error {
	if r.suppressed(ruleID) {
		return nil
	}
	tmpl, err := r.lookup(ruleID)
	if err != nil {
		return err
	}
	args["ruleVersion"] = RuleVersion{
		Version:     tmpl.Version[0],
		ReleaseDate: tmpl.Version[1],
		URI:         tmpl.Version[2],
	}

	headline, err := r.renderText(tmpl.Msg, args)
	if err != nil {
		return fmt.Errorf("rule %s: %w", ruleID, err)
	}
	headline.RuleID = ruleID
	headline.Severity = SeverityError
	headline.Message = "[" + ruleID + "] " + headline.Message
	if f, ok := args["fact1"].(*xbrl.Fact); ok {
		headline.Location = f
	}

	if tmpl.Hint != "" {
		hint, err := r.renderText(tmpl.Hint, args)
		if err != nil {
			return fmt.Errorf("rule %s: %w", ruleID, err)
		}
		hint.Severity = SeverityInfo
		headline.Children = append(headline.Children, hint)
	}

	properties, err := r.renderText(propertyTemplates[0], args)
	if err != nil {
		return fmt.Errorf("rule %s: %w", ruleID, err)
	}
	properties.Severity = SeverityOther
	for _, line := range propertyTemplates[1:] {
		child, err := r.renderText(line, args)
		if err != nil {
			return fmt.Errorf("rule %s: %w", ruleID, err)
		}
		child.Severity = SeverityOther
		properties.Children = append(properties.Children, child)
	}
	headline.Children = append(headline.Children, properties)

	r.sink.Report(headline)
	return nil
}

func (r *Reporter) renderText(text string, args Args) (*Diagnostic, error) {
	tmpl, err := parseMsgTemplate(text)
	if err != nil {
		return nil, err
	}
	message, params, err := tmpl.render(r.tax, args)
	if err != nil {
		return nil, err
	}
	return &Diagnostic{Message: message, Params: params}, nil
}
