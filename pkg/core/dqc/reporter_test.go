package dqc

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"dqc_validation/pkg/core/dqc/ruledata"
	"dqc_validation/pkg/core/xbrl"
)

func TestFamilyCode(t *testing.T) {
	cases := map[string]string{
		"DQC.US.0015.34": "DQC.US.0015",
		"DQC.US.0004.16": "DQC.US.0004",
		"DQC.US.0015":    "DQC.US",
	}
	for in, want := range cases {
		if got := familyCode(in); got != want {
			t.Errorf("familyCode(%s) expected %s, got %s", in, want, got)
		}
	}
}

func TestReportBuildsDiagnosticTree(t *testing.T) {
	tables, err := ruledata.Load()
	if err != nil {
		t.Fatalf("load tables failed: %v", err)
	}
	tax, fact1 := messageTestFact()
	fact2 := *fact1
	fact2.ID = "f2"
	fact2.Numeric = decimal.RequireFromString("999")

	var collector Collector
	r := NewReporter(tax, tables.Templates, nil, &collector)
	if err := r.Report("DQC.US.0004.16", Args{"fact1": fact1, "fact2": &fact2}); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(collector.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(collector.Diagnostics))
	}

	d := collector.Diagnostics[0]
	if d.RuleID != "DQC.US.0004.16" || d.Severity != SeverityError {
		t.Errorf("unexpected headline %+v", d)
	}
	if !strings.HasPrefix(d.Message, "[DQC.US.0004.16] ") {
		t.Errorf("headline should embed the rule code, got %q", d.Message)
	}
	if d.Location != fact1 {
		t.Error("headline should be located at fact1")
	}

	// The 0004.16 template carries a hint, reported before the property block.
	if len(d.Children) != 2 {
		t.Fatalf("expected hint and property block, got %d children", len(d.Children))
	}
	if d.Children[0].Severity != SeverityInfo {
		t.Errorf("hint severity expected INFO, got %s", d.Children[0].Severity)
	}
	properties := d.Children[1]
	if properties.Severity != SeverityOther {
		t.Errorf("property block severity expected OTHER, got %s", properties.Severity)
	}
	// Period, dimensions, unit and rule version lines.
	if len(properties.Children) != 4 {
		t.Errorf("expected 4 property lines, got %d", len(properties.Children))
	}
	if !strings.HasPrefix(properties.Message, "The properties of this us-gaap:Assets fact are:") {
		t.Errorf("unexpected property header %q", properties.Message)
	}
}

func TestReportSuppression(t *testing.T) {
	tables, err := ruledata.Load()
	if err != nil {
		t.Fatalf("load tables failed: %v", err)
	}
	tax, fact := messageTestFact()

	var collector Collector
	suppress := map[string]bool{"DQC.US.0015": true}
	r := NewReporter(tax, tables.Templates, suppress, &collector)

	// Family suppression covers every numbered test of the family.
	if err := r.Report("DQC.US.0015.34", Args{"fact1": fact}); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if len(collector.Diagnostics) != 0 {
		t.Errorf("suppressed rule should not report, got %d diagnostics", len(collector.Diagnostics))
	}
}

func TestLookupFamilyFallback(t *testing.T) {
	tables, err := ruledata.Load()
	if err != nil {
		t.Fatalf("load tables failed: %v", err)
	}
	r := NewReporter(xbrl.NewTaxonomy(), tables.Templates, nil, &Collector{})

	// DQC.US.0009.24 has no exact entry; the family template serves it.
	if _, err := r.lookup("DQC.US.0009.24"); err != nil {
		t.Errorf("family fallback failed: %v", err)
	}
	if _, err := r.lookup("DQC.US.9999.1"); err == nil {
		t.Error("expected error for unknown rule code")
	}

	if err := r.CheckTemplates([]string{"DQC.US.9999.1"}); err == nil {
		t.Error("CheckTemplates should fail for unknown rule codes")
	}
}
