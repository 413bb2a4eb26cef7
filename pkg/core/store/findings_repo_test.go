package store

import (
	"testing"

	"dqc_validation/pkg/core/dqc"
	"dqc_validation/pkg/core/xbrl"
)

func TestFlatten(t *testing.T) {
	fact := &xbrl.Fact{ID: "f7"}
	diags := []*dqc.Diagnostic{
		{
			RuleID:   "DQC.US.0015.34",
			Severity: dqc.SeverityError,
			Message:  "[DQC.US.0015.34] Assets has a value of -5",
			Location: fact,
			Children: []*dqc.Diagnostic{
				{Severity: dqc.SeverityOther, Message: "Period: 2020-12-31"},
			},
		},
	}

	findings := Flatten(diags)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.RuleID != "DQC.US.0015.34" || f.Severity != "ERROR" || f.FactID != "f7" {
		t.Errorf("unexpected finding %+v", f)
	}
	if len(f.Children) != 1 || f.Children[0].Severity != "OTHER" {
		t.Errorf("unexpected children %+v", f.Children)
	}
	if f.Children[0].FactID != "" {
		t.Errorf("child without location should have no fact id, got %q", f.Children[0].FactID)
	}
}
