package report

import (
	"strings"
	"testing"

	"dqc_validation/pkg/core/dqc"
)

func testDiagnostics() []*dqc.Diagnostic {
	return []*dqc.Diagnostic{
		{
			RuleID:   "DQC.US.0004.16",
			Severity: dqc.SeverityError,
			Message:  "[DQC.US.0004.16] Assets is not equal to LiabilitiesAndStockholdersEquity.",
			Children: []*dqc.Diagnostic{
				{Severity: dqc.SeverityOther, Message: "Period: 2020-12-31"},
			},
		},
	}
}

func TestMarkdownReport(t *testing.T) {
	md := Markdown("test-filing", testDiagnostics())

	if !strings.Contains(md, "# Validation report: test-filing") {
		t.Errorf("missing report header:\n%s", md)
	}
	if !strings.Contains(md, "## DQC.US.0004.16") {
		t.Errorf("missing finding section:\n%s", md)
	}
	if !strings.Contains(md, "- OTHER: Period: 2020-12-31") {
		t.Errorf("missing child line:\n%s", md)
	}
	if !ValidateMarkdown(md) {
		t.Error("report should be valid Markdown")
	}
}

func TestMarkdownReportEmpty(t *testing.T) {
	md := Markdown("clean-filing", nil)
	if !strings.Contains(md, "No findings.") {
		t.Errorf("empty report should say so:\n%s", md)
	}
}

func TestHTMLReport(t *testing.T) {
	html, err := HTML("test-filing", testDiagnostics())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "DQC.US.0004.16") {
		t.Errorf("unexpected HTML output:\n%s", html)
	}
}
