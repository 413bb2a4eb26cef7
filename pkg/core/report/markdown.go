package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"dqc_validation/pkg/core/dqc"
)

// Markdown renders the findings of one validation run as a Markdown
// document: one section per headline finding with its informational children
// as nested lists.
func Markdown(documentID string, diags []*dqc.Diagnostic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Validation report: %s\n\n", documentID)
	if len(diags) == 0 {
		sb.WriteString("No findings.\n")
		return sb.String()
	}
	fmt.Fprintf(&sb, "%d finding(s).\n\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(&sb, "## %s\n\n", d.RuleID)
		sb.WriteString(d.Message)
		sb.WriteString("\n\n")
		writeChildren(&sb, d.Children, 0)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeChildren(sb *strings.Builder, children []*dqc.Diagnostic, depth int) {
	for _, c := range children {
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(sb, "- %s: %s\n", c.Severity, c.Message)
		writeChildren(sb, c.Children, depth+1)
	}
}

// HTML renders the findings as an HTML fragment via Goldmark.
func HTML(documentID string, diags []*dqc.Diagnostic) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(documentID, diags)), &buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}

// ValidateMarkdown checks that the report parses as Markdown. Goldmark is
// very permissive, so this is a basic sanity check.
func ValidateMarkdown(input string) bool {
	parser := goldmark.DefaultParser()
	reader := text.NewReader([]byte(input))
	doc := parser.Parse(reader)
	return doc != nil
}
