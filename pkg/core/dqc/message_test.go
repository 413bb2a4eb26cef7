package dqc

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dqc_validation/pkg/core/xbrl"
)

const (
	gaapNS = "http://fasb.org/us-gaap/2021-01-31"
	isoNS  = "http://www.xbrl.org/2003/iso4217"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func messageTestFact() (*xbrl.Taxonomy, *xbrl.Fact) {
	tax := xbrl.NewTaxonomy()
	tax.DeclarePrefix("us-gaap", gaapNS)
	tax.DeclarePrefix("iso4217", isoNS)

	assets := tax.AddConcept(&xbrl.Concept{
		Name:    xbrl.QName{Namespace: gaapNS, LocalName: "Assets"},
		Numeric: true,
		Labels:  []xbrl.Label{{Lang: "en", Role: xbrl.RoleLabel, Text: "Assets, Total"}},
	})

	fact := &xbrl.Fact{
		ID:      "f1",
		Concept: assets,
		Period:  xbrl.Instant(date(2021, 1, 1)),
		Dimensions: map[xbrl.QName]xbrl.QName{
			{Namespace: gaapNS, LocalName: "StatementEquityComponentsAxis"}: {Namespace: gaapNS, LocalName: "TreasuryStockCommonMember"},
		},
		Unit:     &xbrl.Unit{Numerator: []xbrl.QName{{Namespace: isoNS, LocalName: "USD"}}},
		Value:    "1234567",
		Numeric:  decimal.RequireFromString("1234567"),
		Decimals: xbrl.DecimalsAt(-3),
	}
	return tax, fact
}

func renderTemplate(t *testing.T, tax *xbrl.Taxonomy, text string, args Args) (string, []Param) {
	t.Helper()
	tmpl, err := parseMsgTemplate(text)
	if err != nil {
		t.Fatalf("parse %q failed: %v", text, err)
	}
	msg, params, err := tmpl.render(tax, args)
	if err != nil {
		t.Fatalf("render %q failed: %v", text, err)
	}
	return msg, params
}

func TestRenderFactProperties(t *testing.T) {
	tax, fact := messageTestFact()
	args := Args{"fact1": fact}

	msg, params := renderTemplate(t, tax, "${fact1.name} = ${fact1.value}", args)
	if msg != "us-gaap:Assets = 1,234,567" {
		t.Errorf("expected \"us-gaap:Assets = 1,234,567\", got %q", msg)
	}
	if len(params) != 2 || params[0].FactID != "f1" {
		t.Errorf("expected 2 params located at f1, got %+v", params)
	}

	msg, _ = renderTemplate(t, tax, "as of ${fact1.period}", args)
	if msg != "as of 2020-12-31" {
		t.Errorf("expected instant 2020-12-31, got %q", msg)
	}

	msg, _ = renderTemplate(t, tax, "${fact1.label}", args)
	if msg != "Assets, Total" {
		t.Errorf("expected standard label, got %q", msg)
	}

	msg, params = renderTemplate(t, tax, "${fact1.dimensions}", args)
	if msg != "us-gaap:StatementEquityComponentsAxis = us-gaap:TreasuryStockCommonMember" {
		t.Errorf("unexpected dimensions rendering %q", msg)
	}
	if len(params) != 2 {
		t.Errorf("expected dim and member params, got %d", len(params))
	}

	msg, _ = renderTemplate(t, tax, "${fact1.unit}", args)
	if msg != "USD" {
		t.Errorf("expected USD, got %q", msg)
	}

	msg, _ = renderTemplate(t, tax, "${fact1.decimals}", args)
	if msg != "-3" {
		t.Errorf("expected -3, got %q", msg)
	}
}

func TestRenderPeriodProperties(t *testing.T) {
	tax, fact := messageTestFact()
	duration := *fact
	duration.Period = xbrl.Duration(date(2020, 1, 1), date(2021, 1, 1))
	args := Args{"fact1": &duration}

	msg, _ := renderTemplate(t, tax, "${fact1.period.startDate} to ${fact1.period.endDate} (${fact1.period.durationDays} days)", args)
	if msg != "2020-01-01 to 2020-12-31 (366 days)" {
		t.Errorf("unexpected rendering %q", msg)
	}

	// Instant facts expose endDate but not startDate.
	args = Args{"fact1": fact}
	msg, _ = renderTemplate(t, tax, "${fact1.period.endDate}", args)
	if msg != "2020-12-31" {
		t.Errorf("instant endDate expected 2020-12-31, got %q", msg)
	}
	tmpl, _ := parseMsgTemplate("${fact1.period.startDate}")
	if _, _, err := tmpl.render(tax, args); err == nil {
		t.Error("expected error for startDate of an instant period")
	}
}

func TestRenderSpecialValues(t *testing.T) {
	tax, fact := messageTestFact()

	nilFact := *fact
	nilFact.Nil = true
	msg, _ := renderTemplate(t, tax, "${fact1.value}", Args{"fact1": &nilFact})
	if msg != "nil" {
		t.Errorf("nil fact value expected \"nil\", got %q", msg)
	}

	plain := *fact
	plain.Dimensions = nil
	plain.Unit = nil
	msg, _ = renderTemplate(t, tax, "${fact1.dimensions} / ${fact1.unit}", Args{"fact1": &plain})
	if msg != "none / none" {
		t.Errorf("expected \"none / none\", got %q", msg)
	}

	msg, params := renderTemplate(t, tax, "version ${ruleVersion}", Args{"ruleVersion": RuleVersion{Version: "2.0.0", ReleaseDate: "2016-10-11"}})
	if msg != "version 2.0.0" {
		t.Errorf("expected \"version 2.0.0\", got %q", msg)
	}
	if len(params) != 1 || params[0].Tooltip != "2016-10-11" {
		t.Errorf("rule version param should carry the release date, got %+v", params)
	}

	msg, _ = renderTemplate(t, tax, "${fact1.fact.name}", Args{"fact1": fact})
	if msg != "us-gaap:Assets" {
		t.Errorf("the redundant fact path element should be skipped, got %q", msg)
	}
}

func TestRenderErrors(t *testing.T) {
	tax, fact := messageTestFact()

	if _, err := parseMsgTemplate("broken ${fact1.name"); err == nil {
		t.Error("expected error for unterminated placeholder")
	}

	tmpl, _ := parseMsgTemplate("${fact2.name}")
	if _, _, err := tmpl.render(tax, Args{"fact1": fact}); err == nil {
		t.Error("expected error for missing parameter")
	} else if !strings.Contains(err.Error(), "missing value for parameter fact2") {
		t.Errorf("unexpected error message %q", err)
	}

	tmpl, _ = parseMsgTemplate("${fact1.color}")
	if _, _, err := tmpl.render(tax, Args{"fact1": fact}); err == nil {
		t.Error("expected error for unknown fact property")
	}
}

func TestGroupThousands(t *testing.T) {
	cases := map[string]string{
		"0":           "0",
		"999":         "999",
		"1000":        "1,000",
		"1234567":     "1,234,567",
		"-1234567.89": "-1,234,567.89",
	}
	for in, want := range cases {
		if got := groupThousands(decimal.RequireFromString(in)); got != want {
			t.Errorf("groupThousands(%s) expected %s, got %s", in, want, got)
		}
	}
}
