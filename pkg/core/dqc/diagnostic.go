package dqc

import "dqc_validation/pkg/core/xbrl"

// Severity of a diagnostic. Violations are errors; the hint and property
// blocks attached beneath them are informational.
type Severity int

const (
	SeverityError Severity = iota
	SeverityInfo
	SeverityOther
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityInfo:
		return "INFO"
	default:
		return "OTHER"
	}
}

// Param is one resolved placeholder of a diagnostic message: the rendered
// value plus the tooltip and locations downstream tooling uses to navigate
// back into the document and taxonomy.
type Param struct {
	Name    string     `json:"name"`
	Value   string     `json:"value"`
	Tooltip string     `json:"tooltip,omitempty"`
	FactID  string     `json:"factId,omitempty"` // source location within the document
	Def     xbrl.QName `json:"def,omitempty"`    // defining concept, for taxonomy navigation
}

// Diagnostic is a structured validation finding: the headline message with
// the rule code embedded, the primary fact as location, the resolved
// message parameters, and ordered informational children.
type Diagnostic struct {
	RuleID   string        `json:"ruleId,omitempty"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Location *xbrl.Fact    `json:"-"`
	Params   []Param       `json:"params,omitempty"`
	Children []*Diagnostic `json:"children,omitempty"`
}

// Sink receives diagnostics as they are found. Implementations must not
// mutate them.
type Sink interface {
	Report(d *Diagnostic)
}

// Collector is an in-memory sink preserving report order.
type Collector struct {
	Diagnostics []*Diagnostic
}

func (c *Collector) Report(d *Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}
