package dqc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"dqc_validation/pkg/core/xbrl"
)

// RuleVersion identifies the rule release a diagnostic was produced by.
type RuleVersion struct {
	Version     string
	ReleaseDate string
	URI         string
}

// Args are the named arguments a rule supplies for message construction.
// Supported kinds are *xbrl.Fact, *xbrl.Concept, RuleVersion, and opaque
// scalars; each kind exposes a fixed property set, and referencing anything
// outside it fails the build rather than dropping information.
type Args map[string]any

// msgTemplate is a parsed message template: literal runs interleaved with
// ${arg.property[.subproperty]} placeholders.
type msgTemplate struct {
	parts []msgPart
}

type msgPart struct {
	literal string
	arg     string
	path    []string
}

func parseMsgTemplate(text string) (*msgTemplate, error) {
	t := &msgTemplate{}
	for {
		start := strings.Index(text, "${")
		if start < 0 {
			if text != "" {
				t.parts = append(t.parts, msgPart{literal: text})
			}
			return t, nil
		}
		if start > 0 {
			t.parts = append(t.parts, msgPart{literal: text[:start]})
		}
		end := strings.Index(text[start:], "}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated placeholder in template %q", text)
		}
		ref := text[start+2 : start+end]
		pieces := strings.Split(ref, ".")
		if pieces[0] == "" {
			return nil, fmt.Errorf("empty placeholder in template %q", text)
		}
		t.parts = append(t.parts, msgPart{arg: pieces[0], path: pieces[1:]})
		text = text[start+end+1:]
	}
}

func (t *msgTemplate) render(tax *xbrl.Taxonomy, args Args) (string, []Param, error) {
	var sb strings.Builder
	var params []Param
	for _, part := range t.parts {
		if part.arg == "" {
			sb.WriteString(part.literal)
			continue
		}
		val, ok := args[part.arg]
		if !ok {
			return "", nil, fmt.Errorf("missing value for parameter %s", part.arg)
		}
		text, resolved, err := resolvePlaceholder(tax, part, val)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(text)
		params = append(params, resolved...)
	}
	return sb.String(), params, nil
}

func placeholderName(part msgPart) string {
	if len(part.path) == 0 {
		return part.arg
	}
	return part.arg + "." + strings.Join(part.path, ".")
}

func resolvePlaceholder(tax *xbrl.Taxonomy, part msgPart, val any) (string, []Param, error) {
	switch arg := val.(type) {
	case *xbrl.Fact:
		return resolveFactProperty(tax, part, arg)
	case *xbrl.Concept:
		return resolveConceptProperty(part, arg)
	case RuleVersion:
		return arg.Version, []Param{{Name: placeholderName(part), Value: arg.Version, Tooltip: arg.ReleaseDate}}, nil
	default:
		text := fmt.Sprintf("%v", val)
		return text, []Param{{Name: placeholderName(part), Value: text}}, nil
	}
}

func resolveFactProperty(tax *xbrl.Taxonomy, part msgPart, f *xbrl.Fact) (string, []Param, error) {
	path := part.path
	if len(path) > 0 && path[0] == "fact" {
		path = path[1:]
	}
	if len(path) == 0 {
		return "", nil, fmt.Errorf("parameter %s: fact arguments need a property", part.arg)
	}
	name := placeholderName(part)
	switch path[0] {
	case "name":
		v := f.Concept.PrefixedName()
		return v, []Param{{Name: name, Value: v, Tooltip: f.Concept.Name.String(), FactID: f.ID}}, nil
	case "localName":
		v := f.Concept.Name.LocalName
		return v, []Param{{Name: name, Value: v, Tooltip: f.Concept.Name.String(), FactID: f.ID}}, nil
	case "label":
		v := f.Concept.StandardLabel()
		return v, []Param{{Name: name, Value: v, Tooltip: f.Concept.Name.String(), FactID: f.ID, Def: f.Concept.Name}}, nil
	case "value":
		v := factValue(f)
		return v, []Param{{Name: name, Value: v, FactID: f.ID}}, nil
	case "period":
		return resolvePeriodProperty(part, path[1:], f)
	case "dimensions":
		return resolveDimensions(tax, name, f)
	case "unit":
		return resolveUnit(name, f)
	case "decimals":
		v := f.Decimals.String()
		return v, []Param{{Name: name, Value: v, FactID: f.ID}}, nil
	default:
		return "", nil, fmt.Errorf("parameter %s: unknown fact property %s", part.arg, path[0])
	}
}

func factValue(f *xbrl.Fact) string {
	if f.Nil {
		return "nil"
	}
	if f.Concept.Numeric {
		return groupThousands(f.Numeric)
	}
	return f.Value
}

func resolvePeriodProperty(part msgPart, rest []string, f *xbrl.Fact) (string, []Param, error) {
	name := placeholderName(part)
	p := f.Period
	if len(rest) == 0 {
		v := p.String()
		return v, []Param{{Name: name, Value: v, FactID: f.ID}}, nil
	}
	var v string
	switch rest[0] {
	case "startDate":
		if p.Type != xbrl.PeriodDuration {
			return "", nil, fmt.Errorf("parameter %s: period has no start date", part.arg)
		}
		v = xbrl.FormatDate(p.Start, false)
	case "endDate":
		if p.Type == xbrl.PeriodForever {
			return "", nil, fmt.Errorf("parameter %s: forever period has no end date", part.arg)
		}
		v = xbrl.FormatDate(p.End, true)
	case "instant":
		if p.Type != xbrl.PeriodInstant {
			return "", nil, fmt.Errorf("parameter %s: period is not an instant", part.arg)
		}
		v = xbrl.FormatDate(p.End, true)
	case "durationDays":
		v = strconv.Itoa(p.DurationDays())
	default:
		return "", nil, fmt.Errorf("parameter %s: unknown period property %s", part.arg, rest[0])
	}
	return v, []Param{{Name: name, Value: v, FactID: f.ID}}, nil
}

func resolveDimensions(tax *xbrl.Taxonomy, name string, f *xbrl.Fact) (string, []Param, error) {
	aspects := f.SortedDimensions()
	if len(aspects) == 0 {
		return "none", nil, nil
	}
	var texts []string
	var params []Param
	for i, aspect := range aspects {
		dim := tax.PrefixedName(aspect.Dimension)
		member := tax.PrefixedName(aspect.Member)
		texts = append(texts, dim+" = "+member)
		params = append(params,
			Param{Name: fmt.Sprintf("%s.dim%d", name, i), Value: dim, Tooltip: aspect.Dimension.String(), Def: aspect.Dimension},
			Param{Name: fmt.Sprintf("%s.member%d", name, i), Value: member, Tooltip: aspect.Member.String(), Def: aspect.Member},
		)
	}
	return strings.Join(texts, ", "), params, nil
}

func resolveUnit(name string, f *xbrl.Fact) (string, []Param, error) {
	if f.Unit == nil {
		return "none", nil, nil
	}
	var words []string
	var params []Param
	for i, m := range f.Unit.Numerator {
		words = append(words, m.LocalName)
		params = append(params, Param{Name: fmt.Sprintf("%s.num%d", name, i), Value: m.LocalName, Tooltip: m.String()})
	}
	text := strings.Join(words, " ")
	if len(f.Unit.Denominator) > 0 {
		var denoms []string
		for i, m := range f.Unit.Denominator {
			denoms = append(denoms, m.LocalName)
			params = append(params, Param{Name: fmt.Sprintf("%s.denom%d", name, i), Value: m.LocalName, Tooltip: m.String()})
		}
		text += " / " + strings.Join(denoms, " ")
	}
	return text, params, nil
}

func resolveConceptProperty(part msgPart, c *xbrl.Concept) (string, []Param, error) {
	if len(part.path) == 0 {
		return "", nil, fmt.Errorf("parameter %s: concept arguments need a property", part.arg)
	}
	name := placeholderName(part)
	switch part.path[0] {
	case "name":
		v := c.PrefixedName()
		return v, []Param{{Name: name, Value: v, Tooltip: c.Name.String(), Def: c.Name}}, nil
	case "localName":
		v := c.Name.LocalName
		return v, []Param{{Name: name, Value: v, Tooltip: c.Name.String(), Def: c.Name}}, nil
	case "label":
		v := c.StandardLabel()
		return v, []Param{{Name: name, Value: v, Tooltip: c.Name.String(), Def: c.Name}}, nil
	default:
		return "", nil, fmt.Errorf("parameter %s: unknown concept property %s", part.arg, part.path[0])
	}
}

// groupThousands renders a decimal with comma-separated thousands, the way
// numeric fact values appear in filings.
func groupThousands(d decimal.Decimal) string {
	s := d.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	out := sign + strings.Join(groups, ",")
	if hasFrac {
		out += "." + frac
	}
	return out
}
