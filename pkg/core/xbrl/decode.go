package xbrl

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The wire format is a JSON serialization of the already-resolved document
// model: prefix declarations, loaded schemas, concept definitions, the
// item-type hierarchy, dimension defaults, units and facts. All names are
// written prefix:localName and resolved against the namespaces table.

type instanceDoc struct {
	Document   string             `json:"document"`
	Namespaces map[string]string  `json:"namespaces"` // prefix -> namespace URI
	Schemas    []string           `json:"schemas"`    // target namespaces of loaded schemas
	Concepts   []conceptDoc       `json:"concepts"`
	Types      []typeDoc          `json:"types,omitempty"`
	Defaults   map[string]string  `json:"defaultMembers,omitempty"` // axis -> member
	Units      map[string]unitDoc `json:"units,omitempty"`
	Facts      []factDoc          `json:"facts"`
}

type conceptDoc struct {
	Name    string  `json:"name"`
	Type    string  `json:"type,omitempty"`
	Numeric bool    `json:"numeric,omitempty"`
	Labels  []Label `json:"labels,omitempty"`
}

type typeDoc struct {
	Name string `json:"name"`
	Base string `json:"base"`
}

type unitDoc struct {
	Numerator   []string `json:"numerator"`
	Denominator []string `json:"denominator,omitempty"`
}

type factDoc struct {
	ID         string            `json:"id,omitempty"`
	Concept    string            `json:"concept"`
	Instant    string            `json:"instant,omitempty"`
	StartDate  string            `json:"startDate,omitempty"`
	EndDate    string            `json:"endDate,omitempty"`
	Forever    bool              `json:"forever,omitempty"`
	Dimensions map[string]string `json:"dimensions,omitempty"`
	Unit       string            `json:"unit,omitempty"`
	Value      string            `json:"value"`
	Decimals   *Decimals         `json:"decimals,omitempty"`
	Nil        bool              `json:"nil,omitempty"`
}

// LoadInstance reads and decodes an instance document from disk.
func LoadInstance(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	return DecodeInstance(data)
}

// DecodeInstance decodes an instance document from its JSON serialization.
func DecodeInstance(data []byte) (*Instance, error) {
	var doc instanceDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse instance: %w", err)
	}

	dec := &decoder{namespaces: doc.Namespaces}

	tax := NewTaxonomy()
	for prefix, ns := range doc.Namespaces {
		tax.DeclarePrefix(prefix, ns)
	}
	for _, ns := range doc.Schemas {
		tax.AddSchema(ns)
	}
	for _, cd := range doc.Concepts {
		name, err := dec.qname(cd.Name)
		if err != nil {
			return nil, fmt.Errorf("concept %q: %w", cd.Name, err)
		}
		c := &Concept{Name: name, Numeric: cd.Numeric, Labels: cd.Labels}
		if cd.Type != "" {
			if c.ItemType, err = dec.qname(cd.Type); err != nil {
				return nil, fmt.Errorf("concept %q type: %w", cd.Name, err)
			}
		}
		tax.AddConcept(c)
	}
	for _, td := range doc.Types {
		name, err := dec.qname(td.Name)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", td.Name, err)
		}
		base, err := dec.qname(td.Base)
		if err != nil {
			return nil, fmt.Errorf("type %q base: %w", td.Name, err)
		}
		tax.AddType(name, base)
	}
	for axis, member := range doc.Defaults {
		axisName, err := dec.qname(axis)
		if err != nil {
			return nil, fmt.Errorf("default member axis %q: %w", axis, err)
		}
		memberName, err := dec.qname(member)
		if err != nil {
			return nil, fmt.Errorf("default member %q: %w", member, err)
		}
		tax.SetDefaultMember(axisName, memberName)
	}

	units := make(map[string]*Unit, len(doc.Units))
	for id, ud := range doc.Units {
		u := &Unit{}
		var err error
		if u.Numerator, err = dec.qnames(ud.Numerator); err != nil {
			return nil, fmt.Errorf("unit %q: %w", id, err)
		}
		if u.Denominator, err = dec.qnames(ud.Denominator); err != nil {
			return nil, fmt.Errorf("unit %q: %w", id, err)
		}
		units[id] = u
	}

	in := NewInstance(doc.Document, tax)
	for i, fd := range doc.Facts {
		f, err := dec.fact(tax, units, fd)
		if err != nil {
			return nil, fmt.Errorf("fact %d: %w", i, err)
		}
		if f.ID == "" {
			f.ID = fmt.Sprintf("f%d", i)
		}
		in.AddFact(f)
	}
	return in, nil
}

type decoder struct {
	namespaces map[string]string
}

func (d *decoder) qname(prefixed string) (QName, error) {
	prefix, local, ok := strings.Cut(prefixed, ":")
	if !ok {
		return QName{}, fmt.Errorf("name %q has no prefix", prefixed)
	}
	ns, ok := d.namespaces[prefix]
	if !ok {
		return QName{}, fmt.Errorf("undeclared prefix %q", prefix)
	}
	return QName{Namespace: ns, LocalName: local}, nil
}

func (d *decoder) qnames(prefixed []string) ([]QName, error) {
	if len(prefixed) == 0 {
		return nil, nil
	}
	out := make([]QName, len(prefixed))
	for i, p := range prefixed {
		q, err := d.qname(p)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}

func (d *decoder) fact(tax *Taxonomy, units map[string]*Unit, fd factDoc) (*Fact, error) {
	name, err := d.qname(fd.Concept)
	if err != nil {
		return nil, err
	}
	concept := tax.ResolveConcept(name)
	if concept == nil {
		return nil, fmt.Errorf("concept %q not defined in taxonomy", fd.Concept)
	}

	period, err := decodePeriod(fd)
	if err != nil {
		return nil, err
	}

	f := &Fact{
		ID:      fd.ID,
		Concept: concept,
		Period:  period,
		Nil:     fd.Nil,
		Value:   fd.Value,
	}
	if fd.Decimals != nil {
		f.Decimals = *fd.Decimals
	}
	if len(fd.Dimensions) > 0 {
		f.Dimensions = make(map[QName]QName, len(fd.Dimensions))
		for axis, member := range fd.Dimensions {
			axisName, err := d.qname(axis)
			if err != nil {
				return nil, err
			}
			memberName, err := d.qname(member)
			if err != nil {
				return nil, err
			}
			f.Dimensions[axisName] = memberName
		}
	}
	if fd.Unit != "" {
		u, ok := units[fd.Unit]
		if !ok {
			return nil, fmt.Errorf("undefined unit %q", fd.Unit)
		}
		f.Unit = u
	}
	if concept.Numeric && !fd.Nil {
		val, err := decimal.NewFromString(strings.ReplaceAll(fd.Value, ",", ""))
		if err != nil {
			return nil, fmt.Errorf("numeric value %q: %w", fd.Value, err)
		}
		f.Numeric = val
	}
	return f, nil
}

func decodePeriod(fd factDoc) (Period, error) {
	switch {
	case fd.Forever:
		return Forever(), nil
	case fd.Instant != "":
		t, err := parseEndOfDay(fd.Instant)
		if err != nil {
			return Period{}, err
		}
		return Instant(t), nil
	case fd.StartDate != "" && fd.EndDate != "":
		start, err := parseDate(fd.StartDate)
		if err != nil {
			return Period{}, err
		}
		end, err := parseEndOfDay(fd.EndDate)
		if err != nil {
			return Period{}, err
		}
		return Duration(start, end), nil
	default:
		return Period{}, fmt.Errorf("fact has no period")
	}
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// parseEndOfDay reads an end or instant date. A date-only value designates
// the end of that day, which XBRL 2.1 defines as midnight of the next day,
// so one day is added. Values carrying an explicit time are taken verbatim.
func parseEndOfDay(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.AddDate(0, 0, 1), nil
}
