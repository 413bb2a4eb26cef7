// Package ruledata holds the static, versioned rule tables the validation
// engine consumes: message templates, fiscal-period duration ranges, the
// element-value comparison rows and the member-exclusion trees. The tables
// ship embedded in the binary and can be overridden with a directory of
// files carrying the same names, so rule updates do not require a rebuild.
package ruledata

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	hjson "github.com/hjson/hjson-go/v4"
)

//go:embed *.hjson
var defaults embed.FS

const (
	templatesFile  = "dqc_msg_templates.hjson"
	durationsFile  = "dqc_0006_period_focus_durations.hjson"
	pairsFile      = "dqc_0009_facts.hjson"
	nonNegFile     = "dqc_0015_facts.hjson"
	exclusionsFile = "dqc_0015_member_exclusions.hjson"
)

// MessageTemplate is one entry of the message table: the headline template
// with ${param.property} placeholders, an optional hint template, and the
// rule version triple (version, release date, documentation URI).
type MessageTemplate struct {
	Msg     string   `json:"msg"`
	Hint    string   `json:"hint,omitempty"`
	Version []string `json:"version"`
}

// Exclusion test kinds. Contains and Equals are leaf tests over a single
// dimension aspect; And and Or combine two subtrees.
const (
	TestContains = "Contains the text"
	TestEquals   = "Equals"
	TestAnd      = "AND"
	TestOr       = "OR"
)

// Exclusion dim kinds: which side of the aspect the leaf test reads.
const (
	DimMember    = "Member"
	DimDimension = "Dimension"
)

// MemberExclusion is one node of a member-exclusion expression tree.
type MemberExclusion struct {
	Test string           `json:"test"`
	Dim  string           `json:"dim,omitempty"`  // leaf tests: Member or Dimension
	Text string           `json:"text,omitempty"` // Contains: regular expression
	Name string           `json:"name,omitempty"` // Equals: exact local name
	Arg1 *MemberExclusion `json:"arg1,omitempty"`
	Arg2 *MemberExclusion `json:"arg2,omitempty"`
}

// ConceptPair is one A-must-not-exceed-B row.
type ConceptPair struct {
	RuleID  string
	Prefix1 string
	Name1   string
	Prefix2 string
	Name2   string
}

// ConceptRule is one must-not-be-negative row.
type ConceptRule struct {
	RuleID string
	Prefix string
	Name   string
}

// DurationRange is the allowed period length in days for one fiscal period
// focus value.
type DurationRange struct {
	Min int
	Max int
}

// Tables bundles all loaded rule tables.
type Tables struct {
	Templates            map[string]MessageTemplate
	PeriodFocusDurations map[string]DurationRange
	LessOrEqualPairs     []ConceptPair
	NonNegative          []ConceptRule
	MemberExclusions     []*MemberExclusion
}

// Load reads the embedded default tables.
func Load() (*Tables, error) {
	return loadFrom(defaults.ReadFile)
}

// LoadDir reads the tables from a directory, for externally versioned rule
// releases.
func LoadDir(dir string) (*Tables, error) {
	return loadFrom(func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	})
}

func loadFrom(read func(string) ([]byte, error)) (*Tables, error) {
	t := &Tables{}

	if err := readInto(read, templatesFile, &t.Templates); err != nil {
		return nil, err
	}
	for code, tmpl := range t.Templates {
		if tmpl.Msg == "" {
			return nil, fmt.Errorf("%s: template %s has no message", templatesFile, code)
		}
		if len(tmpl.Version) != 3 {
			return nil, fmt.Errorf("%s: template %s needs a [version, releaseDate, uri] triple", templatesFile, code)
		}
	}

	var durations map[string][]int
	if err := readInto(read, durationsFile, &durations); err != nil {
		return nil, err
	}
	t.PeriodFocusDurations = make(map[string]DurationRange, len(durations))
	for focus, r := range durations {
		if len(r) != 2 || r[0] > r[1] {
			return nil, fmt.Errorf("%s: %s needs a [min, max] day range", durationsFile, focus)
		}
		t.PeriodFocusDurations[focus] = DurationRange{Min: r[0], Max: r[1]}
	}

	var pairs [][]string
	if err := readInto(read, pairsFile, &pairs); err != nil {
		return nil, err
	}
	for i, row := range pairs {
		if len(row) != 5 {
			return nil, fmt.Errorf("%s: row %d needs [ruleID, prefix1, name1, prefix2, name2]", pairsFile, i)
		}
		t.LessOrEqualPairs = append(t.LessOrEqualPairs, ConceptPair{
			RuleID: row[0], Prefix1: row[1], Name1: row[2], Prefix2: row[3], Name2: row[4],
		})
	}

	var rows [][]string
	if err := readInto(read, nonNegFile, &rows); err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("%s: row %d needs [ruleID, prefix, name]", nonNegFile, i)
		}
		t.NonNegative = append(t.NonNegative, ConceptRule{RuleID: row[0], Prefix: row[1], Name: row[2]})
	}

	if err := readInto(read, exclusionsFile, &t.MemberExclusions); err != nil {
		return nil, err
	}
	for i, rule := range t.MemberExclusions {
		if err := checkExclusion(rule); err != nil {
			return nil, fmt.Errorf("%s: rule %d: %w", exclusionsFile, i, err)
		}
	}

	return t, nil
}

func readInto(read func(string) ([]byte, error), name string, v any) error {
	data, err := read(name)
	if err != nil {
		return fmt.Errorf("read rule table %s: %w", name, err)
	}
	if err := hjson.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse rule table %s: %w", name, err)
	}
	return nil
}

func checkExclusion(rule *MemberExclusion) error {
	if rule == nil {
		return fmt.Errorf("empty exclusion node")
	}
	switch rule.Test {
	case TestContains:
		if rule.Text == "" {
			return fmt.Errorf("%s test has no text", rule.Test)
		}
	case TestEquals:
		if rule.Name == "" {
			return fmt.Errorf("%s test has no name", rule.Test)
		}
	case TestAnd, TestOr:
		if err := checkExclusion(rule.Arg1); err != nil {
			return err
		}
		return checkExclusion(rule.Arg2)
	default:
		return fmt.Errorf("unknown member exclusion test %q", rule.Test)
	}
	switch rule.Dim {
	case DimMember, DimDimension:
		return nil
	default:
		return fmt.Errorf("unknown member exclusion dim %q", rule.Dim)
	}
}
