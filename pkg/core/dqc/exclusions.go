package dqc

import (
	"fmt"
	"regexp"

	"dqc_validation/pkg/core/dqc/ruledata"
	"dqc_validation/pkg/core/xbrl"
)

// excludedByMember reports whether any dimension aspect of the fact matches
// any of the member-exclusion trees. Facts dimensionalized by a known
// exception member (contra accounts, eliminations and the like) may
// legitimately carry negative values.
func excludedByMember(rules []*ruledata.MemberExclusion, f *xbrl.Fact) (bool, error) {
	for _, aspect := range f.SortedDimensions() {
		for _, rule := range rules {
			ok, err := matchExclusion(rule, aspect)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// matchExclusion evaluates one exclusion expression tree against a single
// dimension aspect.
func matchExclusion(rule *ruledata.MemberExclusion, aspect xbrl.DimensionAspect) (bool, error) {
	switch rule.Test {
	case ruledata.TestContains:
		pattern, err := regexp.Compile("(?i)" + rule.Text)
		if err != nil {
			return false, fmt.Errorf("member exclusion pattern %q: %w", rule.Text, err)
		}
		return pattern.MatchString(exclusionSubject(rule, aspect)), nil
	case ruledata.TestEquals:
		return exclusionSubject(rule, aspect) == rule.Name, nil
	case ruledata.TestAnd:
		left, err := matchExclusion(rule.Arg1, aspect)
		if err != nil {
			return false, err
		}
		right, err := matchExclusion(rule.Arg2, aspect)
		if err != nil {
			return false, err
		}
		return left && right, nil
	case ruledata.TestOr:
		left, err := matchExclusion(rule.Arg1, aspect)
		if err != nil {
			return false, err
		}
		right, err := matchExclusion(rule.Arg2, aspect)
		if err != nil {
			return false, err
		}
		return left || right, nil
	default:
		return false, fmt.Errorf("unknown member exclusion test %q", rule.Test)
	}
}

// exclusionSubject picks the local name a leaf test reads: the member for
// Member-kind tests, the dimension otherwise.
func exclusionSubject(rule *ruledata.MemberExclusion, aspect xbrl.DimensionAspect) string {
	if rule.Dim == ruledata.DimMember {
		return aspect.Member.LocalName
	}
	return aspect.Dimension.LocalName
}
