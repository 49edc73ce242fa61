package placeholders

import (
	"fmt"
	"regexp"
)

const defaultRulePattern = ".*"

// Rule is a validation constraint of a single placeholder.
type Rule struct {
	// Placeholder is a token the rule applies to.
	Placeholder string
	// Pattern is a regular expression the whole value must match.
	// Empty pattern matches anything.
	Pattern string
	// Label is a display name of the placeholder. Defaults to the token.
	Label string
}

// RuleSet is a set of rules with a strictness flag.
type RuleSet struct {
	// Strict requires every rule placeholder to be supplied.
	Strict bool
	// Spec is a list of rules.
	Spec []Rule
}

// NewRuleSet creates a strict rule set.
func NewRuleSet(rules ...Rule) *RuleSet {
	return &RuleSet{Strict: true, Spec: rules}
}

// compiledRule is a rule ready for value validation.
type compiledRule struct {
	label   string
	pattern *regexp.Regexp
}

func compileRule(rule Rule) (compiledRule, error) {
	pattern := rule.Pattern
	if pattern == "" {
		pattern = defaultRulePattern
	}
	// Rule patterns must match the whole value.
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return compiledRule{}, fmt.Errorf("invalid pattern of %s rule: %w", rule.Placeholder, err)
	}

	label := rule.Label
	if label == "" {
		label = rule.Placeholder
	}
	return compiledRule{label: label, pattern: re}, nil
}

func (rule compiledRule) validate(value string) error {
	if !rule.pattern.MatchString(value) {
		err := newValidationError(IllegalPlaceholderValue, value)
		err.Label = rule.label
		return err
	}
	return nil
}
