// Package placeholders builds and validates the set of placeholder tokens
// substituted during templation instantiation.
package placeholders

import (
	"cmp"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/apex/log"
)

const (
	// NameToken is a built-in placeholder of the project name.
	NameToken = "__name_"
	// VersionToken is a built-in placeholder of the project version.
	VersionToken = "__version_"
	// NamespaceToken is a built-in placeholder of the project namespace.
	// Its dot-separated value is expanded into nested directories.
	NamespaceToken = "__namespace_"

	tokenPatternString = `__[a-zA-Z][A-Za-z0-9_]*[0-9A-Za-z]_`
)

var (
	// TokenPattern finds placeholder tokens inside arbitrary text.
	TokenPattern = regexp.MustCompile(tokenPatternString)
	// ValuePattern is a generic grammar of name, version and namespace values.
	ValuePattern = regexp.MustCompile(`^[\w.\-]+$`)

	parameterPattern  = regexp.MustCompile(`^` + tokenPatternString + `=.+$`)
	exactTokenPattern = regexp.MustCompile(`^` + tokenPatternString + `$`)

	reservedTokens = []string{NameToken, VersionToken, NamespaceToken}
)

// Options describes the inputs of a placeholder set.
type Options struct {
	// Name is a value of __name_.
	Name string
	// Version is a value of __version_.
	Version string
	// Namespace is a value of __namespace_.
	Namespace string
	// Parameters are raw custom `key=value` definitions.
	Parameters []string
	// Rules are optional custom placeholder rules.
	Rules *RuleSet
}

// Placeholders is an immutable set of active placeholders.
type Placeholders struct {
	name      string
	version   string
	namespace string
	entries   map[string]string
	custom    map[string]string
}

// IsToken checks whether str contains a placeholder token.
func IsToken(str string) bool {
	return TokenPattern.MatchString(str)
}

// IsExactToken checks whether the whole str is a placeholder token.
func IsExactToken(str string) bool {
	return exactTokenPattern.MatchString(str)
}

// Normalize wraps the key of a `key=value` definition into `__key_` if the key
// does not contain a placeholder token.
func Normalize(parameter string) string {
	key, value, _ := strings.Cut(parameter, "=")
	if IsToken(key) {
		return parameter
	}
	fixed := "__" + key + "_=" + value
	log.Debugf("Fixing placeholder format: %s -> %s", parameter, fixed)
	return fixed
}

// parseParameters normalizes and validates raw custom definitions.
func parseParameters(parameters []string) (map[string]string, error) {
	var illegal, reserved []string
	custom := make(map[string]string, len(parameters))
	for _, parameter := range parameters {
		normalized := Normalize(parameter)
		if !parameterPattern.MatchString(normalized) {
			illegal = append(illegal, parameter)
			continue
		}
		token, value, _ := strings.Cut(normalized, "=")
		if slices.Contains(reservedTokens, token) {
			reserved = append(reserved, token)
			continue
		}
		if existing, found := custom[token]; found && existing != value {
			// The result must not depend on the parameters order.
			illegal = append(illegal, parameter)
			continue
		}
		custom[token] = value
	}

	if len(illegal) > 0 {
		return nil, newValidationError(IllegalPlaceholder, illegal...)
	}
	if len(reserved) > 0 {
		return nil, newValidationError(ReservedPlaceholder, reserved...)
	}
	return custom, nil
}

func checkOptionValues(opts Options) error {
	var illegal []string
	for _, opt := range []struct{ name, value string }{
		{"name", opts.Name},
		{"version", opts.Version},
		{"namespace", opts.Namespace},
	} {
		if !ValuePattern.MatchString(opt.value) {
			illegal = append(illegal, opt.name+"="+opt.value)
		}
	}
	if len(illegal) > 0 {
		return newValidationError(IllegalOptionValue, illegal...)
	}
	return nil
}

// applyRules checks the resolved placeholders against the rule set.
func applyRules(rules *RuleSet, entries, custom map[string]string) error {
	compiled := make(map[string]compiledRule, len(rules.Spec))
	for _, rule := range rules.Spec {
		compiledRule, err := compileRule(rule)
		if err != nil {
			return err
		}
		compiled[rule.Placeholder] = compiledRule
	}

	if rules.Strict {
		var missing []string
		for _, rule := range rules.Spec {
			if _, found := custom[rule.Placeholder]; !found {
				missing = append(missing, rule.Placeholder)
			}
		}
		if len(missing) > 0 {
			log.Debugf("Missing custom placeholders: %v", missing)
			return newValidationError(MissingPlaceholder, missing...)
		}
	}

	for _, token := range slices.Sorted(maps.Keys(entries)) {
		rule, found := compiled[token]
		if !found {
			continue
		}
		log.Debugf("Validating placeholder %s=%s", token, entries[token])
		if err := rule.validate(entries[token]); err != nil {
			return err
		}
	}
	return nil
}

// Resolve builds a validated placeholder set. Nothing is written anywhere,
// a failure is reported as *ValidationError.
func Resolve(opts Options) (*Placeholders, error) {
	if err := checkOptionValues(opts); err != nil {
		return nil, err
	}

	custom, err := parseParameters(opts.Parameters)
	if err != nil {
		return nil, err
	}
	log.Debugf("Custom placeholders: %v", custom)

	entries := map[string]string{
		NameToken:      opts.Name,
		VersionToken:   opts.Version,
		NamespaceToken: opts.Namespace,
	}
	maps.Copy(entries, custom)

	if opts.Rules != nil {
		log.Debugf("Custom placeholders strict mode: %t", opts.Rules.Strict)
		if err := applyRules(opts.Rules, entries, custom); err != nil {
			return nil, err
		}
	}

	return &Placeholders{
		name:      opts.Name,
		version:   opts.Version,
		namespace: opts.Namespace,
		entries:   entries,
		custom:    custom,
	}, nil
}

// Name returns the project name.
func (p *Placeholders) Name() string {
	return p.name
}

// Version returns the project version.
func (p *Placeholders) Version() string {
	return p.version
}

// Namespace returns the project namespace.
func (p *Placeholders) Namespace() string {
	return p.namespace
}

// Value returns the value of the token.
func (p *Placeholders) Value(token string) (string, bool) {
	value, found := p.entries[token]
	return value, found
}

// Tokens returns all active tokens, longest first and lexically among tokens
// of the same length. A token containing another one is replaced before it.
func (p *Placeholders) Tokens() []string {
	return slices.SortedFunc(maps.Keys(p.entries), func(a, b string) int {
		if byLen := cmp.Compare(len(b), len(a)); byLen != 0 {
			return byLen
		}
		return strings.Compare(a, b)
	})
}

// Entries returns a copy of token to value mapping.
func (p *Placeholders) Entries() map[string]string {
	return maps.Clone(p.entries)
}

// Custom returns a copy of custom placeholders.
func (p *Placeholders) Custom() map[string]string {
	return maps.Clone(p.custom)
}

// TokensIn returns active tokens found in str, in the order of Tokens.
func (p *Placeholders) TokensIn(str string) []string {
	var found []string
	for _, token := range p.Tokens() {
		if strings.Contains(str, token) {
			found = append(found, token)
		}
	}
	return found
}
