package placeholders

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBuiltins(t *testing.T) {
	for _, opts := range []Options{
		{Name: "app-name", Version: "1.0.0", Namespace: "com.example"},
		{Name: "app_name0", Version: "1.0.0.Beta", Namespace: "my.namespace"},
		{Name: "a", Version: "v2-SNAPSHOT", Namespace: "single"},
	} {
		t.Run(opts.Name, func(t *testing.T) {
			ph, err := Resolve(opts)
			require.NoError(t, err)
			assert.Equal(t, map[string]string{
				NameToken:      opts.Name,
				VersionToken:   opts.Version,
				NamespaceToken: opts.Namespace,
			}, ph.Entries())
			assert.Empty(t, ph.Custom())
			assert.Equal(t, opts.Name, ph.Name())
			assert.Equal(t, opts.Version, ph.Version())
			assert.Equal(t, opts.Namespace, ph.Namespace())
		})
	}
}

func TestResolveIllegalOptionValue(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		items []string
	}{
		{
			"name",
			Options{Name: "My Invalid App", Version: "1.0.0", Namespace: "com.example"},
			[]string{"name=My Invalid App"},
		},
		{
			"version",
			Options{Name: "app", Version: "$no-a-version", Namespace: "com.example"},
			[]string{"version=$no-a-version"},
		},
		{
			"namespace",
			Options{Name: "app", Version: "1.0.0", Namespace: ""},
			[]string{"namespace="},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.opts)
			require.ErrorIs(t, err, ErrIllegalOptionValue)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.items, validationErr.Items)
		})
	}
}

func baseOptions(parameters ...string) Options {
	return Options{
		Name:       "app-name",
		Version:    "1.0.0",
		Namespace:  "my.namespace",
		Parameters: parameters,
	}
}

func TestResolveCustomPlaceholders(t *testing.T) {
	ph, err := Resolve(baseOptions("__c_domain_=MyDomain", "author=john", "__url_=a=b"))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"__c_domain_": "MyDomain",
		"__author_":   "john",
		"__url_":      "a=b",
	}, ph.Custom())

	value, found := ph.Value("__author_")
	assert.True(t, found)
	assert.Equal(t, "john", value)
	assert.Equal(t, []string{NamespaceToken, "__c_domain_", VersionToken, "__author_",
		NameToken, "__url_"}, ph.Tokens())
}

func TestResolveParametersOrderIrrelevant(t *testing.T) {
	first, err := Resolve(baseOptions("a=1", "__b_=2", "c=3"))
	require.NoError(t, err)
	second, err := Resolve(baseOptions("c=3", "a=1", "__b_=2"))
	require.NoError(t, err)
	assert.Equal(t, first.Entries(), second.Entries())
}

func TestResolveReservedPlaceholder(t *testing.T) {
	for _, parameter := range []string{
		"__name_=other",
		"__version_=2.0.0",
		"__namespace_=a.namespace",
		"namespace=a.namespace",
		"name=x",
	} {
		t.Run(parameter, func(t *testing.T) {
			_, err := Resolve(baseOptions(parameter))
			require.ErrorIs(t, err, ErrReservedPlaceholder)
			assert.NotErrorIs(t, err, ErrIllegalPlaceholder)
		})
	}
}

func TestResolveIllegalPlaceholder(t *testing.T) {
	for _, parameter := range []string{
		"my invalid param=with value",
		"no-equals-sign",
		"__empty_=",
		"a__bc_=value",
		"=value",
	} {
		t.Run(parameter, func(t *testing.T) {
			_, err := Resolve(baseOptions(parameter))
			require.ErrorIs(t, err, ErrIllegalPlaceholder)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, []string{parameter}, validationErr.Items)
		})
	}
}

func TestResolveConflictingDuplicates(t *testing.T) {
	_, err := Resolve(baseOptions("key=a", "__key_=b"))
	require.ErrorIs(t, err, ErrIllegalPlaceholder)

	ph, err := Resolve(baseOptions("key=a", "__key_=a"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"__key_": "a"}, ph.Custom())
}

func TestResolveStrictMissing(t *testing.T) {
	rules := NewRuleSet(
		Rule{Placeholder: "__c_domain_"},
		Rule{Placeholder: "__port_", Pattern: `\d+`},
	)
	opts := baseOptions("__c_domain_=MyDomain")
	opts.Rules = rules

	_, err := Resolve(opts)
	require.ErrorIs(t, err, ErrMissingPlaceholder)
	assert.EqualError(t, err, "missing placeholder: __port_")

	rules.Strict = false
	ph, err := Resolve(opts)
	require.NoError(t, err)
	_, found := ph.Value("__port_")
	assert.False(t, found)
}

func TestResolveRulePattern(t *testing.T) {
	opts := baseOptions("__port_=80a")
	opts.Rules = NewRuleSet(Rule{Placeholder: "__port_", Pattern: `\d+`, Label: "HTTP port"})

	_, err := Resolve(opts)
	require.ErrorIs(t, err, ErrIllegalPlaceholderValue)
	assert.EqualError(t, err, `illegal placeholder value for "HTTP port": 80a`)

	opts.Parameters = []string{"__port_=8080"}
	_, err = Resolve(opts)
	require.NoError(t, err)
}

func TestResolveRuleAppliesToBuiltins(t *testing.T) {
	opts := baseOptions()
	opts.Rules = &RuleSet{
		Strict: false,
		Spec:   []Rule{{Placeholder: NamespaceToken, Pattern: `[a-z]+(\.[a-z]+)*`}},
	}
	_, err := Resolve(opts)
	require.NoError(t, err)

	opts.Namespace = "My.Namespace"
	_, err = Resolve(opts)
	require.ErrorIs(t, err, ErrIllegalPlaceholderValue)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, NamespaceToken, validationErr.Label)
}

func TestResolveRuleDefaults(t *testing.T) {
	opts := baseOptions("__free_=anything.goes-here")
	opts.Rules = NewRuleSet(Rule{Placeholder: "__free_"})
	_, err := Resolve(opts)
	require.NoError(t, err)
}

func TestResolveInvalidRulePattern(t *testing.T) {
	opts := baseOptions("__port_=80")
	opts.Rules = NewRuleSet(Rule{Placeholder: "__port_", Pattern: `(\d+`})
	_, err := Resolve(opts)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIllegalPlaceholderValue)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "__key_=value", Normalize("key=value"))
	assert.Equal(t, "__key_=value", Normalize("__key_=value"))
	assert.Equal(t, "__key_=", Normalize("key"))
}

func TestTokensIn(t *testing.T) {
	ph, err := Resolve(baseOptions("__c_domain_=MyDomain"))
	require.NoError(t, err)
	assert.Equal(t, []string{"__c_domain_", NameToken},
		ph.TokensIn("src/__name_/__c_domain_.txt"))
	assert.Empty(t, ph.TokensIn("src/main/plain.txt"))
}

func TestTokensContainingOthers(t *testing.T) {
	ph, err := Resolve(baseOptions("__name_suffix_=Custom", "__ab_=1", "__cd_=2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"__name_suffix_", NameToken},
		ph.TokensIn("__name_suffix_/__name_"))
	assert.Equal(t, []string{"__ab_", "__cd_"}, ph.TokensIn("__cd_ __ab_"))
}

func TestIsExactToken(t *testing.T) {
	assert.True(t, IsExactToken("__foo_"))
	assert.True(t, IsExactToken(NamespaceToken))
	assert.False(t, IsExactToken("x__foo_y"))
	assert.False(t, IsExactToken("__foo_ "))
	assert.True(t, IsToken("x__foo_y"))
}
