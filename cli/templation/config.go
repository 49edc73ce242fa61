package templation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/snip-cli/snip/cli/ignore"
	"github.com/snip-cli/snip/cli/placeholders"
	"github.com/snip-cli/snip/cli/util"
)

// RuleConfig is a placeholder validation rule as written in the configuration.
type RuleConfig struct {
	// Name is the placeholder token the rule applies to.
	Name string `mapstructure:"name" validate:"required,placeholder"`
	// Pattern is a regular expression the whole value must match.
	Pattern string `mapstructure:"pattern" validate:"omitempty,regexp"`
	// Label is a human readable placeholder name used in error messages.
	Label string `mapstructure:"label"`
}

// PlaceholdersConfig describes placeholders expected by a templation.
type PlaceholdersConfig struct {
	// Strict requires every placeholder of Spec to be passed. Defaults to true.
	Strict *bool `mapstructure:"strict"`
	// Spec is a list of placeholder rules.
	Spec []RuleConfig `mapstructure:"spec" validate:"dive"`
}

// ScriptConfig holds post-generation commands per platform.
type ScriptConfig struct {
	Linux   []string `mapstructure:"linux" validate:"dive,required"`
	Windows []string `mapstructure:"windows" validate:"dive,required"`
}

// PostConfig describes actions performed after instantiation.
type PostConfig struct {
	Script ScriptConfig `mapstructure:"script"`
}

// Config is a templation configuration.
type Config struct {
	Placeholders PlaceholdersConfig `mapstructure:"placeholders"`
	Post         PostConfig         `mapstructure:"post"`
}

// newValidator returns a validator aware of placeholder tokens and regular
// expressions. Field names are reported as they are written in the file.
func newValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("placeholder", func(fl validator.FieldLevel) bool {
		return placeholders.IsExactToken(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("regexp", func(fl validator.FieldLevel) bool {
		_, err := regexp.Compile(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, err
	}
	return v, nil
}

// describeValidation turns validator errors into a single readable message.
func describeValidation(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		field, _ := strings.CutPrefix(fieldErr.Namespace(), "Config.")
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "placeholder":
			messages = append(messages,
				fmt.Sprintf("%s: %q is not a placeholder", field, fieldErr.Value()))
		case "regexp":
			messages = append(messages,
				fmt.Sprintf("%s: %q is not a valid regular expression", field, fieldErr.Value()))
		default:
			messages = append(messages, fmt.Sprintf("%s: failed on %q", field, fieldErr.Tag()))
		}
	}
	return errors.New(strings.Join(messages, "; "))
}

// Validate checks the configuration schema.
func (cfg *Config) Validate() error {
	v, err := newValidator()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return describeValidation(err)
	}
	return nil
}

// IsStrict reports whether all configured placeholders are required.
func (cfg *Config) IsStrict() bool {
	return cfg.Placeholders.Strict == nil || *cfg.Placeholders.Strict
}

// RuleSet converts the placeholders configuration for the resolver.
func (cfg *Config) RuleSet() *placeholders.RuleSet {
	rules := make([]placeholders.Rule, 0, len(cfg.Placeholders.Spec))
	for _, rule := range cfg.Placeholders.Spec {
		rules = append(rules, placeholders.Rule{
			Placeholder: rule.Name,
			Pattern:     rule.Pattern,
			Label:       rule.Label,
		})
	}
	ruleSet := placeholders.NewRuleSet(rules...)
	ruleSet.Strict = cfg.IsStrict()
	return ruleSet
}

// LoadConfig loads the configuration from the templation directory. A missing
// configuration file is not an error: nil is returned.
func LoadConfig(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ignore.ConfigFileName)
	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("There is no %s in %s", ignore.ConfigFileName, dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get access to %s: %w", configPath, err)
	}

	raw, err := util.ParseYAML(configPath)
	if err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}

	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: configPath, Err: err}
	}

	log.Debugf("Loaded %s: strict=%t, %d placeholder rules", configPath, cfg.IsStrict(),
		len(cfg.Placeholders.Spec))
	return &cfg, nil
}
