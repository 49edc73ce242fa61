package templation

import (
	"errors"
	"fmt"

	"github.com/snip-cli/snip/cli/placeholders"
	"github.com/snip-cli/snip/cli/util"
)

// TemplationNotFoundError is reported when a templation location can not be
// resolved.
type TemplationNotFoundError struct {
	// Location is the templation as it was given.
	Location string
	// Err is the reason, if any.
	Err error
}

// Error implements the error interface.
func (e *TemplationNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("templation not found: %s: %s", e.Location, e.Err)
	}
	return fmt.Sprintf("templation not found: %s", e.Location)
}

// Unwrap returns the underlying error.
func (e *TemplationNotFoundError) Unwrap() error {
	return e.Err
}

// ConfigError is reported for a malformed configuration file.
type ConfigError struct {
	// Path is the configuration file path.
	Path string
	// Err is the decoding or validation error.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid templation configuration %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// WrapUserError marks errors caused by the command line input or by the
// templation it points to as argument errors. Other errors are returned as is.
func WrapUserError(err error) error {
	var (
		validationErr *placeholders.ValidationError
		notFoundErr   *TemplationNotFoundError
		configErr     *ConfigError
	)
	if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) ||
		errors.As(err, &configErr) {
		return util.WrapArgError(err)
	}
	return err
}
