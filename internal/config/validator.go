package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return nil, fmt.Errorf("schema has no #Config definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: def,
	}, nil
}

// Validate validates the given configuration.
// Schema violations are reported first, followed by cross-field checks
// the schema cannot express.
func (v *Validator) Validate(cfg *Config) error {
	c := *cfg
	if c.ModuleClasses == nil {
		c.ModuleClasses = map[string]string{}
	}

	var errs ValidationErrors

	encoded := v.ctx.Encode(c)
	if encoded.Err() != nil {
		return fmt.Errorf("encoding config: %w", encoded.Err())
	}

	unified := v.schema.Unify(encoded)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			errs = append(errs, ValidationError{
				Field:   strings.Join(e.Path(), "."),
				Message: fmt.Sprintf(format, args...),
			})
		}
	}

	seen := make(map[string]bool, len(c.Architectures))
	for i, a := range c.Architectures {
		if seen[a.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("architectures.%d.name", i),
				Message: fmt.Sprintf("duplicate architecture %q", a.Name),
			})
		}
		seen[a.Name] = true
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, ValidationError{Field: "sandbox_timeout", Message: err.Error()})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile loads and validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}
