package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// FieldError names one configuration key that failed validation.
type FieldError struct {
	Key   string
	Rule  string
	Value any
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v violates %s", e.Key, e.Value, e.Rule)
}

// Validate checks cfg against its struct rules. Every violated key is
// reported as a *FieldError in the joined result.
func Validate(cfg *Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		errs = append(errs, &FieldError{Key: keyOf(fe.StructNamespace()), Rule: rule, Value: fe.Value()})
	}
	return errors.Join(errs...)
}

// keyOf turns "Config.Output.Format" into the config key "output.format".
func keyOf(namespace string) string {
	if i := strings.IndexByte(namespace, '['); i >= 0 {
		namespace = namespace[:i]
	}
	key, ok := keys[namespace]
	if ok {
		return key
	}
	return namespace
}

var keys = map[string]string{
	"Config.Notation":      "notation",
	"Config.Jobs":          "jobs",
	"Config.Output.Format": "output.format",
	"Config.Links.BaseURL": "links.base_url",
	"Config.Log.Verbosity": "log.verbosity",
	"Config.Paths.Include": "paths.include",
	"Config.Paths.Exclude": "paths.exclude",
}
