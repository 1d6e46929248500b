// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `Document.Settings()` calls `validateStruct` right after unmarshal.  A
// failing `required` rule is reported as MissingKeyError carrying the
// dotted key as written in the documents (`githubInfo.owner`), so the
// operator sees the same name they would type in YAML.  Other rule
// failures are returned as-is.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

//
// public API
//

// validateStruct returns nil, a MissingKeyError for the first absent
// required key, or a wrapped validation error.
func validateStruct(s *Settings) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return &MissingKeyError{Key: dottedKey(fe.Namespace())}
		}
	}
	fe := verrs[0]
	return fmt.Errorf("invalid configuration key %s (rule %q): %w",
		dottedKey(fe.Namespace()), fe.Tag(), err)
}

// dottedKey strips the root struct name: `Settings.acm.domainName` →
// `acm.domainName`.
func dottedKey(ns string) string {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		return ns
	}
	return rest
}
