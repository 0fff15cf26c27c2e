package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// applyEnv overrides every `env`-tagged field of the config sections whose
// variable is set. All malformed values are reported together.
func applyEnv(cfg *Config) error {
	return applyEnvValue(reflect.ValueOf(cfg).Elem())
}

func applyEnvValue(section reflect.Value) error {
	var errs []error
	for _, sf := range reflect.VisibleFields(section.Type()) {
		field := section.FieldByIndex(sf.Index)

		if sf.Type.Kind() == reflect.Struct {
			errs = append(errs, applyEnvValue(field))
			continue
		}

		name, ok := sf.Tag.Lookup("env")
		if !ok {
			continue
		}
		raw, set := os.LookupEnv(name)
		if !set {
			continue
		}

		if err := assign(field, strings.TrimSpace(raw)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// assign parses raw into a string, int or bool field
func assign(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("expected an integer, got %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("expected a boolean, got %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
