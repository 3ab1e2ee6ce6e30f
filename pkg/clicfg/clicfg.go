// Package clicfg fills tagged config structs from parsed cli flags.
package clicfg

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/urfave/cli/v3"
)

var ErrCannotParseFlags = errors.New("cannot parse flags")

var durationType = reflect.TypeFor[time.Duration]()

// ParseFlags copies the value of every flag named by a `flag:"..."` tag of the
// struct s points to. Flags that were not defined leave the zero value.
func ParseFlags(c *cli.Command, s any) error {
	v := reflect.ValueOf(s)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: expected pointer to struct, got %T", ErrCannotParseFlags, s)
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got pointer to %s", ErrCannotParseFlags, v.Kind())
	}

	t := v.Type()

	for i := range t.NumField() {
		field := t.Field(i)
		value := v.Field(i)

		if !value.CanSet() {
			continue
		}

		name := field.Tag.Get("flag")
		if name == "" {
			continue
		}

		if err := setField(c, name, value); err != nil {
			return fmt.Errorf("%w: failed to set field %s: %w", ErrCannotParseFlags, field.Name, err)
		}
	}

	return nil
}

func setField(c *cli.Command, name string, value reflect.Value) error {
	if value.Type() == durationType {
		value.SetInt(int64(c.Duration(name)))
		return nil
	}

	switch value.Kind() {
	case reflect.String:
		value.SetString(c.String(name))
	case reflect.Bool:
		value.SetBool(c.Bool(name))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value.SetInt(int64(c.Int(name)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value.SetUint(uint64(c.Uint(name)))
	case reflect.Float32, reflect.Float64:
		value.SetFloat(c.Float64(name))
	default:
		return fmt.Errorf("unsupported type: %s", value.Type())
	}

	return nil
}
