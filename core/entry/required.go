package entry

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Required fields are the block fields whose json tag has no omit option.
// In Go an empty required list is nil; in JSON it is always written as []
// so encoded blocks match source data. Required entries and payloads have
// no empty form and must be present.

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// requiredFields calls fn for each required list, entry or payload field of
// the struct s.
func requiredFields(s reflect.Value, fn func(name string, f reflect.Value) error) error {
	t := s.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" || opts != "" {
			continue
		}
		switch sf.Type.Kind() {
		case reflect.Slice, reflect.Pointer:
			if err := fn(name, s.Field(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// missing reports a nil required entry or an absent or null payload.
func missing(f reflect.Value) bool {
	if f.Type() == rawMessageType {
		raw := f.Bytes()
		return len(raw) == 0 || string(raw) == "null"
	}
	return f.Kind() == reflect.Pointer && f.IsNil()
}

// encodable returns b ready for json.Marshal: a copy with nil required lists
// replaced by empty ones, or an error naming a missing required value.
func encodable(b Block) (any, error) {
	v := reflect.ValueOf(b)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return b, nil
	}
	cp := reflect.New(v.Elem().Type())
	cp.Elem().Set(v.Elem())
	err := requiredFields(cp.Elem(), func(name string, f reflect.Value) error {
		if missing(f) {
			return fmt.Errorf("%s: %s is required", b.Type(), name)
		}
		if f.Kind() == reflect.Slice && f.IsNil() {
			f.Set(reflect.MakeSlice(f.Type(), 0, 0))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cp.Interface(), nil
}

// settle checks a decoded block's required values and turns empty required
// lists into nil.
func settle(b Block) error {
	v := reflect.ValueOf(b)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	return requiredFields(v.Elem(), func(name string, f reflect.Value) error {
		if missing(f) {
			return fmt.Errorf("%s is required", name)
		}
		if f.Kind() == reflect.Slice && f.Type() != rawMessageType && f.Len() == 0 {
			f.Set(reflect.Zero(f.Type()))
		}
		return nil
	})
}
