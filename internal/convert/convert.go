// Copyright (c) 2026 The prefer authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package convert coerces parsed configuration values to caller types.
//
// The rules are strict so that results do not depend on which format a value
// came from: integer targets accept integral values and decimal strings that
// parse exactly, string targets accept strings only, boolean targets accept
// booleans and the literals "true"/"false" in any case. Sequences and
// mappings coerce elementwise.
package convert

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrTypeMismatch reports a value that cannot be coerced to the target type.
var ErrTypeMismatch = errors.New("type mismatch")

// Convert coerces from into the value pointed to by to.
func Convert(from, to any) error {
	toVal := reflect.ValueOf(to)
	if toVal.Kind() != reflect.Pointer || toVal.IsNil() {
		return errors.New("target must be a non-nil pointer")
	}

	return convert(from, toVal.Elem())
}

func convert(from any, toVal reflect.Value) error {
	switch toVal.Kind() {
	case reflect.Bool:
		return convertBool(from, toVal)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return convertInt(from, toVal)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return convertUint(from, toVal)
	case reflect.Float32, reflect.Float64:
		return convertFloat(from, toVal)
	case reflect.String:
		return convertString(from, toVal)
	case reflect.Slice:
		return convertSlice(from, toVal)
	case reflect.Map:
		return convertMap(from, toVal)
	case reflect.Pointer:
		if toVal.IsNil() {
			toVal.Set(reflect.New(toVal.Type().Elem()))
		}

		return convert(from, toVal.Elem())
	case reflect.Interface:
		if toVal.NumMethod() == 0 {
			if from != nil {
				toVal.Set(reflect.ValueOf(from))
			}

			return nil
		}

		return mismatch(from, toVal)
	default:
		return mismatch(from, toVal)
	}
}

func convertBool(from any, toVal reflect.Value) error {
	switch value := from.(type) {
	case bool:
		toVal.SetBool(value)
	case string:
		switch strings.ToLower(value) {
		case "true":
			toVal.SetBool(true)
		case "false":
			toVal.SetBool(false)
		default:
			return mismatch(from, toVal)
		}
	default:
		return mismatch(from, toVal)
	}

	return nil
}

func convertInt(from any, toVal reflect.Value) error {
	integer, err := asInt64(from, toVal)
	if err != nil {
		return err
	}
	if toVal.OverflowInt(integer) {
		return mismatch(from, toVal)
	}
	toVal.SetInt(integer)

	return nil
}

func convertUint(from any, toVal reflect.Value) error {
	integer, err := asInt64(from, toVal)
	if err != nil {
		return err
	}
	if integer < 0 || toVal.OverflowUint(uint64(integer)) {
		return mismatch(from, toVal)
	}
	toVal.SetUint(uint64(integer))

	return nil
}

// asInt64 accepts integer values, floats without a fractional part,
// and decimal strings. A float like 12.5 is a mismatch, never truncated.
func asInt64(from any, toVal reflect.Value) (int64, error) {
	switch value := from.(type) {
	case int:
		return int64(value), nil
	case int64:
		return value, nil
	case uint64:
		if value > math.MaxInt64 {
			return 0, mismatch(from, toVal)
		}

		return int64(value), nil
	case float64:
		if value != math.Trunc(value) || value < math.MinInt64 || value >= math.MaxInt64 {
			return 0, mismatch(from, toVal)
		}

		return int64(value), nil
	case string:
		integer, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, mismatch(from, toVal)
		}

		return integer, nil
	default:
		return 0, mismatch(from, toVal)
	}
}

func convertFloat(from any, toVal reflect.Value) error {
	switch value := from.(type) {
	case float64:
		toVal.SetFloat(value)
	case int:
		toVal.SetFloat(float64(value))
	case int64:
		toVal.SetFloat(float64(value))
	case uint64:
		toVal.SetFloat(float64(value))
	case string:
		float, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return mismatch(from, toVal)
		}
		toVal.SetFloat(float)
	default:
		return mismatch(from, toVal)
	}

	return nil
}

// convertString has no implicit stringification: a numeric value requested
// as a string is a mismatch so that round-trips stay predictable.
func convertString(from any, toVal reflect.Value) error {
	value, ok := from.(string)
	if !ok {
		return mismatch(from, toVal)
	}
	toVal.SetString(value)

	return nil
}

func convertSlice(from any, toVal reflect.Value) error {
	values, ok := from.([]any)
	if !ok {
		return mismatch(from, toVal)
	}

	slice := reflect.MakeSlice(toVal.Type(), len(values), len(values))
	for i, value := range values {
		if err := convert(value, slice.Index(i)); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	toVal.Set(slice)

	return nil
}

func convertMap(from any, toVal reflect.Value) error {
	values, ok := from.(map[string]any)
	if !ok || toVal.Type().Key().Kind() != reflect.String {
		return mismatch(from, toVal)
	}

	mp := reflect.MakeMapWithSize(toVal.Type(), len(values))
	for key, value := range values {
		element := reflect.New(toVal.Type().Elem()).Elem()
		if err := convert(value, element); err != nil {
			return fmt.Errorf("[%s]: %w", key, err)
		}
		mp.SetMapIndex(reflect.ValueOf(key).Convert(toVal.Type().Key()), element)
	}
	toVal.Set(mp)

	return nil
}

func mismatch(from any, toVal reflect.Value) error {
	return fmt.Errorf("%w: expected %s, got %s (%v)",
		ErrTypeMismatch, toVal.Type(), typeName(from), from,
	)
}

func typeName(value any) string {
	if value == nil {
		return "null"
	}

	return reflect.TypeOf(value).String()
}
