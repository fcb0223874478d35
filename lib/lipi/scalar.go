// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

import (
	"math"
	"reflect"
	"strconv"
)

// Scalar is the set of Go types with a direct single-value wire form.
// Named types with these underlying types qualify too.
type Scalar interface {
	~bool | ~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 |
		~uint64 | ~int64 | ~uint | ~int | ~float32 | ~float64 | ~string
}

// DecodeValue reads a bare payload in T's own wire form. Booleans are
// read as one byte that must be 0 or 1; every other type reads the
// payload of its natural tag (u8, i8, uint, int, f32, f64, str).
func DecodeValue[T Scalar](cursor *Cursor) (T, error) {
	var out T
	target := reflect.ValueOf(&out).Elem()
	if target.Kind() == reflect.Bool {
		b, err := cursor.ReadByte()
		if err != nil {
			return out, err
		}
		if b > 1 {
			cursor.offset--
			return out, &InvalidBooleanError{Byte: b}
		}
		target.SetBool(b == 1)
		return out, nil
	}
	value, err := ParseOptions{}.ParseValue(naturalTag(target.Kind()), cursor)
	if err != nil {
		return out, err
	}
	return out, setScalar(target, value)
}

// DecodeField reads the payload of a field whose header carried tag
// and converts it to T, widening smaller numeric tags where the
// conversion table allows. A tag T cannot accept fails with
// [*InvalidTypeError] before any payload byte is consumed.
func DecodeField[T Scalar](tag Tag, cursor *Cursor) (T, error) {
	var out T
	target := reflect.ValueOf(&out).Elem()
	if !acceptsTag(target.Kind(), tag) {
		return out, &InvalidTypeError{Found: tagTypeName(tag), Expected: target.Type().String()}
	}
	value, err := ParseOptions{}.ParseValue(tag, cursor)
	if err != nil {
		return out, err
	}
	return out, setScalar(target, value)
}

func tagTypeName(tag Tag) string {
	if tag.IsBool() {
		return "bool"
	}
	return tag.String()
}

func naturalTag(kind reflect.Kind) Tag {
	switch kind {
	case reflect.Uint8:
		return TagU8
	case reflect.Int8:
		return TagI8
	case reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		return TagUInt
	case reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int:
		return TagInt
	case reflect.Float32:
		return TagF32
	case reflect.Float64:
		return TagF64
	case reflect.String:
		return TagStr
	}
	return TagFalse
}

// acceptsTag is the widening table: which wire tags each scalar
// target kind converts from.
func acceptsTag(kind reflect.Kind, tag Tag) bool {
	switch kind {
	case reflect.Bool:
		return tag.IsBool()
	case reflect.Uint8, reflect.Int8, reflect.Uint16, reflect.Int16,
		reflect.Uint32, reflect.Int32, reflect.Uint64, reflect.Int64,
		reflect.Uint, reflect.Int, reflect.Uintptr:
		return tag == TagU8 || tag == TagI8 || tag == TagUInt || tag == TagInt
	case reflect.Float32:
		return tag == TagU8 || tag == TagI8 || tag == TagF32 || tag == TagUInt || tag == TagInt
	case reflect.Float64:
		return tag == TagU8 || tag == TagI8 || tag == TagF32 || tag == TagF64 || tag == TagUInt || tag == TagInt
	case reflect.String:
		return tag == TagStr
	}
	return false
}

// setScalar stores value into target, a settable scalar of any
// [Scalar] kind, applying the widening table and range checks.
func setScalar(target reflect.Value, value Value) error {
	kind := target.Kind()
	if value == nil || !acceptsTag(kind, value.Tag()) {
		return invalidValue(value, target.Type())
	}

	switch kind {
	case reflect.Bool:
		target.SetBool(bool(value.(Bool)))
	case reflect.String:
		target.SetString(string(value.(Str)))
	case reflect.Float32:
		f, err := toFloat32(value)
		if err != nil {
			return err
		}
		target.SetFloat(float64(f))
	case reflect.Float64:
		f, err := toFloat64(value)
		if err != nil {
			return err
		}
		target.SetFloat(f)
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint, reflect.Uintptr:
		u, err := toUnsigned(value, target.Type())
		if err != nil {
			return err
		}
		target.SetUint(u)
	default:
		i, err := toSigned(value, target.Type())
		if err != nil {
			return err
		}
		target.SetInt(i)
	}
	return nil
}

func toUnsigned(value Value, target reflect.Type) (uint64, error) {
	var u uint64
	switch v := value.(type) {
	case U8:
		u = uint64(v)
	case UInt:
		u = uint64(v)
	case I8:
		if v < 0 {
			return 0, outOfRange(strconv.FormatInt(int64(v), 10), target)
		}
		u = uint64(v)
	case Int:
		if v < 0 {
			return 0, outOfRange(strconv.FormatInt(int64(v), 10), target)
		}
		u = uint64(v)
	}
	if bits := target.Bits(); bits < 64 && u > 1<<bits-1 {
		return 0, outOfRange(strconv.FormatUint(u, 10), target)
	}
	return u, nil
}

func toSigned(value Value, target reflect.Type) (int64, error) {
	var i int64
	switch v := value.(type) {
	case U8:
		i = int64(v)
	case I8:
		i = int64(v)
	case Int:
		i = int64(v)
	case UInt:
		if v > math.MaxInt64 {
			return 0, outOfRange(strconv.FormatUint(uint64(v), 10), target)
		}
		i = int64(v)
	}
	if bits := target.Bits(); bits < 64 && (i < -1<<(bits-1) || i > 1<<(bits-1)-1) {
		return 0, outOfRange(strconv.FormatInt(i, 10), target)
	}
	return i, nil
}

// toFloat32 converts exactly: integers must fit 16 bits.
func toFloat32(value Value) (float32, error) {
	switch v := value.(type) {
	case U8:
		return float32(v), nil
	case I8:
		return float32(v), nil
	case F32:
		return float32(v), nil
	case UInt:
		if v > math.MaxUint16 {
			return 0, &RangeError{Value: strconv.FormatUint(uint64(v), 10), Target: "float32"}
		}
		return float32(v), nil
	case Int:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return 0, &RangeError{Value: strconv.FormatInt(int64(v), 10), Target: "float32"}
		}
		return float32(v), nil
	}
	return 0, &InvalidTypeError{Found: TypeName(value), Expected: "float32"}
}

// toFloat64 converts exactly: integers must fit 32 bits.
func toFloat64(value Value) (float64, error) {
	switch v := value.(type) {
	case U8:
		return float64(v), nil
	case I8:
		return float64(v), nil
	case F32:
		return float64(v), nil
	case F64:
		return float64(v), nil
	case UInt:
		if v > math.MaxUint32 {
			return 0, &RangeError{Value: strconv.FormatUint(uint64(v), 10), Target: "float64"}
		}
		return float64(v), nil
	case Int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return 0, &RangeError{Value: strconv.FormatInt(int64(v), 10), Target: "float64"}
		}
		return float64(v), nil
	}
	return 0, &InvalidTypeError{Found: TypeName(value), Expected: "float64"}
}

func outOfRange(value string, target reflect.Type) error {
	return &RangeError{Value: value, Target: target.String()}
}
