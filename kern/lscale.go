package kern

import (
	"fmt"
	"github.com/ritabanc/qso-var/utils"
	"github.com/spf13/cast"
	"gonum.org/v1/gonum/mat"
	"reflect"
	"strconv"
)

// LengthScale is the input form of the per-dimension length scale: a Scalar,
// a Sequence or an Array.
type LengthScale interface {
	// resolve returns the dense length-scale vector. inferred is the
	// dimension implied by the input, or 0 when the input does not imply one.
	resolve(dim int, fixed bool) (vals []float64, inferred int, err error)
}

// Scalar is a single length scale, broadcast over every dimension.
type Scalar float64

// Sequence is one length scale per dimension.
type Sequence []float64

// Array is one length scale per dimension, backed by a gonum vector.
type Array struct {
	mat.Vector
}

func (s Scalar) resolve(dim int, fixed bool) ([]float64, int, error) {
	if fixed {
		return utils.Fill(dim, float64(s)), 0, nil
	}
	return []float64{float64(s)}, 1, nil
}

func (s Sequence) resolve(int, bool) ([]float64, int, error) {
	if len(s) == 0 {
		return nil, 0, fmt.Errorf("%w: empty length-scale sequence",
			ErrInvalidHyperparameter)
	}
	vals := make([]float64, len(s))
	copy(vals, s)
	return vals, len(vals), nil
}

func (a Array) resolve(int, bool) ([]float64, int, error) {
	if isNilVector(a.Vector) || a.Len() == 0 {
		return nil, 0, fmt.Errorf("%w: empty length-scale array",
			ErrInvalidHyperparameter)
	}
	vals := make([]float64, a.Len())
	for i := range vals {
		vals[i] = a.AtVec(i)
	}
	return vals, len(vals), nil
}

// ParseLengthScale converts an untyped value, such as one decoded from YAML,
// into a LengthScale. Numbers and numeric strings become a Scalar, lists of
// them a Sequence and gonum vectors an Array.
func ParseLengthScale(v any) (LengthScale, error) {
	switch v := v.(type) {
	case LengthScale:
		return v, nil
	case mat.Vector:
		if isNilVector(v) {
			return nil, invalidLengthScale(v)
		}
		return Array{Vector: v}, nil
	case []float64:
		return Sequence(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, invalidLengthScale(v)
		}
		return Scalar(f), nil
	}
	if f, ok := toFloat(v); ok {
		return Scalar(f), nil
	}
	if seq, ok := toFloats(v); ok {
		return Sequence(seq), nil
	}
	return nil, invalidLengthScale(v)
}

// toFloat converts a single numeric value. Booleans and nil are not numbers.
func toFloat(v any) (float64, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}

func toFloats(v any) ([]float64, bool) {
	items, err := cast.ToSliceE(v)
	if err != nil {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, false
		}
		items = make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func isNilVector(v mat.Vector) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func invalidLengthScale(v any) error {
	return fmt.Errorf(
		"%w: length scale should be a float, a list of floats or a vector, got %T",
		ErrInvalidHyperparameter, v)
}
