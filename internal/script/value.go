package script

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// valueToGo converts an evaluated script value into a plain Go value
// suitable for JSON encoding and for request payloads. Whole numbers come
// back as int64 so payloads do not grow spurious decimal points.
func valueToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return v.AsString(), nil
	case ty.Equals(cty.Number):
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.Equals(cty.Bool):
		return v.True(), nil
	case ty.IsObjectType() || ty.IsMapType():
		result := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, element := it.Element()
			goVal, err := valueToGo(element)
			if err != nil {
				return nil, err
			}
			result[key.AsString()] = goVal
		}
		return result, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var result []any
		for it := v.ElementIterator(); it.Next(); {
			_, element := it.Element()
			goVal, err := valueToGo(element)
			if err != nil {
				return nil, err
			}
			result = append(result, goVal)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("cannot use %s value here", ty.FriendlyName())
	}
}

// dataToGo converts a request payload expression into a string-keyed map.
func dataToGo(v cty.Value) (map[string]any, error) {
	if v.IsNull() {
		return nil, nil
	}
	goVal, err := valueToGo(v)
	if err != nil {
		return nil, err
	}
	data, ok := goVal.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("request data must be an object, got %s", v.Type().FriendlyName())
	}
	return data, nil
}
