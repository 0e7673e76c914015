package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tags the variants of a Value
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// Value is a recursive tagged representation of an arbitrary JSON tree, used
// for LLM extraction results. Rendering code switches on Kind exhaustively
// instead of type-asserting an untyped blob.
type Value struct {
	Kind ValueKind

	Str  string
	Num  float64
	Bool bool
	Arr  []Value
	Obj  map[string]Value
}

// FromAny converts a decoded JSON value (as produced by encoding/json into
// any) to a Value.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{Kind: KindNull}, nil
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case float64:
		return Value{Kind: KindNumber, Num: t}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case []any:
		arr := make([]Value, len(t))
		for i, elem := range t {
			ev, err := FromAny(elem)
			if err != nil {
				return Value{}, err
			}
			arr[i] = ev
		}
		return Value{Kind: KindArray, Arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, elem := range t {
			ev, err := FromAny(elem)
			if err != nil {
				return Value{}, err
			}
			obj[k] = ev
		}
		return Value{Kind: KindObject, Obj: obj}, nil
	}
	return Value{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidInput, v)
}

// Interface converts the Value back to the plain form encoding/json expects.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	case KindBool:
		return v.Bool
	case KindArray:
		arr := make([]any, len(v.Arr))
		for i, elem := range v.Arr {
			arr[i] = elem.Interface()
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(v.Obj))
		for k, elem := range v.Obj {
			obj[k] = elem.Interface()
		}
		return obj
	}
	return nil
}

// String renders scalars for display. Composites render as compact JSON.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return ""
	case KindString:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
