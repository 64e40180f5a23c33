package value

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// FromAny converts YAML/JSON-shaped Go data into a Value. Supported inputs are
// nil, bool, the integer and float types, string, time.Time, []any and other
// slices, map[string]any and map[any]any (keys are formatted with %v), and
// Value itself.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case time.Time:
		return String(formatTime(x)), nil
	case []any:
		items := make([]Value, 0, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, ev)
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = ev
		}
		return Value{kind: KindMap, m: m}, nil
	case map[any]any:
		m := make(map[string]Value, len(x))
		for k, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("key %v: %w", k, err)
			}
			m[fmt.Sprint(k)] = ev
		}
		return Value{kind: KindMap, m: m}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, ev)
		}
		return Value{kind: KindArray, arr: items}, nil
	case reflect.Map, reflect.Struct, reflect.Pointer:
		return FromRecord(v)
	}
	return Value{}, fmt.Errorf("unsupported context value of type %T", v)
}

// FromRecord projects a typed record (usually a front-matter struct) into a
// Value field by field. Field names follow the record's yaml tags, so a record
// decoded from front-matter projects back onto the same keys.
func FromRecord(record any) (Value, error) {
	if record == nil {
		return Null(), nil
	}
	raw, err := yaml.Marshal(record)
	if err != nil {
		return Value{}, fmt.Errorf("project record %T: %w", record, err)
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return Value{}, fmt.Errorf("project record %T: %w", record, err)
	}
	return FromAny(generic)
}

// ToAny converts v into plain Go data for template engines: nil, bool, int
// (for integral numbers) or float64, string, []any and map[string]any.
func (v Value) ToAny() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		if v.n == math.Trunc(v.n) && math.Abs(v.n) < 1<<53 {
			return int(v.n)
		}
		return v.n
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, x := range v.arr {
			out[i] = x.ToAny()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, x := range v.m {
			out[k] = x.ToAny()
		}
		return out
	default:
		return nil
	}
}

// Compare orders two values for sorting: nulls first, then numbers
// numerically, strings lexically, booleans false before true. Values of
// different kinds order by kind.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return int(a.kind) - int(b.kind)
	}
	switch a.kind {
	case KindNumber:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
	case KindString:
		switch {
		case a.s < b.s:
			return -1
		case a.s > b.s:
			return 1
		}
	case KindBool:
		switch {
		case !a.b && b.b:
			return -1
		case a.b && !b.b:
			return 1
		}
	}
	return 0
}

// SortBy sorts array items by the value stored under key (missing keys sort
// as null). The sort is stable so equal keys keep enumeration order.
func SortBy(items []Value, key string, descending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ki, _ := items[i].Get(key)
		kj, _ := items[j].Get(key)
		c := Compare(ki, kj)
		if descending {
			return c > 0
		}
		return c < 0
	})
}

func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
