package literal

import (
	"fmt"
	"sort"
)

// FromNative converts decoded YAML/JSON data (nil, bool, int, int64,
// uint64, float64, string, []any, map[string]any) into a Value so it can
// go through the same array rules as literal text.
func FromNative(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return None{}, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return nil, fmt.Errorf("integer %d out of int64 range", val)
		}
		return Int(int64(val)), nil
	case float64:
		return Float(val), nil
	case string:
		return Str(val), nil
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			lv, err := FromNative(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = lv
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Dict, 0, len(val))
		for _, k := range keys {
			lv, err := FromNative(val[k])
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out = append(out, DictEntry{Key: Str(k), Value: lv})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
