package service

import "encoding/json"

// sanitizeRecord converts a record to a generic map and strips every unset
// field at every nesting level. The keyed store rejects unset values, so keys
// must be absent rather than present-as-empty.
func sanitizeRecord(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return stripUnset(record).(map[string]any), nil
}

// stripUnset walks maps and arrays, removing keys whose value is nil or an
// empty string.
func stripUnset(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for key, inner := range value {
			cleaned := stripUnset(inner)
			if cleaned == nil {
				delete(value, key)
				continue
			}
			if s, ok := cleaned.(string); ok && s == "" {
				delete(value, key)
				continue
			}
			value[key] = cleaned
		}
		return value
	case []any:
		for i, inner := range value {
			value[i] = stripUnset(inner)
		}
		return value
	default:
		return v
	}
}
