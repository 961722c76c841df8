package gateway

import "strconv"

// stringField reads a string value from a decoded JSON object, tolerating a
// missing key or nil map.
func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// floatField reads a numeric value that providers variously encode as a JSON
// number or a decimal string.
func floatField(m map[string]interface{}, key string) float64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}
