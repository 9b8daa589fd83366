package usecase

import (
	"math"
	"strings"
	"time"
)

// Helpers for reading untrusted provider JSON decoded into map[string]any.
// Each returns ok=false instead of failing when a field is absent or has
// the wrong type.

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok && obj != nil
}

func stringField(src map[string]any, key string) (string, bool) {
	value, ok := src[key].(string)
	return value, ok
}

func intField(src map[string]any, key string) (int64, bool) {
	raw, ok := src[key]
	if !ok {
		return 0, false
	}
	return asInt64(raw)
}

func asInt64(raw any) (int64, bool) {
	switch typed := raw.(type) {
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) || typed != math.Trunc(typed) {
			return 0, false
		}
		// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
		if typed >= math.MaxInt64 || typed < math.MinInt64 {
			return 0, false
		}
		return int64(typed), true
	case int64:
		return typed, true
	case int:
		return int64(typed), true
	default:
		return 0, false
	}
}

var providerTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseProviderTime accepts the layouts SportMonks uses for starting_at and
// date_of_birth. Values without a zone are read as UTC.
func parseProviderTime(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range providerTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
