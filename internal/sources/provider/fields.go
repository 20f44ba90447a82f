// internal/sources/provider/fields.go

// Package provider holds helpers shared by the external source adapters.
// Provider schemas drift, so every mapped field is read through an
// ordered list of candidate key names; the precedence lists live next to
// each adapter as named constants so the accepted shapes are auditable.
package provider

import (
	"time"
)

// String returns the first non-empty string value among keys.
func String(m map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// Float returns the first numeric value among keys. JSON numbers decode
// as float64; string-encoded numbers are not accepted.
func Float(m map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			switch n := v.(type) {
			case float64:
				return n
			case int:
				return float64(n)
			}
		}
	}
	return 0
}

// Int returns the first numeric value among keys, truncated.
func Int(m map[string]interface{}, keys ...string) int {
	return int(Float(m, keys...))
}

// Time parses the first value among keys that matches a known timestamp
// layout. Zero time when nothing parses.
func Time(m map[string]interface{}, keys ...string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, key := range keys {
		s := String(m, key)
		if s == "" {
			continue
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// Items extracts the result list from a provider response body, trying
// each candidate top-level key in order.
func Items(body map[string]interface{}, keys ...string) []map[string]interface{} {
	for _, key := range keys {
		raw, ok := body[key]
		if !ok {
			continue
		}
		list, ok := raw.([]interface{})
		if !ok {
			continue
		}
		items := make([]map[string]interface{}, 0, len(list))
		for _, entry := range list {
			if m, ok := entry.(map[string]interface{}); ok {
				items = append(items, m)
			}
		}
		return items
	}
	return nil
}
