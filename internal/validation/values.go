package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Payload is a decoded, loosely-typed request body.
type Payload map[string]any

// present reports whether key carries a non-empty value.
func (p Payload) present(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// toFloat coerces JSON numbers and numeric strings.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toInt(v any) (int64, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Int reads a required integer field.
func (p Payload) Int(key string) (int, error) {
	n, err := p.Int64(key)
	return int(n), err
}

// Int64 reads a required integer field.
func (p Payload) Int64(key string) (int64, error) {
	if !p.present(key) {
		return 0, NewError(key, "is required")
	}
	n, ok := toInt(p[key])
	if !ok {
		return 0, NewError(key, "must be an integer")
	}
	return n, nil
}

// OptionalFloat returns nil for a missing, null or empty field.
func (p Payload) OptionalFloat(key string) (*float64, error) {
	if !p.present(key) {
		return nil, nil
	}
	f, ok := toFloat(p[key])
	if !ok {
		return nil, NewError(key, "must be a number")
	}
	return &f, nil
}

// String returns a trimmed string field, or "" when absent.
func (p Payload) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// ParseInt coerces a query-string value. Empty means absent.
func ParseInt(field, raw string) (int, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	n, ok := toInt(raw)
	if !ok {
		return 0, false, NewError(field, "must be an integer")
	}
	return int(n), true, nil
}

// ParseIDList accepts "1,2,3" and repeated values.
func ParseIDList(field string, raw []string) ([]int64, error) {
	var ids []int64
	for _, chunk := range raw {
		for _, part := range strings.Split(chunk, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, ok := toInt(part)
			if !ok || id <= 0 {
				return nil, NewError(field, fmt.Sprintf("invalid id %q", part))
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, NewError(field, "at least one id is required")
	}
	return ids, nil
}

// OptionalDate accepts RFC 3339 timestamps and plain 2006-01-02 dates.
func (p Payload) OptionalDate(key string) (*time.Time, error) {
	if !p.present(key) {
		return nil, nil
	}
	raw := p.String(key)
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return &t, nil
		}
	}
	return nil, NewError(key, "must be a date (YYYY-MM-DD or RFC 3339)")
}

// Date reads a required date field.
func (p Payload) Date(key string) (time.Time, error) {
	t, err := p.OptionalDate(key)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, NewError(key, "is required")
	}
	return *t, nil
}
