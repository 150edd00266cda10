package callback

import (
	"encoding/json"
	"strconv"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"tuwaiq_relay/internal/domain/businesstime"
)

func objectField(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	obj, ok := m[key].(map[string]any)
	return obj, ok
}

// stringField returns the first key holding a non-empty scalar, rendered as a string.
func stringField(m map[string]any, keys ...string) string {
	if m == nil {
		return ""
	}
	for _, k := range keys {
		if s := scalar(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return trimmed(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	v, _ := lo.Coalesce(values...)
	return v
}

// paymentMethod accepts a scalar code or an object, preferring the object's code.
func paymentMethod(v any) string {
	if obj, ok := v.(map[string]any); ok {
		return stringField(obj, "code", "displayName", "nameEn")
	}
	return scalar(v)
}

func firstAmount(values ...any) decimal.NullDecimal {
	for _, v := range values {
		s := scalar(v)
		if s == "" {
			continue
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			continue
		}
		return decimal.NewNullDecimal(d)
	}
	return decimal.NullDecimal{}
}

// dateParts reads a provider date array. Anything else, including arrays with
// non-integer members, is not a date array.
func dateParts(v any) ([]int, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	parts := make([]int, 0, len(arr))
	for _, el := range arr {
		switch n := el.(type) {
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, false
			}
			parts = append(parts, int(i))
		case float64:
			if n != float64(int(n)) {
				return nil, false
			}
			parts = append(parts, int(n))
		default:
			return nil, false
		}
	}
	return parts, true
}

// canonicalTimestamp renders a settlement timestamp as a UTC ISO string.
// Arrays are provider UTC date parts; RFC 3339 strings are re-rendered;
// other strings pass through unchanged.
func canonicalTimestamp(v any) string {
	if parts, ok := dateParts(v); ok {
		if t, ok := businesstime.FromParts(parts); ok {
			return businesstime.FormatUTC(t)
		}
		return ""
	}
	s := scalar(v)
	if s == "" {
		return ""
	}
	if t, ok := businesstime.ParseZoned(s); ok {
		return businesstime.FormatUTC(t)
	}
	return s
}

// rawTimestamp converts date arrays but leaves strings exactly as sent,
// so that consultation resolution sees what the caller wrote.
func rawTimestamp(v any) string {
	if _, ok := v.([]any); ok {
		return canonicalTimestamp(v)
	}
	return scalar(v)
}
