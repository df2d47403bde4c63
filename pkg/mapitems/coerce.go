package mapitems

import (
	"encoding/json"
	"math"
	"strings"
	"unicode"
)

// parseInt reads an integer the way a lenient browser client would: numbers
// are truncated and strings are read up to the first non digit. Values out of
// the int range saturate at its bounds.
func parseInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		if v >= math.MaxInt {
			return math.MaxInt, true
		}
		if v <= math.MinInt {
			return math.MinInt, true
		}
		return int(v), true
	case float32:
		return parseInt(float64(v))
	case json.Number:
		return leadingInt(v.String())
	case string:
		return leadingInt(v)
	default:
		return 0, false
	}
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}

	n, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		d := int(r - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
		} else {
			n = n*10 + d
		}
		digits++
	}

	if digits == 0 {
		return 0, false
	}

	if negative {
		n = -n
	}

	return n, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	default:
		return true
	}
}
