// Package textnorm holds the canonical forms shared by every comparison of
// user-facing labels and identifiers.
package textnorm

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FilterKey maps a free-form label to its filter key: lowercase, accents
// removed, whitespace runs collapsed to a single hyphen.
//
// "Escarlata y Púrpura" and "escarlata  y purpura" both yield "escarlata-y-purpura".
func FilterKey(label string) string {
	lowered := strings.ToLower(label)

	// transformers are stateful, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, lowered)
	if err != nil {
		stripped = lowered
	}

	return strings.Join(strings.Fields(stripped), "-")
}

// SameKey reports whether two labels normalize to the same filter key
func SameKey(a, b string) bool {
	return FilterKey(a) == FilterKey(b)
}

// CanonicalID returns the string form used to compare identifiers that may
// arrive either as numbers or as strings.
func CanonicalID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case json.Number:
		return canonicalNumber(id)
	case float64:
		return canonicalFloat(id)
	case float32:
		return canonicalFloat(float64(id))
	case int:
		return strconv.Itoa(id)
	case int32:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case uint:
		return strconv.FormatUint(uint64(id), 10)
	case uint32:
		return strconv.FormatUint(uint64(id), 10)
	case uint64:
		return strconv.FormatUint(id, 10)
	case fmt.Stringer:
		return strings.TrimSpace(id.String())
	default:
		return strings.TrimSpace(fmt.Sprint(id))
	}
}

// canonicalNumber folds 7.0 and 7 from a JSON number literal into one id.
// Strings are never parsed, so SKUs such as "1e3" keep their spelling.
func canonicalNumber(n json.Number) string {
	s := strings.TrimSpace(n.String())
	if strings.ContainsAny(s, ".eE") {
		if f, err := n.Float64(); err == nil {
			return canonicalFloat(f)
		}
	}
	return s
}

func canonicalFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
