package validation

import (
	"encoding/json"
	"strings"
)

// Kind is the closed set of semantic JSON kinds that type assertions check
// against. Native decoded values are mapped onto it explicitly; there is no
// reflection involved.
type Kind int

const (
	KindUnknown Kind = iota
	KindNull
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// KindOf maps a decoded JSON value onto its semantic kind. Values decoded by
// ParseJSON keep their numbers as json.Number, so integer and floating-point
// forms stay distinguishable; a few native Go types are also mapped so that
// literal test data can be compared directly.
func KindOf(value interface{}) Kind {
	switch v := value.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBoolean
	case string:
		return KindString
	case json.Number:
		return numberKind(v)
	case int, int32, int64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case []interface{}:
		return KindArray
	case map[string]interface{}:
		return KindObject
	default:
		return KindUnknown
	}
}

// numberKind treats any literal written in fractional or exponent form as a
// float, matching how JSON distinguishes 1 from 1.0 and 1e2.
func numberKind(n json.Number) Kind {
	if strings.ContainsAny(n.String(), ".eE") {
		return KindFloat
	}
	return KindInteger
}
