package userconfig

import (
	"encoding/json"
)

// Kind is the runtime type tag of a parsed value. Validators switch on it
// before touching a value, so no unchecked type assertion is ever made.
type Kind int

const (
	KindInvalid Kind = iota // not a value the parser produces
	KindText
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindText:    "string",
	KindNumber:  "number",
	KindBool:    "boolean",
	KindNull:    "null",
	KindObject:  "object",
	KindArray:   "array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}
	return kindNames[k]
}

// KindOf classifies a value from the parsed tree. Plain Go numbers are
// accepted too so values decoded elsewhere (e.g. with float64 numbers) work.
// KindText, KindObject and KindArray guarantee the dynamic types string,
// map[string]any and []any, so callers may assert after checking the kind.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindText
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return KindNumber
	case bool:
		return KindBool
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	default:
		return KindInvalid
	}
}
