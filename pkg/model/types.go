package model

// Payload is the loosely typed input an entity is resolved from, typically
// a decoded JSON object.
type Payload map[string]any

// Attributer is implemented by entities that can look up a resolved
// attribute by its key. Output fields without a value function read through it.
type Attributer interface {
	Attribute(key string) (any, bool)
}

// Related is the minimal contract an entity nested under another entity
// must fulfil. The resolver never inspects related entities beyond this.
type Related interface {
	ConvertToValidValue()
	APIResource() (FieldSet, error)
}

// PayloadOf returns v as a Payload if it is an object shaped value.
func PayloadOf(v any) (Payload, bool) {
	switch t := v.(type) {
	case Payload:
		return t, true
	case map[string]any:
		return Payload(t), true
	default:
		return nil, false
	}
}
