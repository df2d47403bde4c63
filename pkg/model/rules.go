package model

// Kind tags how a field rule resolves its value.
type Kind int

const (
	KindVerbatim Kind = iota
	KindDefault
	KindComputed
	KindRelated
)

func (k Kind) String() string {
	switch k {
	case KindVerbatim:
		return "verbatim"
	case KindDefault:
		return "default"
	case KindComputed:
		return "computed"
	case KindRelated:
		return "related"
	default:
		return "unknown"
	}
}

// ValueFunc computes a field value. current is the raw input value stored
// under the field key, or nil if the payload has none.
type ValueFunc func(current any, input Payload) (any, error)

// RelatedFunc constructs a related entity from the payload fragment stored
// under the field key.
type RelatedFunc func(fragment any) (any, error)

// Field is a declarative rule for resolving one attribute of an entity.
type Field struct {
	Key string

	kind    Kind
	def     any
	value   ValueFunc
	related RelatedFunc
}

func (f Field) Kind() Kind {
	return f.kind
}

// Verbatim copies the raw input value, or nil if the payload has none.
func Verbatim(key string) Field {
	return Field{Key: key, kind: KindVerbatim}
}

// Default copies the raw input value, falling back to a fresh copy of value
// when the payload has no (or a nil) value for the key.
func Default(key string, value any) Field {
	return Field{Key: key, kind: KindDefault, def: value}
}

// Computed always resolves the field through fn, regardless of payload content.
func Computed(key string, fn ValueFunc) Field {
	return Field{Key: key, kind: KindComputed, value: fn}
}

// Related constructs a child entity through fn when the payload carries a
// non nil value for the key. Otherwise the field resolves to nil.
func Related(key string, fn RelatedFunc) Field {
	return Field{Key: key, kind: KindRelated, related: fn}
}

func (f Field) resolve(input Payload) (any, error) {
	raw, present := input[f.Key]

	switch f.kind {
	case KindComputed:
		return f.value(raw, input)
	case KindRelated:
		if present && raw != nil {
			return f.related(raw)
		}
	case KindDefault:
		if raw == nil {
			return CopyValue(f.def), nil
		}
	}

	return raw, nil
}

// Schema is an ordered list of field rules.
type Schema []Field

// Keys returns the declared keys in declaration order, without duplicates.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	seen := make(map[string]struct{}, len(s))

	for _, f := range s {
		if _, ok := seen[f.Key]; ok {
			continue
		}
		seen[f.Key] = struct{}{}
		keys = append(keys, f.Key)
	}

	return keys
}

// CopyValue returns a deep copy of JSON shaped values so that entities
// never share mutable defaults.
func CopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = CopyValue(e)
		}
		return m
	case Payload:
		return Payload(CopyValue(map[string]any(t)).(map[string]any))
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = CopyValue(e)
		}
		return s
	case []string:
		s := make([]string, len(t))
		copy(s, t)
		return s
	default:
		return v
	}
}
