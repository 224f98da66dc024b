package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
)

// FieldType is the JSON type a body field must have.
type FieldType int

const (
	TypeString FieldType = iota
	TypeNumber
	TypeBoolean
)

func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

func (t FieldType) matches(v any) bool {
	switch t {
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		switch n := v.(type) {
		case json.Number:
			_, err := n.Float64()
			return err == nil
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

// Rule describes a single body field.
type Rule struct {
	Required bool
	Type     FieldType
}

// Schema maps body field names to their rules.
// Fields that are not in the schema are rejected.
type Schema map[string]Rule

// Check validates the shape of payload against the schema.
//
// It reports every problem at once: missing required fields, values of the
// wrong type (null included) and unknown fields. A nil result means the
// payload is valid. Check never modifies payload.
func (s Schema) Check(payload Payload) CustomValidationErrors {
	var problems CustomValidationErrors

	for _, name := range sortedKeys(s) {
		rule := s[name]
		value, present := payload[name]

		if !present {
			if rule.Required {
				problems = append(problems, CustomValidationError{Field: name, Message: "is required"})
			}
			continue
		}

		if !rule.Type.matches(value) {
			problems = append(problems, CustomValidationError{Field: name, Message: "must be a " + rule.Type.String()})
		}
	}

	for _, name := range sortedKeys(payload) {
		if _, known := s[name]; !known {
			problems = append(problems, CustomValidationError{Field: name, Message: "is not a recognized field"})
		}
	}

	return problems
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrNotAnObject is returned when a request body is valid JSON but not an object.
var ErrNotAnObject = errors.New("request body must be a JSON object")

// Payload is a decoded JSON object body.
// Numbers are kept as json.Number so that type checks see what the client sent.
type Payload map[string]any

// UnmarshalJSON decodes a JSON object into the payload.
func (p *Payload) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return ErrNotAnObject
	}

	*p = obj
	return nil
}

// Has reports whether key was present in the body.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the string value of key.
func (p Payload) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Number returns the numeric value of key.
func (p Payload) Number(key string) (float64, bool) {
	switch n := p[key].(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Bool returns the boolean value of key.
func (p Payload) Bool(key string) (bool, bool) {
	b, ok := p[key].(bool)
	return b, ok
}
