package httputil

import (
	"bytes"
	"encoding/json"
)

// Optional tracks presence and value for JSON PATCH semantics (RFC 7396),
// which a plain pointer cannot express:
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (clear)
//   - Present=true, Value=&v: field has value v
type Optional[T any] struct {
	Present bool
	Value   *T
}

// UnmarshalJSON implements json.Unmarshaler.
// It is only invoked when the field is present in the JSON.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// OptionalString is the common string case
type OptionalString = Optional[string]
