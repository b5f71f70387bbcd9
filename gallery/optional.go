package gallery

import (
	"bytes"
	"encoding/json"
)

// OptionalString tells apart a field that was left out from one that was
// explicitly sent as null. Set is false when the field was absent; when Set
// is true a nil Value means "clear it".
type OptionalString struct {
	Set   bool
	Value *string
}

func SetString(v string) OptionalString {
	return OptionalString{Set: true, Value: &v}
}

func NullString() OptionalString {
	return OptionalString{Set: true}
}

// UnmarshalJSON only runs when the key is present in the payload.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
