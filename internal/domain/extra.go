package domain

import (
	"encoding/json"
	"fmt"
)

// Users and bookings carry a fixed set of required fields plus whatever extra
// form fields the client submitted. The extras are kept in an open string map
// and flattened back into the same JSON object on marshal, so persisted blobs
// stay compatible with the original flat layout.

// DecodeExtra converts leftover raw JSON fields into string form values.
// Values that are not JSON strings are kept as their literal encoding.
func DecodeExtra(raw map[string]json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	extra := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			s = string(v)
		}
		extra[k] = s
	}
	return extra
}

// takeField decodes raw[key] into dest and removes it from raw. A missing key
// leaves dest at its zero value.
func takeField(raw map[string]json.RawMessage, key string, dest any) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if err := json.Unmarshal(v, dest); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// mergeExtra copies extras into m. Fixed fields are set afterwards by the
// caller, so they always win over a colliding extra key.
func mergeExtra(m map[string]any, extra map[string]string) {
	for k, v := range extra {
		m[k] = v
	}
}
