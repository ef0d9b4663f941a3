package normalize

import (
	"bytes"
	"encoding/json"
)

// FlexString decodes a raw field whose runtime shape is not guaranteed. The
// Azure feeds emit the same field as either a plain string or a structured
// value carrying "value"/"localizedValue"; resolution happens once here so
// the aggregation logic never branches on shape. Precedence: plain string,
// then value, then localizedValue, then a compact rendering of the whole
// structure. Anything else (numbers, bools, arrays, null) resolves to absent.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	if data[0] == '{' {
		var fields map[string]json.RawMessage
		if json.Unmarshal(data, &fields) == nil {
			for _, key := range []string{"value", "localizedValue"} {
				var v string
				if raw, ok := fields[key]; ok && json.Unmarshal(raw, &v) == nil && v != "" {
					*f = FlexString(v)
					return nil
				}
			}
			var compact bytes.Buffer
			if err := json.Compact(&compact, data); err == nil {
				*f = FlexString(compact.String())
			} else {
				*f = ""
			}
			return nil
		}
	}

	// Unsupported shape: the field is absent, never an error.
	*f = ""
	return nil
}

// String returns the resolved value; empty means absent.
func (f FlexString) String() string {
	return string(f)
}
