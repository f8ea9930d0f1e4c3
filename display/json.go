package display

import (
	"encoding/json"
)

// MarshalJSON marshals JSON with pretty formatting. Keys are emitted in
// struct order, so golden file tests see stable output.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
