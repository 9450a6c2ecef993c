package openapi

import "encoding/json"

// MarshalJSON serializes the OpenAPI document to indented JSON bytes.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}
