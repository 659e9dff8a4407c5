package wire

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ToJSON renders an Encode'd byte stream as JSON, for a human (or a test
// fixture) to read or hand-edit. It is a generic CBOR->JSON conversion,
// not a typed decode, so it tolerates any well-formed envelope without
// wire needing to export graphEnvelope/graphNode.
func ToJSON(encoded []byte) ([]byte, error) {
	var v interface{}
	if err := cbor.Unmarshal(encoded, &v); err != nil {
		return nil, fmt.Errorf("wire: decoding CBOR for JSON conversion: %w", err)
	}
	out, err := json.MarshalIndent(normalize(v), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("wire: marshaling JSON: %w", err)
	}
	return out, nil
}

// FromJSON is ToJSON's inverse: it re-encodes a JSON document (produced by
// ToJSON, or hand-written to the same shape) as canonical CBOR suitable
// for Decode.
func FromJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("wire: decoding JSON: %w", err)
	}
	mode, err := encMode()
	if err != nil {
		return nil, err
	}
	out, err := mode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: re-encoding as CBOR: %w", err)
	}
	return out, nil
}

// normalize recursively turns cbor's map[interface{}]interface{} results
// into map[string]interface{} so encoding/json can marshal them; cbor
// decodes struct-shaped maps with string keys already, but nested maps
// inside []interface{} go through this same generic path.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
