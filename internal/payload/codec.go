// Package payload implements the versioned results-payload codec. The
// encoded string travels through URLs and client storage, both of
// which users can edit, so decode is a total function: any input that
// is not a well-formed payload converges to nil, never a panic or an
// error page.
package payload

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	"matchwell/internal/model"
)

// QueryParam is the results URL query parameter carrying the encoded
// payload.
const QueryParam = "r"

// Encode serializes a payload to a compact URL-safe string: JSON, then
// unpadded base64url. It never fails for a structurally valid payload.
func Encode(p *model.ResultsPayloadV1) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses Encode and normalizes the result. Total over all
// strings: empty, truncated, non-base64, non-JSON, and wrong-shape
// inputs all return nil. Padded input is tolerated.
func Decode(encoded string) *model.ResultsPayloadV1 {
	if encoded == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return Normalize(raw)
}
