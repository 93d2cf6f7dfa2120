package payload

import (
	"encoding/json"
	"net/url"

	"matchwell/internal/model"
)

// LegacySource stamps payloads migrated from the old JSON-in-URL
// share-link format.
const LegacySource = "legacy_results_link"

// DecodeLegacy parses a legacy route parameter (JSON in the pre-v1
// shape), normalizes it, and stamps the migration source if the
// payload carried no source of its own. Returns nil for anything
// unusable — the caller redirects to the bare results route instead of
// erroring.
//
// Routers hand over the path segment already percent-decoded, so the
// blob is tried as JSON first; unescaping runs only as a fallback for
// callers passing the raw segment. Decoding exactly once keeps literal
// % and + characters inside reason text intact.
func DecodeLegacy(blob string) *model.ResultsPayloadV1 {
	if blob == "" {
		return nil
	}

	raw, ok := parseLegacyJSON(blob)
	if !ok {
		decoded, err := url.QueryUnescape(blob)
		if err != nil {
			return nil
		}
		if raw, ok = parseLegacyJSON(decoded); !ok {
			return nil
		}
	}

	p := Normalize(raw)
	if p == nil {
		return nil
	}
	if p.Meta == nil {
		p.Meta = &model.PayloadMeta{Source: LegacySource}
	} else if p.Meta.Source == "" {
		p.Meta.Source = LegacySource
	}
	return p
}

func parseLegacyJSON(s string) (any, bool) {
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	return raw, true
}
