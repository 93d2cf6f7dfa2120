package payload

import (
	"fmt"
	"strings"

	"matchwell/internal/model"
)

// ValidationError records the fields dropped while reconstructing a
// payload. It exists for logging and tests; the public Normalize
// contract still collapses every failure mode to nil or a defaulted
// field at the boundary.
type ValidationError struct {
	Fields []FieldError
}

// FieldError names one dropped or defaulted field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "payload valid"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "payload fields dropped: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// Normalize defensively reconstructs a payload from an already-parsed
// but untyped value (decoded URLs, legacy blobs, stored copies).
// Fields that fail their shape check are dropped or defaulted rather
// than failing the whole payload; only a non-object input yields nil.
// Idempotent: normalizing a normalized payload changes nothing.
func Normalize(raw any) *model.ResultsPayloadV1 {
	p, _ := validate(raw)
	return p
}

// validate is the typed core behind Normalize. It returns the
// reconstructed payload plus a record of everything it had to drop.
func validate(raw any) (*model.ResultsPayloadV1, *ValidationError) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ValidationError{Fields: []FieldError{{Field: "payload", Reason: "not an object"}}}
	}

	verr := &ValidationError{}
	p := &model.ResultsPayloadV1{
		V:   model.PayloadVersion,
		Top: []model.Modality{},
		Med: model.MedicationNo,
	}

	p.Top = normalizeTop(obj["top"], verr)
	p.Med = normalizeMed(obj["med"])
	p.Reasons = normalizeReasons(obj["reasons"], verr)
	p.Confidence = normalizeConfidence(obj["confidence"], verr)
	p.Gates = normalizeGates(obj["gates"])
	p.Meta = normalizeMeta(obj["meta"], verr)

	if len(verr.Fields) == 0 {
		verr = nil
	}
	return p, verr
}

// normalizeTop keeps only known modality strings, silently dropping
// unknown or future IDs so additive modality changes stay
// forward-compatible.
func normalizeTop(raw any, verr *ValidationError) []model.Modality {
	arr, ok := raw.([]any)
	if !ok {
		if raw != nil {
			verr.add("top", "not an array")
		}
		return []model.Modality{}
	}
	top := make([]model.Modality, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok || !model.Modality(s).Valid() {
			verr.add("top", fmt.Sprintf("unknown modality %v", v))
			continue
		}
		top = append(top, model.Modality(s))
	}
	return top
}

// normalizeMed maps exactly "consider" to consider; everything else —
// absent, null, misspelled — defaults to the safe "no".
func normalizeMed(raw any) model.MedicationFlag {
	if s, ok := raw.(string); ok && s == string(model.MedicationConsider) {
		return model.MedicationConsider
	}
	return model.MedicationNo
}

func normalizeReasons(raw any, verr *ValidationError) map[model.Modality][]string {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[model.Modality][]string)
	for k, v := range obj {
		if !model.Modality(k).Valid() {
			verr.add("reasons", fmt.Sprintf("unknown modality key %q", k))
			continue
		}
		arr, ok := v.([]any)
		if !ok {
			verr.add("reasons", fmt.Sprintf("value for %q is not an array", k))
			continue
		}
		strs := make([]string, 0, len(arr))
		valid := true
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				valid = false
				break
			}
			strs = append(strs, s)
		}
		if !valid {
			verr.add("reasons", fmt.Sprintf("value for %q contains non-strings", k))
			continue
		}
		out[model.Modality(k)] = strs
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeConfidence is all-or-nothing: any invalid required field
// drops the whole object rather than leaving it partially populated.
func normalizeConfidence(raw any, verr *ValidationError) *model.Confidence {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	level, _ := obj["level"].(string)
	label, _ := obj["label"].(string)
	why, _ := obj["why"].(string)
	if !model.ConfidenceLevel(level).Valid() || label == "" || why == "" {
		verr.add("confidence", "incomplete or unknown level, dropped")
		return nil
	}
	c := &model.Confidence{
		Level: model.ConfidenceLevel(level),
		Label: label,
		Why:   why,
	}
	if details, ok := obj["details"].(map[string]any); ok {
		d := make(map[string]float64)
		for k, v := range details {
			if f, ok := v.(float64); ok {
				d[k] = f
			}
		}
		if len(d) > 0 {
			c.Details = d
		}
	}
	return c
}

// normalizeGates keeps each gate tri-state: a key absent or non-bool
// stays unset, an explicit false survives as false.
func normalizeGates(raw any) *model.Gates {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	boolAt := func(key string) *bool {
		b, ok := obj[key].(bool)
		if !ok {
			return nil
		}
		return &b
	}
	g := &model.Gates{
		OCDStrongSignal:       boolAt("ocdStrongSignal"),
		StabilizationFirst:    boolAt("stabilizationFirst"),
		TraumaProcessingReady: boolAt("traumaProcessingReady"),
		ConsiderHigherSupport: boolAt("considerHigherSupport"),
	}
	if g.Empty() {
		return nil
	}
	return g
}

func normalizeMeta(raw any, verr *ValidationError) *model.PayloadMeta {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	meta := &model.PayloadMeta{}
	if s, ok := obj["source"].(string); ok {
		meta.Source = s
	} else if obj["source"] != nil {
		verr.add("meta.source", "not a string")
	}
	if s, ok := obj["ts"].(string); ok {
		meta.TS = s
	} else if obj["ts"] != nil {
		verr.add("meta.ts", "not a string")
	}
	if utm, ok := obj["utm"].(map[string]any); ok {
		kept := make(map[string]string)
		for k, v := range utm {
			if s, ok := v.(string); ok && s != "" {
				kept[k] = s
			}
		}
		if len(kept) > 0 {
			meta.UTM = kept
		}
	}
	if meta.Source == "" && meta.TS == "" && meta.UTM == nil {
		return nil
	}
	return meta
}
