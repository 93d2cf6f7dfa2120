package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchwell/internal/model"
)

func parse(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNormalizeNonObjectIsNil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize("string"))
	assert.Nil(t, Normalize(parse(t, `[1,2]`)))
	assert.Nil(t, Normalize(parse(t, `42`)))
}

func TestNormalizeEmptyObjectGetsDefaults(t *testing.T) {
	p := Normalize(parse(t, `{}`))
	require.NotNil(t, p)
	assert.Equal(t, model.PayloadVersion, p.V)
	assert.Empty(t, p.Top)
	assert.Equal(t, model.MedicationNo, p.Med)
	assert.Nil(t, p.Reasons)
	assert.Nil(t, p.Confidence)
	assert.Nil(t, p.Gates)
	assert.Nil(t, p.Meta)
}

func TestNormalizeFiltersUnknownModalities(t *testing.T) {
	p := Normalize(parse(t, `{"top":["emdr","hypnotherapy","cbt",42]}`))
	require.NotNil(t, p)
	assert.Equal(t, []model.Modality{model.ModalityEMDR, model.ModalityCBT}, p.Top)
}

func TestNormalizeMedDefaultsToNo(t *testing.T) {
	for _, raw := range []string{`{}`, `{"med":null}`, `{"med":"Consider"}`, `{"med":"yes"}`, `{"med":7}`} {
		p := Normalize(parse(t, raw))
		require.NotNil(t, p)
		assert.Equal(t, model.MedicationNo, p.Med, "raw %s", raw)
	}
	p := Normalize(parse(t, `{"med":"consider"}`))
	assert.Equal(t, model.MedicationConsider, p.Med)
}

func TestNormalizeReasonsDropsBadEntries(t *testing.T) {
	p := Normalize(parse(t, `{"reasons":{
		"emdr":["kept"],
		"fake_modality":["dropped"],
		"cbt":"not an array",
		"dbt":["ok", 3]
	}}`))
	require.NotNil(t, p)
	assert.Equal(t, map[model.Modality][]string{model.ModalityEMDR: {"kept"}}, p.Reasons)
}

func TestNormalizeConfidenceAllOrNothing(t *testing.T) {
	cases := []string{
		`{"confidence":{"level":"mythic","label":"x","why":"y"}}`,
		`{"confidence":{"level":"strong","label":"","why":"y"}}`,
		`{"confidence":{"level":"strong","label":"x"}}`,
		`{"confidence":"strong"}`,
	}
	for _, raw := range cases {
		p := Normalize(parse(t, raw))
		require.NotNil(t, p)
		assert.Nil(t, p.Confidence, "raw %s", raw)
	}

	p := Normalize(parse(t, `{"confidence":{"level":"strong","label":"Strong match","why":"w","details":{"gap12":1.5,"junk":"x"}}}`))
	require.NotNil(t, p.Confidence)
	assert.Equal(t, model.ConfidenceStrong, p.Confidence.Level)
	assert.Equal(t, map[string]float64{"gap12": 1.5}, p.Confidence.Details)
}

func TestNormalizeGatesTriState(t *testing.T) {
	// Only unrecognized or non-bool keys leave the gates absent.
	p := Normalize(parse(t, `{"gates":{"unknownGate":true,"stabilizationFirst":"yes"}}`))
	require.NotNil(t, p)
	assert.Nil(t, p.Gates)

	// An explicit false is set, distinct from a missing key.
	p = Normalize(parse(t, `{"gates":{"ocdStrongSignal":false}}`))
	require.NotNil(t, p.Gates)
	require.NotNil(t, p.Gates.OCDStrongSignal)
	assert.False(t, *p.Gates.OCDStrongSignal)
	assert.Nil(t, p.Gates.StabilizationFirst)
	assert.False(t, p.Gates.Any())

	p = Normalize(parse(t, `{"gates":{"ocdStrongSignal":true}}`))
	require.NotNil(t, p.Gates)
	assert.True(t, model.GateFired(p.Gates.OCDStrongSignal))
}

func TestNormalizeMetaKeepsNonEmptyStrings(t *testing.T) {
	p := Normalize(parse(t, `{"meta":{"source":"quiz_tier1","ts":42,"utm":{"utm_source":"ads","utm_term":"","other":3}}}`))
	require.NotNil(t, p.Meta)
	assert.Equal(t, "quiz_tier1", p.Meta.Source)
	assert.Empty(t, p.Meta.TS)
	assert.Equal(t, map[string]string{"utm_source": "ads"}, p.Meta.UTM)
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := parse(t, `{"v":1,"top":["somatic","art"],"med":"consider",
		"reasons":{"somatic":["r1"]},
		"confidence":{"level":"good","label":"Good match","why":"w"},
		"gates":{"considerHigherSupport":true},
		"meta":{"source":"quiz_tier2","ts":"2026-08-29T12:00:00Z"}}`)

	once := Normalize(raw)
	require.NotNil(t, once)

	// Serialize the normalized payload and run it through again.
	data, err := json.Marshal(once)
	require.NoError(t, err)
	twice := Normalize(parse(t, string(data)))
	assert.Equal(t, once, twice)
}

func TestValidateRecordsDroppedFields(t *testing.T) {
	_, verr := validate(parse(t, `{"top":["fake"],"confidence":{"level":"bad"}}`))
	require.NotNil(t, verr)
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "top")

	_, verr = validate(parse(t, `{"top":["cbt"]}`))
	assert.Nil(t, verr)
}
