package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchwell/internal/model"
)

func TestDeriveGatesNilWhenNothingFires(t *testing.T) {
	assert.Nil(t, DeriveGates(model.Answers{}))
	assert.Nil(t, DeriveGates(model.Answers{
		QuestionOCDSignal:       {"worry_loops"},
		QuestionTraumaReadiness: {"unsure"},
		QuestionSupportLevel:    {"weekly"},
	}))
}

func TestDeriveGatesOCDSignal(t *testing.T) {
	g := DeriveGates(model.Answers{QuestionOCDSignal: {OptionRituals}})
	require.NotNil(t, g)
	assert.True(t, model.GateFired(g.OCDStrongSignal))
	assert.Nil(t, g.StabilizationFirst)

	g = DeriveGates(model.Answers{QuestionOCDSignal: {OptionAvoidTriggers}})
	require.NotNil(t, g)
	assert.True(t, model.GateFired(g.OCDStrongSignal))
}

func TestDeriveGatesTraumaReadiness(t *testing.T) {
	g := DeriveGates(model.Answers{QuestionTraumaReadiness: {OptionStabilize}})
	require.NotNil(t, g)
	assert.True(t, model.GateFired(g.StabilizationFirst))
	assert.Nil(t, g.TraumaProcessingReady)

	g = DeriveGates(model.Answers{QuestionTraumaReadiness: {OptionReady}})
	require.NotNil(t, g)
	assert.True(t, model.GateFired(g.TraumaProcessingReady))
	assert.Nil(t, g.StabilizationFirst)
}

func TestDeriveGatesSupportLevel(t *testing.T) {
	g := DeriveGates(model.Answers{QuestionSupportLevel: {OptionMoreThanWeekly}})
	require.NotNil(t, g)
	assert.True(t, model.GateFired(g.ConsiderHigherSupport))
}

func TestDeriveGatesComeFromSelectionsNotScores(t *testing.T) {
	// A heavy exposure score without the rituals selection fires nothing.
	set := testSet(model.Tier2, selectOne("q1",
		opt("a", map[model.Modality]float64{model.ModalityExposure: 5.0}),
	))
	answers := model.Answers{"q1": {"a"}}

	res := Score(answers, set)
	assert.Equal(t, 5.0, res.Scores[model.ModalityExposure])
	assert.Nil(t, DeriveGates(answers))
}
