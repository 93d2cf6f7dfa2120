package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchwell/internal/model"
)

func testSet(tier model.Tier, questions ...model.Question) *model.QuestionSet {
	return &model.QuestionSet{Tier: tier, Questions: questions}
}

func selectOne(id string, options ...model.Option) model.Question {
	return model.Question{ID: id, Kind: model.KindSelectOne, Prompt: id, Options: options}
}

func selectMany(id string, options ...model.Option) model.Question {
	return model.Question{ID: id, Kind: model.KindSelectMany, Prompt: id, Options: options}
}

func opt(id string, weights map[model.Modality]float64) model.Option {
	return model.Option{ID: id, Label: id, Weights: weights}
}

func TestScoreInitializesEveryModality(t *testing.T) {
	set := testSet(model.Tier1, selectOne("q1", opt("a", map[model.Modality]float64{model.ModalityCBT: 2.0})))

	res := Score(model.Answers{"q1": {"a"}}, set)

	require.Len(t, res.Scores, len(model.AllModalities))
	assert.Equal(t, 2.0, res.Scores[model.ModalityCBT])
	assert.Equal(t, 0.0, res.Scores[model.ModalityEMDR])
	assert.Equal(t, 0.0, res.Scores[model.ModalityMedication])
}

func TestScoreUnansweredContributesNothing(t *testing.T) {
	set := testSet(model.Tier1,
		selectOne("q1", opt("a", map[model.Modality]float64{model.ModalityCBT: 2.0})),
		selectOne("q2", opt("b", map[model.Modality]float64{model.ModalityEMDR: 2.0})),
	)

	res := Score(model.Answers{"q1": {"a"}}, set)

	assert.Equal(t, 2.0, res.Scores[model.ModalityCBT])
	assert.Equal(t, 0.0, res.Scores[model.ModalityEMDR])
	assert.Equal(t, 2.0, res.Total())
}

func TestScoreSelectManyDividesBySelectionCount(t *testing.T) {
	set := testSet(model.Tier1, selectMany("q1",
		opt("a", map[model.Modality]float64{model.ModalityCBT: 2.0}),
		opt("b", map[model.Modality]float64{model.ModalityCBT: 2.0}),
		opt("c", map[model.Modality]float64{model.ModalityDBT: 2.0}),
		opt("d", map[model.Modality]float64{model.ModalityEMDR: 2.0}),
	))

	one := Score(model.Answers{"q1": {"a"}}, set)
	all := Score(model.Answers{"q1": {"a", "b", "c", "d"}}, set)

	// Checking every box carries no more total weight than checking one.
	assert.Equal(t, 2.0, one.Total())
	assert.InDelta(t, 2.0, all.Total(), 1e-9)
	assert.InDelta(t, 1.0, all.Scores[model.ModalityCBT], 1e-9)
	assert.InDelta(t, 0.5, all.Scores[model.ModalityDBT], 1e-9)
}

func TestScoreSelectOneUsesFirstSelection(t *testing.T) {
	set := testSet(model.Tier1, selectOne("q1",
		opt("a", map[model.Modality]float64{model.ModalityCBT: 2.0}),
		opt("b", map[model.Modality]float64{model.ModalityDBT: 2.0}),
	))

	res := Score(model.Answers{"q1": {"a", "b"}}, set)

	assert.Equal(t, 2.0, res.Scores[model.ModalityCBT])
	assert.Equal(t, 0.0, res.Scores[model.ModalityDBT])
}

func TestScoreIgnoresUnknownOptionIDs(t *testing.T) {
	set := testSet(model.Tier1, selectOne("q1", opt("a", map[model.Modality]float64{model.ModalityCBT: 2.0})))

	res := Score(model.Answers{"q1": {"tampered"}, "nope": {"a"}}, set)

	assert.Equal(t, 0.0, res.Total())
}

func TestScoreDeduplicatesReasonsPreservingOrder(t *testing.T) {
	shared := "You described wanting concrete tools."
	set := testSet(model.Tier1,
		selectOne("q1", model.Option{ID: "a", Label: "a",
			Weights: map[model.Modality]float64{model.ModalityCBT: 1.0},
			Reasons: map[model.Modality][]string{model.ModalityCBT: {shared, "first extra"}},
		}),
		selectOne("q2", model.Option{ID: "b", Label: "b",
			Weights: map[model.Modality]float64{model.ModalityCBT: 1.0},
			Reasons: map[model.Modality][]string{model.ModalityCBT: {shared, "second extra"}},
		}),
	)

	res := Score(model.Answers{"q1": {"a"}, "q2": {"b"}}, set)

	assert.Equal(t, []string{shared, "first extra", "second extra"}, res.Reasons[model.ModalityCBT])
}

func TestScoreDeterministic(t *testing.T) {
	set := testSet(model.Tier1,
		selectMany("q1",
			opt("a", map[model.Modality]float64{model.ModalityCBT: 2.0, model.ModalitySomatic: 0.5}),
			opt("b", map[model.Modality]float64{model.ModalityEMDR: 1.5}),
		),
		selectOne("q2", opt("c", map[model.Modality]float64{model.ModalityDBT: 1.0})),
	)
	answers := model.Answers{"q1": {"a", "b"}, "q2": {"c"}}

	first := Score(answers, set)
	for i := 0; i < 50; i++ {
		again := Score(answers, set)
		assert.Equal(t, first.Scores, again.Scores)
		assert.Equal(t, first.Reasons, again.Reasons)
	}
}

func TestTotalExcludesMedication(t *testing.T) {
	set := testSet(model.Tier1, selectOne("q1",
		opt("a", map[model.Modality]float64{model.ModalityCBT: 1.0, model.ModalityMedication: 2.0}),
	))

	res := Score(model.Answers{"q1": {"a"}}, set)

	assert.Equal(t, 1.0, res.Total())
	assert.Equal(t, 2.0, res.Scores[model.ModalityMedication])
}
