package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchwell/internal/model"
)

func zeroScores() map[model.Modality]float64 {
	scores := make(map[model.Modality]float64, len(model.AllModalities))
	for _, m := range model.AllModalities {
		scores[m] = 0
	}
	return scores
}

func TestRankOrdersByScore(t *testing.T) {
	scores := zeroScores()
	scores[model.ModalityEMDR] = 3.0
	scores[model.ModalityCBT] = 2.0
	scores[model.ModalitySomatic] = 1.0

	ranked := Rank(scores, StrategyForTier(model.Tier1))

	assert.Equal(t, []model.Modality{model.ModalityEMDR, model.ModalityCBT, model.ModalitySomatic}, ranked.Top)
}

func TestRankTieBreaksByDeclarationOrder(t *testing.T) {
	scores := zeroScores()
	scores[model.ModalityMusic] = 1.0
	scores[model.ModalityArt] = 1.0
	scores[model.ModalityCBT] = 1.0

	ranked := Rank(scores, StrategyForTier(model.Tier1))

	// cbt is declared before art, art before music.
	assert.Equal(t, []model.Modality{model.ModalityCBT, model.ModalityArt, model.ModalityMusic}, ranked.Top)

	for i := 0; i < 50; i++ {
		again := Rank(scores, StrategyForTier(model.Tier1))
		assert.Equal(t, ranked.Top, again.Top)
	}
}

func TestRankNeverIncludesMedication(t *testing.T) {
	scores := zeroScores()
	scores[model.ModalityMedication] = 10.0
	scores[model.ModalityCBT] = 0.5

	ranked := Rank(scores, StrategyForTier(model.Tier1))

	assert.NotContains(t, ranked.Top, model.ModalityMedication)
	assert.Equal(t, model.ModalityCBT, ranked.Top[0])
}

func TestRankMedicationThreshold(t *testing.T) {
	scores := zeroScores()
	scores[model.ModalityMedication] = 1.39
	assert.Equal(t, model.MedicationNo, Rank(scores, StrategyForTier(model.Tier1)).Medication)

	scores[model.ModalityMedication] = 1.4
	assert.Equal(t, model.MedicationConsider, Rank(scores, StrategyForTier(model.Tier1)).Medication)
}

func TestRankMedicationIndependentOfRanking(t *testing.T) {
	low := zeroScores()
	low[model.ModalityCBT] = 0.1
	low[model.ModalityMedication] = 2.0

	ranked := Rank(low, StrategyForTier(model.Tier1))

	assert.Equal(t, model.MedicationConsider, ranked.Medication)
	assert.Equal(t, model.ConfidenceExplore, ranked.Confidence.Level)
}

func TestTier1ConfidenceLevels(t *testing.T) {
	cases := []struct {
		name  string
		first float64
		rest  float64
		want  model.ConfidenceLevel
	}{
		// total 2.2+2.0+2.0=6.2, gap12 0.2: big total but no front-runner.
		{"high total narrow gap", 2.2, 2.0, model.ConfidenceExplore},
		// total 3.2+1.0+1.0=5.2, gap12 2.2: clear leader, modest total.
		{"good", 3.2, 1.0, model.ConfidenceGood},
		// total 4.2+1.0+1.0=6.2, gap12 3.2.
		{"strong", 4.2, 1.0, model.ConfidenceStrong},
		{"nothing answered", 0, 0, model.ConfidenceExplore},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scores := zeroScores()
			scores[model.ModalityCBT] = tc.first
			scores[model.ModalityDBT] = tc.rest
			scores[model.ModalityExposure] = tc.rest

			ranked := Rank(scores, StrategyForTier(model.Tier1))
			require.NotNil(t, ranked.Confidence)
			assert.Equal(t, tc.want, ranked.Confidence.Level)
			assert.NotEmpty(t, ranked.Confidence.Label)
			assert.NotEmpty(t, ranked.Confidence.Why)
		})
	}
}

func TestTier2ConfidenceIgnoresTotal(t *testing.T) {
	// Tiny totals, but the gap alone decides for Tier 2.
	scores := zeroScores()
	scores[model.ModalityExposure] = 1.2
	scores[model.ModalityCBT] = 0.1

	ranked := Rank(scores, StrategyForTier(model.Tier2))
	assert.Equal(t, model.ConfidenceStrong, ranked.Confidence.Level)

	scores[model.ModalityCBT] = 0.65
	ranked = Rank(scores, StrategyForTier(model.Tier2))
	assert.Equal(t, model.ConfidenceGood, ranked.Confidence.Level)

	scores[model.ModalityCBT] = 1.0
	ranked = Rank(scores, StrategyForTier(model.Tier2))
	assert.Equal(t, model.ConfidenceExplore, ranked.Confidence.Level)
}

// Holding the total fixed, widening the lead never lowers the
// classification, for either strategy.
func TestConfidenceMonotonicInGap(t *testing.T) {
	ord := map[model.ConfidenceLevel]int{
		model.ConfidenceExplore: 0,
		model.ConfidenceGood:    1,
		model.ConfidenceStrong:  2,
	}

	for _, tier := range []model.Tier{model.Tier1, model.Tier2} {
		for _, total := range []float64{3.0, 4.5, 6.2} {
			prev := -1
			steps := int(total * 10)
			for i := 0; i <= steps; i++ {
				gap := float64(i) / 10
				scores := zeroScores()
				scores[model.ModalityCBT] = (total + 2*gap) / 3
				scores[model.ModalityDBT] = (total - gap) / 3
				scores[model.ModalityExposure] = (total - gap) / 3

				ranked := Rank(scores, StrategyForTier(tier))
				require.NotNil(t, ranked.Confidence)
				level := ord[ranked.Confidence.Level]
				assert.GreaterOrEqual(t, level, prev,
					"tier %d total %.1f gap %.1f", tier, total, gap)
				prev = level
			}
		}
	}
}

func TestRankDetailsCarryGaps(t *testing.T) {
	scores := zeroScores()
	scores[model.ModalityCBT] = 3.0
	scores[model.ModalityDBT] = 2.0
	scores[model.ModalityExposure] = 0.5

	ranked := Rank(scores, StrategyForTier(model.Tier1))

	require.NotNil(t, ranked.Confidence)
	assert.InDelta(t, 5.5, ranked.Confidence.Details["total"], 1e-9)
	assert.InDelta(t, 1.0, ranked.Confidence.Details["gap12"], 1e-9)
	assert.InDelta(t, 1.5, ranked.Confidence.Details["gap23"], 1e-9)
}

func TestPresentReasonsCapsAndFallsBack(t *testing.T) {
	reasons := map[model.Modality][]string{
		model.ModalityCBT: {"one", "two", "three", "four"},
	}
	top := []model.Modality{model.ModalityCBT, model.ModalityEMDR}

	out := PresentReasons(reasons, top)

	assert.Equal(t, []string{"one", "two", "three"}, out[model.ModalityCBT])
	assert.Equal(t, []string{FallbackReason}, out[model.ModalityEMDR])
}
