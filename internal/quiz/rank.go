package quiz

import (
	"sort"

	"matchwell/internal/model"
)

// medicationConsiderThreshold is the tuned score at which the separate
// "consider a prescriber consult" flag flips on.
const medicationConsiderThreshold = 1.4

// topN is how many modalities a results payload carries.
const topN = 3

// maxReasonsShown caps the explanatory bullets per ranked modality.
const maxReasonsShown = 3

// FallbackReason is shown when a ranked modality earned no reason text
// of its own. A ranked match never renders with an empty reasons list.
const FallbackReason = "This approach matched the overall pattern of your answers."

// ConfidenceStrategy classifies a scoring run. Tier 1 and Tier 2 use
// different tuned formulas; they are kept distinct on purpose.
type ConfidenceStrategy interface {
	Classify(total, gap12, gap23 float64) model.ConfidenceLevel
}

type tier1Confidence struct{}

func (tier1Confidence) Classify(total, gap12, _ float64) model.ConfidenceLevel {
	switch {
	case total >= 6.0 && gap12 >= 1.0:
		return model.ConfidenceStrong
	case total >= 4.0 && gap12 >= 0.5:
		return model.ConfidenceGood
	default:
		return model.ConfidenceExplore
	}
}

type tier2Confidence struct{}

func (tier2Confidence) Classify(_, gap12, _ float64) model.ConfidenceLevel {
	switch {
	case gap12 >= 1.0:
		return model.ConfidenceStrong
	case gap12 >= 0.5:
		return model.ConfidenceGood
	default:
		return model.ConfidenceExplore
	}
}

// StrategyForTier selects the confidence formula for a question tier.
func StrategyForTier(t model.Tier) ConfidenceStrategy {
	if t == model.Tier2 {
		return tier2Confidence{}
	}
	return tier1Confidence{}
}

var confidenceCopy = map[model.ConfidenceLevel]struct{ Label, Why string }{
	model.ConfidenceStrong: {
		Label: "Strong match",
		Why:   "One approach clearly stood out from the rest of your answers.",
	},
	model.ConfidenceGood: {
		Label: "Good match",
		Why:   "A front-runner emerged, though a couple of approaches came close.",
	},
	model.ConfidenceExplore: {
		Label: "Worth exploring",
		Why:   "Your answers point in a few directions; treat these as starting points.",
	},
}

// RankResult is the ranked view of a score map.
type RankResult struct {
	Top        []model.Modality
	Medication model.MedicationFlag
	Confidence *model.Confidence
}

// Rank orders the non-medication modalities by score and classifies
// confidence from the gaps. Ties resolve by modality declaration
// order, so identical answers always rank identically. Medication is
// excluded from the pool and flagged separately from its own score.
func Rank(scores map[model.Modality]float64, strat ConfidenceStrategy) RankResult {
	pool := make([]model.Modality, 0, len(model.AllModalities)-1)
	for _, m := range model.AllModalities {
		if m == model.ModalityMedication {
			continue
		}
		pool = append(pool, m)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return scores[pool[i]] > scores[pool[j]]
	})

	top := make([]model.Modality, 0, topN)
	for i := 0; i < topN && i < len(pool); i++ {
		top = append(top, pool[i])
	}

	total := 0.0
	for _, m := range pool {
		total += scores[m]
	}
	gap12 := scores[pool[0]] - scores[pool[1]]
	gap23 := scores[pool[1]] - scores[pool[2]]

	level := strat.Classify(total, gap12, gap23)
	copyTexts := confidenceCopy[level]

	med := model.MedicationNo
	if scores[model.ModalityMedication] >= medicationConsiderThreshold {
		med = model.MedicationConsider
	}

	return RankResult{
		Top:        top,
		Medication: med,
		Confidence: &model.Confidence{
			Level: level,
			Label: copyTexts.Label,
			Why:   copyTexts.Why,
			Details: map[string]float64{
				"total": total,
				"gap12": gap12,
				"gap23": gap23,
			},
		},
	}
}

// PresentReasons trims the reason lists down to what the results view
// shows: up to three bullets per ranked modality, with a generic
// fallback when a modality won on weights that carried no reason text.
func PresentReasons(reasons map[model.Modality][]string, top []model.Modality) map[model.Modality][]string {
	out := make(map[model.Modality][]string, len(top))
	for _, m := range top {
		rs := reasons[m]
		if len(rs) == 0 {
			out[m] = []string{FallbackReason}
			continue
		}
		if len(rs) > maxReasonsShown {
			rs = rs[:maxReasonsShown]
		}
		out[m] = append([]string(nil), rs...)
	}
	return out
}
