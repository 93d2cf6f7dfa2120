package quiz

import "matchwell/internal/model"

// ScoreResult holds one scoring run's raw output: accumulated scores
// for every known modality and deduplicated, order-preserving reason
// lists for the modalities that earned any.
type ScoreResult struct {
	Scores  map[model.Modality]float64
	Reasons map[model.Modality][]string
}

// Score accumulates weighted contributions from the user's selections.
// Unanswered questions contribute nothing. For select-many questions
// each selected option's weights are divided by the selection count, so
// checking every box in one question carries no more total weight than
// checking one. Unknown option IDs (stale or tampered input) are
// silently ignored. Deterministic: identical answers produce identical
// score maps and reason lists.
func Score(answers model.Answers, set *model.QuestionSet) ScoreResult {
	scores := make(map[model.Modality]float64, len(model.AllModalities))
	for _, m := range model.AllModalities {
		scores[m] = 0
	}
	reasons := make(map[model.Modality][]string)
	seen := make(map[model.Modality]map[string]bool)

	for _, q := range set.Questions {
		sel := answers[q.ID]
		if len(sel) == 0 {
			continue
		}
		if q.Kind == model.KindSelectOne {
			sel = sel[:1]
		}

		denom := 1.0
		if q.Kind == model.KindSelectMany {
			denom = float64(len(sel))
		}

		for _, optID := range sel {
			opt := q.Option(optID)
			if opt == nil {
				continue
			}
			for m, w := range opt.Weights {
				scores[m] += w / denom
			}
			for m, rs := range opt.Reasons {
				if seen[m] == nil {
					seen[m] = make(map[string]bool)
				}
				for _, r := range rs {
					if seen[m][r] {
						continue
					}
					seen[m][r] = true
					reasons[m] = append(reasons[m], r)
				}
			}
		}
	}

	return ScoreResult{Scores: scores, Reasons: reasons}
}

// Total sums every non-medication score. A zero total is the "no
// usable data" state callers must detect before trusting the ranking.
func (r ScoreResult) Total() float64 {
	total := 0.0
	for m, s := range r.Scores {
		if m == model.ModalityMedication {
			continue
		}
		total += s
	}
	return total
}
