package quiz

import "matchwell/internal/model"

// Combine merges a Tier 1 result with an optional Tier 2 result for
// the "refine your matches" flow. With no Tier 2, the Tier 1 result
// passes through unchanged. Otherwise scores add per modality, Tier 2
// reasons lead (its evidence is more specific), the merged scores are
// re-ranked, and the medication flag is recomputed. The Tier 1
// confidence object is kept as-is rather than recomputed from the
// merged scores — long-standing behavior that downstream copy depends
// on. Gates union across tiers, Tier 2 winning on collision.
func Combine(t1 *model.TierResult, t2 *model.TierResult) *model.TierResult {
	if t2 == nil {
		out := *t1
		out.Tier = model.Tier1
		return &out
	}

	scores := make(map[model.Modality]float64, len(model.AllModalities))
	for _, m := range model.AllModalities {
		scores[m] = t1.Scores[m] + t2.Scores[m]
	}

	reasons := make(map[model.Modality][]string)
	for _, m := range model.AllModalities {
		merged := mergeReasons(t2.Reasons[m], t1.Reasons[m])
		if len(merged) > 0 {
			reasons[m] = merged
		}
	}

	ranked := Rank(scores, StrategyForTier(model.Tier1))

	return &model.TierResult{
		Tier:       model.Tier2,
		Scores:     scores,
		Reasons:    reasons,
		Top:        ranked.Top,
		Medication: ranked.Medication,
		Confidence: t1.Confidence,
		Gates:      mergeGates(t1.Gates, t2.Gates),
	}
}

// mergeReasons concatenates first-wins, dedups, and caps at the
// presentation limit.
func mergeReasons(first, second []string) []string {
	seen := make(map[string]bool, len(first)+len(second))
	var out []string
	for _, list := range [][]string{first, second} {
		for _, r := range list {
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
			if len(out) == maxReasonsShown {
				return out
			}
		}
	}
	return out
}

func mergeGates(t1, t2 *model.Gates) *model.Gates {
	if t1 == nil && t2 == nil {
		return nil
	}
	g := &model.Gates{}
	for _, src := range []*model.Gates{t1, t2} {
		if src == nil {
			continue
		}
		g.OCDStrongSignal = orGate(g.OCDStrongSignal, src.OCDStrongSignal)
		g.StabilizationFirst = orGate(g.StabilizationFirst, src.StabilizationFirst)
		g.TraumaProcessingReady = orGate(g.TraumaProcessingReady, src.TraumaProcessingReady)
		g.ConsiderHigherSupport = orGate(g.ConsiderHigherSupport, src.ConsiderHigherSupport)
	}
	if !g.Any() {
		return nil
	}
	return g
}

// orGate unions two tri-state gates; unset stays unset.
func orGate(a, b *bool) *bool {
	if a == nil && b == nil {
		return nil
	}
	return model.BoolPtr(model.GateFired(a) || model.GateFired(b))
}
