package quiz

import "matchwell/internal/model"

// Tier 2 question and option IDs the gate deriver keys on. These must
// match the embedded tier2 bank; bank_test pins them.
const (
	QuestionOCDSignal       = "t2_ocd_signal"
	QuestionTraumaReadiness = "t2_trauma_readiness"
	QuestionSupportLevel    = "t2_support_level"

	OptionRituals        = "rituals"
	OptionAvoidTriggers  = "avoidTriggers"
	OptionStabilize      = "stabilize"
	OptionReady          = "ready"
	OptionMoreThanWeekly = "more_than_weekly"
)

// DeriveGates maps specific Tier 2 selections to advisory flags. Gates
// come from which options were picked, never from scores, and feed
// safety-oriented guidance copy only — ranking ignores them. Returns
// nil when nothing fired so serialization can drop the field.
func DeriveGates(answers model.Answers) *model.Gates {
	g := &model.Gates{}

	for _, sel := range answers[QuestionOCDSignal] {
		if sel == OptionRituals || sel == OptionAvoidTriggers {
			g.OCDStrongSignal = model.BoolPtr(true)
		}
	}

	for _, sel := range answers[QuestionTraumaReadiness] {
		switch sel {
		case OptionStabilize:
			g.StabilizationFirst = model.BoolPtr(true)
		case OptionReady:
			g.TraumaProcessingReady = model.BoolPtr(true)
		}
	}

	for _, sel := range answers[QuestionSupportLevel] {
		if sel == OptionMoreThanWeekly {
			g.ConsiderHigherSupport = model.BoolPtr(true)
		}
	}

	if !g.Any() {
		return nil
	}
	return g
}
