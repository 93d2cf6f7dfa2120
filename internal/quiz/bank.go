package quiz

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"matchwell/internal/model"
)

//go:embed data/tier1.yaml
var tier1YAML []byte

//go:embed data/tier2.yaml
var tier2YAML []byte

// LoadTier1 parses and validates the embedded Tier 1 question bank.
func LoadTier1() (*model.QuestionSet, error) {
	return loadBank(tier1YAML, model.Tier1)
}

// LoadTier2 parses and validates the embedded Tier 2 question bank.
func LoadTier2() (*model.QuestionSet, error) {
	return loadBank(tier2YAML, model.Tier2)
}

func loadBank(data []byte, want model.Tier) (*model.QuestionSet, error) {
	var set model.QuestionSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question bank: %w", err)
	}
	if set.Tier != want {
		return nil, fmt.Errorf("question bank declares tier %d, want %d", set.Tier, want)
	}
	if err := validateBank(&set); err != nil {
		return nil, err
	}
	return &set, nil
}

// validateBank rejects banks with malformed structure or unknown
// modality keys. Bad content is a startup error, never a runtime one.
func validateBank(set *model.QuestionSet) error {
	if len(set.Questions) == 0 {
		return fmt.Errorf("question bank is empty")
	}
	seenQ := make(map[string]bool)
	for _, q := range set.Questions {
		if q.ID == "" {
			return fmt.Errorf("question with empty id")
		}
		if seenQ[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seenQ[q.ID] = true

		if q.Kind != model.KindSelectOne && q.Kind != model.KindSelectMany {
			return fmt.Errorf("question %q: unknown kind %q", q.ID, q.Kind)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q has no options", q.ID)
		}

		seenO := make(map[string]bool)
		for _, opt := range q.Options {
			if opt.ID == "" {
				return fmt.Errorf("question %q: option with empty id", q.ID)
			}
			if seenO[opt.ID] {
				return fmt.Errorf("question %q: duplicate option id %q", q.ID, opt.ID)
			}
			seenO[opt.ID] = true

			for m := range opt.Weights {
				if !m.Valid() {
					return fmt.Errorf("question %q option %q: unknown modality %q in weights", q.ID, opt.ID, m)
				}
			}
			for m, rs := range opt.Reasons {
				if !m.Valid() {
					return fmt.Errorf("question %q option %q: unknown modality %q in reasons", q.ID, opt.ID, m)
				}
				for _, r := range rs {
					if r == "" {
						return fmt.Errorf("question %q option %q: empty reason string", q.ID, opt.ID)
					}
				}
			}
		}
	}
	return nil
}
