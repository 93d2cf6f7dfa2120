package model

// Tier identifies which question set a question belongs to
type Tier int

const (
	Tier1 Tier = 1 // broad screener
	Tier2 Tier = 2 // discriminating follow-up
)

// QuestionKind defines how many options a question accepts
type QuestionKind string

const (
	KindSelectOne  QuestionKind = "select_one"
	KindSelectMany QuestionKind = "select_many"
)

// Option is one selectable answer. Weights are the option's score
// contribution per modality; Reasons are the explanatory bullets
// surfaced when that modality ends up in the top results.
type Option struct {
	ID      string                `json:"id" yaml:"id"`
	Label   string                `json:"label" yaml:"label"`
	Weights map[Modality]float64  `json:"weights,omitempty" yaml:"weights,omitempty"`
	Reasons map[Modality][]string `json:"-" yaml:"reasons,omitempty"`
}

// Question is immutable static data loaded from the embedded banks.
type Question struct {
	ID      string       `json:"id" yaml:"id"`
	Kind    QuestionKind `json:"kind" yaml:"kind"`
	Prompt  string       `json:"prompt" yaml:"prompt"`
	Options []Option     `json:"options" yaml:"options"`
}

// Option returns the option with the given ID, or nil.
func (q *Question) Option(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// QuestionSet is one tier's ordered question bank.
type QuestionSet struct {
	Tier      Tier       `json:"tier" yaml:"tier"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question returns the question with the given ID, or nil.
func (s *QuestionSet) Question(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}

// Answers maps question ID to the selected option IDs. Select-one
// questions carry a single-element slice. Answers are ephemeral and
// never persisted server-side.
type Answers map[string][]string

// Answered counts questions with at least one selection.
func (a Answers) Answered() int {
	n := 0
	for _, sel := range a {
		if len(sel) > 0 {
			n++
		}
	}
	return n
}
