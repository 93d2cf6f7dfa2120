package model

// ConfidenceLevel classifies how clearly the top modality stood out.
type ConfidenceLevel string

const (
	ConfidenceStrong  ConfidenceLevel = "strong"
	ConfidenceGood    ConfidenceLevel = "good"
	ConfidenceExplore ConfidenceLevel = "explore"
)

// Valid reports whether l is one of the three known levels.
func (l ConfidenceLevel) Valid() bool {
	switch l {
	case ConfidenceStrong, ConfidenceGood, ConfidenceExplore:
		return true
	}
	return false
}

// Confidence is the derived classification attached to a scoring run.
// Details carries the raw score gaps for debugging and analytics.
type Confidence struct {
	Level   ConfidenceLevel    `json:"level"`
	Label   string             `json:"label"`
	Why     string             `json:"why"`
	Details map[string]float64 `json:"details,omitempty"`
}

// MedicationFlag is the separate "consider a prescriber consult" signal.
type MedicationFlag string

const (
	MedicationConsider MedicationFlag = "consider"
	MedicationNo       MedicationFlag = "no"
)

// Gates are advisory flags derived from specific Tier 2 selections,
// never from scores. Each gate is tri-state: nil means the signal was
// never observed, a value records what it resolved to. Unset gates are
// omitted from serialization, so a missing key always means "no
// signal", distinct from an explicit false.
type Gates struct {
	OCDStrongSignal       *bool `json:"ocdStrongSignal,omitempty"`
	StabilizationFirst    *bool `json:"stabilizationFirst,omitempty"`
	TraumaProcessingReady *bool `json:"traumaProcessingReady,omitempty"`
	ConsiderHigherSupport *bool `json:"considerHigherSupport,omitempty"`
}

// GateFired reports whether a tri-state gate is set and true.
func GateFired(p *bool) bool {
	return p != nil && *p
}

// BoolPtr returns a pointer to b, for building gate values.
func BoolPtr(b bool) *bool {
	return &b
}

// Any reports whether at least one gate fired.
func (g *Gates) Any() bool {
	if g == nil {
		return false
	}
	return GateFired(g.OCDStrongSignal) ||
		GateFired(g.StabilizationFirst) ||
		GateFired(g.TraumaProcessingReady) ||
		GateFired(g.ConsiderHigherSupport)
}

// Empty reports whether no gate is set at all, fired or not.
func (g *Gates) Empty() bool {
	if g == nil {
		return true
	}
	return g.OCDStrongSignal == nil &&
		g.StabilizationFirst == nil &&
		g.TraumaProcessingReady == nil &&
		g.ConsiderHigherSupport == nil
}

// TierResult is one scoring run's full output, before payload encoding.
type TierResult struct {
	Tier       Tier                  `json:"tier"`
	Scores     map[Modality]float64  `json:"scores"`
	Reasons    map[Modality][]string `json:"reasons"`
	Top        []Modality            `json:"top"`
	Medication MedicationFlag        `json:"med"`
	Confidence *Confidence           `json:"confidence,omitempty"`
	Gates      *Gates                `json:"gates,omitempty"`
}
