package model

// Modality is a therapy-approach identifier the quiz can recommend.
type Modality string

const (
	ModalityCBT           Modality = "cbt"
	ModalityDBT           Modality = "dbt"
	ModalityExposure      Modality = "exposure"
	ModalityEMDR          Modality = "emdr"
	ModalitySomatic       Modality = "somatic"
	ModalityIFS           Modality = "ifs"
	ModalityPsychodynamic Modality = "psychodynamic"
	ModalityNarrative     Modality = "narrative"
	ModalityFamilySystems Modality = "family"
	ModalityGroup         Modality = "group"
	ModalityArt           Modality = "art"
	ModalityMusic         Modality = "music"

	// ModalityMedication means "consider a prescriber consult". It is
	// scored like the others but never appears in a ranked top list.
	ModalityMedication Modality = "medication"
)

// AllModalities lists every modality in declaration order. Ranking
// tie-breaks follow this order, so it must stay stable.
var AllModalities = []Modality{
	ModalityCBT,
	ModalityDBT,
	ModalityExposure,
	ModalityEMDR,
	ModalitySomatic,
	ModalityIFS,
	ModalityPsychodynamic,
	ModalityNarrative,
	ModalityFamilySystems,
	ModalityGroup,
	ModalityArt,
	ModalityMusic,
	ModalityMedication,
}

var modalityRank = func() map[Modality]int {
	m := make(map[Modality]int, len(AllModalities))
	for i, mod := range AllModalities {
		m[mod] = i
	}
	return m
}()

// Valid reports whether m is one of the known modalities.
func (m Modality) Valid() bool {
	_, ok := modalityRank[m]
	return ok
}

// RankOrder returns the declaration-order index used as the stable
// tie-break when two modalities score equal.
func (m Modality) RankOrder() int {
	if i, ok := modalityRank[m]; ok {
		return i
	}
	return len(AllModalities)
}

// ModalityLabels maps modality IDs to the display names used by the
// directory and dashboard surfaces.
var ModalityLabels = map[Modality]string{
	ModalityCBT:           "Cognitive Behavioral Therapy",
	ModalityDBT:           "Dialectical Behavior Therapy",
	ModalityExposure:      "Exposure & Response Prevention",
	ModalityEMDR:          "EMDR",
	ModalitySomatic:       "Somatic Therapy",
	ModalityIFS:           "Internal Family Systems",
	ModalityPsychodynamic: "Psychodynamic Therapy",
	ModalityNarrative:     "Narrative Therapy",
	ModalityFamilySystems: "Family Systems Therapy",
	ModalityGroup:         "Group Therapy",
	ModalityArt:           "Art Therapy",
	ModalityMusic:         "Music Therapy",
	ModalityMedication:    "Medication Consultation",
}
