package model

// PayloadVersion is the current results payload version. Decoders
// branch here when a v2 ever exists.
const PayloadVersion = 1

// UTMKeys are the five standard campaign-tracking parameters passed
// through from the submitting page's URL.
var UTMKeys = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content"}

// PayloadMeta is optional attribution metadata on a results payload.
type PayloadMeta struct {
	Source string            `json:"source,omitempty"`
	TS     string            `json:"ts,omitempty"`
	UTM    map[string]string `json:"utm,omitempty"`
}

// ResultsPayloadV1 is the durable, serializable result bundle. It is
// created once at quiz submission, carried through a URL query
// parameter, and never mutated afterward.
type ResultsPayloadV1 struct {
	V          int                   `json:"v"`
	Top        []Modality            `json:"top"`
	Med        MedicationFlag        `json:"med"`
	Reasons    map[Modality][]string `json:"reasons,omitempty"`
	Confidence *Confidence           `json:"confidence,omitempty"`
	Gates      *Gates                `json:"gates,omitempty"`
	Meta       *PayloadMeta          `json:"meta,omitempty"`
}
