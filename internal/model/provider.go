package model

import "time"

// Provider is a directory listing for a therapist or practice.
type Provider struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Name         string     `json:"name" bson:"name"`
	Credentials  string     `json:"credentials" bson:"credentials"`
	Modalities   []Modality `json:"modalities" bson:"modalities"`                             // primary specialties
	AlsoOffers   []Modality `json:"alsoOffers,omitempty" bson:"alsoOffers,omitempty"`         // secondary, used for fallback matching
	Region       string     `json:"region" bson:"region"`
	Telehealth   bool       `json:"telehealth" bson:"telehealth"`
	AcceptingNew bool       `json:"acceptingNew" bson:"acceptingNew"`
	Bio          string     `json:"bio,omitempty" bson:"bio,omitempty"`
	URL          string     `json:"url,omitempty" bson:"url,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
}

// OffersPrimary reports whether m is one of the provider's primary
// specialties.
func (p *Provider) OffersPrimary(m Modality) bool {
	for _, pm := range p.Modalities {
		if pm == m {
			return true
		}
	}
	return false
}

// OffersSecondary reports whether m is listed as a secondary offering.
func (p *Provider) OffersSecondary(m Modality) bool {
	for _, pm := range p.AlsoOffers {
		if pm == m {
			return true
		}
	}
	return false
}
