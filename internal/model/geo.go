package model

// GeoResult is a postcode lookup response from the upstream geo
// service, trimmed to what the directory filter needs.
type GeoResult struct {
	Postcode string  `json:"postcode"`
	Region   string  `json:"region"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
}
