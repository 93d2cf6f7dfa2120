package model

import "time"

// Feedback is a free-form note left on a page.
type Feedback struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Page      string    `json:"page" bson:"page"`
	Message   string    `json:"message" bson:"message"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Subscriber is a newsletter signup. Upserted by email so repeat
// submissions stay idempotent.
type Subscriber struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email"`
	Source    string    `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
