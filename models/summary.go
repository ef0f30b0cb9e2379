package models

import "time"

// Summary is one cached article summary.
// Collection: summaries
//
// ID is derived from URL (see services.DeriveID), so a document is never
// updated after insert. The unique index on url backs the same guarantee.
type Summary struct {
	ID        string    `bson:"_id" json:"id"`
	URL       string    `bson:"url" json:"url"`
	Summary   string    `bson:"summary" json:"summary"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
