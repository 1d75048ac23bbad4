package entity

import "time"

// Contact is the normalized representation of a scanned business card.
//
// The JSON tags cover exactly the five content fields: that is the on-disk
// document shape for file-resident records. ID and CreatedAt are assigned by
// the relational backend and never serialized into card files.
type Contact struct {
	ID          int64     `json:"-"`
	Name        string    `json:"name"`
	Phones      []string  `json:"phones"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
}
