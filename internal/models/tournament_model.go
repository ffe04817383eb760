package models

import "time"

// Tournament is a competition that matches belong to. The name is denormalized
// onto each match at creation time.
type Tournament struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Season    string    `json:"season,omitempty" firestore:"season,omitempty"`
	StartDate string    `json:"startDate,omitempty" firestore:"startDate,omitempty"`
	EndDate   string    `json:"endDate,omitempty" firestore:"endDate,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
