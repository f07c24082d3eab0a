package models

import "time"

// CvReview is a visitor-submitted review. CreatedAt is set server-side
// at creation time; rating is 1..5.
type CvReview struct {
	ID         int       `json:"id"`
	AuthorName string    `json:"authorName"`
	Email      string    `json:"email,omitempty"`
	Comment    string    `json:"comment"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
}
