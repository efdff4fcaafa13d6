package domain

import (
	"time"
)

// Review is a 1 to 5 star rating with an optional comment.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)
