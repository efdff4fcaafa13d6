package domain

import (
	"time"
)

// WishlistItem is a product saved by a user.
type WishlistItem struct {
	ID      string         `json:"id"`
	UserID  string         `json:"user_id"`
	Product ProductSummary `json:"product"`
	AddedAt time.Time      `json:"added_at"`
}
