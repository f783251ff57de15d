package entity

import (
	"time"

	"gorm.io/gorm"
)

// Denormalized snapshot of a restaurant the member looked at, upserted per
// (member, restaurant). Display fields are copied so the history renders
// without joining the live restaurant row.
type RecentView struct {
	gorm.Model
	MemberID     uint `gorm:"uniqueIndex:idx_view_member_restaurant" json:"memberId"`
	RestaurantID uint `gorm:"uniqueIndex:idx_view_member_restaurant" json:"restaurantId"`

	Name    string  `json:"name"`
	Picture string  `json:"picture"`
	Cuisine string  `json:"cuisine"`
	Rating  float64 `json:"rating"`

	ViewedAt time.Time `json:"viewedAt"`
}
