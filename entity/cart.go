package entity

import (
	"gorm.io/gorm"
)

// One basket per (member, restaurant) pair. Ordering from two restaurants
// means two independent carts, never a merged one.
type Cart struct {
	gorm.Model
	MemberID     uint       `gorm:"uniqueIndex:idx_cart_member_restaurant" json:"memberId"`
	Member       Member     `json:"-"`
	RestaurantID uint       `gorm:"uniqueIndex:idx_cart_member_restaurant" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
