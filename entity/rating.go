package entity

import (
	"gorm.io/gorm"
)

type Rating struct {
	gorm.Model
	// the unique index is what makes double submission lose the race
	OrderID  uint   `gorm:"uniqueIndex:idx_rating_order_member" json:"orderId"`
	Order    Order  `json:"-"`
	MemberID uint   `gorm:"uniqueIndex:idx_rating_order_member" json:"memberId"`
	Member   Member `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
	CourierID    *uint      `json:"courierId,omitempty"`
	Courier      *Courier   `json:"-"`

	RestaurantRating *int   `json:"restaurantRating,omitempty"`
	DeliveryRating   *int   `json:"deliveryRating,omitempty"`
	Comments         string `json:"comments"`
}
