package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Picture     string `json:"picture"`

	Available bool `gorm:"default:true" json:"available"`
	Popular   bool `json:"popular"`

	OrderItems []OrderItem `json:"-"`
}
