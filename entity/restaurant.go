package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Code     string `gorm:"uniqueIndex" json:"code"` // R000001-style public id
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`

	Address       string `json:"address"`
	Description   string `json:"description"`
	Cuisine       string `json:"cuisine"`
	Picture       string `json:"picture"`
	DeliveryArea  string `json:"deliveryArea"`
	BusinessHours string `json:"businessHours"`

	IsOpen         bool  `json:"isOpen"`
	MinOrderAmount int64 `json:"minOrderAmount"`

	// mean of ratings.restaurant_rating, recomputed on every rating insert
	Rating float64 `json:"rating"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
	Ratings   []Rating   `json:"-"`
}
