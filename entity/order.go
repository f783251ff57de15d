package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusPreparing  = "preparing"
	StatusReady      = "ready"
	StatusDelivering = "delivering"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusPreparing, StatusReady,
		StatusDelivering, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	gorm.Model
	MemberID     uint       `gorm:"index" json:"memberId"`
	Member       Member     `json:"-"`
	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	// nil until a courier claims the order
	CourierID *uint    `gorm:"index" json:"courierId,omitempty"`
	Courier   *Courier `json:"-"`

	Status string `gorm:"index" json:"status"`

	Address     string `json:"address"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"deliveryFee"`
	Total       int64  `json:"total"`
	Note        string `json:"note"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentRef    string `json:"paymentRef"`

	EstimatedDeliveryAt time.Time  `json:"estimatedDeliveryAt"`
	AcceptedAt          *time.Time `json:"acceptedAt,omitempty"`
	DeliveredAt         *time.Time `json:"deliveredAt,omitempty"`

	// copies written by the rating service on submission
	RestaurantRating *int `json:"restaurantRating,omitempty"`
	DeliveryRating   *int `json:"deliveryRating,omitempty"`

	Items []OrderItem `json:"items"`
}
