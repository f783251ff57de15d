package entity

import (
	"gorm.io/gorm"
)

type Member struct {
	gorm.Model
	Code     string `gorm:"uniqueIndex" json:"code"` // M000001-style public id
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	WalletBalance int64 `json:"walletBalance"`

	// JSON-encoded []float64, set by the face enrolment endpoint
	FaceDescriptor string `json:"-" gorm:"type:text"`

	Orders      []Order      `json:"-"`
	Ratings     []Rating     `json:"-"`
	RecentViews []RecentView `json:"-"`
	Carts       []Cart       `json:"-"`
}
