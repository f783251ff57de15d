package entity

import (
	"gorm.io/gorm"
)

type Courier struct {
	gorm.Model
	Code     string `gorm:"uniqueIndex" json:"code"` // D000001-style public id
	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Zone     string `json:"zone"`

	Online bool `json:"online"`

	FaceDescriptor string `json:"-" gorm:"type:text"`

	Orders []Order `gorm:"foreignKey:CourierID" json:"-"`
}
