package models

import "time"

type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Email          string         `gorm:"uniqueIndex;not null" json:"email"`
	Name           string         `json:"name"`
	HashedPassword string         `gorm:"not null" json:"-"`
	Cart           *Cart          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Addresses      []Address      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Wishlist       []WishlistItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist,omitempty"`
	Orders         []Order        `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
