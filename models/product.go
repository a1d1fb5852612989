package models

import "time"

type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Discount    float64        `json:"discount"`
	Stock       int            `json:"stock"`
	Featured    bool           `gorm:"index" json:"featured"`
	CategoryID  uint           `gorm:"index" json:"category_id"`
	Category    *Category      `json:"category,omitempty"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	URL       string `gorm:"not null" json:"url"`
}
