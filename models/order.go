package models

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "PENDING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderRef      string      `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID        uint        `gorm:"index;not null" json:"user_id"`
	AddressID     uint        `gorm:"not null" json:"address_id"`
	Address       *Address    `json:"address,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	PromoCode     *string     `json:"promo_code,omitempty"`
	PromoDiscount *float64    `json:"promo_discount,omitempty"`
	DeliveryFee   float64     `json:"delivery_fee"`
	Tax           float64     `json:"tax"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `gorm:"not null" json:"payment_method"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem keeps the unit price captured at checkout. It is never
// recalculated from the product.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OrderID   uint     `gorm:"index" json:"order_id"`
	ProductID uint     `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"`
}
