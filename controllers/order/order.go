package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/freshkart-dev/grocery-api/models"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	AddressID     uint   `json:"addressId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	PromoCode     string `json:"promoCode"`
}

// -------- Errors --------

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAddressNotFound = errors.New("address not found")
	ErrCartEmpty       = errors.New("cart is empty")
)

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder converts the user's cart into an immutable order. The order
// write and the cart clear happen in one transaction: either both land or
// neither does.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var address models.Address
	if err := db.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	var cart models.Cart
	if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartEmpty
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	// Freeze the cart lines at today's unit prices. Lines whose product
	// has since been removed from the catalog are pruned, not priced.
	lines := make([]PricedLine, 0, len(cart.Items))
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	stale := make([]uint, 0)
	for _, item := range cart.Items {
		if item.Product == nil {
			stale = append(stale, item.ID)
			continue
		}
		lines = append(lines, PricedLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}
	if len(stale) > 0 {
		if err := db.Delete(&models.CartItem{}, stale).Error; err != nil {
			return nil, err
		}
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	totals := ComputeTotals(lines, req.PromoCode)

	order := models.Order{
		OrderRef:      generateOrderRef(),
		UserID:        userID,
		AddressID:     address.ID,
		Items:         orderItems,
		DeliveryFee:   totals.DeliveryFee,
		Tax:           totals.Tax,
		TotalAmount:   totals.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusPending,
	}
	if totals.Discount > 0 {
		code := strings.ToUpper(req.PromoCode)
		order.PromoCode = &code
		order.PromoDiscount = &totals.Discount
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	var created models.Order
	if err := db.Preload("Items.Product.Images").Preload("Items.Product").
		Preload("Address").First(&created, order.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// -------- Handlers --------

// POST /orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Address ID and payment method are required"})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrUserNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			case errors.Is(err, ErrAddressNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			case errors.Is(err, ErrCartEmpty):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			default:
				log.Error().Err(err).Uint("user_id", userID).Msg("failed to place order")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		broadcastOrderEvent("order.placed", *order)

		c.JSON(http.StatusOK, order)
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items.Product.Images").
			Preload("Items.Product").
			Preload("Address").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
