package orderControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/freshkart-dev/grocery-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would see a different in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// seedCheckoutFixture creates a user with a two-line cart
// (2 x 100 + 1 x 50 = 250) and a default address.
func seedCheckoutFixture(t *testing.T, db *gorm.DB) (models.User, models.Address) {
	t.Helper()

	user := models.User{
		Email:          "shopper@example.com",
		Name:           "Shopper",
		HashedPassword: "irrelevant",
		Cart:           &models.Cart{},
	}
	require.NoError(t, db.Create(&user).Error)

	category := models.Category{Name: "Fruits", Slug: "fruits"}
	require.NoError(t, db.Create(&category).Error)

	apples := models.Product{Name: "Apples", Slug: "apples", Price: 100, CategoryID: category.ID}
	milk := models.Product{Name: "Milk", Slug: "milk", Price: 50, CategoryID: category.ID}
	require.NoError(t, db.Create(&apples).Error)
	require.NoError(t, db.Create(&milk).Error)

	require.NoError(t, db.Create(&models.CartItem{CartID: user.Cart.ID, ProductID: apples.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.CartItem{CartID: user.Cart.ID, ProductID: milk.ID, Quantity: 1}).Error)

	address := models.Address{
		UserID:       user.ID,
		FullName:     "Shopper",
		AddressLine1: "12 Main St",
		City:         "Pune",
		State:        "MH",
		PostalCode:   "411001",
		PhoneNumber:  "9999999999",
		IsDefault:    true,
	}
	require.NoError(t, db.Create(&address).Error)

	return user, address
}

func TestPlaceOrder_Success(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		AddressID:     address.ID,
		PaymentMethod: "cod",
		PromoCode:     "welcome10",
	})
	require.NoError(t, err)

	// subtotal 250, discount 25, tax 11.25, delivery 49
	assert.InDelta(t, 285.25, order.TotalAmount, 1e-9)
	assert.InDelta(t, 11.25, order.Tax, 1e-9)
	assert.InDelta(t, 49, order.DeliveryFee, 1e-9)
	require.NotNil(t, order.PromoCode)
	assert.Equal(t, "WELCOME10", *order.PromoCode)
	require.NotNil(t, order.PromoDiscount)
	assert.InDelta(t, 25, *order.PromoDiscount, 1e-9)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "cod", order.PaymentMethod)
	assert.NotEmpty(t, order.OrderRef)
	require.NotNil(t, order.Address)
	assert.Equal(t, address.ID, order.Address.ID)

	require.Len(t, order.Items, 2)
	byProduct := make(map[uint]models.OrderItem)
	for _, item := range order.Items {
		byProduct[item.ProductID] = item
	}
	assert.Equal(t, 2, byProduct[1].Quantity)
	assert.InDelta(t, 100, byProduct[1].Price, 1e-9)
	assert.Equal(t, 1, byProduct[2].Quantity)
	assert.InDelta(t, 50, byProduct[2].Price, 1e-9)

	// Cart is emptied and exactly one order exists
	var cartLines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", user.Cart.ID).Count(&cartLines).Error)
	assert.Zero(t, cartLines)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 1, orderCount)
}

func TestPlaceOrder_NoPromo(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		AddressID:     address.ID,
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	// subtotal 250, no discount, tax 12.5, delivery 49
	assert.InDelta(t, 311.5, order.TotalAmount, 1e-9)
	assert.Nil(t, order.PromoCode)
	assert.Nil(t, order.PromoDiscount)
}

func TestPlaceOrder_PricesFrozenAtCheckout(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		AddressID:     address.ID,
		PaymentMethod: "cod",
	})
	require.NoError(t, err)
	placedTotal := order.TotalAmount

	// Raising the product price must not touch the order
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", 1).Update("price", 999).Error)

	var reloaded models.Order
	require.NoError(t, db.Preload("Items").First(&reloaded, order.ID).Error)
	assert.InDelta(t, placedTotal, reloaded.TotalAmount, 1e-9)
	for _, item := range reloaded.Items {
		if item.ProductID == 1 {
			assert.InDelta(t, 100, item.Price, 1e-9)
		}
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)
	require.NoError(t, db.Where("cart_id = ?", user.Cart.ID).Delete(&models.CartItem{}).Error)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		AddressID:     address.ID,
		PaymentMethod: "cod",
	})
	assert.ErrorIs(t, err, ErrCartEmpty)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestPlaceOrder_SkipsLinesForRemovedProducts(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)

	// Milk disappears from the catalog while it still sits in the cart
	require.NoError(t, db.Delete(&models.Product{}, 2).Error)

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		AddressID:     address.ID,
		PaymentMethod: "cod",
	})
	require.NoError(t, err)

	// Only the apples line is priced: subtotal 200, tax 10, delivery 49
	require.Len(t, order.Items, 1)
	assert.Equal(t, uint(1), order.Items[0].ProductID)
	assert.InDelta(t, 259, order.TotalAmount, 1e-9)

	var cartLines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", user.Cart.ID).Count(&cartLines).Error)
	assert.Zero(t, cartLines)
}

func TestPlaceOrder_AllProductsRemoved(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)

	require.NoError(t, db.Delete(&models.Product{}, []uint{1, 2}).Error)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		AddressID:     address.ID,
		PaymentMethod: "cod",
	})
	assert.ErrorIs(t, err, ErrCartEmpty)

	// The dangling lines are pruned, not left to poison the next checkout
	var cartLines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", user.Cart.ID).Count(&cartLines).Error)
	assert.Zero(t, cartLines)

	var orderCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestPlaceOrder_AddressMustBelongToUser(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedCheckoutFixture(t, db)

	other := models.User{Email: "other@example.com", HashedPassword: "irrelevant", Cart: &models.Cart{}}
	require.NoError(t, db.Create(&other).Error)
	foreign := models.Address{
		UserID:       other.ID,
		FullName:     "Other",
		AddressLine1: "9 Side St",
		City:         "Pune",
		State:        "MH",
		PostalCode:   "411002",
		PhoneNumber:  "8888888888",
	}
	require.NoError(t, db.Create(&foreign).Error)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{
		AddressID:     foreign.ID,
		PaymentMethod: "cod",
	})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestPlaceOrder_UserNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := PlaceOrder(db, 999, PlaceOrderRequest{
		AddressID:     1,
		PaymentMethod: "cod",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func newOrderRouter(db *gorm.DB, userID uint, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	inject := func(c *gin.Context) {
		if authed {
			c.Set("user_id", userID)
		}
	}
	r.POST("/orders", inject, PlaceOrderHandler(db))
	r.GET("/orders", inject, GetUserOrdersHandler(db))
	return r
}

func TestPlaceOrderHandler(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)
	r := newOrderRouter(db, user.ID, true)

	body, _ := json.Marshal(gin.H{
		"addressId":     address.ID,
		"paymentMethod": "cod",
		"promoCode":     "WELCOME10",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 285.25, resp.TotalAmount, 1e-9)
	assert.Len(t, resp.Items, 2)
	require.NotNil(t, resp.Address)
}

func TestPlaceOrderHandler_MissingPaymentMethod(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)
	r := newOrderRouter(db, user.ID, true)

	body, _ := json.Marshal(gin.H{"addressId": address.ID})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderHandler_Unauthenticated(t *testing.T) {
	db := newTestDB(t)
	r := newOrderRouter(db, 0, false)

	body, _ := json.Marshal(gin.H{"addressId": 1, "paymentMethod": "cod"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserOrdersHandler_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	user, address := seedCheckoutFixture(t, db)
	r := newOrderRouter(db, user.ID, true)

	first, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID, PaymentMethod: "cod"})
	require.NoError(t, err)

	// Refill the cart for a second checkout
	require.NoError(t, db.Create(&models.CartItem{CartID: user.Cart.ID, ProductID: 1, Quantity: 1}).Error)
	time.Sleep(10 * time.Millisecond)
	second, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID, PaymentMethod: "card"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, second.OrderRef, resp[0].OrderRef)
	assert.Equal(t, first.OrderRef, resp[1].OrderRef)
}
