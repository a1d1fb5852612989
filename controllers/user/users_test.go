package userControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/freshkart-dev/grocery-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}, &models.Address{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, password string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: "shopper@example.com", Name: "Shopper", HashedPassword: string(hashed)}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func newUserRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	inject := func(c *gin.Context) { c.Set("user_id", userID) }
	r.GET("/me", inject, GetUser(db))
	r.PUT("/me", inject, UpdateUser(db))
	return r
}

func TestGetUser(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "password123")
	r := newUserRouter(db, user.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "shopper@example.com", resp["email"])
	// The password hash never leaves the server
	_, leaked := resp["hashed_password"]
	assert.False(t, leaked)
}

func TestUpdateUser_Name(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "password123")
	r := newUserRouter(db, user.ID)

	body, _ := json.Marshal(gin.H{"name": "New Name"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, "New Name", reloaded.Name)
}

func TestUpdateUser_PasswordChange(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "password123")
	r := newUserRouter(db, user.ID)

	// Wrong current password
	body, _ := json.Marshal(gin.H{"currentPassword": "nope", "newPassword": "newpass456"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Correct current password
	body, _ = json.Marshal(gin.H{"currentPassword": "password123", "newPassword": "newpass456"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/me", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.HashedPassword), []byte("newpass456")))
}
