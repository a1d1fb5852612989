package addressControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshkart-dev/grocery-api/models"
)

type AddressInput struct {
	FullName     string `json:"fullName" binding:"required"`
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	PostalCode   string `json:"postalCode" binding:"required"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	IsDefault    bool   `json:"isDefault"`
}

// GET /addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}

		c.JSON(http.StatusOK, addresses)
	}
}

// POST /addresses
// The first address a user creates becomes the default. Marking a later
// address default unmarks every other one.
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(uint)

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}

		var address models.Address
		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ? AND is_default = ?", userID, true).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}

			var count int64
			if err := tx.Model(&models.Address{}).
				Where("user_id = ?", userID).Count(&count).Error; err != nil {
				return err
			}

			address = models.Address{
				UserID:       userID,
				FullName:     input.FullName,
				AddressLine1: input.AddressLine1,
				AddressLine2: input.AddressLine2,
				City:         input.City,
				State:        input.State,
				PostalCode:   input.PostalCode,
				PhoneNumber:  input.PhoneNumber,
				IsDefault:    input.IsDefault || count == 0,
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}

		c.JSON(http.StatusCreated, address)
	}
}
