package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/freshkart-dev/grocery-api/models"
)

type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Discount    float64  `json:"discount"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	ImageURLs   []string `json:"image_urls"`
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
			}
			return
		}

		product := models.Product{
			Name:        input.Name,
			Slug:        input.Slug,
			Description: input.Description,
			Price:       input.Price,
			Discount:    input.Discount,
			Stock:       input.Stock,
			Featured:    input.Featured,
			CategoryID:  input.CategoryID,
		}
		for _, url := range input.ImageURLs {
			product.Images = append(product.Images, models.ProductImage{URL: url})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
