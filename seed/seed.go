package seed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/freshkart-dev/grocery-api/models"
)

type seedProduct struct {
	Name        string
	Slug        string
	Description string
	Price       float64
	Discount    float64
	Stock       int
	Featured    bool
	ImageURL    string
}

var catalog = map[string][]seedProduct{
	"Fresh Fruits": {
		{"Fresh Apples", "fresh-apples", "Crisp and juicy apples, sold per kg", 120, 0, 50, true,
			"https://images.pexels.com/photos/102104/pexels-photo-102104.jpeg"},
		{"Bananas", "bananas", "Ripe bananas, bunch of six", 40, 0, 80, false,
			"https://images.pexels.com/photos/2872755/pexels-photo-2872755.jpeg"},
		{"Alphonso Mangoes", "alphonso-mangoes", "Seasonal Alphonso mangoes, box of four", 350, 10, 20, true,
			"https://images.pexels.com/photos/918643/pexels-photo-918643.jpeg"},
	},
	"Vegetables": {
		{"Tomatoes", "tomatoes", "Vine-ripened tomatoes, 500g", 30, 0, 100, false,
			"https://images.pexels.com/photos/533280/pexels-photo-533280.jpeg"},
		{"Baby Spinach", "baby-spinach", "Washed baby spinach, 200g bag", 45, 0, 60, true,
			"https://images.pexels.com/photos/2325843/pexels-photo-2325843.jpeg"},
		{"Potatoes", "potatoes", "Farm potatoes, 1kg", 35, 0, 120, false,
			"https://images.pexels.com/photos/144248/potatoes-vegetables-erdfrucht-bio-144248.jpeg"},
	},
	"Dairy & Eggs": {
		{"Whole Milk", "whole-milk", "Pasteurised whole milk, 1L", 65, 0, 90, true,
			"https://images.pexels.com/photos/248412/pexels-photo-248412.jpeg"},
		{"Free-Range Eggs", "free-range-eggs", "Dozen free-range eggs", 95, 0, 70, false,
			"https://images.pexels.com/photos/162712/egg-white-food-protein-162712.jpeg"},
	},
	"Bakery": {
		{"Sourdough Loaf", "sourdough-loaf", "Stone-baked sourdough, 500g", 150, 0, 25, true,
			"https://images.pexels.com/photos/1070946/pexels-photo-1070946.jpeg"},
		{"Butter Croissants", "butter-croissants", "Pack of four butter croissants", 180, 5, 30, false,
			"https://images.pexels.com/photos/3724/food-morning-breakfast-orange-juice.jpg"},
	},
	"Snacks": {
		{"Salted Cashews", "salted-cashews", "Roasted salted cashews, 250g", 280, 0, 40, false,
			"https://images.pexels.com/photos/1295572/pexels-photo-1295572.jpeg"},
		{"Dark Chocolate", "dark-chocolate", "70% dark chocolate bar, 100g", 190, 0, 55, true,
			"https://images.pexels.com/photos/65882/chocolate-dark-coffee-confiserie-65882.jpeg"},
	},
}

var categoryImages = map[string]string{
	"Fresh Fruits": "https://images.pexels.com/photos/1132047/pexels-photo-1132047.jpeg",
	"Vegetables":   "https://images.pexels.com/photos/1435904/pexels-photo-1435904.jpeg",
	"Dairy & Eggs": "https://images.pexels.com/photos/248412/pexels-photo-248412.jpeg",
	"Bakery":       "https://images.pexels.com/photos/1070946/pexels-photo-1070946.jpeg",
	"Snacks":       "https://images.pexels.com/photos/1536871/pexels-photo-1536871.jpeg",
}

var categorySlugs = map[string]string{
	"Fresh Fruits": "fresh-fruits",
	"Vegetables":   "vegetables",
	"Dairy & Eggs": "dairy-eggs",
	"Bakery":       "bakery",
	"Snacks":       "snacks",
}

// Run seeds the grocery catalog and a test user. It is a no-op when
// categories already exist.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("database already seeded")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for name, products := range catalog {
			category := models.Category{
				Name:     name,
				Slug:     categorySlugs[name],
				ImageURL: categoryImages[name],
			}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}

			for _, p := range products {
				product := models.Product{
					Name:        p.Name,
					Slug:        p.Slug,
					Description: p.Description,
					Price:       p.Price,
					Discount:    p.Discount,
					Stock:       p.Stock,
					Featured:    p.Featured,
					CategoryID:  category.ID,
					Images:      []models.ProductImage{{URL: p.ImageURL}},
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
			}
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Name:           "Test User",
			Email:          "test@example.com",
			HashedPassword: string(hashed),
			Cart:           &models.Cart{},
		}
		return tx.Create(&user).Error
	})
}

// POST /admin/seed
func Handler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := Run(db); err != nil {
			log.Error().Err(err).Msg("seeding failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed database"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Database seeded successfully"})
	}
}
