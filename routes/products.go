package routes

import (
	"gomart/db"
	"gomart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// avgRatingSelect annotates every product row with the mean of its comment
// ratings, rounded to 2 decimal places. Products without comments get NULL,
// which scans into a nil AvgRating.
const avgRatingSelect = "products.*, (SELECT ROUND(AVG(comments.rating), 2) FROM comments WHERE comments.product_id = products.id) AS avg_rating"

type ProductListResponse struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

type ProductDetailResponse struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
}

// GetAllProducts - GET /api/products?category_id=&q=&sort=&skip=&limit=
func getAllProducts(c *fiber.Ctx) error {
	var total int64
	var products []models.Product

	limit := -1 // No limit unless specified
	skip := 0

	if c.Query("limit") != "" {
		limit = c.QueryInt("limit", 0)
		if limit < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid limit parameter",
			})
		}
	}
	if c.Query("skip") != "" {
		skip = c.QueryInt("skip", 0)
		if skip < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid skip parameter",
			})
		}
	}

	filters := func(q *gorm.DB) *gorm.DB {
		if categoryID := c.Query("category_id"); categoryID != "" {
			q = q.Where("category_id = ?", categoryID)
		}
		if search := c.Query("q"); search != "" {
			// SQLite LIKE is case-insensitive for ASCII
			q = q.Where("name LIKE ?", "%"+search+"%")
		}
		return q
	}

	// Count total products for the active filters
	if err := filters(db.DB.Model(&models.Product{})).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count products",
		})
	}

	dbQuery := filters(db.DB.Model(&models.Product{})).Select(avgRatingSelect).Preload("Category")

	// Sort mode tokens; an unknown token falls through to store order.
	// The id tiebreak keeps equal prices in insertion order.
	switch c.Query("sort") {
	case "cheap":
		dbQuery = dbQuery.Order("price ASC, id ASC")
	case "expensive":
		dbQuery = dbQuery.Order("price DESC, id ASC")
	case "rating":
		// SQLite treats NULL as smaller than any value, so on DESC the
		// comment-less products land at the bottom.
		dbQuery = dbQuery.Order("avg_rating DESC, id ASC")
	}

	if skip > 0 {
		dbQuery = dbQuery.Offset(skip)
		if limit < 0 {
			// SQLite needs a LIMIT for OFFSET to apply
			dbQuery = dbQuery.Limit(int(total))
		}
	}
	if limit >= 0 {
		dbQuery = dbQuery.Limit(limit)
	}

	if err := dbQuery.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get products",
		})
	}

	return c.JSON(ProductListResponse{
		Products: products,
		Total:    int(total),
		Skip:     skip,
		Limit:    limit,
	})
}

// GetProduct - GET /api/products/:id
func getProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	var product models.Product

	err := db.DB.Model(&models.Product{}).
		Select(avgRatingSelect).
		Preload("Category").
		First(&product, "products.id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get product",
		})
	}

	// Other products from the same category, excluding this one
	var related []models.Product
	err = db.DB.Model(&models.Product{}).
		Select(avgRatingSelect).
		Where("category_id = ? AND id != ?", product.CategoryID, product.ID).
		Find(&related).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get related products",
		})
	}

	return c.JSON(ProductDetailResponse{
		Product: product,
		Related: related,
	})
}

// CreateProduct - POST /api/products (auth)
func createProduct(c *fiber.Ctx) error {
	product := new(models.Product)
	if err := c.BodyParser(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	var category models.Category
	if err := db.DB.First(&category, product.CategoryID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	if err := db.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct - PUT /api/products/:id (auth)
func updateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	product := new(models.Product)

	if err := c.BodyParser(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var existingProduct models.Product
	if err := db.DB.First(&existingProduct, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	// Validate if the CategoryID exists if provided
	if product.CategoryID != 0 {
		var category models.Category
		if err := db.DB.First(&category, product.CategoryID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
	}

	if product.Price < 0 || product.Amount < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price and amount must not be negative",
		})
	}

	if err := db.DB.Model(&existingProduct).Updates(product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update product",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"data":    existingProduct,
	})
}

type DeleteProductRequest struct {
	Confirm bool `json:"confirm"`
}

// DeleteProduct - DELETE /api/products/:id (auth)
// A bare request never deletes; the body must carry an explicit confirmation.
func deleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var req DeleteProductRequest
	if err := c.BodyParser(&req); err != nil || !req.Confirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Deletion must be confirmed",
		})
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find product",
		})
	}

	// Orders and comments belong to the product; remove them with it.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete product",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}
