package routes

import (
	"gomart/db"
	"gomart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateComment - POST /api/products/:id/comments
func createComment(c *fiber.Ctx) error {
	id := c.Params("id")

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

	comment := new(models.Comment)
	if err := c.BodyParser(comment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	comment.ID = 0
	comment.ProductID = product.ID

	if err := validate.Struct(comment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Comment added successfully",
		"comment":  comment,
		"redirect": "/api/products/" + id,
	})
}

// GetProductComments - GET /api/products/:id/comments
func getProductComments(c *fiber.Ctx) error {
	id := c.Params("id")

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

	var comments []models.Comment
	if err := db.DB.Where("product_id = ?", product.ID).
		Order("created_at DESC").Find(&comments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get comments",
		})
	}

	return c.JSON(comments)
}
