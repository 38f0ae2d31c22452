package routes

import (
	"gomart/db"
	"gomart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryListResponse struct {
	Categories []models.Category `json:"categories"`
	Total      int               `json:"total"`
}

func createCategory(c *fiber.Ctx) error {
	category := new(models.Category)
	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	// Ensure Products field is empty when creating a new category
	category.Products = nil

	if err := validate.Struct(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	if err := db.DB.Create(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

func getAllCategories(c *fiber.Ctx) error {
	var total int64
	var categories []models.Category

	if err := db.DB.Model(&models.Category{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to count categories",
		})
	}

	if err := db.DB.Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get categories",
		})
	}

	return c.JSON(CategoryListResponse{
		Categories: categories,
		Total:      int(total),
	})
}

func getCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	var category models.Category

	if err := db.DB.Preload("Products").First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get category",
		})
	}

	return c.JSON(category)
}

func updateCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	category := new(models.Category)

	if err := c.BodyParser(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var existingCategory models.Category
	if err := db.DB.First(&existingCategory, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Category not found",
		})
	}

	category.Products = nil
	if err := db.DB.Model(&existingCategory).Updates(category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category updated successfully",
		"data":    existingCategory,
	})
}

// DeleteCategory refuses to remove a category that still has products.
func deleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find category",
		})
	}

	var productCount int64
	if err := db.DB.Model(&models.Product{}).
		Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check category products",
		})
	}
	if productCount > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category still has products",
		})
	}

	if err := db.DB.Delete(&category).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted successfully",
	})
}
