package routes

import (
	"errors"

	"gomart/db"
	"gomart/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderRequest struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

var errInsufficientStock = errors.New("insufficient stock")

// CreateOrder - POST /api/products/:id/orders
func createOrder(c *fiber.Ctx) error {
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

	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	if req.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Don't have enough product quantity",
		})
	}

	order := models.Order{
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	// The decrement is conditional on sufficient stock, so two simultaneous
	// orders cannot both drain the same units: the second one matches zero
	// rows and is rejected. The order row commits together with it.
	var remaining int
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND amount >= ?", product.ID, req.Quantity).
			UpdateColumn("amount", gorm.Expr("amount - ?", req.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficientStock
		}
		if err := tx.Model(&models.Product{}).
			Select("amount").
			Where("id = ?", product.ID).
			Scan(&remaining).Error; err != nil {
			return err
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		if errors.Is(err, errInsufficientStock) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Don't have enough product quantity",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create order",
		})
	}

	publishOrderEvent(product.ID, req.Quantity, remaining)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Item successfully ordered",
		"order":    order,
		"redirect": "/api/products/" + id,
	})
}

// GetAllOrders - GET /api/orders (auth)
func getAllOrders(c *fiber.Ctx) error {
	var orders []models.Order

	if err := db.DB.Preload("Product").Order("created_at DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}

	return c.JSON(orders)
}

// GetOrder - GET /api/orders/:id (auth)
func getOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	var order models.Order

	if err := db.DB.Preload("Product").First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get order",
		})
	}

	return c.JSON(order)
}

// DeleteOrder - DELETE /api/orders/:id (auth)
// Back-office cleanup only; stock is not restored.
func deleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order",
		})
	}

	if err := db.DB.Delete(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}
