package routes

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// UploadDir is where product images land; main overrides it from config.
var UploadDir = "./uploads"

func SetupRoutes(app *fiber.App) {

	startBroadcaster()

	// Live order feed
	app.Get("/ws", wsHandler())

	api := app.Group("/api")

	api.Post("/login", loginHandler)
	api.Post("/logout", logoutHandler)

	// Public catalog
	products := api.Group("/products")
	products.Get("/", getAllProducts)
	products.Get("/:id", getProduct)
	products.Get("/:id/comments", getProductComments)
	products.Post("/:id/comments", createComment)
	products.Post("/:id/orders", createOrder)

	categories := api.Group("/categories")
	categories.Get("/", getAllCategories)
	categories.Get("/:id", getCategory)

	// Admin-only mutations
	app.Post("/upload", requireAuth, uploadImage)

	products.Post("/", requireAuth, createProduct)
	products.Put("/:id", requireAuth, updateProduct)
	products.Delete("/:id", requireAuth, deleteProduct)

	categories.Post("/", requireAuth, createCategory)
	categories.Put("/:id", requireAuth, updateCategory)
	categories.Delete("/:id", requireAuth, deleteCategory)

	orders := api.Group("/orders", requireAuth)
	orders.Get("/", getAllOrders)
	orders.Get("/:id", getOrder)
	orders.Delete("/:id", deleteOrder)
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Image upload handler
func uploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get uploaded file",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported image type",
		})
	}

	// Generate unique filename
	filename := uuid.New().String() + ext
	dest := filepath.Join(UploadDir, filename)

	// Save the file
	if err := c.SaveFile(file, dest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save file",
		})
	}

	// Return the file path that can be stored in the database
	return c.JSON(fiber.Map{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}
