package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gomart/db"
	"gomart/models"
	"gomart/routes"
)

const (
	testAdminLogin    = "admin"
	testAdminPassword = "secret"
)

// setupTestApp wires the routes against a throwaway sqlite database.
// A file-backed DB (not :memory:) so that concurrent order tests exercise
// real locking.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	testDB, err := gorm.Open(sqlite.Open(dbPath+"?_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(testDB))
	require.NoError(t, db.EnsureAdmin(testDB, "Test Admin", testAdminLogin, testAdminPassword))

	originalDB := db.DB
	db.SetTestDB(testDB)
	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	app := fiber.New()
	routes.SetupRoutes(app)

	return app, testDB
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}, cookie string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// loginAdmin returns the session cookie for authenticated requests.
func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/login", map[string]string{
		"login":    testAdminLogin,
		"password": testAdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	setCookie := resp.Header.Get("Set-Cookie")
	require.NotEmpty(t, setCookie)
	return strings.SplitN(setCookie, ";", 2)[0]
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func seedCategory(t *testing.T, testDB *gorm.DB, title string) models.Category {
	t.Helper()
	category := models.Category{Title: title}
	require.NoError(t, testDB.Create(&category).Error)
	return category
}

func seedProduct(t *testing.T, testDB *gorm.DB, name string, price float64, amount int, categoryID uint) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Price:      price,
		Amount:     amount,
		CategoryID: categoryID,
	}
	require.NoError(t, testDB.Create(&product).Error)
	return product
}

func seedComment(t *testing.T, testDB *gorm.DB, productID uint, rating int) models.Comment {
	t.Helper()
	comment := models.Comment{
		ProductID: productID,
		Name:      "Reviewer",
		Email:     "reviewer@example.com",
		Rating:    rating,
		Body:      "ok",
	}
	require.NoError(t, testDB.Create(&comment).Error)
	return comment
}
