package routes_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomart/models"
	"gomart/routes"
)

func commentBody(rating int) map[string]interface{} {
	return map[string]interface{}{
		"name":   "Alisher",
		"email":  "alisher@example.com",
		"rating": rating,
		"body":   "Great product",
	}
}

func TestCreateComment(t *testing.T) {
	app, testDB := setupTestApp(t)
	category := seedCategory(t, testDB, "Books")
	product := seedProduct(t, testDB, "Novel", 12, 5, category.ID)

	t.Run("appends a comment and points back to the product", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/products/"+itoa(product.ID)+"/comments", commentBody(5), "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Message  string         `json:"message"`
			Comment  models.Comment `json:"comment"`
			Redirect string         `json:"redirect"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "/api/products/"+itoa(product.ID), body.Redirect)
		assert.Equal(t, product.ID, body.Comment.ProductID)
		assert.Equal(t, 5, body.Comment.Rating)

		var count int64
		testDB.Model(&models.Comment{}).Where("product_id = ?", product.ID).Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("average rating reflects new comments", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/products/"+itoa(product.ID)+"/comments", commentBody(4), "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		detail := doJSON(t, app, http.MethodGet, "/api/products/"+itoa(product.ID), nil, "")
		require.Equal(t, http.StatusOK, detail.StatusCode)

		var body routes.ProductDetailResponse
		decodeBody(t, detail, &body)
		require.NotNil(t, body.Product.AvgRating)
		assert.InDelta(t, 4.5, *body.Product.AvgRating, 0.001)
	})

	t.Run("rating outside 1..5 is rejected", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			resp := doJSON(t, app, http.MethodPost, "/api/products/"+itoa(product.ID)+"/comments", commentBody(rating), "")
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "rating %d should be rejected", rating)
		}
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		body := commentBody(3)
		body["email"] = "nope"
		resp := doJSON(t, app, http.MethodPost, "/api/products/"+itoa(product.ID)+"/comments", body, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing author name is rejected", func(t *testing.T) {
		body := commentBody(3)
		delete(body, "name")
		resp := doJSON(t, app, http.MethodPost, "/api/products/"+itoa(product.ID)+"/comments", body, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/products/99999/comments", commentBody(3), "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestListProductComments(t *testing.T) {
	app, testDB := setupTestApp(t)
	category := seedCategory(t, testDB, "Books")
	product := seedProduct(t, testDB, "Novel", 12, 5, category.ID)
	other := seedProduct(t, testDB, "Other", 9, 5, category.ID)

	seedComment(t, testDB, product.ID, 5)
	seedComment(t, testDB, product.ID, 3)
	seedComment(t, testDB, other.ID, 1)

	resp := doJSON(t, app, http.MethodGet, "/api/products/"+itoa(product.ID)+"/comments", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	decodeBody(t, resp, &comments)
	require.Len(t, comments, 2)
	for _, comment := range comments {
		assert.Equal(t, product.ID, comment.ProductID)
	}
}
