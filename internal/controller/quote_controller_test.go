package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/jobs"
)

func validQuotePayload() map[string]interface{} {
	return map[string]interface{}{
		"full_name":           "Jane Doe",
		"email":               "jane@example.com",
		"phone":               "+15551234567",
		"website_type":        "ecommerce",
		"project_description": "Online store for handmade goods",
		"budget_range":        "2500-5000",
		"timeline":            "2_months",
		"features":            []string{"cms", "payment"},
	}
}

func TestCreateQuote(t *testing.T) {
	app, db, recorder := setupTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/quotes/", validQuotePayload()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/quote/success", body["redirect"])
	assert.NotEmpty(t, body["quote_id"])

	var quote model.QuoteRequest
	require.NoError(t, db.First(&quote, "email = ?", "jane@example.com").Error)
	assert.Equal(t, model.QuoteStatusNew, quote.Status)
	assert.Equal(t, "Jane Doe", quote.FullName)
	assert.Nil(t, quote.UserID)

	assert.ElementsMatch(t, []string{jobs.TypeQuoteConfirmation, jobs.TypeQuoteOperatorAlert}, recorder.types())
}

func TestCreateQuoteRejectsBadPhone(t *testing.T) {
	app, db, recorder := setupTestApp(t)

	payload := validQuotePayload()
	payload["phone"] = "not-a-phone"

	resp, err := app.Test(jsonRequest("POST", "/api/quotes/", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "phone")

	var count int64
	db.Model(&model.QuoteRequest{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, recorder.tasks)
}

func TestCreateQuoteRejectsUnknownWebsiteType(t *testing.T) {
	app, _, _ := setupTestApp(t)

	payload := validQuotePayload()
	payload["website_type"] = "spaceship"

	resp, err := app.Test(jsonRequest("POST", "/api/quotes/", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateQuoteLinksLoggedInUser(t *testing.T) {
	app, db, _ := setupTestApp(t)

	token := registerTestUser(t, app, "jane@example.com")

	req := jsonRequest("POST", "/api/quotes/", validQuotePayload())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var quote model.QuoteRequest
	require.NoError(t, db.First(&quote, "email = ?", "jane@example.com").Error)
	require.NotNil(t, quote.UserID)

	var user model.User
	require.NoError(t, db.First(&user, "email = ?", "jane@example.com").Error)
	assert.Equal(t, user.ID, *quote.UserID)
}

func TestEstimateCost(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest("GET", "/api/quotes/estimate?type=ecommerce&features=cms&features=payment", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2500), body["base_cost"])
	assert.Equal(t, float64(700), body["additional_cost"])
	assert.Equal(t, float64(3200), body["total_estimate"])
	assert.Equal(t, "$3,200", body["formatted_estimate"])
}

func TestAdminUpdateQuoteWorkflow(t *testing.T) {
	app, db, _ := setupTestApp(t)

	token := registerStaffUser(t, app, db, "admin@example.com")

	resp, err := app.Test(jsonRequest("POST", "/api/quotes/", validQuotePayload()))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var quote model.QuoteRequest
	require.NoError(t, db.First(&quote, "email = ?", "jane@example.com").Error)

	update := func(body map[string]interface{}) int {
		req := jsonRequest("PUT", "/api/admin/quotes/"+quote.ID.String(), body)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	require.Equal(t, fiber.StatusOK, update(map[string]interface{}{
		"status":      "contacted",
		"admin_notes": "Spoke on the phone",
	}))

	require.NoError(t, db.First(&quote, "id = ?", quote.ID).Error)
	assert.Equal(t, model.QuoteStatusContacted, quote.Status)
	assert.NotNil(t, quote.ContactedAt)
	assert.Equal(t, "Spoke on the phone", quote.AdminNotes)

	// Backwards moves are rejected.
	assert.Equal(t, fiber.StatusBadRequest, update(map[string]interface{}{"status": "new"}))

	require.Equal(t, fiber.StatusOK, update(map[string]interface{}{"status": "cancelled"}))

	// Terminal states stay terminal.
	assert.Equal(t, fiber.StatusBadRequest, update(map[string]interface{}{"status": "in_progress"}))
}

func TestAdminEndpointsRequireStaff(t *testing.T) {
	app, _, _ := setupTestApp(t)

	token := registerTestUser(t, app, "jane@example.com")

	req := jsonRequest("GET", "/api/admin/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
