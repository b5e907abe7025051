package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/jobs"
)

func subscribe(t *testing.T, app *fiber.App, email string) map[string]interface{} {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/newsletter/subscribe", map[string]interface{}{
		"email": email,
	}))
	require.NoError(t, err)
	return decodeBody(t, resp)
}

func TestNewsletterSubscribe(t *testing.T) {
	app, db, _ := setupTestApp(t)

	body := subscribe(t, app, "jane@example.com")
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Thank you for subscribing to our newsletter!", body["message"])

	var sub model.NewsletterSubscription
	require.NoError(t, db.First(&sub, "email = ?", "jane@example.com").Error)
	assert.True(t, sub.IsActive)
}

func TestNewsletterAlreadySubscribed(t *testing.T) {
	app, _, _ := setupTestApp(t)

	subscribe(t, app, "jane@example.com")
	body := subscribe(t, app, "jane@example.com")

	assert.Equal(t, false, body["success"])
	assert.Equal(t, "You are already subscribed to our newsletter.", body["message"])
}

func TestNewsletterReactivation(t *testing.T) {
	app, db, _ := setupTestApp(t)

	subscribe(t, app, "jane@example.com")

	resp, err := app.Test(jsonRequest("POST", "/api/newsletter/unsubscribe", map[string]interface{}{
		"email": "jane@example.com",
	}))
	require.NoError(t, err)
	unsubBody := decodeBody(t, resp)
	assert.Equal(t, true, unsubBody["success"])

	var sub model.NewsletterSubscription
	require.NoError(t, db.First(&sub, "email = ?", "jane@example.com").Error)
	require.False(t, sub.IsActive)
	require.NotNil(t, sub.UnsubscribedAt)

	body := subscribe(t, app, "jane@example.com")
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Welcome back! Your subscription has been reactivated.", body["message"])

	var resubscribed model.NewsletterSubscription
	require.NoError(t, db.First(&resubscribed, "email = ?", "jane@example.com").Error)
	assert.True(t, resubscribed.IsActive)
	assert.Nil(t, resubscribed.UnsubscribedAt)
}

func TestNewsletterRejectsBadEmail(t *testing.T) {
	app, db, _ := setupTestApp(t)

	body := subscribe(t, app, "not-an-email")
	assert.Equal(t, false, body["success"])

	var count int64
	db.Model(&model.NewsletterSubscription{}).Count(&count)
	assert.Zero(t, count)
}

func TestContactFormQueuesEmail(t *testing.T) {
	app, _, recorder := setupTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/contact", map[string]interface{}{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Question about pricing",
		"message": "How much would a small business site cost?",
	}))
	require.NoError(t, err)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])

	assert.Equal(t, []string{jobs.TypeContactEmail}, recorder.types())
}

func TestContactFormValidation(t *testing.T) {
	app, _, recorder := setupTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/contact", map[string]interface{}{
		"name": "Jane Doe",
	}))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Empty(t, recorder.tasks)
}
