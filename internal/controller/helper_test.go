package controller

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"onehux_backend/internal/middleware"
	"onehux_backend/internal/model"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/jobs"
	"onehux_backend/pkg/utils/jwt"
)

type taskRecorder struct {
	tasks []*asynq.Task
}

func (r *taskRecorder) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *taskRecorder) types() []string {
	out := make([]string, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t.Type())
	}
	return out
}

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, *taskRecorder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.QuoteRequest{},
		&model.NewsletterSubscription{},
	))
	database.SetDB(db)

	recorder := &taskRecorder{}
	jobs.SetClient(recorder)
	t.Cleanup(func() { jobs.SetClient(nil) })

	jwt.Init("test-secret", time.Hour)

	app := fiber.New()
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", Register)
	auth.Post("/login", Login)
	auth.Post("/logout", middleware.AuthMiddleware(), Logout)

	api.Get("/me", middleware.AuthMiddleware(), GetMe)

	quotes := api.Group("/quotes")
	quotes.Post("/", middleware.OptionalAuth(), CreateQuote)
	quotes.Get("/estimate", EstimateCost)
	quotes.Get("/:id", middleware.AuthMiddleware(), QuoteDetail)

	api.Get("/my-quotes", middleware.AuthMiddleware(), MyQuotes)

	newsletter := api.Group("/newsletter")
	newsletter.Post("/subscribe", Subscribe)
	newsletter.Post("/unsubscribe", Unsubscribe)

	api.Post("/contact", SubmitContact)

	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.StaffOnly())
	admin.Get("/activity", AdminActivity)
	admin.Post("/newsletter", AdminSendNewsletter)
	admin.Get("/quotes", AdminListQuotes)
	admin.Put("/quotes/:id", AdminUpdateQuote)

	return app, db, recorder
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	req := jsonRequest("POST", "/api/auth/register", map[string]interface{}{
		"email":            email,
		"password":         "sup3rsecret",
		"password_confirm": "sup3rsecret",
		"first_name":       "Jane",
		"last_name":        "Doe",
		"terms_accepted":   true,
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func registerStaffUser(t *testing.T, app *fiber.App, db *gorm.DB, email string) string {
	t.Helper()

	token := registerTestUser(t, app, email)
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", email).
		Update("is_staff", true).Error)
	return token
}
