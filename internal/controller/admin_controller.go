package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/cache"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/jobs"
	"onehux_backend/pkg/validation"
)

type AdminQuoteUpdateInput struct {
	Status        string   `json:"status"`
	EstimatedCost *float64 `json:"estimated_cost"`
	AdminNotes    *string  `json:"admin_notes"`
}

// AdminListQuotes lists every quote request, newest first, with an optional
// status filter.
func AdminListQuotes(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := database.GetDB().Model(&model.QuoteRequest{})
	if status := c.Query("status"); status != "" {
		if !model.ValidQuoteStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown status filter",
			})
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var quotes []model.QuoteRequest
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&quotes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load quote requests",
		})
	}

	return c.JSON(fiber.Map{
		"quotes":   quotes,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func AdminGetQuote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quote id",
		})
	}

	var quote model.QuoteRequest
	if err := database.GetDB().First(&quote, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote request not found",
		})
	}

	return c.JSON(fiber.Map{"quote": quote})
}

// AdminUpdateQuote moves a quote through its workflow and records pricing
// notes. Status changes must follow the workflow order; cancellation is
// allowed from any non-terminal status.
func AdminUpdateQuote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quote id",
		})
	}

	var quote model.QuoteRequest
	if err := database.GetDB().First(&quote, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote request not found",
		})
	}

	input := new(AdminQuoteUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Status != "" {
		if !model.ValidQuoteStatus(input.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown status",
			})
		}
		next := model.QuoteStatus(input.Status)
		if !quote.CanTransitionTo(next) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot change status from " + string(quote.Status) + " to " + string(next),
			})
		}
		quote.Status = next
	}
	if input.EstimatedCost != nil {
		quote.EstimatedCost = input.EstimatedCost
	}
	if input.AdminNotes != nil {
		quote.AdminNotes = *input.AdminNotes
	}

	if err := database.GetDB().Save(&quote).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update quote request",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Quote request updated",
		"quote":   quote,
	})
}

type NewsletterCampaignInput struct {
	Subject string `json:"subject" validate:"required,max=255"`
	HTML    string `json:"html" validate:"required"`
}

// AdminSendNewsletter dispatches a campaign to every active subscriber. The
// actual sending runs on the queue; the response only confirms how many
// recipients were targeted.
func AdminSendNewsletter(c *fiber.Ctx) error {
	input := new(NewsletterCampaignInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if errs := validation.Validate(input); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Please correct the errors below.",
			"fields": errs,
		})
	}

	var subscriberIDs []uint
	if err := database.GetDB().Model(&model.NewsletterSubscription{}).
		Where("is_active = ?", true).
		Pluck("id", &subscriberIDs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load subscribers",
		})
	}

	if len(subscriberIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "There are no active subscribers.",
		})
	}

	jobs.EnqueueNewsletterCampaign(jobs.NewsletterEmailPayload{
		SubscriberIDs: subscriberIDs,
		Subject:       input.Subject,
		HTML:          input.HTML,
	})

	return c.JSON(fiber.Map{
		"message":    "Newsletter queued for delivery",
		"recipients": len(subscriberIDs),
	})
}

// AdminActivity serves the most recent cached activity analysis. The snapshot
// is refreshed every six hours by the worker.
func AdminActivity(c *fiber.Ctx) error {
	payload, err := cache.GetSnapshot(cache.ActivitySnapshotKey)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Activity snapshot not available yet",
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}

// AdminStats summarizes the back office at a glance.
func AdminStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var totalQuotes, totalUsers, totalSubscribers int64
	db.Model(&model.QuoteRequest{}).Count(&totalQuotes)
	db.Model(&model.User{}).Count(&totalUsers)
	db.Model(&model.NewsletterSubscription{}).Where("is_active = ?", true).Count(&totalSubscribers)

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	db.Model(&model.QuoteRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows)

	byStatus := make(map[string]int64, len(rows))
	for _, r := range rows {
		byStatus[r.Status] = r.Count
	}

	return c.JSON(fiber.Map{
		"total_quotes":       totalQuotes,
		"total_users":        totalUsers,
		"active_subscribers": totalSubscribers,
		"quotes_by_status":   byStatus,
	})
}
