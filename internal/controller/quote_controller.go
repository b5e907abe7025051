package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/utils/jwt"
	"onehux_backend/pkg/validation"
)

type QuoteInput struct {
	FullName           string   `json:"full_name" validate:"required,max=255"`
	Email              string   `json:"email" validate:"required,email"`
	Phone              string   `json:"phone" validate:"required,phone"`
	CompanyName        string   `json:"company_name" validate:"omitempty,max=255"`
	WebsiteType        string   `json:"website_type" validate:"required,oneof=business ecommerce portfolio blog landing web_app custom"`
	ProjectDescription string   `json:"project_description" validate:"required"`
	BudgetRange        string   `json:"budget_range" validate:"required,oneof=500-1000 1000-2500 2500-5000 5000-10000 10000+ not_sure"`
	Timeline           string   `json:"timeline" validate:"required,oneof=asap 1_month 2_months 3_months flexible"`
	Features           []string `json:"features"`
	CurrentWebsite     string   `json:"current_website" validate:"omitempty,url"`
}

// CreateQuote is the public quote intake. The persisted row is the contract:
// notification enqueueing happens in the model hook and cannot fail the
// request.
func CreateQuote(c *fiber.Ctx) error {
	input := new(QuoteInput)
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

	features, err := json.Marshal(input.Features)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid feature list",
		})
	}

	quote := model.QuoteRequest{
		FullName:           input.FullName,
		Email:              input.Email,
		Phone:              input.Phone,
		CompanyName:        input.CompanyName,
		WebsiteType:        input.WebsiteType,
		ProjectDescription: input.ProjectDescription,
		BudgetRange:        input.BudgetRange,
		Timeline:           input.Timeline,
		FeaturesNeeded:     datatypes.JSON(features),
		CurrentWebsite:     input.CurrentWebsite,
		Status:             model.QuoteStatusNew,
	}

	// Associate the account when the requester is logged in.
	if claims, ok := c.Locals("user").(*jwt.Claims); ok {
		userID := claims.UserID
		quote.UserID = &userID
	}

	if err := database.GetDB().Create(&quote).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create quote request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Thank you for your quote request! We will review your requirements and get back to you within 24 hours.",
		"quote_id": quote.ID,
		"redirect": "/quote/success",
	})
}

func MyQuotes(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := 10

	scope := database.GetDB().Model(&model.QuoteRequest{}).
		Where("user_id = ? OR email = ?", claims.UserID, claims.Email)

	var total int64
	scope.Count(&total)

	var quotes []model.QuoteRequest
	if err := scope.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&quotes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch quotes",
		})
	}

	return c.JSON(fiber.Map{
		"quotes":   quotes,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func QuoteDetail(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	quoteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid quote ID",
		})
	}

	var quote model.QuoteRequest
	if err := database.GetDB().
		Where("id = ? AND (user_id = ? OR email = ?)", quoteID, claims.UserID, claims.Email).
		First(&quote).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Quote not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch quote",
		})
	}

	return c.JSON(fiber.Map{
		"quote": quote,
	})
}

var baseCosts = map[string]int{
	"business":  1200,
	"ecommerce": 2500,
	"portfolio": 800,
	"blog":      600,
	"landing":   500,
	"web_app":   3500,
	"custom":    2000,
}

var featureCosts = map[string]int{
	"cms":        300,
	"ecommerce":  800,
	"booking":    500,
	"payment":    400,
	"membership": 600,
	"api":        800,
	"mobile_app": 1500,
	"seo":        200,
	"analytics":  150,
	"social":     100,
}

// EstimateCost gives a ballpark figure from website type plus selected
// features, mirroring the estimator on the quote form.
func EstimateCost(c *fiber.Ctx) error {
	websiteType := c.Query("type")

	baseCost, ok := baseCosts[websiteType]
	if !ok {
		baseCost = 1000
	}

	additionalCost := 0
	for _, feature := range c.Context().QueryArgs().PeekMulti("features") {
		additionalCost += featureCosts[string(feature)]
	}

	total := baseCost + additionalCost

	return c.JSON(fiber.Map{
		"base_cost":          baseCost,
		"additional_cost":    additionalCost,
		"total_estimate":     total,
		"formatted_estimate": fmt.Sprintf("$%s", formatThousands(total)),
	})
}

func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	return string(out)
}
