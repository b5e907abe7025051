package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/storage"
	"onehux_backend/pkg/utils/image"
	"onehux_backend/pkg/utils/jwt"
	"onehux_backend/pkg/validation"
)

type ProfileInput struct {
	FirstName       string `json:"first_name" validate:"omitempty,max=30"`
	LastName        string `json:"last_name" validate:"omitempty,max=30"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,phone"`
	CompanyName     string `json:"company_name" validate:"omitempty,max=255"`
	Website         string `json:"website" validate:"omitempty,url"`
	Bio             string `json:"bio" validate:"omitempty,max=500"`
	NewsletterOptIn *bool  `json:"newsletter_opt_in"`
}

func GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"profile": user.GetPublicProfile(),
	})
}

// UpdateProfile edits the mutable profile fields. Email is the login key and
// stays immutable here.
func UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(ProfileInput)
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

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.PhoneNumber = input.PhoneNumber
	user.CompanyName = input.CompanyName
	user.Website = input.Website
	user.Bio = input.Bio
	if input.NewsletterOptIn != nil {
		user.NewsletterOptIn = *input.NewsletterOptIn
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Your profile has been updated successfully!",
		"profile": user.GetPublicProfile(),
	})
}

func UploadAvatar(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Avatar file is required",
		})
	}

	buf, contentType, err := image.ProcessAvatar(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	url, err := storage.UploadAvatar(user.Username, buf, contentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload avatar",
		})
	}

	oldAvatar := user.Avatar
	if err := database.GetDB().Model(&user).Update("avatar", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save avatar",
		})
	}

	if oldAvatar != "" {
		if err := storage.DeleteObject(oldAvatar); err != nil {
			log.Printf("Could not delete previous avatar %s: %v", oldAvatar, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Avatar updated",
		"avatar":  url,
	})
}

// Dashboard gives the logged-in user an overview of their quote activity.
func Dashboard(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var totalQuotes, activeProjects, completedProjects int64
	database.GetDB().Model(&model.QuoteRequest{}).
		Where("user_id = ? OR email = ?", claims.UserID, claims.Email).
		Count(&totalQuotes)
	database.GetDB().Model(&model.QuoteRequest{}).
		Where("(user_id = ? OR email = ?) AND status IN ?", claims.UserID, claims.Email,
			[]model.QuoteStatus{model.QuoteStatusApproved, model.QuoteStatusInProgress}).
		Count(&activeProjects)
	database.GetDB().Model(&model.QuoteRequest{}).
		Where("(user_id = ? OR email = ?) AND status = ?", claims.UserID, claims.Email, model.QuoteStatusCompleted).
		Count(&completedProjects)

	var recentQuotes []model.QuoteRequest
	database.GetDB().
		Where("user_id = ? OR email = ?", claims.UserID, claims.Email).
		Order("created_at DESC").
		Limit(5).
		Find(&recentQuotes)

	return c.JSON(fiber.Map{
		"recent_quotes": recentQuotes,
		"stats": fiber.Map{
			"total_quotes":       totalQuotes,
			"active_projects":    activeProjects,
			"completed_projects": completedProjects,
		},
	})
}
