package controller

import (
	"errors"
	"net/mail"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/database"
)

type NewsletterInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe handles newsletter signup with three outcomes: newly subscribed,
// already active, or reactivated.
func Subscribe(c *fiber.Ctx) error {
	var input NewsletterInput
	if err := c.BodyParser(&input); err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Invalid data format",
		})
	}

	if input.Email == "" {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Email is required",
		})
	}

	if _, err := mail.ParseAddress(input.Email); err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Please enter a valid email address.",
		})
	}

	var subscription model.NewsletterSubscription
	err := database.GetDB().Where("email = ?", input.Email).First(&subscription).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		subscription = model.NewsletterSubscription{
			Email:    input.Email,
			Name:     input.Name,
			IsActive: true,
		}
		if err := database.GetDB().Create(&subscription).Error; err != nil {
			return c.JSON(fiber.Map{
				"success": false,
				"message": "An error occurred. Please try again.",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Thank you for subscribing to our newsletter!",
		})
	}

	if err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "An error occurred. Please try again.",
		})
	}

	if subscription.IsActive {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "You are already subscribed to our newsletter.",
		})
	}

	subscription.Reactivate()
	if err := database.GetDB().Save(&subscription).Error; err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "An error occurred. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Welcome back! Your subscription has been reactivated.",
	})
}

func Unsubscribe(c *fiber.Ctx) error {
	var input NewsletterInput
	if err := c.BodyParser(&input); err != nil || input.Email == "" {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "Email is required",
		})
	}

	var subscription model.NewsletterSubscription
	if err := database.GetDB().Where("email = ?", input.Email).First(&subscription).Error; err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "This email is not subscribed to our newsletter.",
		})
	}

	if !subscription.IsActive {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "This email is already unsubscribed.",
		})
	}

	subscription.Unsubscribe()
	if err := database.GetDB().Save(&subscription).Error; err != nil {
		return c.JSON(fiber.Map{
			"success": false,
			"message": "An error occurred. Please try again.",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "You have been unsubscribed from our newsletter.",
	})
}
