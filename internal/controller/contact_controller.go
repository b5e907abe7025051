package controller

import (
	"github.com/gofiber/fiber/v2"

	"onehux_backend/pkg/jobs"
	"onehux_backend/pkg/validation"
)

type ContactInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

// SubmitContact validates the contact form and hands the message to the
// queue. Nothing is persisted; the task payload carries the message.
func SubmitContact(c *fiber.Ctx) error {
	input := new(ContactInput)
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

	jobs.EnqueueContactEmail(jobs.ContactEmailPayload{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Thank you for reaching out! We will get back to you soon.",
	})
}
