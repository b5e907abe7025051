package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"onehux_backend/internal/model"
	"onehux_backend/pkg/database"
	"onehux_backend/pkg/utils/jwt"
	"onehux_backend/pkg/validation"
)

type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required,max=30"`
	LastName        string `json:"last_name" validate:"required,max=30"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,phone"`
	CompanyName     string `json:"company_name" validate:"omitempty,max=255"`
	NewsletterOptIn *bool  `json:"newsletter_opt_in"`
	TermsAccepted   bool   `json:"terms_accepted" validate:"eq=true"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// generateUsername derives a unique URL-friendly username from the name.
func generateUsername(firstName, lastName string) string {
	base := slug.Make(strings.TrimSpace(firstName + " " + lastName))
	if base == "" {
		base = "user"
	}

	var count int64
	database.GetDB().Model(&model.User{}).Where("username = ?", base).Count(&count)
	if count == 0 {
		return base
	}
	return base + "-" + uuid.New().String()[:8]
}

func openSession(c *fiber.Ctx, user *model.User) (string, error) {
	session := model.Session{
		UserID:    user.ID,
		IPAddress: c.IP(),
		UserAgent: c.Get("User-Agent"),
		ExpiresAt: time.Now().Add(jwt.TokenTTL()),
	}
	if err := database.GetDB().Create(&session).Error; err != nil {
		return "", err
	}

	return jwt.GenerateToken(user.ID, user.Email, session.ID)
}

func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
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

	var existingUser model.User
	if err := database.GetDB().Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please correct the errors below.",
			"fields": fiber.Map{
				"email": "A user with this email already exists.",
			},
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	optIn := true
	if input.NewsletterOptIn != nil {
		optIn = *input.NewsletterOptIn
	}

	user := model.User{
		Email:           input.Email,
		Password:        string(hashedPassword),
		Username:        generateUsername(input.FirstName, input.LastName),
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		PhoneNumber:     input.PhoneNumber,
		CompanyName:     input.CompanyName,
		NewsletterOptIn: optIn,
		IsActive:        true,
		LastLoginIP:     c.IP(),
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create user",
		})
	}

	token, err := openSession(c, &user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Welcome " + user.GetFullName() + "! Your account has been created.",
		"token":   token,
		"user":    user.GetPublicProfile(),
	})
}

func Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().Where("email = ? AND is_active = ?", input.Email, true).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password.",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid email or password.",
		})
	}

	now := time.Now()
	database.GetDB().Model(&user).Updates(map[string]interface{}{
		"last_login_ip": c.IP(),
		"last_login_at": now,
	})

	token, err := openSession(c, &user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Welcome back, " + user.GetFullName() + "!",
		"token":   token,
		"user":    user.GetPublicProfile(),
	})
}

func Logout(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	database.GetDB().Delete(&model.Session{}, "id = ?", claims.SessionID)

	return c.JSON(fiber.Map{
		"message": "You have been logged out.",
	})
}

func GetMe(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch user",
		})
	}

	return c.JSON(fiber.Map{
		"user": user.GetPublicProfile(),
	})
}
