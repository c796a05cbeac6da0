package handlers

import (
	"errors"
	"time"

	"hr_payroll/config"
	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks operator credentials and issues a bearer token.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}

	var operator models.Operator
	if err := DB.WithContext(c.UserContext()).Where("username = ?", req.Username).First(&operator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(401).JSON(types.APIResponse{
				Success: false,
				Error:   "Invalid username or password",
			})
		}
		return fail(c, err, "Failed to load operator")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)); err != nil {
		utils.Logger.Warn("Failed login attempt", zap.String("username", req.Username))
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid username or password",
		})
	}

	expiresAt := time.Now().Add(config.AppConfig.TokenExpiry)
	t, err := IssueToken(operator.ID.String(), operator.Role, expiresAt)
	if err != nil {
		utils.Logger.Error("Failed to sign token", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"token":      t,
			"role":       operator.Role,
			"expires_at": expiresAt.UTC().Format(time.RFC3339),
		},
	})
}

// IssueToken signs an HS256 token with the configured secret.
func IssueToken(userID, role string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     expiresAt.Unix(),
	})
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
