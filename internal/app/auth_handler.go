package app

import (
	"errors"
	"net/http"
	"strings"

	"socialbook/internal/service"
	"socialbook/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService service.AuthService
	jwtSecret   string
}

func NewAuthHandler(authService service.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

// Register handles user registration
// POST /api/v1/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, bindingErrorMessage(err))
		return
	}

	tokens, err := h.authService.Register(req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Registration successful", gin.H{"token": tokens})
}

// Login handles user login
// POST /api/v1/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, bindingErrorMessage(err))
		return
	}

	tokens, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Not 404: a bad credential is an authentication failure
			util.ErrorResponse(c, http.StatusUnauthorized, "login failed", gin.H{
				"non_field_errors": []string{"Email or password is not valid"},
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Login successful", gin.H{"token": tokens})
}

// RefreshToken handles token refresh
// POST /api/v1/refresh-token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(req.Refresh)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", gin.H{"token": tokens})
}

// AuthMiddleware validates the bearer access token on protected routes.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			util.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], h.jwtSecret)
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}

// bindingErrorMessage flattens validator errors into something a client
// can show.
func bindingErrorMessage(err error) string {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		for _, fieldErr := range validationErr {
			switch fieldErr.Field() {
			case "Email":
				return "A valid email is required"
			case "Password":
				if fieldErr.Tag() == "min" {
					return "Password must be at least 8 characters"
				}
				if fieldErr.Tag() == "max" {
					return "Password must be at most 128 characters"
				}
				return "Password is required"
			case "Password2":
				return "Confirm password is required"
			case "Name":
				return "Name is required"
			}
		}
	}
	return err.Error()
}
