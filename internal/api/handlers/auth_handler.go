package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/cache/redis"
	"github.com/learnify/backend/internal/storage/models"
	"github.com/learnify/backend/internal/storage/sqlite"
	"github.com/learnify/backend/pkg/logger"
	"github.com/learnify/backend/pkg/utils"
)

type AuthHandler struct {
	store      *sqlite.Client
	sessions   *redis.Client
	sessionTTL time.Duration
}

func NewAuthHandler(store *sqlite.Client, sessions *redis.Client, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		store:      store,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username and password are required",
		})
	}

	existing, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		logger.Error("Failed to look up user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}
	if existing != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Username already taken",
		})
	}

	user := &models.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: utils.HashString(req.Password),
	}
	if err := h.store.CreateUser(user); err != nil {
		logger.Error("Failed to create user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	logger.Info("User created", zap.String("username", user.Username))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"username": user.Username,
	})
}

func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.store.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		logger.Error("Failed to look up user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	if user == nil || user.PasswordHash != utils.HashString(req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid username or password",
		})
	}

	token := uuid.New().String()
	if err := h.sessions.SetSession(c.Context(), token, user.Username, h.sessionTTL); err != nil {
		logger.Error("Failed to create session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	logger.Info("User logged in", zap.String("username", user.Username))
	return c.JSON(fiber.Map{
		"token":    token,
		"username": user.Username,
	})
}

func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing session token",
		})
	}

	if err := h.sessions.DeleteSession(c.Context(), token); err != nil {
		logger.Error("Failed to delete session", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Logout failed",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// SessionMiddleware resolves a bearer token to a username and stores it in
// request locals. Requests without a valid token pass through anonymously.
func (h *AuthHandler) SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		username, err := h.sessions.GetSession(c.Context(), token)
		if err != nil {
			logger.Warn("Session lookup failed", zap.Error(err))
			return c.Next()
		}
		if username != "" {
			c.Locals("username", username)
		}

		return c.Next()
	}
}

// RequireAdmin rejects requests whose session does not belong to the
// configured admin account.
func RequireAdmin(adminUsername string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := sessionUsername(c)
		if username == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		if username != adminUsername {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}

func sessionUsername(c *fiber.Ctx) string {
	if username, ok := c.Locals("username").(string); ok {
		return username
	}
	return ""
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
