package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/analytics"
	"github.com/learnify/backend/internal/storage/sqlite"
	"github.com/learnify/backend/pkg/logger"
)

type AdminHandler struct {
	store *sqlite.Client
}

func NewAdminHandler(store *sqlite.Client) *AdminHandler {
	return &AdminHandler{store: store}
}

// HandleAnalytics aggregates every stored interaction into the global
// analytics view.
func (h *AdminHandler) HandleAnalytics(c *fiber.Ctx) error {
	records, err := h.store.GetAllInteractions()
	if err != nil {
		logger.Error("Failed to load interactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analytics",
		})
	}

	users, err := h.store.ListUsers()
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load analytics",
		})
	}

	aggregate := analytics.Compute(records, analytics.ScopeGlobal, time.Now().UTC())

	return c.JSON(fiber.Map{
		"analytics":          aggregate,
		"total_users":        len(users),
		"total_interactions": len(records),
	})
}

func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.store.ListUsers()
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		count, err := h.store.CountInteractions(u.Username)
		if err != nil {
			logger.Warn("Failed to count interactions", zap.Error(err), zap.String("username", u.Username))
		}
		out = append(out, fiber.Map{
			"id":           u.ID,
			"username":     u.Username,
			"email":        u.Email,
			"created_at":   u.CreatedAt.Format(time.RFC3339),
			"interactions": count,
		})
	}

	return c.JSON(fiber.Map{
		"users": out,
	})
}

func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	deleted, err := h.store.DeleteUser(id)
	if err != nil {
		logger.Error("Failed to delete user", zap.Error(err), zap.Int("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	logger.Info("User deleted", zap.Int("id", id))
	return c.JSON(fiber.Map{
		"deleted": true,
	})
}
