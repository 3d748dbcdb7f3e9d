package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/analytics"
	"github.com/learnify/backend/internal/storage/sqlite"
	"github.com/learnify/backend/pkg/logger"
)

type DashboardHandler struct {
	store *sqlite.Client
}

func NewDashboardHandler(store *sqlite.Client) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// HandleDashboard aggregates a single user's interaction history into the
// per-user dashboard view.
func (h *DashboardHandler) HandleDashboard(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		username = sessionUsername(c)
	}
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	records, err := h.store.GetInteractions(username, 0)
	if err != nil {
		logger.Error("Failed to load interactions", zap.Error(err), zap.String("username", username))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load dashboard",
		})
	}

	aggregate := analytics.Compute(records, analytics.ScopeUser, time.Now().UTC())

	return c.JSON(fiber.Map{
		"username":  username,
		"dashboard": aggregate,
	})
}
