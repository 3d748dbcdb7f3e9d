package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/cache/redis"
	"github.com/learnify/backend/internal/metrics"
	"github.com/learnify/backend/internal/recommend"
	"github.com/learnify/backend/internal/storage/sqlite"
	"github.com/learnify/backend/pkg/logger"
	"github.com/learnify/backend/pkg/utils"
)

type RecommendHandler struct {
	pipeline     *recommend.Pipeline
	store        *sqlite.Client
	cache        *redis.Client
	recommendTTL time.Duration
}

func NewRecommendHandler(pipeline *recommend.Pipeline, store *sqlite.Client, cache *redis.Client, recommendTTL time.Duration) *RecommendHandler {
	return &RecommendHandler{
		pipeline:     pipeline,
		store:        store,
		cache:        cache,
		recommendTTL: recommendTTL,
	}
}

func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	var req struct {
		Text     string `json:"text"`
		Username string `json:"username"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	username := req.Username
	if username == "" {
		username = sessionUsername(c)
	}

	// Only anonymous requests are served from cache; authenticated requests
	// must each append an interaction record.
	cacheKey := utils.HashString(strings.ToLower(strings.TrimSpace(req.Text)))
	if username == "" && h.cache != nil {
		var cached recommend.Result
		if hit, err := h.cache.GetRecommendation(c.Context(), cacheKey, &cached); err == nil && hit {
			metrics.RecommendTotal.WithLabelValues("cache_hit").Inc()
			return c.JSON(cached)
		}
	}

	result := h.pipeline.Recommend(c.Context(), recommend.Request{
		Text:     req.Text,
		Username: username,
	})

	if username == "" && h.cache != nil {
		if err := h.cache.SetRecommendation(c.Context(), cacheKey, result, h.recommendTTL); err != nil {
			logger.Warn("Failed to cache recommendation", zap.Error(err))
		}
	}

	metrics.RecommendTotal.WithLabelValues("ok").Inc()
	return c.JSON(result)
}

func (h *RecommendHandler) HandleFeedback(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		QueryText string `json:"query_text"`
		Feedback  string `json:"feedback"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.QueryText == "" || req.Feedback == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query_text and feedback are required",
		})
	}

	username := req.Username
	if username == "" {
		username = sessionUsername(c)
	}

	updated, err := h.store.UpdateFeedback(username, req.QueryText, req.Feedback)
	if err != nil {
		logger.Error("Failed to update feedback", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update feedback",
		})
	}

	if !updated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"updated": false,
		})
	}

	return c.JSON(fiber.Map{
		"updated": true,
	})
}

func (h *RecommendHandler) HandleHistory(c *fiber.Ctx) error {
	username := c.Query("username")
	if username == "" {
		username = sessionUsername(c)
	}
	if username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username is required",
		})
	}

	limit := c.QueryInt("limit", 50)

	records, err := h.store.GetInteractions(username, limit)
	if err != nil {
		logger.Error("Failed to get history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get history",
		})
	}

	history := make([]fiber.Map, 0, len(records))
	for _, r := range records {
		history = append(history, fiber.Map{
			"query_text": r.QueryText,
			"topic":      r.Topic,
			"mood":       r.Mood,
			"polarity":   r.Polarity,
			"feedback":   r.Feedback,
			"created_at": r.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"username": username,
		"history":  history,
	})
}
