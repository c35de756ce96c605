package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myOysterGuide/business/recommendation"
	"myOysterGuide/domain"
	"myOysterGuide/pkg/logger"
	"myOysterGuide/pkg/metrics"
	jsonres "myOysterGuide/pkg/response"

	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	Recommend(ctx context.Context, userID uint, mode recommendation.Mode, limit int) (recommendation.Result, error)
	SimilarUsers(ctx context.Context, userID uint, limit int) ([]domain.SimilarUser, error)
}

type RecommendationHandler struct {
	recoService RecommendationService
	timeout     time.Duration
}

func NewRecommendationHandler(recoService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recoService: recoService,
		timeout:     10 * time.Second,
	}
}

// limitParam reads ?limit= with the documented default. Anything
// non-numeric falls back to the default; range clamping happens in the
// engine.
func limitParam(c echo.Context) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return recommendation.DefaultLimit
	}

	limit, err := strconv.Atoi(raw)
	if err != nil {
		return recommendation.DefaultLimit
	}

	return limit
}

func (h *RecommendationHandler) recommend(c echo.Context, mode recommendation.Mode) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result, err := h.recoService.Recommend(ctx, userID, mode, limitParam(c))
	if err != nil {
		logger.Error("Failed to compute recommendations", err, "user_id", userID, "mode", string(mode))
		return c.JSON(http.StatusInternalServerError, jsonres.Error("INTERNAL", "failed to compute recommendations", nil))
	}
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	meta := map[string]any{
		"count":              len(result.Items),
		"hasRecommendations": len(result.Items) > 0,
		"type":               string(mode),
	}
	if result.Reason != "" {
		meta["reason"] = result.Reason
	}

	return c.JSON(http.StatusOK, jsonres.Success(result.Items, meta))
}

// GET /api/v1/recommendations?limit=10
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	return h.recommend(c, recommendation.ModeAttribute)
}

// GET /api/v1/recommendations/collaborative?limit=10
func (h *RecommendationHandler) CollaborativeRecommend(c echo.Context) error {
	return h.recommend(c, recommendation.ModeCollaborative)
}

// GET /api/v1/recommendations/hybrid?limit=10
func (h *RecommendationHandler) HybridRecommend(c echo.Context) error {
	return h.recommend(c, recommendation.ModeHybrid)
}

// GET /api/v1/recommendations/similar-users?limit=10
func (h *RecommendationHandler) SimilarUsers(c echo.Context) error {
	uidVal := c.Get("user_id")
	userID, ok := uidVal.(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, jsonres.Error("UNAUTHORIZED", "unauthorized", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.recoService.SimilarUsers(ctx, userID, limitParam(c))
	if err != nil {
		logger.Error("Failed to find similar users", err, "user_id", userID)
		return c.JSON(http.StatusInternalServerError, jsonres.Error("INTERNAL", "failed to find similar users", nil))
	}

	return c.JSON(http.StatusOK, jsonres.Success(users, map[string]any{
		"count": len(users),
	}))
}
