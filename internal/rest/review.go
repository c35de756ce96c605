package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myOysterGuide/domain"
	"myOysterGuide/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ReviewService interface {
	CreateReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	UpdateReview(ctx context.Context, userID uint, review *domain.Review) (*domain.Review, error)
	DeleteReview(ctx context.Context, userID uint, id uint64) error
	GetReviewsForUser(ctx context.Context, userID uint) ([]domain.Review, error)
	GetReviewsForOyster(ctx context.Context, oysterID uint64) ([]domain.Review, error)
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type AttributesRequest struct {
	Size          int `json:"size" validate:"omitempty,min=1,max=10"`
	Body          int `json:"body" validate:"omitempty,min=1,max=10"`
	Sweetness     int `json:"sweetness" validate:"omitempty,min=1,max=10"`
	Flavorfulness int `json:"flavorfulness" validate:"omitempty,min=1,max=10"`
	Creaminess    int `json:"creaminess" validate:"omitempty,min=1,max=10"`
}

func (a AttributesRequest) toVector() domain.AttributeVector {
	return domain.AttributeVector{
		Size:          a.Size,
		Body:          a.Body,
		Sweetness:     a.Sweetness,
		Flavorfulness: a.Flavorfulness,
		Creaminess:    a.Creaminess,
	}
}

type CreateReviewRequest struct {
	OysterID      uint64            `json:"oyster_id" validate:"required"`
	Rating        string            `json:"rating" validate:"required,oneof=strongly_positive positive neutral negative"`
	Comment       string            `json:"comment"`
	Attributes    AttributesRequest `json:"attributes"`
	WeightedScore float64           `json:"weighted_score" validate:"gte=0"`
}

type UpdateReviewRequest struct {
	Rating        string            `json:"rating" validate:"required,oneof=strongly_positive positive neutral negative"`
	Comment       string            `json:"comment"`
	Attributes    AttributesRequest `json:"attributes"`
	WeightedScore float64           `json:"weighted_score" validate:"gte=0"`
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate review request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	review := &domain.Review{
		UserID:        userID,
		OysterID:      req.OysterID,
		Rating:        domain.Rating(req.Rating),
		Comment:       req.Comment,
		Attributes:    req.Attributes.toVector(),
		WeightedScore: req.WeightedScore,
	}

	created, err := h.reviewService.CreateReview(ctx, review)
	if err != nil {
		logger.Error("Failed to create review", err)
		if err.Error() == "review already exists for this oyster" ||
			err.Error() == "invalid rating" ||
			err.Error() == "attributes must be between 1 and 10" ||
			err.Error() == "oyster not found" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid review id"})
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	review := &domain.Review{
		ID:            reviewID,
		Rating:        domain.Rating(req.Rating),
		Comment:       req.Comment,
		Attributes:    req.Attributes.toVector(),
		WeightedScore: req.WeightedScore,
	}

	updated, err := h.reviewService.UpdateReview(ctx, userID, review)
	if err != nil {
		logger.Error("Failed to update review", err)
		if err.Error() == "review not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "review does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid review id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.reviewService.DeleteReview(ctx, userID, reviewID); err != nil {
		logger.Error("Failed to delete review", err)
		if err.Error() == "review not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "review does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "review successfully deleted",
		"review_id": reviewID,
	})
}

func (h *ReviewHandler) GetMyReviews(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.GetReviewsForUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find reviews", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

func (h *ReviewHandler) GetOysterReviews(c echo.Context) error {
	oysterID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid oyster id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.GetReviewsForOyster(ctx, oysterID)
	if err != nil {
		logger.Error("Failed to find oyster reviews", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}
