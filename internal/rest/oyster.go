package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"myOysterGuide/domain"
	"myOysterGuide/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type OysterService interface {
	GetAllOysters(ctx context.Context) ([]domain.Oyster, error)
	GetOysterByID(ctx context.Context, id uint64) (domain.Oyster, error)
	CreateOyster(ctx context.Context, oyster *domain.Oyster) (*domain.Oyster, error)
	UpdateOyster(ctx context.Context, oyster *domain.Oyster) (*domain.Oyster, error)
	DeleteOyster(ctx context.Context, id uint64) error
}

type OysterHandler struct {
	oysterService OysterService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewOysterHandler(oysterService OysterService) *OysterHandler {
	return &OysterHandler{
		oysterService: oysterService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type OysterRequest struct {
	Name          string `json:"name" validate:"required"`
	Origin        string `json:"origin"`
	Species       string `json:"species"`
	Size          int    `json:"size" validate:"required,min=1,max=10"`
	Body          int    `json:"body" validate:"required,min=1,max=10"`
	Sweetness     int    `json:"sweetness" validate:"required,min=1,max=10"`
	Flavorfulness int    `json:"flavorfulness" validate:"required,min=1,max=10"`
	Creaminess    int    `json:"creaminess" validate:"required,min=1,max=10"`
}

func (req OysterRequest) toDomain() domain.Oyster {
	return domain.Oyster{
		Name:    req.Name,
		Origin:  req.Origin,
		Species: req.Species,
		Attributes: domain.AttributeVector{
			Size:          req.Size,
			Body:          req.Body,
			Sweetness:     req.Sweetness,
			Flavorfulness: req.Flavorfulness,
			Creaminess:    req.Creaminess,
		},
	}
}

func (h *OysterHandler) GetAllOysters(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	oysters, err := h.oysterService.GetAllOysters(ctx)
	if err != nil {
		logger.Error("Failed to find all oysters", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully get all oysters",
		"oysters": oysters,
	})
}

func (h *OysterHandler) GetOysterByID(c echo.Context) error {
	oysterID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid oyster id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	oyster, err := h.oysterService.GetOysterByID(ctx, oysterID)
	if err != nil {
		if err.Error() == "oyster not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find oyster by id",
		"oyster":  oyster,
	})
}

func (h *OysterHandler) CreateOyster(c echo.Context) error {
	var req OysterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate oyster request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	oyster := req.toDomain()

	created, err := h.oysterService.CreateOyster(ctx, &oyster)
	if err != nil {
		logger.Error("Failed to create oyster", err)
		if err.Error() == "oyster name is required" ||
			err.Error() == "attributes must be between 1 and 10" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "oyster successfully created",
		"oyster":  created,
	})
}

func (h *OysterHandler) UpdateOyster(c echo.Context) error {
	oysterID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid oyster id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req OysterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	oyster := req.toDomain()
	oyster.ID = oysterID

	updated, err := h.oysterService.UpdateOyster(ctx, &oyster)
	if err != nil {
		logger.Error("Failed to update oyster", err)
		if err.Error() == "oyster not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update oyster",
		"oyster":  updated,
	})
}

func (h *OysterHandler) DeleteOyster(c echo.Context) error {
	oysterID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logger.Error("Invalid oyster id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.oysterService.DeleteOyster(ctx, oysterID); err != nil {
		logger.Error("Failed to delete oyster", err)
		if err.Error() == "oyster not found" || err.Error() == "oyster not found or already deleted" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "oyster successfully deleted",
		"oyster_id": oysterID,
	})
}
