package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"makeItSell/business/behavior"
	"makeItSell/domain"
	"makeItSell/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	BehaviorService interface {
		GetSnapshot(ctx context.Context, userID string) (*domain.UserBehavior, error)
		RecordEvent(ctx context.Context, event *domain.BehaviorEvent) error
	}

	// CacheInvalidator drops memoized rankings when a snapshot changes.
	CacheInvalidator interface {
		InvalidateUser(ctx context.Context, userID string) error
	}

	BehaviorHandler struct {
		behaviorService BehaviorService
		invalidator     CacheInvalidator
		validator       *validator.Validate
		timeout         time.Duration
	}

	EventRequest struct {
		EventType string                 `json:"event_type" validate:"required,oneof=view like purchase search dwell"`
		ProductID string                 `json:"product_id"`
		Query     string                 `json:"query"`
		Value     float64                `json:"value" validate:"gte=0"`
		Context   map[string]interface{} `json:"context"`
	}
)

func NewBehaviorHandler(behaviorService BehaviorService, invalidator CacheInvalidator) *BehaviorHandler {
	return &BehaviorHandler{
		behaviorService: behaviorService,
		invalidator:     invalidator,
		validator:       validator.New(),
		timeout:         10 * time.Second,
	}
}

// POST /api/v1/behavior/events
func (h *BehaviorHandler) PostEvent(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req EventRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate event request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	event := &domain.BehaviorEvent{
		UserID:    userID,
		EventType: req.EventType,
		ProductID: req.ProductID,
		Query:     req.Query,
		Value:     req.Value,
		Context:   datatypes.JSONMap(req.Context),
	}

	if err := h.behaviorService.RecordEvent(ctx, event); err != nil {
		if isEventInput(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	// stale rankings are tolerable, a failed invalidation is not fatal
	if h.invalidator != nil {
		if err := h.invalidator.InvalidateUser(ctx, userID); err != nil {
			logger.Warn("failed to invalidate recommendation cache", "user_id", userID, "error", err)
		}
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(event))
}

// GET /api/v1/behavior/snapshot
func (h *BehaviorHandler) GetSnapshot(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	snapshot, err := h.behaviorService.GetSnapshot(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(snapshot))
}

// isEventInput separates caller bugs (400) from infrastructure failures (500).
func isEventInput(err error) bool {
	return errors.Is(err, behavior.ErrUserIDRequired) ||
		errors.Is(err, behavior.ErrEventTypeRequired) ||
		errors.Is(err, behavior.ErrQueryRequired) ||
		errors.Is(err, behavior.ErrDwellValueRequired) ||
		errors.Is(err, behavior.ErrUnknownEventType) ||
		errors.Is(err, domain.ErrProductNotFound)
}
