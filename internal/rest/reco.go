package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"makeItSell/business/reco"
	"makeItSell/domain"
	"makeItSell/pkg/logger"
	"makeItSell/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultSlot = "home"

type (
	RecoHandler struct {
		validate    *validator.Validate
		recoService RecoService
		cache       RecoCache
		timeout     time.Duration
	}

	RecoService interface {
		Recommend(ctx context.Context, userID, slot string, strategy reco.Strategy, limit int) ([]domain.ScoredProduct, error)
		DebugRecommend(ctx context.Context, userID, slot string, strategy reco.Strategy, limit int) ([]domain.DebugScore, error)
	}

	// RecoCache is optional; a nil cache disables memoization.
	RecoCache interface {
		Get(ctx context.Context, userID, slot, strategy string, limit int) ([]domain.ScoredProduct, bool, error)
		Set(ctx context.Context, userID, slot, strategy string, limit int, recs []domain.ScoredProduct) error
	}

	RecommendQuery struct {
		Strategy string `query:"strategy" validate:"required,oneof=personalized collaborative content trending hybrid"`
		Slot     string `query:"slot"`
		N        *int   `query:"n"`
	}
)

func NewRecoHandler(recoService RecoService, cache RecoCache) *RecoHandler {
	return &RecoHandler{
		validate:    validator.New(),
		recoService: recoService,
		cache:       cache,
		timeout:     10 * time.Second,
	}
}

// GET /api/v1/recommendations?strategy=hybrid&slot=home&n=8
func (h *RecoHandler) Recommend(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.RecommendLatency)
	defer timer.ObserveDuration()
	metrics.RecommendRequests.Inc()

	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	strategy, err := reco.ParseStrategy(q.Strategy)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.Slot == "" {
		q.Slot = defaultSlot
	}

	// an absent n falls back to the documented default; an explicit
	// non-positive n is a caller bug and gets rejected by the engine
	limit := reco.DefaultLimit
	if q.N != nil {
		limit = *q.N
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if h.cache != nil {
		if recs, hit, err := h.cache.Get(ctx, userID, q.Slot, string(strategy), limit); err == nil && hit {
			metrics.RecommendCacheHits.Inc()
			return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
		}
	}

	recs, err := h.recoService.Recommend(ctx, userID, q.Slot, strategy, limit)
	if err != nil {
		if isInvalidInput(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, userID, q.Slot, string(strategy), limit, recs); err != nil {
			logger.Warn("failed to cache recommendations", "user_id", userID, "error", err)
		}
	}

	// an empty list is a valid "no recommendations yet" outcome
	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/debug?strategy=personalized&n=10
func (h *RecoHandler) DebugRecommend(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	strategy, err := reco.ParseStrategy(q.Strategy)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if q.Slot == "" {
		q.Slot = defaultSlot
	}
	limit := reco.DefaultLimit
	if q.N != nil {
		limit = *q.N
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	scores, err := h.recoService.DebugRecommend(ctx, userID, q.Slot, strategy, limit)
	if err != nil {
		if isInvalidInput(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(scores))
}

func isInvalidInput(err error) bool {
	return errors.Is(err, reco.ErrInvalidLimit) ||
		errors.Is(err, reco.ErrInvalidStrategy) ||
		errors.Is(err, reco.ErrInvalidCatalog) ||
		errors.Is(err, reco.ErrInvalidBehavior)
}
