package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"makeItSell/business/reco"
	"makeItSell/domain"
	"makeItSell/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecoAdminService interface {
		GetConfig(ctx context.Context, slot string) (reco.Config, error)
		UpdateConfig(ctx context.Context, row domain.RecoConfig) error
	}

	RecoAdminHandler struct {
		adminService RecoAdminService
		validator    *validator.Validate
		timeout      time.Duration
	}

	ConfigQuery struct {
		Slot string `query:"slot"`
	}

	UpsertConfigRequest struct {
		Slot           string  `json:"slot" validate:"required"`
		WPersonalized  float64 `json:"w_personalized" validate:"gte=0,lte=1"`
		WCollaborative float64 `json:"w_collaborative" validate:"gte=0,lte=1"`
		WContent       float64 `json:"w_content" validate:"gte=0,lte=1"`
		WTrending      float64 `json:"w_trending" validate:"gte=0,lte=1"`

		CategoryAffinityWeight float64 `json:"category_affinity_weight" validate:"gte=0"`
		PriceInRangeBonus      float64 `json:"price_in_range_bonus" validate:"gte=0"`
		PriceOutOfRangePenalty float64 `json:"price_out_of_range_penalty" validate:"gte=0"`
		BrandMatchBonus        float64 `json:"brand_match_bonus" validate:"gte=0"`
		QueryMatchBonus        float64 `json:"query_match_bonus" validate:"gte=0"`
		RatingWeight           float64 `json:"rating_weight" validate:"gte=0"`
		VerifiedVendorBonus    float64 `json:"verified_vendor_bonus" validate:"gte=0"`
		OnSaleBonus            float64 `json:"on_sale_bonus" validate:"gte=0"`
	}
)

func NewRecoAdminHandler(adminService RecoAdminService) *RecoAdminHandler {
	return &RecoAdminHandler{
		adminService: adminService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

// GET /api/v1/admin/reco/config?slot=home
func (h *RecoAdminHandler) GetConfig(c echo.Context) error {
	var q ConfigQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if q.Slot == "" {
		q.Slot = defaultSlot
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	cfg, err := h.adminService.GetConfig(ctx, q.Slot)
	if err != nil {
		logger.Error("Failed to resolve reco config", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(cfg))
}

// PUT /api/v1/admin/reco/config
func (h *RecoAdminHandler) UpsertConfig(c echo.Context) error {
	var req UpsertConfigRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate config request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	row := domain.RecoConfig{
		Slot:           req.Slot,
		WPersonalized:  req.WPersonalized,
		WCollaborative: req.WCollaborative,
		WContent:       req.WContent,
		WTrending:      req.WTrending,

		CategoryAffinityWeight: req.CategoryAffinityWeight,
		PriceInRangeBonus:      req.PriceInRangeBonus,
		PriceOutOfRangePenalty: req.PriceOutOfRangePenalty,
		BrandMatchBonus:        req.BrandMatchBonus,
		QueryMatchBonus:        req.QueryMatchBonus,
		RatingWeight:           req.RatingWeight,
		VerifiedVendorBonus:    req.VerifiedVendorBonus,
		OnSaleBonus:            req.OnSaleBonus,
	}

	if err := h.adminService.UpdateConfig(ctx, row); err != nil {
		logger.Error("Failed to upsert reco config", err)
		if errors.Is(err, reco.ErrHybridWeightSum) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		if errors.Is(err, reco.ErrConfigRepoUnavailable) {
			return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update reco config",
		"slot":    req.Slot,
	})
}
