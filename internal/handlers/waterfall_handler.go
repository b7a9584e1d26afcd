package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/models"
	"equitylens/internal/services"
)

// WaterfallHandler handles exit distribution requests.
type WaterfallHandler struct {
	waterfallService services.WaterfallServicer
}

// NewWaterfallHandler creates a new WaterfallHandler.
func NewWaterfallHandler(waterfallService services.WaterfallServicer) *WaterfallHandler {
	return &WaterfallHandler{waterfallService: waterfallService}
}

// DistributeRequest represents the request payload for a single exit.
type DistributeRequest struct {
	CapTable      models.CapTable         `json:"cap_table" binding:"required"`
	Tiers         []models.PreferenceTier `json:"tiers" binding:"dive"`
	ExitValuation *decimal.Decimal        `json:"exit_valuation"`
}

// CurveRequest represents the request payload for a payout curve.
type CurveRequest struct {
	CapTable       models.CapTable         `json:"cap_table" binding:"required"`
	Tiers          []models.PreferenceTier `json:"tiers" binding:"dive"`
	ExitValuations []decimal.Decimal       `json:"exit_valuations" binding:"required,min=1"`
}

// Distribute handles distributing one exit valuation.
// @Summary     Run the waterfall
// @Description Distribute exit proceeds across the cap table according to the preference stack
// @Tags        waterfall
// @Accept      json
// @Produce     json
// @Param       request body DistributeRequest true "Cap table, tiers, and exit valuation"
// @Success     200 {object} waterfall.Distribution "Per-stakeholder payouts and steps"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "Invalid configuration"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /waterfall [post]
func (h *WaterfallHandler) Distribute(c *gin.Context) {
	var req DistributeRequest
	if !bindJSON(c, &req) {
		return
	}
	// A zero valuation is legal, so presence is checked here rather than by a tag.
	if req.ExitValuation == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "exit_valuation is required"))
		return
	}
	req.CapTable.Normalize()

	d, err := h.waterfallService.Distribute(c.Request.Context(), req.CapTable, req.Tiers, *req.ExitValuation)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

// Curve handles running the waterfall across many exit valuations.
// @Summary     Build a payout curve
// @Description Run the waterfall at each exit valuation and report breakeven valuations per stakeholder
// @Tags        waterfall
// @Accept      json
// @Produce     json
// @Param       request body CurveRequest true "Cap table, tiers, and exit valuations"
// @Success     200 {object} services.PayoutCurve "Distributions in ascending valuation order"
// @Failure     400 {object} ErrorResponse "Invalid input or too many valuations"
// @Failure     422 {object} ErrorResponse "Invalid configuration"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /waterfall/curve [post]
func (h *WaterfallHandler) Curve(c *gin.Context) {
	var req CurveRequest
	if !bindJSON(c, &req) {
		return
	}
	req.CapTable.Normalize()

	curve, err := h.waterfallService.PayoutCurve(c.Request.Context(), req.CapTable, req.Tiers, req.ExitValuations)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, curve)
}
