package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equitylens/internal/conversion"
	"equitylens/internal/models"
	"equitylens/internal/scenario"
	"equitylens/internal/services"
)

// ConversionHandler handles instrument conversion requests.
type ConversionHandler struct {
	conversionService services.ConversionServicer
}

// NewConversionHandler creates a new ConversionHandler.
func NewConversionHandler(conversionService services.ConversionServicer) *ConversionHandler {
	return &ConversionHandler{conversionService: conversionService}
}

// ConvertRequest represents the request payload for converting instruments.
type ConvertRequest struct {
	CapTable    models.CapTable           `json:"cap_table" binding:"required"`
	Instruments []scenario.InstrumentSpec `json:"instruments" binding:"dive"`
	Round       models.PricedRound        `json:"round" binding:"required"`
}

// ConvertResponse is the conversion result with instruments in wire form.
type ConvertResponse struct {
	CapTable    models.CapTable           `json:"cap_table"`
	Details     []conversion.Detail       `json:"details"`
	Summary     conversion.Summary        `json:"summary"`
	Instruments []scenario.InstrumentSpec `json:"instruments"`
}

// Convert handles converting SAFEs and notes at a priced round.
// @Summary     Convert instruments
// @Description Convert outstanding SAFEs and convertible notes into preferred shares at a priced round
// @Tags        conversions
// @Accept      json
// @Produce     json
// @Param       request body ConvertRequest true "Cap table, instruments, and round"
// @Success     200 {object} ConvertResponse "Post-round cap table and per-instrument details"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "Invalid configuration"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /conversions [post]
func (h *ConversionHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if !bindJSON(c, &req) {
		return
	}
	req.CapTable.Normalize()

	instruments, err := scenario.Instruments(req.Instruments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.conversionService.Convert(c.Request.Context(), req.CapTable, instruments, req.Round)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ConvertResponse{
		CapTable:    result.CapTable,
		Details:     result.Details,
		Summary:     result.Summary,
		Instruments: scenario.SpecsFrom(result.Instruments),
	})
}
