package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"equitylens/internal/scenario"
	"equitylens/internal/services"
)

// ScenarioHandler handles whole-scenario evaluation.
type ScenarioHandler struct {
	scenarioService services.ScenarioServicer
}

// NewScenarioHandler creates a new ScenarioHandler.
func NewScenarioHandler(scenarioService services.ScenarioServicer) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// Evaluate handles a financing event followed by an exit curve.
// @Summary     Evaluate a scenario
// @Description Convert instruments at the scenario's round (if any), then build the payout curve on the resulting cap table
// @Tags        scenarios
// @Accept      json
// @Produce     json
// @Param       request body scenario.Scenario true "Scenario"
// @Success     200 {object} services.ScenarioEvaluation "Conversion result and payout curve"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "Invalid configuration"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /scenarios/evaluate [post]
func (h *ScenarioHandler) Evaluate(c *gin.Context) {
	var sc scenario.Scenario
	if !bindJSON(c, &sc) {
		return
	}
	sc.Normalize()

	eval, err := h.scenarioService.Evaluate(c.Request.Context(), &sc)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, eval)
}
