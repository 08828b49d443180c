package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tipbook/models"
	"tipbook/service"
)

// PredictionHandler exposes the pick lifecycle over HTTP
type PredictionHandler struct {
	Predictions service.PredictionService
}

func (h *PredictionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/predictions")
	group.GET("", h.list)
	group.POST("", h.create)
	group.POST("/:id/settle", h.settle)
	group.POST("/:id/archive", h.archive)
	group.PATCH("/:id/visibility", h.setVisibility)
	group.DELETE("/:id", h.delete)
}

type matchLegRequest struct {
	Sport     models.Sport    `json:"sport"`
	Team1     string          `json:"team1"`
	Team2     string          `json:"team2"`
	BetType   string          `json:"bet_type"`
	Odds      decimal.Decimal `json:"odds"`
	MatchDate string          `json:"match_date"`
}

type createPredictionRequest struct {
	Kind       models.PredictionKind `json:"kind"`
	Stake      decimal.Decimal       `json:"stake"`
	Visibility models.Visibility     `json:"visibility"`
	Legs       []matchLegRequest     `json:"legs"`
}

func (h *PredictionHandler) create(c *gin.Context) {
	var req createPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	legs := make([]service.MatchInput, 0, len(req.Legs))
	for _, leg := range req.Legs {
		legs = append(legs, service.MatchInput{
			Sport:     leg.Sport,
			Team1:     leg.Team1,
			Team2:     leg.Team2,
			BetType:   leg.BetType,
			Odds:      leg.Odds,
			MatchDate: leg.MatchDate,
		})
	}

	prediction, err := h.Predictions.Create(c.Request.Context(), viewer(c), service.CreatePredictionInput{
		Kind:       req.Kind,
		Stake:      req.Stake,
		Visibility: req.Visibility,
		Legs:       legs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, toPredictionResponse(prediction))
}

func (h *PredictionHandler) list(c *gin.Context) {
	var status *models.PredictionStatus
	if raw := c.Query("status"); raw != "" {
		s := models.PredictionStatus(raw)
		switch s {
		case models.PredictionStatusPending, models.PredictionStatusWon, models.PredictionStatusLost:
			status = &s
		default:
			Error(c, http.StatusBadRequest, "unknown status filter")
			return
		}
	}

	predictions, err := h.Predictions.List(c.Request.Context(), viewerTier(c), status)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, toPredictionResponses(predictions))
}

type settleRequest struct {
	Outcome models.Outcome `json:"outcome"`
}

func (h *PredictionHandler) settle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid prediction id")
		return
	}

	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	result, err := h.Predictions.Settle(c.Request.Context(), viewer(c), id, req.Outcome)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, settlementResponse{
		Prediction: toPredictionResponse(result.Prediction),
		Profit:     result.Profit,
		NewBalance: result.NewBalance,
	})
}

func (h *PredictionHandler) archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid prediction id")
		return
	}

	prediction, err := h.Predictions.Archive(c.Request.Context(), viewer(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, toPredictionResponse(prediction))
}

type visibilityRequest struct {
	Visibility models.Visibility `json:"visibility"`
}

func (h *PredictionHandler) setVisibility(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid prediction id")
		return
	}

	var req visibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	if err := h.Predictions.SetVisibility(c.Request.Context(), viewer(c), id, req.Visibility); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, nil)
}

func (h *PredictionHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid prediction id")
		return
	}

	if err := h.Predictions.Delete(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, nil)
}
