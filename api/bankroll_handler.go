package api

import (
	"github.com/gin-gonic/gin"

	"tipbook/service"
)

// BankrollHandler exposes the shared ledger read model and its recovery path
type BankrollHandler struct {
	Bankroll service.BankrollService
}

func (h *BankrollHandler) Register(r *gin.Engine) {
	group := r.Group("/api/bankroll")
	group.GET("", h.snapshot)
	group.POST("/recompute", h.recompute)
}

func (h *BankrollHandler) snapshot(c *gin.Context) {
	bankroll, err := h.Bankroll.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, bankroll.Stats())
}

func (h *BankrollHandler) recompute(c *gin.Context) {
	bankroll, err := h.Bankroll.Recompute(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, bankroll.Stats())
}
