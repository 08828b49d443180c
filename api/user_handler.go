package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tipbook/service"
)

// UserHandler exposes reader role management over HTTP
type UserHandler struct {
	Users service.UserService
}

func (h *UserHandler) Register(r *gin.Engine) {
	group := r.Group("/api/users")
	group.GET("", h.list)
	group.PATCH("/:id/vip", h.setVIP)
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	Ok(c, out)
}

type setVIPRequest struct {
	VIP bool `json:"vip"`
}

func (h *UserHandler) setVIP(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req setVIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	if err := h.Users.SetVIP(c.Request.Context(), viewer(c), id, req.VIP); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, nil)
}
