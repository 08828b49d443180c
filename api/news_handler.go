package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tipbook/models"
	"tipbook/service"
)

// NewsHandler exposes editorial articles over HTTP
type NewsHandler struct {
	News service.NewsService
}

func (h *NewsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/news")
	group.GET("", h.list)
	group.POST("", h.create)
	group.PATCH("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type createNewsRequest struct {
	Title      string              `json:"title"`
	Content    string              `json:"content"`
	ImageURL   *string             `json:"image_url"`
	Visibility models.Visibility   `json:"visibility"`
	Category   models.NewsCategory `json:"category"`
}

func (h *NewsHandler) create(c *gin.Context) {
	var req createNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	article, err := h.News.Create(c.Request.Context(), viewer(c), &models.News{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
		Category:   req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Created(c, toNewsResponse(article))
}

func (h *NewsHandler) list(c *gin.Context) {
	articles, err := h.News.List(c.Request.Context(), viewerTier(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]newsResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, toNewsResponse(a))
	}
	Ok(c, out)
}

type updateNewsRequest struct {
	Title      *string                  `json:"title"`
	Content    *string                  `json:"content"`
	ImageURL   *string                  `json:"image_url"`
	Visibility *models.Visibility       `json:"visibility"`
	Status     *models.PredictionStatus `json:"status"`
	Category   *models.NewsCategory     `json:"category"`
}

func (h *NewsHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid article id")
		return
	}

	var req updateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body")
		return
	}

	article, err := h.News.Update(c.Request.Context(), viewer(c), id, service.UpdateNewsInput{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Visibility: req.Visibility,
		Status:     req.Status,
		Category:   req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	Ok(c, toNewsResponse(article))
}

func (h *NewsHandler) delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := h.News.Delete(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, err)
		return
	}
	Ok(c, nil)
}
