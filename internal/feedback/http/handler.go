package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/feedback"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/request"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/response"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

type Handler struct {
	service feedback.Service
}

func NewHandler(service feedback.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	f, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.HostelID, body.Rating, body.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(f))
}

func (h *Handler) Reply(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body ReplyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	reply, err := h.service.Reply(c.Request.Context(), auth.GetUserID(c), uri.ID, body.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(reply))
}

func (h *Handler) List(c *gin.Context) {
	var req ListFeedbackRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	feedbacks, total, err := h.service.List(c.Request.Context(), feedback.Filter{
		HostelID: req.HostelID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FeedbackResponse, len(feedbacks))
	for i, f := range feedbacks {
		items[i] = NewResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Rating(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	avg, count, err := h.service.AverageRating(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, RatingResponse{
		HostelID:      uri.ID,
		AverageRating: avg.StringFixed(2),
		Count:         count,
	})
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	isAdmin := user.Role(auth.GetUserRole(c)) == user.RoleAdmin
	if err := h.service.Delete(c.Request.Context(), req.ID, auth.GetUserID(c), isAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
