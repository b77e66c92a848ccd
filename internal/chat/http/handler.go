package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/chat"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/response"
)

type Handler struct {
	service chat.Service
}

func NewHandler(service chat.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Send(c *gin.Context) {
	var body SendRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Send(c.Request.Context(), auth.GetUserID(c), body.HostelID, body.ReceiverID, body.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(m))
}

func (h *Handler) History(c *gin.Context) {
	var req HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	messages, total, err := h.service.History(c.Request.Context(), auth.GetUserID(c), chat.Filter{
		HostelID: req.HostelID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MessageResponse, len(messages))
	for i, m := range messages {
		items[i] = NewResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
