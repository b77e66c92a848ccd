package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/booking"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/request"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/response"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkIn, ok := parseDate(body.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be a date in YYYY-MM-DD format"})
		return
	}
	checkOut, ok := parseDate(body.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be a date in YYYY-MM-DD format"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), booking.CreateRequest{
		RoomID:   body.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(b))
}

// List returns the caller's own bookings. Students see bookings they made,
// owners see bookings against their hostels, admins see everything.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		RoomID:    req.RoomID,
		HostelID:  req.HostelID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortOrder: strings.ToUpper(req.SortOrder),
	}

	if req.From != "" {
		from, ok := parseDate(req.From)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be a date in YYYY-MM-DD format"})
			return
		}
		filter.From = &from
	}
	if req.To != "" {
		to, ok := parseDate(req.To)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be a date in YYYY-MM-DD format"})
			return
		}
		filter.To = &to
	}

	switch user.Role(auth.GetUserRole(c)) {
	case user.RoleAdmin:
		// Admins may list across all hostels and students.
	case user.RoleHostelOwner:
		filter.OwnerID = auth.GetUserID(c)
	default:
		filter.StudentID = auth.GetUserID(c)
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Only the parties to the booking may see it.
	userID := auth.GetUserID(c)
	if b.StudentID != userID && b.HostelOwnerID != userID &&
		user.Role(auth.GetUserRole(c)) != user.RoleAdmin {
		response.Error(c, booking.ErrPermissionDenied)
		return
	}

	c.JSON(http.StatusOK, NewResponse(b))
}

func (h *Handler) Approve(c *gin.Context) {
	h.handleDecision(c, h.service.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.handleDecision(c, h.service.Reject)
}

func (h *Handler) handleDecision(c *gin.Context, decide func(ctx context.Context, id, requesterID string) (*booking.Booking, error)) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := decide(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), req.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelResponse{
		Booking:          NewResponse(result.Booking),
		RefundPercentage: result.RefundPercentage,
		RefundAmount:     result.RefundAmount,
	})
}
