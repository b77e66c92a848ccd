package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/payment"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/response"
	"github.com/renishkhadka4/Sajilofinder/internal/user"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Verify(c *gin.Context) {
	var body VerifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.service.VerifyAndConfirm(c.Request.Context(), auth.GetUserID(c), payment.VerifyRequest{
		BookingID:   body.BookingID,
		Token:       body.Token,
		AmountPaisa: body.AmountPaisa,
		Pidx:        body.Pidx,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, VerifyResponse{
		BookingID:     result.Booking.ID,
		BookingStatus: string(result.Booking.Status),
		Payment:       NewResponse(result.Payment),
	})
}

func (h *Handler) GetByBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking ID is required"})
		return
	}

	p, err := h.service.GetByBookingID(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := auth.GetUserID(c)
	if p.StudentID != userID && user.Role(auth.GetUserRole(c)) != user.RoleAdmin {
		response.Error(c, payment.ErrPermissionDenied)
		return
	}

	c.JSON(http.StatusOK, NewResponse(p))
}

// List returns the caller's payment history. Students see their own
// payments; admins see everything.
func (h *Handler) List(c *gin.Context) {
	var req ListPaymentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := payment.Filter{
		HostelID: req.HostelID,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if user.Role(auth.GetUserRole(c)) != user.RoleAdmin {
		filter.StudentID = auth.GetUserID(c)
	}

	payments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = NewResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}
