package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/renishkhadka4/Sajilofinder/internal/auth"
	"github.com/renishkhadka4/Sajilofinder/internal/pkg/response"
	"github.com/renishkhadka4/Sajilofinder/internal/report"
)

type Handler struct {
	service report.Service
}

func NewHandler(service report.Service) *Handler {
	return &Handler{service: service}
}

type reportQuery struct {
	HostelID  string `form:"hostel_id" binding:"omitempty,uuid"`
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending confirmed rejected canceled"`
	From      string `form:"from"`
	To        string `form:"to"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Format    string `form:"format,default=csv" binding:"omitempty,oneof=csv xlsx"`
}

func (q reportQuery) toFilter(ownerID string) (report.Filter, error) {
	filter := report.Filter{
		OwnerID:   ownerID,
		HostelID:  q.HostelID,
		RoomID:    q.RoomID,
		Status:    q.Status,
		SortOrder: q.SortOrder,
	}
	if q.From != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	return filter, nil
}

func (h *Handler) Dashboard(c *gin.Context) {
	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter, err := q.toFilter(auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be in YYYY-MM-DD format"})
		return
	}

	d, err := h.service.Dashboard(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

type exportWriter func(ctx context.Context, filter report.Filter, w io.Writer) error

// export binds the shared query, picks the format and streams the file.
func (h *Handler) export(c *gin.Context, basename string, csvWriter, xlsxWriter exportWriter) {
	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter, err := q.toFilter(auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be in YYYY-MM-DD format"})
		return
	}

	switch q.Format {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+basename+`.xlsx"`)
		c.Status(http.StatusOK)
		// Response already started, nothing sensible to send on error.
		_ = xlsxWriter(c.Request.Context(), filter, c.Writer)
	default:
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="`+basename+`.csv"`)
		c.Status(http.StatusOK)
		_ = csvWriter(c.Request.Context(), filter, c.Writer)
	}
}

func (h *Handler) ExportBookings(c *gin.Context) {
	h.export(c, "bookings", h.service.WriteBookingsCSV, h.service.WriteBookingsXLSX)
}

func (h *Handler) ExportEarnings(c *gin.Context) {
	h.export(c, "earnings", h.service.WriteEarningsCSV, h.service.WriteEarningsXLSX)
}

func (h *Handler) ExportFeedback(c *gin.Context) {
	h.export(c, "feedback", h.service.WriteFeedbackCSV, h.service.WriteFeedbackXLSX)
}
