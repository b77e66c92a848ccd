package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeRepo struct {
	bookings []*BookingRow
	earnings []MonthlyEarning
	feedback []*FeedbackRow
}

func (r *fakeRepo) Dashboard(ctx context.Context, filter Filter) (*Dashboard, error) {
	return &Dashboard{MonthlyEarnings: r.earnings}, nil
}

func (r *fakeRepo) BookingRows(ctx context.Context, filter Filter) ([]*BookingRow, error) {
	return r.bookings, nil
}

func (r *fakeRepo) MonthlyEarnings(ctx context.Context, filter Filter) ([]MonthlyEarning, error) {
	return r.earnings, nil
}

func (r *fakeRepo) FeedbackRows(ctx context.Context, filter Filter) ([]*FeedbackRow, error) {
	return r.feedback, nil
}

func newExportService() Service {
	booked := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	return NewService(&fakeRepo{
		bookings: []*BookingRow{
			{
				BookingID:   "b-1",
				StudentName: "sita",
				HostelName:  "Everest Hostel",
				RoomNumber:  "101",
				CheckIn:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
				CheckOut:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
				Status:      "confirmed",
				AmountPaid:  decimal.NewFromFloat(2500),
				CreatedAt:   booked,
			},
		},
		earnings: []MonthlyEarning{
			{Month: "2026-02", Amount: decimal.NewFromInt(1800)},
			{Month: "2026-03", Amount: decimal.NewFromFloat(2500.50)},
		},
		feedback: []*FeedbackRow{
			{FeedbackID: "f-1", StudentName: "sita", HostelName: "Everest Hostel", Rating: 4, Comment: "clean rooms", CreatedAt: booked},
		},
	})
}

func TestWriteBookingsCSV(t *testing.T) {
	svc := newExportService()

	var buf bytes.Buffer
	require.NoError(t, svc.WriteBookingsCSV(context.Background(), Filter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, bookingHeader, records[0])
	assert.Equal(t, []string{
		"b-1", "sita", "Everest Hostel", "101",
		"2026-04-01", "2026-04-10", "confirmed", "2500.00", "2026-03-10 14:30",
	}, records[1])
}

func TestWriteEarningsCSV(t *testing.T) {
	svc := newExportService()

	var buf bytes.Buffer
	require.NoError(t, svc.WriteEarningsCSV(context.Background(), Filter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"2026-02", "1800.00"}, records[1])
	assert.Equal(t, []string{"2026-03", "2500.50"}, records[2])
}

func TestWriteFeedbackXLSX(t *testing.T) {
	svc := newExportService()

	var buf bytes.Buffer
	require.NoError(t, svc.WriteFeedbackXLSX(context.Background(), Filter{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Feedback")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, feedbackHeader, rows[0])
	assert.Equal(t, []string{"f-1", "sita", "Everest Hostel", "4", "clean rooms", "2026-03-10 14:30"}, rows[1])
}
