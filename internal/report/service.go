package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

type Service interface {
	Dashboard(ctx context.Context, filter Filter) (*Dashboard, error)

	// The Write* methods stream an export in the requested format.
	WriteBookingsCSV(ctx context.Context, filter Filter, w io.Writer) error
	WriteBookingsXLSX(ctx context.Context, filter Filter, w io.Writer) error
	WriteEarningsCSV(ctx context.Context, filter Filter, w io.Writer) error
	WriteEarningsXLSX(ctx context.Context, filter Filter, w io.Writer) error
	WriteFeedbackCSV(ctx context.Context, filter Filter, w io.Writer) error
	WriteFeedbackXLSX(ctx context.Context, filter Filter, w io.Writer) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Dashboard(ctx context.Context, filter Filter) (*Dashboard, error) {
	return s.repo.Dashboard(ctx, filter)
}

var bookingHeader = []string{
	"Booking ID", "Student", "Hostel", "Room",
	"Check In", "Check Out", "Status", "Amount Paid", "Booked At",
}

func bookingRecord(row *BookingRow) []string {
	return []string{
		row.BookingID,
		row.StudentName,
		row.HostelName,
		row.RoomNumber,
		row.CheckIn.Format(dateLayout),
		row.CheckOut.Format(dateLayout),
		row.Status,
		row.AmountPaid.StringFixed(2),
		row.CreatedAt.Format("2006-01-02 15:04"),
	}
}

var earningsHeader = []string{"Month", "Earnings"}

var feedbackHeader = []string{"Feedback ID", "Student", "Hostel", "Rating", "Comment", "Posted At"}

func feedbackRecord(row *FeedbackRow) []string {
	return []string{
		row.FeedbackID,
		row.StudentName,
		row.HostelName,
		strconv.Itoa(row.Rating),
		row.Comment,
		row.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func (s *service) bookingRecords(ctx context.Context, filter Filter) ([][]string, error) {
	rows, err := s.repo.BookingRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, bookingRecord(row))
	}
	return records, nil
}

func (s *service) earningRecords(ctx context.Context, filter Filter) ([][]string, error) {
	rows, err := s.repo.MonthlyEarnings(ctx, filter)
	if err != nil {
		return nil, err
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.Month, row.Amount.StringFixed(2)})
	}
	return records, nil
}

func (s *service) feedbackRecords(ctx context.Context, filter Filter) ([][]string, error) {
	rows, err := s.repo.FeedbackRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, feedbackRecord(row))
	}
	return records, nil
}

func (s *service) WriteBookingsCSV(ctx context.Context, filter Filter, w io.Writer) error {
	records, err := s.bookingRecords(ctx, filter)
	if err != nil {
		return err
	}
	return writeCSV(w, bookingHeader, records)
}

func (s *service) WriteBookingsXLSX(ctx context.Context, filter Filter, w io.Writer) error {
	records, err := s.bookingRecords(ctx, filter)
	if err != nil {
		return err
	}
	return writeXLSX(w, "Bookings", bookingHeader, records)
}

func (s *service) WriteEarningsCSV(ctx context.Context, filter Filter, w io.Writer) error {
	records, err := s.earningRecords(ctx, filter)
	if err != nil {
		return err
	}
	return writeCSV(w, earningsHeader, records)
}

func (s *service) WriteEarningsXLSX(ctx context.Context, filter Filter, w io.Writer) error {
	records, err := s.earningRecords(ctx, filter)
	if err != nil {
		return err
	}
	return writeXLSX(w, "Earnings", earningsHeader, records)
}

func (s *service) WriteFeedbackCSV(ctx context.Context, filter Filter, w io.Writer) error {
	records, err := s.feedbackRecords(ctx, filter)
	if err != nil {
		return err
	}
	return writeCSV(w, feedbackHeader, records)
}

func (s *service) WriteFeedbackXLSX(ctx context.Context, filter Filter, w io.Writer) error {
	records, err := s.feedbackRecords(ctx, filter)
	if err != nil {
		return err
	}
	return writeXLSX(w, "Feedback", feedbackHeader, records)
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header failed: %w", err)
	}
	for _, record := range records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row failed: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, sheet string, header []string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet failed: %w", err)
	}

	if err := writeXLSXRow(f, sheet, 1, header); err != nil {
		return err
	}
	for i, record := range records {
		if err := writeXLSXRow(f, sheet, i+2, record); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx failed: %w", err)
	}
	return nil
}

func writeXLSXRow(f *excelize.File, sheet string, row int, record []string) error {
	cells := make([]any, len(record))
	for i, v := range record {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolve xlsx cell failed: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write xlsx row failed: %w", err)
	}
	return nil
}
