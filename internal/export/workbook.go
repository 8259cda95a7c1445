package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/models"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetAppointments = "Appointments"
	sheetMeetings     = "Meetings"
)

var appointmentHeaders = []string{
	"ID", "User", "Title", "Date", "Start", "End", "Status", "Mode", "URL", "Created at",
}

var meetingHeaders = []string{
	"ID", "Title", "Date", "Start", "End", "Status", "Mode", "URL", "Participants",
}

// Workbook renders appointments and meetings into an XLSX file.
func Workbook(aps []models.Appointment, ms []meeting.View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet becomes the first of ours
	if err := f.SetSheetName("Sheet1", sheetAppointments); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetMeetings); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	if err := writeRow(f, sheetAppointments, 1, toAny(appointmentHeaders)); err != nil {
		return nil, err
	}
	for i, ap := range aps {
		userName := ""
		if ap.User != nil {
			userName = ap.User.FullName
		}
		row := []any{
			ap.ID, userName, ap.Title, ap.Date, ap.StartTime, ap.EndTime,
			ap.Status, ap.Mode, ap.URL, ap.CreatedAt.Format(time.RFC3339),
		}
		if err := writeRow(f, sheetAppointments, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := writeRow(f, sheetMeetings, 1, toAny(meetingHeaders)); err != nil {
		return nil, err
	}
	for i, m := range ms {
		names := make([]string, 0, len(m.Participants))
		for _, p := range m.Participants {
			names = append(names, p.FullName)
		}
		row := []any{
			m.ID, m.Title, m.Date, m.StartTime, m.EndTime,
			string(m.Status), m.Mode, m.URL, strings.Join(names, ", "),
		}
		if err := writeRow(f, sheetMeetings, i+2, row); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// FileName is the download and archive name for an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("appointments_%s.xlsx", t.UTC().Format("20060102_150405"))
}
