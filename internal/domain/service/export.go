package service

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/utils/location"
	"github.com/xuri/excelize/v2"
)

const (
	membersSheet   = "Members"
	executiveSheet = "Executive"
	eventsSheet    = "Events"
	timeLayout     = "02.01.2006 15:04"
)

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// ReportFilename is the attachment name of an exported club report.
func ReportFilename(report *dto.ClubReport) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(report.Club.Name), "-"), "-")
	if name == "" {
		name = "club"
	}
	return fmt.Sprintf("%s-report-%s.xlsx", name, report.GeneratedAt.In(location.Location()).Format("2006-01-02"))
}

// ReportToXLSX writes the report to a workbook with one sheet per table.
// The events sheet ends with a totals row.
func ReportToXLSX(report *dto.ClubReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", membersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(executiveSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(eventsSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	members := [][]interface{}{{"Name", "Email", "Roles", "Joined"}}
	for _, m := range report.Members {
		members = append(members, []interface{}{m.FullName, m.Email, m.Roles, formatTime(m.JoinedAt)})
	}

	executive := [][]interface{}{{"Name", "Email", "Roles"}}
	for _, m := range report.Executive {
		executive = append(executive, []interface{}{m.FullName, m.Email, m.Roles})
	}

	events := [][]interface{}{{"Event", "Location", "Start", "Participants", "Enrollments", "Reports", "Average rating"}}
	for _, e := range report.Events {
		events = append(events, []interface{}{
			e.Name, e.Location, formatTime(e.StartTime),
			e.ParticipantCount, e.EnrollmentCount, e.ReportCount, e.AverageRating,
		})
	}
	events = append(events, []interface{}{"Total", "", "", report.TotalParticipants, report.TotalEnrollments, "", ""})

	for sheet, rows := range map[string][][]interface{}{
		membersSheet:   members,
		executiveSheet: executive,
		eventsSheet:    events,
	} {
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, err
			}
			if err = f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, err
			}
		}
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return nil, err
		}
		if err = f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err = f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(location.Location()).Format(timeLayout)
}

// ExportXLSX renders a club report as an XLSX workbook.
func (s *ReportService) ExportXLSX(report *dto.ClubReport) (*bytes.Buffer, error) {
	return ReportToXLSX(report)
}
