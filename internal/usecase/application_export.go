package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

var exportHeaders = []string{"APPLICATION ID", "APPLICANT", "EMAIL", "STATUS", "RESUME URL", "COVER LETTER", "APPLIED AT", "UPDATED AT"}

func exportRow(app domain.Application) []string {
	return []string{
		fmt.Sprintf("%d", app.ID),
		deref(app.ApplicantName),
		deref(app.ApplicantEmail),
		app.Status,
		deref(app.ResumeURL),
		deref(app.CoverLetter),
		app.CreatedAt.UTC().Format(time.RFC3339),
		app.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// renderApplications produces the spreadsheet for a job's applicants.
func renderApplications(job *domain.Job, apps []domain.Application, format string, now time.Time) (*domain.ApplicationExport, error) {
	stamp := now.Format("20060102_150405")
	switch format {
	case ExportFormatXLSX, "":
		content, err := applicationsExcel(apps)
		if err != nil {
			return nil, err
		}
		return &domain.ApplicationExport{
			Filename:    fmt.Sprintf("job_%d_applications_%s.xlsx", job.ID, stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	case ExportFormatCSV:
		content, err := applicationsCSV(apps)
		if err != nil {
			return nil, err
		}
		return &domain.ApplicationExport{
			Filename:    fmt.Sprintf("job_%d_applications_%s.csv", job.ID, stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("unsupported export format: %s", format)
}

func applicationsExcel(apps []domain.Application) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Applications"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		for colIdx, value := range exportRow(app) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func applicationsCSV(apps []domain.Application) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, app := range apps {
		if err := w.Write(exportRow(app)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
