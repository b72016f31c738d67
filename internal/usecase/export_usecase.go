package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/pkg/apperror"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// pdfBlocksPerPage is how many application blocks the summary report fits
// on a page before breaking.
const pdfBlocksPerPage = 3

var exportColumns = []string{
	"Serial No", "Token", "Company", "Job Title",
	"Application Date", "Status", "Follow Up Date", "Location",
}

type exportUsecase struct {
	applicationRepo domain.ApplicationRepository
	userRepo        domain.UserRepository
}

// NewExportUsecase creates a new export usecase
func NewExportUsecase(appRepo domain.ApplicationRepository, userRepo domain.UserRepository) domain.ExportUsecase {
	return &exportUsecase{
		applicationRepo: appRepo,
		userRepo:        userRepo,
	}
}

// exportRow renders one application as a flat row. The serial column is the
// 1-based row position, not the persisted serial number: the export is a
// derived view and its numbering may diverge from storage.
func exportRow(position int, app domain.Application) []string {
	return []string{
		fmt.Sprintf("%d", position),
		app.Token,
		app.Company,
		app.JobTitle,
		app.ApplicationDate.Format("2006-01-02"),
		app.Status,
		formatOptionalDate(app.FollowUpDate, "2006-01-02"),
		app.Location,
	}
}

func formatOptionalDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

// ExportCSV renders the user's applications as a CSV attachment, one row
// per record in serial order.
func (uc *exportUsecase) ExportCSV(ctx context.Context, userID string) ([]byte, string, error) {
	apps, err := uc.applicationRepo.GetByUserSorted(ctx, userID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportColumns); err != nil {
		return nil, "", apperror.Internal(err)
	}
	for i, app := range apps {
		if err := w.Write(exportRow(i+1, app)); err != nil {
			return nil, "", apperror.Internal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("job_applications_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX renders the same column set as the CSV export into a styled
// spreadsheet.
func (uc *exportUsecase) ExportXLSX(ctx context.Context, userID string) ([]byte, string, error) {
	apps, err := uc.applicationRepo.GetByUserSorted(ctx, userID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	// Header styling: dark blue fill, white bold text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range apps {
		for colIdx, value := range exportRow(rowIdx+1, app) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to write spreadsheet: %w", err))
	}

	filename := fmt.Sprintf("job_applications_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// ExportPDF renders the summary report: a cover section with the user's
// contact profile followed by one block per application, breaking to a new
// page after every three blocks. The artifact is built in memory so
// concurrent exports by the same user cannot race on a shared file path.
func (uc *exportUsecase) ExportPDF(ctx context.Context, userID string) ([]byte, string, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	apps, err := uc.applicationRepo.GetByUserSorted(ctx, userID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 18, 25)
	pdf.AddPage()

	// Cover section: user contact profile
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 12, "User Information", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(52, 73, 94)
	coverLine := func(label, value string) {
		pdf.CellFormat(0, 7, fmt.Sprintf("%s: %s", label, value), "", 1, "C", false, 0, "")
	}
	coverLine("Name", user.Username)
	coverLine("Email", user.Email)
	coverLine("Phone", deref(user.PhoneNumber))
	coverLine("Address", deref(user.Address))
	coverLine("City", deref(user.City))
	coverLine("State", deref(user.State))
	coverLine("Zip Code", deref(user.ZipCode))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 12, "Job Application Summary", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for i, app := range apps {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(41, 128, 185)
		pdf.CellFormat(0, 8, fmt.Sprintf("Serial No. %d - %s", i+1, app.JobTitle), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 12)
		pdf.SetTextColor(127, 140, 141)
		pdf.CellFormat(0, 6, "Company: "+app.Company, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Application Date: "+app.ApplicationDate.Format("January 2, 2006 (Monday)"), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Status: "+app.Status, "", 1, "L", false, 0, "")
		if app.FollowUpDate != nil {
			pdf.CellFormat(0, 6, "Follow-Up Date: "+app.FollowUpDate.Format("January 2, 2006 (Monday)"), "", 1, "L", false, 0, "")
		}
		pdf.CellFormat(0, 6, "Location: "+app.Location, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Token: "+app.Token, "", 1, "L", false, 0, "")
		pdf.Ln(5)

		if (i+1)%pdfBlocksPerPage == 0 && i+1 < len(apps) {
			pdf.AddPage()
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to render report: %w", err))
	}

	filename := fmt.Sprintf("summary_%s.pdf", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
