// Package export renders the management report as an Excel workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"oceanview/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type Exporter struct {
	path   string
	logger *zerolog.Logger
}

func NewExporter(path string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		path:   path,
		logger: logger,
	}
}

// ReportToExcel writes the summary to an xlsx file with an Occupancy and a
// Revenue sheet, and returns the file path.
func (e *Exporter) ReportToExcel(summary *models.ReportSummary) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeOccupancySheet(f, summary); err != nil {
		return "", err
	}
	if err := e.writeRevenueSheet(f, summary); err != nil {
		return "", err
	}

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("report_%s.xlsx", time.Now().Format("2006-01-02_150405"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("Excel report created")
	return filePath, nil
}

func (e *Exporter) writeOccupancySheet(f *excelize.File, summary *models.ReportSummary) error {
	const sheet = "Occupancy"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Occupancy: %d of %d rooms (%.0f%%)",
		summary.OccupiedRooms, summary.TotalRooms, summary.OccupancyRate))
	_ = f.MergeCell(sheet, "A1", "D1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	headers := []string{"Room Type", "Status", "Rooms", "Combined Rate"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 3
	for _, entry := range summary.Occupancy {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(entry.RoomType))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(entry.Status))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.RoomCount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), models.FormatCents(entry.TotalRateCents))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "D", 18)
	return nil
}

func (e *Exporter) writeRevenueSheet(f *excelize.File, summary *models.ReportSummary) error {
	const sheet = "Revenue"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Total revenue: %s from %d bills",
		models.FormatCents(summary.TotalRevenueCents), summary.TotalBills))
	_ = f.MergeCell(sheet, "A1", "D1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	headers := []string{"Room Type", "Bills", "Nights", "Revenue"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 3
	for _, entry := range summary.RevenueByType {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(entry.RoomType))
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.BillCount)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.TotalNights)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), models.FormatCents(entry.RevenueCents))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "D", 18)
	return nil
}
