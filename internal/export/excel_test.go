package export

import (
	"io"
	"testing"

	"oceanview/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportToExcel(t *testing.T) {
	logger := zerolog.New(io.Discard)
	e := NewExporter(t.TempDir(), &logger)

	summary := &models.ReportSummary{
		TotalRooms:    10,
		OccupiedRooms: 4,
		OccupancyRate: 40,
		Occupancy: []models.RoomOccupancy{
			{RoomType: models.RoomTypeSingle, Status: models.RoomOccupied, RoomCount: 4, TotalRateCents: 32000},
			{RoomType: models.RoomTypeSingle, Status: models.RoomAvailable, RoomCount: 2, TotalRateCents: 16000},
		},
		TotalRevenueCents: 120000,
		TotalBills:        5,
		RevenueByType: []models.RevenueByType{
			{RoomType: models.RoomTypeSingle, BillCount: 5, TotalNights: 12, RevenueCents: 120000},
		},
	}

	path, err := e.ReportToExcel(summary)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Occupancy")
	assert.Contains(t, sheets, "Revenue")
	assert.NotContains(t, sheets, "Sheet1")

	roomType, err := f.GetCellValue("Occupancy", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Single", roomType)

	revenue, err := f.GetCellValue("Revenue", "D3")
	require.NoError(t, err)
	assert.Equal(t, "1200.00", revenue)
}

func TestReportToExcel_EmptySummary(t *testing.T) {
	logger := zerolog.New(io.Discard)
	e := NewExporter(t.TempDir(), &logger)

	path, err := e.ReportToExcel(&models.ReportSummary{})
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}
