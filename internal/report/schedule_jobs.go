// Package report renders schedule data as spreadsheets.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	"github.com/xuri/excelize/v2"
)

const jobsSheet = "Schedule Jobs"

var jobsHeader = []string{"Job ID", "Building Detail", "Run Date", "Status", "Created At"}

var jobsColumnWidths = []float64{38, 38, 14, 14, 22}

// ScheduleJobsWorkbook writes the jobs of a schedule into an xlsx workbook.
func ScheduleJobsWorkbook(schedule *entity.ScheduleEntity, jobs []entity.ScheduleJobEntity) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(jobsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   schedule.Name,
		Subject: "schedule " + schedule.ID,
		Creator: "BMCMS",
	}); err != nil {
		return nil, fmt.Errorf("failed to set properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range jobsHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(jobsSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(jobsSheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to style header %s: %w", cell, err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(jobsSheet, name, name, jobsColumnWidths[col]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, job := range jobs {
		row := []any{
			job.ID,
			job.BuildingDetailID,
			job.RunDate.UTC().Format(time.DateOnly),
			string(job.Status),
			job.CreatedAt.UTC().Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(jobsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(jobsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ScheduleJobsFilename is the download name of the export.
func ScheduleJobsFilename(schedule *entity.ScheduleEntity, at time.Time) string {
	return fmt.Sprintf("schedule-%s-jobs-%s.xlsx", schedule.ID, at.UTC().Format("20060102"))
}
