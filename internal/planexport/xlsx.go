package planexport

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"travelfuse/internal/domain"
)

// SheetOverview holds plan metadata; every other sheet is named after its section.
const SheetOverview = "overview"

// WriteXLSX renders plan as a workbook with an overview sheet and one sheet
// per section, all sections sharing the CSV column layout.
func WriteXLSX(out io.Writer, plan *domain.TravelPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return fmt.Errorf("renaming default sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	overview := [][]string{
		{"Field", "Value"},
		{"ID", plan.ID},
		{"Title", plan.Title},
		{"Destination", plan.Destination},
		{"Total Days", strconv.Itoa(plan.TotalDays)},
		{"Start Date", plan.StartDate},
		{"End Date", plan.EndDate},
		{"Group Size", strconv.Itoa(plan.GroupSize)},
		{"Overview", plan.Overview},
	}
	if err := writeSheet(f, SheetOverview, overview, bold); err != nil {
		return err
	}

	for _, sec := range sections(plan) {
		if _, err := f.NewSheet(sec.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sec.name, err)
		}
		rows := append([][]string{columns}, sec.rows...)
		if err := writeSheet(f, sec.name, rows, bold); err != nil {
			return err
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]string, headerStyle int) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(r))
		for j, v := range r {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return nil
}
