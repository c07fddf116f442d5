package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	timesheetSheet = "Timesheet"
	notesSheet     = "Notes"
)

// WriteXLSX writes the report as a workbook with a Timesheet and a Notes
// sheet.
func (r *Report) WriteXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the timesheet
	if err := f.SetSheetName("Sheet1", timesheetSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(notesSheet); err != nil {
		return fmt.Errorf("failed to add notes sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := r.writeTimesheetSheet(f, headerStyle); err != nil {
		return err
	}
	if err := r.writeNotesSheet(f, headerStyle); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (r *Report) writeTimesheetSheet(f *excelize.File, headerStyle int) error {
	for col, title := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(timesheetSheet, cell, title); err != nil {
			return fmt.Errorf("failed to write timesheet header: %w", err)
		}
	}
	if err := f.SetRowStyle(timesheetSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style timesheet header: %w", err)
	}

	for i := range r.Entries {
		e := &r.Entries[i]
		row := i + 2
		values := []any{
			e.Day, platoonFor(e.Day), string(e.Code), e.Start, e.End,
			e.BreakMin, e.Hours(), e.Comment,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(timesheetSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write timesheet row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(timesheetSheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(timesheetSheet, "H", "H", 40); err != nil {
		return err
	}
	return nil
}

func (r *Report) writeNotesSheet(f *excelize.File, headerStyle int) error {
	for col, title := range []string{"Day", "Platoon", "Note"} {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(notesSheet, cell, title); err != nil {
			return fmt.Errorf("failed to write notes header: %w", err)
		}
	}
	if err := f.SetRowStyle(notesSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style notes header: %w", err)
	}

	for i := range r.Notes {
		n := &r.Notes[i]
		row := i + 2
		for col, v := range []any{n.Day, platoonFor(n.Day), n.Body} {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(notesSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write notes row %d: %w", row, err)
			}
		}
	}

	if err := f.SetColWidth(notesSheet, "A", "A", 12); err != nil {
		return err
	}
	return f.SetColWidth(notesSheet, "C", "C", 60)
}
