// Package export turns merged reports into a flat sheet and encodes it as
// an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"media-report/internal/aggregate"

	"github.com/xuri/excelize/v2"
)

const (
	FileName    = "media_reports.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	SheetName   = "Reports"

	NotesSeparator = " | "
	EmptyMessage   = "No reports found for the selected filters"
)

var fixedColumns = []string{"Username", "Team", "Date", "Shift", "Notes"}

// Sheet is a header plus rows of equal width. Cells are int or string.
type Sheet struct {
	Header []string
	Rows   [][]any
}

// Flatten lays out one row per merged record. Every task key seen anywhere
// in the result gets a column, in first-seen order; records without that
// key get an empty cell. No records yields a single informational row.
func Flatten(records []aggregate.Combined) Sheet {
	if len(records) == 0 {
		return Sheet{Header: []string{"Info"}, Rows: [][]any{{EmptyMessage}}}
	}

	var taskCols []string
	seen := map[string]bool{}
	for _, rec := range records {
		for _, k := range rec.Tasks.Keys() {
			if !seen[k] {
				seen[k] = true
				taskCols = append(taskCols, k)
			}
		}
	}

	header := make([]string, 0, len(fixedColumns)+len(taskCols))
	header = append(header, fixedColumns...)
	header = append(header, taskCols...)

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, 0, len(header))
		row = append(row,
			rec.Username,
			rec.Team.Label(),
			rec.Date.String(),
			rec.Shift.Label(),
			strings.Join(rec.Notes, NotesSeparator),
		)
		for _, col := range taskCols {
			if v, ok := rec.Tasks.Get(col); ok {
				row = append(row, v.Cell())
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return Sheet{Header: header, Rows: rows}
}

// WriteXLSX encodes the sheet as a workbook with a bold header row.
func WriteXLSX(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(s.Header))
	for i, h := range s.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if len(s.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
			return fmt.Errorf("apply header style: %w", err)
		}
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(SheetName, cell, &r); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
