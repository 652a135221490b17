// Package export renders projection results as spreadsheets.
package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/iitbhu2k25/DSS-Nextjs/projection"
)

// SheetName is the worksheet holding the projection table.
const SheetName = "Projection"

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook lays out result as one row per village, sorted by id, with a
// "Village ID" column followed by one column per year in ascending order.
func Workbook(result projection.Result) (*excelize.File, error) {
	wb := excelize.NewFile()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	if err := wb.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	years := yearLabels(result)
	header := make([]interface{}, 0, len(years)+1)
	header = append(header, "Village ID")
	for _, y := range years {
		header = append(header, y)
	}
	if err := wb.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := wb.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, id := range villageIDs(result) {
		row := make([]interface{}, 0, len(years)+1)
		row = append(row, id)
		for _, y := range years {
			if v, ok := result[id][y]; ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := wb.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write village %s: %w", id, err)
		}
	}

	if err := wb.SetColWidth(SheetName, "A", "A", 14); err != nil {
		return nil, err
	}
	return wb, nil
}

// WriteXLSX renders result and streams the workbook to w.
func WriteXLSX(w io.Writer, result projection.Result) error {
	wb, err := Workbook(result)
	if err != nil {
		return err
	}
	defer wb.Close()

	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// yearLabels returns every year label present in result in ascending order.
func yearLabels(result projection.Result) []string {
	seen := map[string]struct{}{}
	for _, years := range result {
		for y := range years {
			seen[y] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for y := range seen {
		labels = append(labels, y)
	}
	sort.Slice(labels, func(i, j int) bool { return lessNumeric(labels[i], labels[j]) })
	return labels
}

func villageIDs(result projection.Result) []string {
	ids := make([]string, 0, len(result))
	for id := range result {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessNumeric(ids[i], ids[j]) })
	return ids
}

// lessNumeric orders numeric strings by value and everything else
// lexicographically after them.
func lessNumeric(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		return ai < bi
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
