// Package export turns the fetched record set into a downloadable
// spreadsheet.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"registration/internal/registration"
)

// SheetName is the single worksheet holding the exported rows.
const SheetName = "Registrations"

var header = []interface{}{
	"Name", "Mobile", "Email", "Gender", "Department", "Address", "Registration Date",
}

// Workbook builds a single-sheet workbook: one header row, then one
// row per record in the order given (fetch order, not the filtered
// view). An empty set yields the header row only.
func Workbook(records []registration.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			rec.FullName,
			rec.MobileNumber,
			rec.Email,
			rec.Gender,
			rec.Department,
			rec.Address,
			rec.CreatedAt.Format("02 Jan 2006"),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Filename names the download with the current date.
func Filename(now time.Time) string {
	return fmt.Sprintf("registrations-%s.xlsx", now.Format("2006-01-02"))
}
