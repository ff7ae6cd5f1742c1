package export

import (
	"io"

	"fertilitydash/internal/core/fertility"
	perr "fertilitydash/internal/platform/errors"
	"fertilitydash/internal/platform/logger"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the table
const SheetName = "fertility"

// XLSX writes t as a single-sheet workbook with a bold, frozen header row.
// Absent rates are left as empty cells
func XLSX(w io.Writer, t fertility.Table) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Named("export").Error().Err(err).Msg("close workbook failed")
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "rename sheet")
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "write header row")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "create header style")
	}
	if err := f.SetCellStyle(SheetName, "A1", "C1", bold); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "style header row")
	}

	for i, o := range t {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeUnknown, "cell name")
		}
		row := []any{o.Country, o.Year, nil}
		if o.Rate != nil {
			row[2] = *o.Rate
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "write row %d", i+2)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 18); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "set column width")
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "freeze header row")
	}

	if _, err := f.WriteTo(w); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "write workbook")
	}
	return nil
}
