package geom

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads points from the first sheet of a workbook, using the same
// header detection as LoadCSV.
func LoadXLSX(path string) (Data, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Data{}, fmt.Errorf("xlsx: %w", ErrNoGeometry)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Data{}, err
	}
	d, err := pointRows(rows)
	if err != nil {
		return Data{}, fmt.Errorf("xlsx: %w", err)
	}
	return d, nil
}
