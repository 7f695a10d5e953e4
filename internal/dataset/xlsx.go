package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tabloom-cli/internal/tabulate"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads one worksheet of a workbook. The sheet is chosen by
// SheetName when set, otherwise by the 1-based SheetIndex.
func LoadXLSX(path string, opt Options) (*tabulate.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := selectSheet(f.GetSheetList(), filepath.Base(path), opt)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return tabulate.NewTable(), nil
	}
	return build(rows[0], rows[1:], opt)
}

func selectSheet(sheets []string, workbook string, opt Options) (string, error) {
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			opt.SheetName, workbook, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range: workbook '%s' has %d sheets", idx, workbook, len(sheets))
	}
	return sheets[idx-1], nil
}
