/*
Copyright © 2026 the EnergyMet authors.
This file is part of EnergyMet.

EnergyMet is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

EnergyMet is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with EnergyMet.  If not, see <http://www.gnu.org/licenses/>.
*/

package energymet

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/ctessum/requestcache"
	"github.com/tealeg/xlsx"
)

// excelCache holds previously opened Microsoft Excel files
// to avoid reading the same file multiple times.
var excelCache *requestcache.Cache

var loadExcelCacheOnce sync.Once

// loadExcelFile loads a Microsoft Excel file from disk, utilizing
// a cache to avoid loading the same file more than once.
func loadExcelFile(fileName string) (*xlsx.File, error) {
	loadExcelCacheOnce.Do(func() {
		excelCache = requestcache.NewCache(func(ctx context.Context, req interface{}) (interface{}, error) {
			filename := req.(string)
			f, err := xlsx.OpenFile(filename)
			if err != nil {
				return nil, fmt.Errorf("energymet: opening xlsx file: %v", err)
			}
			return f, nil
		}, runtime.GOMAXPROCS(-1), requestcache.Memory(100))
	})
	r := excelCache.NewRequest(context.Background(), fileName, fileName)
	fI, err := r.Result()
	if err != nil {
		return nil, err
	}
	return fI.(*xlsx.File), nil
}

// ReadCoefficientsXLSX loads a demand-model coefficient table from a
// Microsoft Excel workbook. The sheet layout matches the CSV layout: a
// header row, then one row per country with the underscored country key
// in the first column followed by intercept, HDD coefficient, CDD
// coefficient, and any additional regressor coefficients. Rows with an
// empty first column are skipped.
func ReadCoefficientsXLSX(fileName, sheet string) (map[string]Coefficients, error) {
	f, err := loadExcelFile(fileName)
	if err != nil {
		return nil, err
	}
	s, ok := f.Sheet[sheet]
	if !ok {
		return nil, fmt.Errorf("energymet: coefficient workbook %s has no sheet %s", fileName, sheet)
	}
	out := make(map[string]Coefficients)
	for j, row := range s.Rows {
		if j == 0 {
			continue // header
		}
		if len(row.Cells) < 4 {
			continue
		}
		key := strings.TrimSpace(row.Cells[0].Value)
		if key == "" {
			continue
		}
		vals := make([]float64, len(row.Cells)-1)
		for i, cell := range row.Cells[1:] {
			vals[i], err = strconv.ParseFloat(strings.TrimSpace(cell.Value), 64)
			if err != nil {
				return nil, fmt.Errorf("energymet: coefficient workbook %s sheet %s row %d: %v", fileName, sheet, j+1, err)
			}
		}
		out[key] = Coefficients{
			Intercept: vals[0],
			HDD:       vals[1],
			CDD:       vals[2],
			Extra:     vals[3:],
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("energymet: coefficient workbook %s sheet %s has no data rows", fileName, sheet)
	}
	return out, nil
}
