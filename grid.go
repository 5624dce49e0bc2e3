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
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Grid describes a regular rectangular longitude/latitude sampling of the
// globe. Lons and Lats hold the cell-center coordinates of the grid's
// columns and rows; fields on the grid have trailing dimensions
// [len(Lats), len(Lons)].
type Grid struct {
	Lons, Lats []float64
}

// NewGrid creates a Grid from cell-center coordinates, checking that both
// axes are strictly monotonic. ERA5 files store latitudes north-to-south,
// so either direction is allowed.
func NewGrid(lons, lats []float64) (Grid, error) {
	if len(lons) == 0 || len(lats) == 0 {
		return Grid{}, fmt.Errorf("energymet: empty grid axes (nx=%d, ny=%d)", len(lons), len(lats))
	}
	if err := checkMonotonic("longitude", lons); err != nil {
		return Grid{}, err
	}
	if err := checkMonotonic("latitude", lats); err != nil {
		return Grid{}, err
	}
	return Grid{Lons: lons, Lats: lats}, nil
}

func checkMonotonic(name string, x []float64) error {
	if len(x) < 2 {
		return nil
	}
	increasing := x[1] > x[0]
	for i := 1; i < len(x); i++ {
		if (increasing && x[i] <= x[i-1]) || (!increasing && x[i] >= x[i-1]) {
			return fmt.Errorf("energymet: %s coordinates are not strictly monotonic at index %d (%g then %g)",
				name, i, x[i-1], x[i])
		}
	}
	return nil
}

// Nx is the number of grid cells in the West-East direction.
func (g Grid) Nx() int { return len(g.Lons) }

// Ny is the number of grid cells in the South-North direction.
func (g Grid) Ny() int { return len(g.Lats) }

// CheckShape validates that a field's spatial dimensions match the grid.
// The field may be [time, lat, lon] or [lat, lon].
func (g Grid) CheckShape(field *sparse.DenseArray) error {
	if field == nil {
		return fmt.Errorf("energymet: nil field")
	}
	n := len(field.Shape)
	if n != 2 && n != 3 {
		return ShapeError{Want: []int{g.Ny(), g.Nx()}, Got: field.Shape}
	}
	if field.Shape[n-2] != g.Ny() || field.Shape[n-1] != g.Nx() {
		return ShapeError{Want: []int{g.Ny(), g.Nx()}, Got: field.Shape[n-2:]}
	}
	return nil
}

// Equal reports whether two grids have identical coordinates.
func (g Grid) Equal(g2 Grid) bool {
	if len(g.Lons) != len(g2.Lons) || len(g.Lats) != len(g2.Lats) {
		return false
	}
	for i, v := range g.Lons {
		if g2.Lons[i] != v {
			return false
		}
	}
	for i, v := range g.Lats {
		if g2.Lats[i] != v {
			return false
		}
	}
	return true
}

// fingerprint returns a short string identifying the grid, for use in
// cache keys. Every coordinate contributes, so grids sharing an extent
// but differing in interior spacing get distinct keys.
func (g Grid) fingerprint() string {
	h := sha256.New()
	b := make([]byte, 8)
	for _, axis := range [][]float64{g.Lons, g.Lats} {
		for _, v := range axis {
			binary.LittleEndian.PutUint64(b, math.Float64bits(v))
			h.Write(b)
		}
	}
	return fmt.Sprintf("%dx%d_%x", g.Nx(), g.Ny(), h.Sum(nil)[:8])
}
