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
	"github.com/ctessum/sparse"
	"github.com/gonum/floats"
)

// checkMaskShape validates that mask is 2-dimensional and that field's
// trailing dimensions match it. field may be [time, lat, lon] or
// [lat, lon].
func checkMaskShape(field, mask *sparse.DenseArray) error {
	if len(mask.Shape) != 2 {
		return ShapeError{Want: []int{-1, -1}, Got: mask.Shape}
	}
	n := len(field.Shape)
	if n != 2 && n != 3 {
		return ShapeError{Want: mask.Shape, Got: field.Shape}
	}
	if field.Shape[n-2] != mask.Shape[0] || field.Shape[n-1] != mask.Shape[1] {
		return ShapeError{Want: mask.Shape, Got: field.Shape[n-2:]}
	}
	return nil
}

// ApplyMask multiplies a field by a country mask, broadcasting the mask
// over the time dimension: cells outside the country become zero, cells
// inside are unchanged. The input field is not modified.
func ApplyMask(field, mask *sparse.DenseArray) (*sparse.DenseArray, error) {
	if err := checkMaskShape(field, mask); err != nil {
		return nil, err
	}
	out := sparse.ZerosDense(field.Shape...)
	nspace := mask.Shape[0] * mask.Shape[1]
	nt := len(field.Elements) / nspace
	for t := 0; t < nt; t++ {
		off := t * nspace
		for i, w := range mask.Elements {
			out.Elements[off+i] = field.Elements[off+i] * w
		}
	}
	return out, nil
}

// SpatialMean computes the mask-weighted average of a field over its two
// spatial dimensions, one value per time step. The mask does not need to
// be normalized; the sum of weights divides the result. A mask summing to
// zero returns a DegenerateMaskError rather than NaN. Zero-weight cells
// are skipped entirely, so values outside the mask (including NaN) cannot
// affect the result. A 2-dimensional field yields a single-element series.
func SpatialMean(field, mask *sparse.DenseArray) ([]float64, error) {
	if err := checkMaskShape(field, mask); err != nil {
		return nil, err
	}
	wsum := floats.Sum(mask.Elements)
	if wsum == 0 {
		return nil, DegenerateMaskError{}
	}
	nspace := mask.Shape[0] * mask.Shape[1]
	nt := len(field.Elements) / nspace
	series := make([]float64, nt)
	for t := 0; t < nt; t++ {
		off := t * nspace
		var sum float64
		for i, w := range mask.Elements {
			if w == 0 {
				continue
			}
			sum += field.Elements[off+i] * w
		}
		series[t] = sum / wsum
	}
	return series, nil
}
