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
	"math"

	"github.com/ctessum/sparse"
	"github.com/gonum/floats"
)

// Solar panel reference values. Temperature response from Evans and
// Florschuetz (1977); reference efficiency adapted from Bett and
// Thornton (2016).
const (
	TRef    = 25.    // reference panel temperature [C]
	EffRef  = 0.9    // relative efficiency at TRef
	BetaRef = 0.0042 // efficiency loss per degree C above TRef
	GRef    = 1000.  // reference irradiance [W m-2]
)

// SolarCapacityModel converts masked 2-meter temperature [C] and surface
// solar irradiance [W m-2] fields into a national-mean solar photovoltaic
// capacity factor series. The reference values are fields so they can be
// overridden for calibration.
type SolarCapacityModel struct {
	TRef    float64
	EffRef  float64
	BetaRef float64
	GRef    float64
}

// NewSolarCapacityModel returns a model with the published reference
// values.
func NewSolarCapacityModel() SolarCapacityModel {
	return SolarCapacityModel{TRef: TRef, EffRef: EffRef, BetaRef: BetaRef, GRef: GRef}
}

// Series computes the spatial-mean capacity factor per time step. t2m and
// ssrd must be aligned in time and space, and mask must be the same mask
// that was applied to both fields; passing it here keeps the masking and
// the weighted averaging consistent by construction. Per grid cell:
//
//	efficiency = EffRef * (1 - BetaRef*(T - TRef))
//	capacity factor = efficiency * G / GRef
//
// NaN cells (division artifacts in the source data) are replaced with
// zero before averaging, and each cell's capacity factor is clamped to
// [0, 1] so physically impossible input extremes cannot push the mean
// outside the meaningful range.
func (m SolarCapacityModel) Series(t2m, ssrd, mask *sparse.DenseArray) ([]float64, error) {
	if err := checkMaskShape(t2m, mask); err != nil {
		return nil, err
	}
	if err := checkMaskShape(ssrd, mask); err != nil {
		return nil, err
	}
	if len(t2m.Elements) != len(ssrd.Elements) {
		return nil, ShapeError{Want: t2m.Shape, Got: ssrd.Shape}
	}
	wsum := floats.Sum(mask.Elements)
	if wsum == 0 {
		return nil, DegenerateMaskError{}
	}
	nspace := mask.Shape[0] * mask.Shape[1]
	nt := len(t2m.Elements) / nspace
	series := make([]float64, nt)
	for t := 0; t < nt; t++ {
		off := t * nspace
		var sum float64
		for i, w := range mask.Elements {
			if w == 0 {
				continue
			}
			eff := m.EffRef * (1 - m.BetaRef*(t2m.Elements[off+i]-m.TRef))
			cf := eff * ssrd.Elements[off+i] / m.GRef
			if math.IsNaN(cf) {
				cf = 0
			} else if cf < 0 {
				cf = 0
			} else if cf > 1 {
				cf = 1
			}
			sum += cf * w
		}
		series[t] = sum / wsum
	}
	return series, nil
}
