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

// Degree-day comfort thresholds [degrees C] from Bloomfield et al. (2020).
const (
	HeatingThreshold = 15.5
	CoolingThreshold = 22.0
)

// DegreeDayModel converts a national-mean temperature series into heating
// and cooling degree day series by fixed-threshold rectification. The
// thresholds are model constants, exposed as fields so tests and
// calibration runs can override them.
type DegreeDayModel struct {
	// HeatingThreshold is the temperature [C] below which heating demand
	// accrues.
	HeatingThreshold float64
	// CoolingThreshold is the temperature [C] above which cooling demand
	// accrues.
	CoolingThreshold float64
}

// NewDegreeDayModel returns a model with the published thresholds.
func NewDegreeDayModel() DegreeDayModel {
	return DegreeDayModel{
		HeatingThreshold: HeatingThreshold,
		CoolingThreshold: CoolingThreshold,
	}
}

// Series computes heating and cooling degree day series from a
// spatial-mean temperature series [degrees C]. Each time step is
// independent:
//
//	HDD[i] = max(0, heating threshold - T[i])
//	CDD[i] = max(0, T[i] - cooling threshold)
func (m DegreeDayModel) Series(t2m []float64) (hdd, cdd []float64) {
	hdd = make([]float64, len(t2m))
	cdd = make([]float64, len(t2m))
	for i, t := range t2m {
		if t < m.HeatingThreshold {
			hdd[i] = m.HeatingThreshold - t
		}
		if t > m.CoolingThreshold {
			cdd[i] = t - m.CoolingThreshold
		}
	}
	return hdd, cdd
}
