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
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Coefficients holds one country's demand-model regression parameters:
//
//	demand[i] = Intercept + HDD*hdd[i] + CDD*cdd[i] + sum_k Extra[k]*extra[k][i]
//
// as published at http://dx.doi.org/10.17864/1947.272.
type Coefficients struct {
	Intercept float64
	HDD       float64
	CDD       float64
	// Extra holds coefficients for any additional regressors in the
	// published table, in column order.
	Extra []float64
}

// NormalizeCountry converts a long-form country name into the key format
// used by the coefficient table: spaces become underscores, so
// "Czech Republic" matches the stored key "Czech_Republic".
func NormalizeCountry(name string) string {
	return strings.Replace(name, " ", "_", -1)
}

// DemandModel combines degree-day series with per-country regression
// coefficients to produce weather-dependent electricity demand.
type DemandModel struct {
	// Coeffs maps normalized country keys to regression coefficients.
	Coeffs map[string]Coefficients
}

// Coefficients looks up the regression row for a country, normalizing the
// name first. A country with no published row yields a LookupError.
func (d *DemandModel) Coefficients(country string) (Coefficients, error) {
	key := NormalizeCountry(country)
	c, ok := d.Coeffs[key]
	if !ok {
		return Coefficients{}, LookupError{Key: key, Source: "demand coefficient table"}
	}
	return c, nil
}

// Series evaluates the demand model over aligned HDD and CDD series.
// extra supplies one series per Extra coefficient, in the same order as
// the table columns; the count must match.
func (c Coefficients) Series(hdd, cdd []float64, extra ...[]float64) ([]float64, error) {
	if len(hdd) != len(cdd) {
		return nil, fmt.Errorf("energymet: demand model: HDD series has %d steps but CDD has %d", len(hdd), len(cdd))
	}
	if len(extra) != len(c.Extra) {
		return nil, fmt.Errorf("energymet: demand model: %d extra regressor series supplied for %d extra coefficients", len(extra), len(c.Extra))
	}
	for k, e := range extra {
		if len(e) != len(hdd) {
			return nil, fmt.Errorf("energymet: demand model: extra regressor %d has %d steps; want %d", k, len(e), len(hdd))
		}
	}
	demand := make([]float64, len(hdd))
	for i := range demand {
		demand[i] = c.Intercept + c.HDD*hdd[i] + c.CDD*cdd[i]
		for k, e := range extra {
			demand[i] += c.Extra[k] * e[i]
		}
	}
	return demand, nil
}

// FitCoefficients estimates intercept, HDD, and CDD coefficients from an
// observed demand series over a training period, by ordinary least
// squares. It lets users calibrate their own coefficient rows when a
// country is missing from the published table; slice the inputs to
// restrict the training window.
func FitCoefficients(demand, hdd, cdd []float64) (Coefficients, error) {
	n := len(demand)
	if len(hdd) != n || len(cdd) != n {
		return Coefficients{}, fmt.Errorf("energymet: calibration: series lengths differ (demand %d, HDD %d, CDD %d)", n, len(hdd), len(cdd))
	}
	if n < 3 {
		return Coefficients{}, fmt.Errorf("energymet: calibration: need at least 3 observations, have %d", n)
	}
	x := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, hdd[i])
		x.Set(i, 2, cdd[i])
	}
	y := mat.NewVecDense(n, demand)
	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return Coefficients{}, fmt.Errorf("energymet: calibration: %v", err)
	}
	return Coefficients{
		Intercept: beta.AtVec(0),
		HDD:       beta.AtVec(1),
		CDD:       beta.AtVec(2),
	}, nil
}
