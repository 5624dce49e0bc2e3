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

import "testing"

func TestDemandSeries(t *testing.T) {
	c := Coefficients{Intercept: 100, HDD: 2, CDD: 3}
	demand, err := c.Series([]float64{1, 0}, []float64{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{102, 103}
	for i, v := range demand {
		if absDifferent(v, want[i], testTolerance) {
			t.Errorf("demand[%d]: want %g, have %g", i, want[i], v)
		}
	}
}

func TestDemandSeries_extraRegressors(t *testing.T) {
	c := Coefficients{Intercept: 1, HDD: 2, CDD: 3, Extra: []float64{10}}
	demand, err := c.Series([]float64{1}, []float64{1}, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if want := 1 + 2 + 3 + 5.; absDifferent(demand[0], want, testTolerance) {
		t.Errorf("want %g, have %g", want, demand[0])
	}

	// A missing extra series is an error, not a silent drop.
	if _, err := c.Series([]float64{1}, []float64{1}); err == nil {
		t.Error("missing extra regressor series should fail")
	}
}

func TestDemandSeries_lengthMismatch(t *testing.T) {
	c := Coefficients{}
	if _, err := c.Series([]float64{1, 2}, []float64{1}); err == nil {
		t.Error("mismatched HDD/CDD lengths should fail")
	}
}

func TestNormalizeCountry(t *testing.T) {
	if got := NormalizeCountry("Czech Republic"); got != "Czech_Republic" {
		t.Errorf("want Czech_Republic, have %s", got)
	}
	if got := NormalizeCountry("France"); got != "France" {
		t.Errorf("want France, have %s", got)
	}
}

func TestDemandModelLookup(t *testing.T) {
	dm := &DemandModel{Coeffs: map[string]Coefficients{
		"Czech_Republic": {Intercept: 7},
	}}
	c, err := dm.Coefficients("Czech Republic")
	if err != nil {
		t.Fatal(err)
	}
	if c.Intercept != 7 {
		t.Errorf("want intercept 7, have %g", c.Intercept)
	}

	_, err = dm.Coefficients("Atlantis")
	if err == nil {
		t.Fatal("missing country should fail")
	}
	if _, ok := err.(LookupError); !ok {
		t.Errorf("want LookupError, have %T", err)
	}
}

func TestFitCoefficients(t *testing.T) {
	want := Coefficients{Intercept: 100, HDD: 2, CDD: 3}
	hdd := []float64{5, 0, 3, 0, 1, 2}
	cdd := []float64{0, 2, 0, 4, 1, 0}
	demand := make([]float64, len(hdd))
	for i := range demand {
		demand[i] = want.Intercept + want.HDD*hdd[i] + want.CDD*cdd[i]
	}

	got, err := FitCoefficients(demand, hdd, cdd)
	if err != nil {
		t.Fatal(err)
	}
	const fitTolerance = 1.e-8
	if absDifferent(got.Intercept, want.Intercept, fitTolerance) {
		t.Errorf("intercept: want %g, have %g", want.Intercept, got.Intercept)
	}
	if absDifferent(got.HDD, want.HDD, fitTolerance) {
		t.Errorf("HDD coefficient: want %g, have %g", want.HDD, got.HDD)
	}
	if absDifferent(got.CDD, want.CDD, fitTolerance) {
		t.Errorf("CDD coefficient: want %g, have %g", want.CDD, got.CDD)
	}
}

func TestFitCoefficients_badInput(t *testing.T) {
	if _, err := FitCoefficients([]float64{1, 2}, []float64{1, 2}, []float64{1}); err == nil {
		t.Error("mismatched lengths should fail")
	}
	if _, err := FitCoefficients([]float64{1, 2}, []float64{1, 2}, []float64{1, 2}); err == nil {
		t.Error("too few observations should fail")
	}
}
