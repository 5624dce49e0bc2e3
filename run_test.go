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
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
)

// writePipelineFixtures creates a reanalysis file with constant
// temperature and irradiance, a one-country boundary shapefile covering
// the whole grid, and a coefficient table, all in dir.
func writePipelineFixtures(t *testing.T, dir string) Config {
	t.Helper()

	// Reanalysis file: 25 C and 1000 W m-2 everywhere, in stored units.
	const fileName = "ERA5_test.nc"
	h := cdf.NewHeader([]string{"time", "latitude", "longitude"}, []int{2, 2, 3})
	h.AddVariable("longitude", []string{"longitude"}, []float64{0})
	h.AddVariable("latitude", []string{"latitude"}, []float64{0})
	h.AddVariable(VarT2M, []string{"time", "latitude", "longitude"}, []float64{0})
	h.AddVariable(VarSSRD, []string{"time", "latitude", "longitude"}, []float64{0})
	h.Define()
	for _, err := range h.Check() {
		t.Fatal(err)
	}
	ff, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		t.Fatal(err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	w := f.Writer("longitude", []int{0}, []int{3})
	if _, err := w.Write([]float64{-1, 0, 1}); err != nil {
		t.Fatal(err)
	}
	w = f.Writer("latitude", []int{0}, []int{2})
	if _, err := w.Write([]float64{51, 50}); err != nil {
		t.Fatal(err)
	}
	kelvin := make([]float64, 12)
	joules := make([]float64, 12)
	for i := range kelvin {
		kelvin[i] = 25 + 273.15
		joules[i] = 1000 * 3600
	}
	w = f.Writer(VarT2M, []int{0, 0, 0}, []int{2, 2, 3})
	if _, err := w.Write(kelvin); err != nil {
		t.Fatal(err)
	}
	w = f.Writer(VarSSRD, []int{0, 0, 0}, []int{2, 2, 3})
	if _, err := w.Write(joules); err != nil {
		t.Fatal(err)
	}
	ff.Close()

	// Boundary shapefile with one country covering the whole grid.
	boundaryFile := filepath.Join(dir, "countries.shp")
	enc, err := shp.NewEncoderFromFields(boundaryFile, goshp.POLYGON,
		goshp.StringField("NAME_LONG", 80))
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.EncodeFields(rectangle(-2, 49, 2, 52), "Testland"); err != nil {
		t.Fatal(err)
	}
	enc.Close()

	// Coefficient table.
	coefFile := filepath.Join(dir, "coefficients.csv")
	coefContents := "country,intercept,hdd_coef,cdd_coef\nTestland,100,2,3\n"
	if err := os.WriteFile(coefFile, []byte(coefContents), 0644); err != nil {
		t.Fatal(err)
	}

	return Config{
		Country:         "Testland",
		DataDir:         dir,
		FileName:        fileName,
		BoundaryFile:    boundaryFile,
		CoefficientFile: coefFile,
		OutputFile:      filepath.Join(dir, "out.csv"),
	}
}

func TestPipelineRun(t *testing.T) {
	cfg := writePipelineFixtures(t, t.TempDir())
	p := NewPipeline()
	series, err := p.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{SeriesT2M, SeriesHDD, SeriesCDD, SeriesSolarCF, SeriesDemand} {
		if len(series[name]) != 2 {
			t.Fatalf("series %s: want 2 steps, have %d", name, len(series[name]))
		}
	}
	for i := 0; i < 2; i++ {
		if absDifferent(series[SeriesT2M][i], 25, testTolerance) {
			t.Errorf("T2M[%d]: want 25, have %g", i, series[SeriesT2M][i])
		}
		if absDifferent(series[SeriesHDD][i], 0, testTolerance) {
			t.Errorf("HDD[%d]: want 0, have %g", i, series[SeriesHDD][i])
		}
		if absDifferent(series[SeriesCDD][i], 3, testTolerance) {
			t.Errorf("CDD[%d]: want 3, have %g", i, series[SeriesCDD][i])
		}
		if absDifferent(series[SeriesSolarCF][i], 0.9, testTolerance) {
			t.Errorf("SolarCF[%d]: want 0.9, have %g", i, series[SeriesSolarCF][i])
		}
		if want := 100 + 3*3.; absDifferent(series[SeriesDemand][i], want, testTolerance) {
			t.Errorf("Demand[%d]: want %g, have %g", i, want, series[SeriesDemand][i])
		}
	}

	if _, err := os.Stat(cfg.OutputFile); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestPipelineRun_unknownCountry(t *testing.T) {
	cfg := writePipelineFixtures(t, t.TempDir())
	cfg.Country = "Atlantis"
	p := NewPipeline()
	_, err := p.Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("unknown country should fail")
	}
	if _, ok := err.(LookupError); !ok {
		t.Errorf("want LookupError, have %T (%v)", err, err)
	}
}

func TestPipelineRun_missingCoefficients(t *testing.T) {
	dir := t.TempDir()
	cfg := writePipelineFixtures(t, dir)
	coefContents := "country,intercept,hdd_coef,cdd_coef\nElsewhere,1,2,3\n"
	if err := os.WriteFile(cfg.CoefficientFile, []byte(coefContents), 0644); err != nil {
		t.Fatal(err)
	}
	p := NewPipeline()
	_, err := p.Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("country missing from coefficient table should fail")
	}
	if _, ok := err.(LookupError); !ok {
		t.Errorf("want LookupError, have %T (%v)", err, err)
	}
}
