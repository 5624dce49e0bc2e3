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
	"log"
	"path/filepath"
	"strings"
)

// Config holds the parameters for one pipeline invocation: one country,
// one reanalysis file. There is no process-wide state; separate Configs
// can be run independently (and concurrently by the caller, since every
// core operation is pure).
type Config struct {
	// Country is the long-form country name as it appears in the
	// boundary dataset, e.g. "United Kingdom" or "Czech Republic".
	Country string

	// DataDir is the directory holding the reanalysis files.
	DataDir string

	// FileName is the name of the NetCDF file within DataDir,
	// e.g. "ERA5_1979_01.nc".
	FileName string

	// BoundaryFile is the path to the admin-0 countries shapefile.
	BoundaryFile string

	// CoefficientFile is the path to the published demand-model
	// coefficient table (.csv, or .xlsx with CoefficientSheet set).
	CoefficientFile string

	// CoefficientSheet names the workbook sheet holding the coefficient
	// table when CoefficientFile is an xlsx file.
	CoefficientSheet string

	// TemperatureVar and IrradianceVar are the NetCDF variable keys for
	// 2-meter temperature and surface solar irradiance. They default to
	// "t2m" and "ssrd".
	TemperatureVar string
	IrradianceVar  string

	// OutputFile, if set, receives the pipeline results as CSV.
	OutputFile string

	// OutputVariables maps output column names to expressions over the
	// pipeline series T2M, HDD, CDD, SolarCF, and Demand. If empty, all
	// five series are output directly.
	OutputVariables map[string]string
}

// Series names produced by a pipeline run.
const (
	SeriesT2M     = "T2M"
	SeriesHDD     = "HDD"
	SeriesCDD     = "CDD"
	SeriesSolarCF = "SolarCF"
	SeriesDemand  = "Demand"
)

// Pipeline wires the loaders and models together for repeated runs,
// sharing a mask cache across invocations that use the same country and
// grid.
type Pipeline struct {
	DegreeDays DegreeDayModel
	Solar      SolarCapacityModel
	Masks      MaskCache
}

// NewPipeline returns a Pipeline with the published model constants.
func NewPipeline() *Pipeline {
	return &Pipeline{
		DegreeDays: NewDegreeDayModel(),
		Solar:      NewSolarCapacityModel(),
	}
}

// Run executes the full pipeline for one configuration: look up the
// country boundary, load the temperature and irradiance fields, build and
// apply the country mask, and derive the degree-day, solar capacity
// factor, and weather-dependent demand series. If cfg.OutputFile is set,
// the results are also written as CSV.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (map[string][]float64, error) {
	if cfg.Country == "" {
		return nil, fmt.Errorf("energymet: no country specified")
	}
	tempVar := cfg.TemperatureVar
	if tempVar == "" {
		tempVar = VarT2M
	}
	irradVar := cfg.IrradianceVar
	if irradVar == "" {
		irradVar = VarSSRD
	}
	dataFile := filepath.Join(cfg.DataDir, cfg.FileName)

	polys, err := LookupCountry(cfg.BoundaryFile, cfg.Country)
	if err != nil {
		return nil, err
	}
	log.Printf("energymet: found %d boundary polygon part(s) for %s", len(polys), cfg.Country)

	t2m, grid, err := ReadField(dataFile, tempVar)
	if err != nil {
		return nil, err
	}
	ssrd, grid2, err := ReadField(dataFile, irradVar)
	if err != nil {
		return nil, err
	}
	if !grid.Equal(grid2) {
		return nil, fmt.Errorf("energymet: variables %s and %s in %s are on different grids", tempVar, irradVar, dataFile)
	}

	mask, err := p.Masks.Mask(ctx, cfg.Country, polys, grid)
	if err != nil {
		return nil, err
	}

	maskedT, err := ApplyMask(t2m, mask)
	if err != nil {
		return nil, err
	}
	maskedG, err := ApplyMask(ssrd, mask)
	if err != nil {
		return nil, err
	}

	meanT, err := SpatialMean(maskedT, mask)
	if err != nil {
		if _, ok := err.(DegenerateMaskError); ok {
			err = DegenerateMaskError{Country: cfg.Country}
		}
		return nil, err
	}
	hdd, cdd := p.DegreeDays.Series(meanT)

	solarCF, err := p.Solar.Series(maskedT, maskedG, mask)
	if err != nil {
		return nil, err
	}

	coeffs, err := readCoefficients(cfg)
	if err != nil {
		return nil, err
	}
	dm := &DemandModel{Coeffs: coeffs}
	c, err := dm.Coefficients(cfg.Country)
	if err != nil {
		return nil, err
	}
	if len(c.Extra) > 0 {
		// Some published rows carry non-weather regressors (weekday
		// indicators etc.) that a weather-only pipeline cannot supply;
		// only the degree-day terms are used here.
		log.Printf("energymet: ignoring %d non-weather regressor(s) for %s", len(c.Extra), cfg.Country)
		c.Extra = nil
	}
	demand, err := c.Series(hdd, cdd)
	if err != nil {
		return nil, err
	}

	series := map[string][]float64{
		SeriesT2M:     meanT,
		SeriesHDD:     hdd,
		SeriesCDD:     cdd,
		SeriesSolarCF: solarCF,
		SeriesDemand:  demand,
	}

	if cfg.OutputFile != "" {
		outputVars := cfg.OutputVariables
		if len(outputVars) == 0 {
			outputVars = map[string]string{
				SeriesT2M:     SeriesT2M,
				SeriesHDD:     SeriesHDD,
				SeriesCDD:     SeriesCDD,
				SeriesSolarCF: SeriesSolarCF,
				SeriesDemand:  SeriesDemand,
			}
		}
		o, err := NewOutputter(cfg.OutputFile, outputVars, nil)
		if err != nil {
			return nil, err
		}
		if err := o.Output(series); err != nil {
			return nil, err
		}
		log.Printf("energymet: wrote %s", cfg.OutputFile)
	}
	return series, nil
}

func readCoefficients(cfg Config) (map[string]Coefficients, error) {
	if cfg.CoefficientFile == "" {
		return nil, fmt.Errorf("energymet: no coefficient table specified")
	}
	if strings.EqualFold(filepath.Ext(cfg.CoefficientFile), ".xlsx") {
		sheet := cfg.CoefficientSheet
		if sheet == "" {
			return nil, fmt.Errorf("energymet: coefficient table %s is a workbook; set CoefficientSheet", cfg.CoefficientFile)
		}
		return ReadCoefficientsXLSX(cfg.CoefficientFile, sheet)
	}
	return ReadCoefficientsCSV(cfg.CoefficientFile)
}
