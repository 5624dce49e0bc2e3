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

package energymetutil

import (
	"testing"

	"github.com/lnashier/viper"
)

func TestGetStringMapString(t *testing.T) {
	cfg := viper.New()
	// Values arriving through command-line flags are JSON-encoded
	// strings.
	cfg.Set("OutputVariables", `{"Demand":"Demand","HDD":"HDD"}`)
	m := GetStringMapString("OutputVariables", cfg)
	if m["Demand"] != "Demand" || m["HDD"] != "HDD" {
		t.Errorf("unexpected map contents: %v", m)
	}

	cfg.Set("OutputVariables", map[string]interface{}{"CDD": "CDD"})
	m = GetStringMapString("OutputVariables", cfg)
	if m["CDD"] != "CDD" {
		t.Errorf("unexpected map contents: %v", m)
	}
}

func TestPipelineConfig_missingCountry(t *testing.T) {
	cfg := viper.New()
	cfg.Set("FileName", "ERA5_1979_01.nc")
	if _, err := PipelineConfig(cfg); err == nil {
		t.Error("missing Country should fail")
	}
}

func TestPipelineConfig(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Country", "United Kingdom")
	cfg.Set("DataDir", t.TempDir())
	cfg.Set("FileName", "ERA5_1979_01.nc")
	cfg.Set("BoundaryFile", "countries.shp")
	cfg.Set("CoefficientFile", "coefficients.csv")
	cfg.Set("TemperatureVar", "t2m")
	cfg.Set("IrradianceVar", "ssrd")
	cfg.Set("OutputFile", "out.csv")
	cfg.Set("OutputVariables", map[string]interface{}{"Demand": "Demand"})

	c, err := PipelineConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Country != "United Kingdom" {
		t.Errorf("Country: want United Kingdom, have %s", c.Country)
	}
	if c.OutputVariables["Demand"] != "Demand" {
		t.Errorf("OutputVariables wrong: %v", c.OutputVariables)
	}
}
