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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/energymet"
	"github.com/spf13/cast"
)

// PipelineConfig assembles an energymet.Config from the configuration
// store, expanding environment variables in all path and name settings.
func PipelineConfig(cfg *viper.Viper) (energymet.Config, error) {
	c := energymet.Config{
		Country:          os.ExpandEnv(cfg.GetString("Country")),
		DataDir:          os.ExpandEnv(cfg.GetString("DataDir")),
		FileName:         os.ExpandEnv(cfg.GetString("FileName")),
		BoundaryFile:     os.ExpandEnv(cfg.GetString("BoundaryFile")),
		CoefficientFile:  os.ExpandEnv(cfg.GetString("CoefficientFile")),
		CoefficientSheet: os.ExpandEnv(cfg.GetString("CoefficientSheet")),
		TemperatureVar:   os.ExpandEnv(cfg.GetString("TemperatureVar")),
		IrradianceVar:    os.ExpandEnv(cfg.GetString("IrradianceVar")),
	}
	if c.Country == "" {
		return c, fmt.Errorf("energymet: you need to specify a Country configuration variable")
	}
	if c.FileName == "" {
		return c, fmt.Errorf("energymet: you need to specify a FileName configuration variable")
	}
	var err error
	c.OutputFile, err = checkOutputFile(os.ExpandEnv(cfg.GetString("OutputFile")))
	if err != nil {
		return c, err
	}
	c.OutputVariables, err = checkOutputVars(GetStringMapString("OutputVariables", cfg))
	if err != nil {
		return c, err
	}
	return c, nil
}

// checkOutputFile makes sure that the output file's directory exists and
// expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`energymet: you need to specify an output file configuration variable (for example: OutputFile="output.csv")`)
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("energymet: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkOutputVars expands environment variables in the output variable
// definitions.
func checkOutputVars(vars map[string]string) (map[string]string, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("energymet: there are no variables specified for output. Please fill in " +
			"the OutputVariables configuration and try again.")
	}
	for k, v := range vars {
		vars[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return vars, nil
}

// GetStringMapString returns a map of strings from the given
// configuration variable, handling the JSON encoding used when the value
// arrives through a command-line flag.
func GetStringMapString(varName string, cfg *viper.Viper) map[string]string {
	i := cfg.Get(varName)
	switch i.(type) {
	case map[string]string:
		return i.(map[string]string)
	case map[string]interface{}:
		return cast.ToStringMapString(i)
	case string:
		b := bytes.NewBuffer(([]byte)(i.(string)))
		d := json.NewDecoder(b)
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			panic(err)
		}
		return o
	default:
		panic(fmt.Errorf("invalid type for getStringMapString variable %s: %#v", varName, i))
	}
}
