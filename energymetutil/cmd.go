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
	"context"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/energymet"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to EnergyMet.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Country",
			usage: `
              Country is the long-form country name as it appears in the
              boundary dataset, e.g. 'United Kingdom' or 'Czech Republic'.`,
			shorthand:  "c",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "DataDir",
			usage: `
              DataDir is the directory holding the reanalysis NetCDF files.`,
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FileName",
			usage: `
              FileName is the name of the reanalysis NetCDF file within
              DataDir, e.g. 'ERA5_1979_01.nc'.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "BoundaryFile",
			usage: `
              BoundaryFile is the path to the admin-0 countries shapefile
              (Natural Earth 10m cultural vectors).`,
			defaultVal: "${HOME}/.energymet/ne_10m_admin_0_countries.shp",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "CoefficientFile",
			usage: `
              CoefficientFile is the path to the published demand-model
              regression coefficient table (.csv, or .xlsx together with
              CoefficientSheet).`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "CoefficientSheet",
			usage: `
              CoefficientSheet names the workbook sheet holding the
              coefficient table when CoefficientFile is an xlsx file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "TemperatureVar",
			usage: `
              TemperatureVar is the NetCDF variable key for 2-meter
              temperature.`,
			defaultVal: "t2m",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrradianceVar",
			usage: `
              IrradianceVar is the NetCDF variable key for surface solar
              irradiance.`,
			defaultVal: "ssrd",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the CSV file to write the derived
              time series to.`,
			shorthand:  "o",
			defaultVal: "energymet_output.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables maps output column names to expressions over
              the pipeline series T2M, HDD, CDD, SolarCF, and Demand.`,
			defaultVal: map[string]string{
				"T2M":     "T2M",
				"HDD":     "HDD",
				"CDD":     "CDD",
				"SolarCF": "SolarCF",
				"Demand":  "Demand",
			},
			flagsets: []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("energymet: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "energymet",
	Short: "Convert reanalysis weather data to country-level energy variables.",
	Long: `EnergyMet converts gridded reanalysis weather data into country-aggregated
energy-system time series: solar photovoltaic capacity factor, heating and
cooling degree days, and weather-dependent electricity demand.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'ENERGYMET_var' where 'var' is the name of the variable to be set. Many
configuration variables are additionally allowed to contain environment
variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of EnergyMet.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("EnergyMet v%s\n", energymet.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the conversion pipeline.",
	Long: `run derives the degree-day, solar capacity factor, and
weather-dependent demand series for one country from one reanalysis file
and writes them to the output CSV file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := PipelineConfig(Cfg)
		if err != nil {
			return err
		}
		p := energymet.NewPipeline()
		_, err = p.Run(context.Background(), cfg)
		return err
	},
	DisableAutoGenTag: true,
}
