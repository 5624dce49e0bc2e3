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

// Command energymet is a command-line interface for converting reanalysis
// weather data into country-level energy-system time series.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/energymet/energymetutil"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	if err := energymetutil.Root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
