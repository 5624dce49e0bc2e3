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

// Package energymet converts gridded reanalysis weather data into
// country-aggregated energy-system time series: solar photovoltaic
// capacity factor, heating and cooling degree days, and weather-dependent
// electricity demand, following the methods of Bloomfield et al. (2020),
// https://doi.org/10.1002/met.1858.
//
// Fields are loaded from NetCDF files on a regular longitude/latitude
// grid, restricted to one country's land area using its boundary polygons,
// spatially averaged, and fed through closed-form physical and statistical
// models. Every operation is a pure function of its inputs; nothing here
// keeps state between invocations except an optional in-memory mask cache.
package energymet

// Version gives the version number.
const Version = "0.1.0"
