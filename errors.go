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

import "fmt"

// LookupError is returned when a country cannot be found in a
// reference dataset (boundary shapefile or coefficient table).
// The underlying data is static, so retrying cannot help.
type LookupError struct {
	// Key is the name that was looked up, after any normalization.
	Key string
	// Source describes the dataset that was searched.
	Source string
}

func (e LookupError) Error() string {
	return fmt.Sprintf("energymet: %q not found in %s", e.Key, e.Source)
}

// ShapeError is returned when an array's dimensions do not match the
// grid or mask they are being combined with.
type ShapeError struct {
	Want, Got []int
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("energymet: array shape mismatch: want %v but have %v", e.Want, e.Got)
}

// DegenerateMaskError is returned when a country mask sums to zero,
// meaning the country is not represented at the grid's resolution.
// It is reported instead of silently propagating NaN.
type DegenerateMaskError struct {
	Country string
}

func (e DegenerateMaskError) Error() string {
	if e.Country == "" {
		return "energymet: mask weights sum to zero"
	}
	return fmt.Sprintf("energymet: mask weights for %s sum to zero; country not resolved on this grid", e.Country)
}
