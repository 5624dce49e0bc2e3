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
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/sparse"
)

// Reanalysis variable keys with fixed unit conversions.
const (
	// VarT2M is 2-meter air temperature, stored in Kelvin.
	VarT2M = "t2m"
	// VarSSRD is surface solar radiation downwards, stored in J h-1 m-2.
	VarSSRD = "ssrd"
)

const (
	kelvinOffset    = 273.15
	secondsPerHour  = 3600.
	lonCoordinate   = "longitude"
	latCoordinate   = "latitude"
	countryNameAttr = "NAME_LONG"
)

// ReadField reads the named variable from a NetCDF reanalysis file and
// returns it together with the file's coordinate grid. Packed variables
// (scale_factor/add_offset attributes) are unpacked, and known variable
// keys are converted to model units: "t2m" Kelvin to degrees Celsius,
// "ssrd" J h-1 m-2 to W m-2. Unrecognized keys pass through unconverted
// with a logged warning, since new variables may be added upstream.
func ReadField(filename, key string) (*sparse.DenseArray, Grid, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, Grid{}, fmt.Errorf("energymet: opening reanalysis file: %v", err)
	}
	defer f.Close()
	ff, err := cdf.Open(f)
	if err != nil {
		return nil, Grid{}, fmt.Errorf("energymet: reading reanalysis file %s: %v", filename, err)
	}

	lons, err := readCoord(ff, lonCoordinate)
	if err != nil {
		return nil, Grid{}, err
	}
	lats, err := readCoord(ff, latCoordinate)
	if err != nil {
		return nil, Grid{}, err
	}
	grid, err := NewGrid(lons, lats)
	if err != nil {
		return nil, Grid{}, err
	}

	data, err := readVar(ff, key)
	if err != nil {
		return nil, Grid{}, err
	}
	convertUnits(data, key)

	if err := grid.CheckShape(data); err != nil {
		return nil, Grid{}, err
	}
	return data, grid, nil
}

// readVar reads a whole variable from an open NetCDF file, unpacking
// short-integer storage if the file uses it.
func readVar(ff *cdf.File, key string) (*sparse.DenseArray, error) {
	dims := ff.Header.Lengths(key)
	if len(dims) == 0 {
		return nil, fmt.Errorf("energymet: read netcdf: variable %v not in file", key)
	}
	r := ff.Reader(key, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil && err != io.EOF {
		return nil, fmt.Errorf("energymet: read netcdf variable %s: %v", key, err)
	}
	data := sparse.ZerosDense(dims...)
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []int32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []int16:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("energymet: read netcdf variable %s: unsupported storage type %T", key, buf)
	}
	// ERA5 distributions pack variables as shorts with a linear transform.
	if scale, ok := attrFloat(ff, key, "scale_factor"); ok {
		data.Scale(scale)
	}
	if offset, ok := attrFloat(ff, key, "add_offset"); ok {
		for i := range data.Elements {
			data.Elements[i] += offset
		}
	}
	return data, nil
}

func readCoord(ff *cdf.File, name string) ([]float64, error) {
	data, err := readVar(ff, name)
	if err != nil {
		return nil, err
	}
	if len(data.Shape) != 1 {
		return nil, fmt.Errorf("energymet: coordinate variable %s has shape %v; want 1 dimension", name, data.Shape)
	}
	return data.Elements, nil
}

// attrFloat fetches a numeric attribute of a variable, if present.
func attrFloat(ff *cdf.File, v, name string) (float64, bool) {
	attr := ff.Header.GetAttribute(v, name)
	if attr == nil {
		return 0, false
	}
	switch a := attr.(type) {
	case []float64:
		if len(a) > 0 {
			return a[0], true
		}
	case []float32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []int32:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	case []int16:
		if len(a) > 0 {
			return float64(a[0]), true
		}
	}
	return 0, false
}

// convertUnits applies the fixed unit conversion for the given variable
// key in place.
func convertUnits(data *sparse.DenseArray, key string) {
	switch key {
	case VarT2M:
		for i := range data.Elements {
			data.Elements[i] -= kelvinOffset
		}
	case VarSSRD:
		data.Scale(1 / secondsPerHour)
	default:
		log.Printf("energymet: no unit conversion registered for variable %q; passing values through unchanged", key)
	}
}

// LookupCountry finds a country's boundary polygons in a Natural
// Earth-style admin-0 countries shapefile, matching on the NAME_LONG
// attribute (e.g. "United Kingdom", "Czech Republic"). All matching
// records contribute their polygon parts. A country with no matching
// record yields a LookupError.
func LookupCountry(shapefile, country string) ([]geom.Polygonal, error) {
	dec, err := shp.NewDecoder(shapefile)
	if err != nil {
		return nil, fmt.Errorf("energymet: opening boundary shapefile: %v", err)
	}
	defer dec.Close()

	var polys []geom.Polygonal
	for {
		g, fields, more := dec.DecodeRowFields(countryNameAttr)
		if !more {
			break
		}
		if fields[countryNameAttr] != country {
			continue
		}
		switch t := g.(type) {
		case geom.Polygon:
			polys = append(polys, t)
		case geom.MultiPolygon:
			for _, p := range t.Polygons() {
				polys = append(polys, p)
			}
		default:
			return nil, fmt.Errorf("energymet: boundary record for %s has non-polygonal geometry %T", country, g)
		}
	}
	if err := dec.Error(); err != nil {
		return nil, fmt.Errorf("energymet: reading boundary shapefile: %v", err)
	}
	if len(polys) == 0 {
		return nil, LookupError{Key: country, Source: "boundary dataset " + shapefile}
	}
	return polys, nil
}

// ReadCoefficientsCSV loads a published demand-model coefficient table
// from a CSV file. The first column holds the country key (spaces
// replaced by underscores); the remaining columns are the intercept, the
// HDD coefficient, the CDD coefficient, and any additional regressor
// coefficients, in order. A single header row is skipped.
func ReadCoefficientsCSV(filename string) (map[string]Coefficients, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("energymet: opening coefficient table: %v", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("energymet: reading coefficient table %s: %v", filename, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("energymet: coefficient table %s has no data rows", filename)
	}
	out := make(map[string]Coefficients, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 4 {
			return nil, fmt.Errorf("energymet: coefficient table %s row %d: want at least 4 columns, have %d", filename, i+2, len(row))
		}
		vals := make([]float64, len(row)-1)
		for j, s := range row[1:] {
			vals[j], err = strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("energymet: coefficient table %s row %d column %d: %v", filename, i+2, j+2, err)
			}
		}
		out[strings.TrimSpace(row[0])] = Coefficients{
			Intercept: vals[0],
			HDD:       vals[1],
			CDD:       vals[2],
			Extra:     vals[3:],
		}
	}
	return out, nil
}
