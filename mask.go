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
	"runtime"
	"sync"

	"github.com/ctessum/geom"
	"github.com/ctessum/requestcache"
	"github.com/ctessum/sparse"
)

// BuildMask creates a country mask for the given grid: a [lat, lon] array
// holding 1.0 where the cell center lies inside (or on the edge of) any of
// the country's polygon parts and 0.0 elsewhere. Countries split across
// multiple shapefile records or multipolygon parts (e.g. archipelagos) are
// handled by testing every part; a point is in the country if it is in any
// part. The point-in-polygon test is ctessum/geom's ray casting, which
// counts boundary points as inside.
func BuildMask(polys []geom.Polygonal, g Grid) (*sparse.DenseArray, error) {
	if len(polys) == 0 {
		return nil, fmt.Errorf("energymet: cannot build mask from zero polygon parts")
	}
	// Per-part bounding boxes avoid running the full containment test for
	// cells far from the country.
	bounds := make([]*geom.Bounds, len(polys))
	for i, p := range polys {
		bounds[i] = p.Bounds()
	}
	mask := sparse.ZerosDense(g.Ny(), g.Nx())
	for j, lat := range g.Lats {
		for i, lon := range g.Lons {
			pt := geom.Point{X: lon, Y: lat}
			ptBounds := geom.NewBoundsPoint(pt)
			for k, p := range polys {
				if !bounds[k].Overlaps(ptBounds) {
					continue
				}
				if pt.Within(p) != geom.Outside {
					mask.Set(1, j, i)
					break
				}
			}
		}
	}
	return mask, nil
}

// MaskCache memoizes country masks. A mask depends only on the country
// polygons and the grid, both of which are static, so repeated pipeline
// runs over monthly files of the same reanalysis product share one mask.
// The zero value is ready to use.
type MaskCache struct {
	cache *requestcache.Cache
	once  sync.Once

	// Size is the maximum number of masks held in memory. If unset,
	// defaultMaskCacheSize is used. Size can only be changed before the
	// first call to Mask.
	Size int
}

const defaultMaskCacheSize = 20

type maskRequest struct {
	polys []geom.Polygonal
	grid  Grid
}

// Mask returns the mask for the given country polygons and grid,
// computing it on the first request and serving it from memory afterward.
// country is only used to key the cache.
func (mc *MaskCache) Mask(ctx context.Context, country string, polys []geom.Polygonal, g Grid) (*sparse.DenseArray, error) {
	mc.once.Do(func() {
		size := mc.Size
		if size == 0 {
			size = defaultMaskCacheSize
		}
		mc.cache = requestcache.NewCache(func(ctx context.Context, request interface{}) (interface{}, error) {
			r := request.(maskRequest)
			return BuildMask(r.polys, r.grid)
		}, runtime.GOMAXPROCS(-1), requestcache.Deduplicate(), requestcache.Memory(size))
	})
	req := mc.cache.NewRequest(ctx, maskRequest{polys: polys, grid: g},
		fmt.Sprintf("mask_%s_%s", country, g.fingerprint()))
	result, err := req.Result()
	if err != nil {
		return nil, err
	}
	return result.(*sparse.DenseArray), nil
}
