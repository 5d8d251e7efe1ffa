package amrio

import (
	"fmt"

	"github.com/mtessier/plotmeta/lib/geometry"
)

// ReconstructBoxes computes physical bounding boxes for the given index
// windows, one slice per level starting at level 0, using only the header's
// grid metadata. Each axis uses its own domain bounds, grid size, and cell
// width for that level. The box bound on an axis is the cell-center
// coordinate at the start/stop index minus/plus half the cell width.
//
// Applied to a level's own parsed windows this reproduces the directly
// parsed boxes to within floating tolerance, which makes it usable both as
// a cross-check and to derive new box sets from pure integer arithmetic.
func (h *Header) ReconstructBoxes(windows [][]Window) ([][]geometry.Box, error) {
	if len(windows) > h.limitLevel+1 {
		return nil, fmt.Errorf("windows were supplied for %d levels, but "+
			"the header only describes levels 0 through %d.",
			len(windows), h.limitLevel)
	}

	all := make([][]geometry.Box, len(windows))
	for lv := range windows {
		grids := make([][]float64, h.ndims)
		for d := 0; d < h.ndims; d++ {
			grids[d] = geometry.CellCenters(
				h.geoLow[d], h.geoHigh[d], h.dx[lv][d], h.gridSizes[lv][d],
			)
		}

		boxes := make([]geometry.Box, len(windows[lv]))
		for i, w := range windows[lv] {
			if len(w.Start) != h.ndims || len(w.Stop) != h.ndims {
				return nil, fmt.Errorf("level %d window %d has %d/%d "+
					"entries in a %d-dimensional plotfile.",
					lv, i, len(w.Start), len(w.Stop), h.ndims)
			}
			box := make(geometry.Box, h.ndims)
			for d := 0; d < h.ndims; d++ {
				grid, hdx := grids[d], h.dx[lv][d]/2
				if w.Start[d] < 0 || w.Stop[d] >= len(grid) {
					return nil, fmt.Errorf("level %d window %d spans "+
						"indices %d through %d on axis %d, outside the "+
						"%d-point grid.", lv, i, w.Start[d], w.Stop[d], d,
						len(grid))
				}
				box[d] = [2]float64{
					grid[w.Start[d]] - hdx, grid[w.Stop[d]] + hdx,
				}
			}
			boxes[i] = box
		}
		all[lv] = boxes
	}
	return all, nil
}
