/*package amrio reads and writes the header metadata of block-structured AMR
plotfiles. A plotfile is a directory containing a plaintext Header file that
describes the refinement hierarchy and the bounding boxes at every level,
plus one cell-index file per level that maps each box to an integer index
window and to a (file, byte offset) location inside a raw binary data file.

amrio parses both grammars into a single immutable Header value. It does not
read the binary cell payloads themselves: consumers get the file names and
offsets and do their own decoding.

The i-th box of a level, the i-th index window, and the i-th (file, offset)
pointer all describe the same physical cell. That positional correspondence
is what every downstream operation (compatibility checks, file grouping,
cross-plotfile pairing) relies on, so windows and pointers are stored
together in a single Cell record and are never reordered.*/
package amrio

import (
	"fmt"
	"strings"

	"github.com/mtessier/plotmeta/lib/geometry"
)

// Window is an integer index window in a level's logical grid: the cells a
// box covers run from Start to Stop inclusive along each axis.
type Window struct {
	Start, Stop []int
}

// Cell locates one box's payload: its index window, the binary file that
// backs it, and the byte offset inside that file where the payload begins.
type Cell struct {
	Window
	FileName string
	Offset   int64
}

// level holds the per-level data parsed from the Header file and the
// matching cell-index file. boxes, centers, and cells are parallel: element
// i of each describes the same cell.
type level struct {
	boxes    []geometry.Box
	centers  [][]float64
	cellPath string
	cells    []Cell
}

// Header is the parsed header metadata of one plotfile. It is built once by
// Open and read-only afterward: derived headers are written to disk with
// WriteHeader, never by mutating an existing Header.
type Header struct {
	dir     string
	version string
	fields  []string

	ndims      int
	time       float64
	maxLevel   int
	limitLevel int

	geoLow, geoHigh []float64
	factors         []int
	gridSizes       [][]int
	stepNumbers     []int
	dx              [][]float64
	coordSys        int
	levelStep       int

	levels []level
}

// Dir returns the plotfile directory the header was parsed from.
func (h *Header) Dir() string { return h.dir }

// Version returns the plotfile format version string.
func (h *Header) Version() string { return h.version }

// Fields returns the declared field names in index order.
func (h *Header) Fields() []string { return h.fields }

// NVars returns the number of fields stored per cell.
func (h *Header) NVars() int { return len(h.fields) }

// NDims returns the number of spatial dimensions.
func (h *Header) NDims() int { return h.ndims }

// Time returns the simulation time of the snapshot.
func (h *Header) Time() float64 { return h.time }

// MaxLevel returns the finest refinement level recorded in the file.
func (h *Header) MaxLevel() int { return h.maxLevel }

// LimitLevel returns the finest level that was actually parsed. It equals
// MaxLevel unless a lower limit was requested at Open time.
func (h *Header) LimitLevel() int { return h.limitLevel }

// GeoLow returns the lower domain bounds, one value per axis.
func (h *Header) GeoLow() []float64 { return h.geoLow }

// GeoHigh returns the upper domain bounds, one value per axis.
func (h *Header) GeoHigh() []float64 { return h.geoHigh }

// RefinementFactors returns the per-level refinement factors.
func (h *Header) RefinementFactors() []int { return h.factors }

// GridSizes returns, per level, the number of grid points along each axis.
func (h *Header) GridSizes() [][]int { return h.gridSizes }

// StepNumbers returns the per-level step numbers.
func (h *Header) StepNumbers() []int { return h.stepNumbers }

// Dx returns, per level, the cell width along each axis.
func (h *Header) Dx() [][]float64 { return h.dx }

// CoordSystem returns the coordinate-system code.
func (h *Header) CoordSystem() int { return h.coordSys }

// LevelStep returns the step counter recorded with the level-0 box block.
func (h *Header) LevelStep() int { return h.levelStep }

// Boxes returns the bounding boxes of level lv, in file order.
func (h *Header) Boxes(lv int) []geometry.Box { return h.levels[lv].boxes }

// Centers returns the box centers of level lv, parallel to Boxes(lv).
func (h *Header) Centers(lv int) [][]float64 { return h.levels[lv].centers }

// CellPath returns the data-file prefix of level lv, relative to the
// plotfile directory.
func (h *Header) CellPath(lv int) string { return h.levels[lv].cellPath }

// Cells returns the cell records of level lv, parallel to Boxes(lv). It is
// empty when the header was opened with HeaderOnly set.
func (h *Header) Cells(lv int) []Cell { return h.levels[lv].cells }

// FieldIndex returns the index of the named field in the plotfile's data,
// or an error wrapping ErrFieldNotFound naming the fields that do exist.
func (h *Header) FieldIndex(name string) (int, error) {
	for i, f := range h.fields {
		if f == name { return i, nil }
	}
	return -1, fmt.Errorf("%w: the field '%s' is not in the plotfile %s. "+
		"The available fields are: %s.", ErrFieldNotFound, name, h.dir,
		strings.Join(h.fields, ", "))
}
