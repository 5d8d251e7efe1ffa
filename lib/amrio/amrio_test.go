package amrio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testHeaderLines is the Header file of a 2D, two-level plotfile on the
// unit square: an 8x8 base grid split into two boxes along x, and a 16x16
// refined level covering [0.25, 0.75] x [0.25, 0.75] with two boxes.
func testHeaderLines() []string {
	return []string{
		"HyperCLaw-V1.1",
		"2",
		"density",
		"temp",
		"2",
		"0.5",
		"1",
		"0 0",
		"1 1",
		"2",
		"((0,0) (7,7) (0,0)) ((0,0) (15,15) (0,0))",
		"10 20",
		"0.125 0.125",
		"0.0625 0.0625",
		"0",
		"0",
		"0 2 0.5",
		"10",
		"0 0.5",
		"0 1",
		"0.5 1",
		"0 1",
		"Level_0/Cell",
		"1 2 0.5",
		"20",
		"0.25 0.5",
		"0.25 0.75",
		"0.5 0.75",
		"0.25 0.75",
		"Level_1/Cell",
	}
}

// Line indices into testHeaderLines used by the corruption tests.
const (
	lineNDims     = 4
	lineGeoLow    = 7
	lineGridSizes = 10
	lineDx0       = 12
	lineSanity    = 15
	lineLevel0    = 16
	lineBox0X     = 18
)

func testCell0Lines() []string {
	return []string{
		"Version_1.0",
		"1",
		"2",
		"0",
		"(2 0",
		"((0,0) (3,7) (0,0))",
		"((4,0) (7,7) (0,0))",
		")",
		"2",
		"FabOnDisk: Cell_D_00000 0",
		"FabOnDisk: Cell_D_00001 2048",
	}
}

func testCell1Lines() []string {
	return []string{
		"Version_1.0",
		"1",
		"2",
		"0",
		"(2 0",
		"((4,4) (7,11) (0,0))",
		"((8,4) (11,11) (0,0))",
		")",
		"2",
		"FabOnDisk: Cell_D_00000 0",
		"FabOnDisk: Cell_D_00000 4096",
	}
}

// Line indices into the cell-index fixtures.
const (
	lineCellNVars   = 2
	lineCellWindow0 = 5
	lineCellConfirm = 8
	lineCellFab0    = 9
)

func testPlotfileFiles() map[string][]string {
	return map[string][]string{
		"Header":         testHeaderLines(),
		"Level_0/Cell_H": testCell0Lines(),
		"Level_1/Cell_H": testCell1Lines(),
	}
}

// unitPlotfileFiles is a single-level plotfile covering [0,1]^2 with one
// 8x8 box, the smallest header the grammar allows.
func unitPlotfileFiles() map[string][]string {
	return map[string][]string{
		"Header": {
			"HyperCLaw-V1.1",
			"1",
			"density",
			"2",
			"0.0",
			"0",
			"0 0",
			"1 1",
			"",
			"((0,0) (7,7) (0,0))",
			"0",
			"0.125 0.125",
			"0",
			"0",
			"0 1 0.0",
			"0",
			"0 1",
			"0 1",
			"Level_0/Cell",
		},
		"Level_0/Cell_H": {
			"Version_1.0",
			"1",
			"1",
			"0",
			"(1 0",
			"((0,0) (7,7) (0,0))",
			")",
			"1",
			"FabOnDisk: Cell_D_00000 0",
		},
	}
}

// writePlotfile lays the given files out under a fresh temporary plotfile
// directory and returns that directory.
func writePlotfile(t *testing.T, files map[string][]string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "plt00010")
	for name, lines := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Could not create %s: %s", filepath.Dir(path), err.Error())
		}
		data := []byte(strings.Join(lines, "\n") + "\n")
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Could not write %s: %s", path, err.Error())
		}
	}
	return dir
}
