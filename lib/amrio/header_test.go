package amrio

import (
	"errors"
	"strings"
	"testing"

	"github.com/mtessier/plotmeta/lib/eq"
)

func TestOpen(t *testing.T) {
	dir := writePlotfile(t, testPlotfileFiles())
	h, err := Open(dir)
	if err != nil {
		t.Fatalf("Expected valid parse, got error message %s.", err.Error())
	}

	if v := h.Version(); v != "HyperCLaw-V1.1" {
		t.Errorf("Expected version 'HyperCLaw-V1.1', got '%s'.", v)
	}
	if f := h.Fields(); !eq.Strings(f, []string{"density", "temp"}) {
		t.Errorf("Expected fields [density temp], got %s.", f)
	}
	if n := h.NVars(); n != 2 {
		t.Errorf("Expected 2 fields, got %d.", n)
	}
	if n := h.NDims(); n != 2 {
		t.Errorf("Expected 2 dimensions, got %d.", n)
	}
	if x := h.Time(); x != 0.5 {
		t.Errorf("Expected time 0.5, got %g.", x)
	}
	if lv := h.MaxLevel(); lv != 1 {
		t.Errorf("Expected max level 1, got %d.", lv)
	}
	if lv := h.LimitLevel(); lv != 1 {
		t.Errorf("Expected limit level 1, got %d.", lv)
	}
	if lo := h.GeoLow(); !eq.Float64s(lo, []float64{0, 0}) {
		t.Errorf("Expected geo_low [0 0], got %v.", lo)
	}
	if hi := h.GeoHigh(); !eq.Float64s(hi, []float64{1, 1}) {
		t.Errorf("Expected geo_high [1 1], got %v.", hi)
	}
	if f := h.RefinementFactors(); !eq.Ints(f, []int{2}) {
		t.Errorf("Expected refinement factors [2], got %v.", f)
	}
	sizes := h.GridSizes()
	if len(sizes) != 2 || !eq.Ints(sizes[0], []int{8, 8}) ||
		!eq.Ints(sizes[1], []int{16, 16}) {
		t.Errorf("Expected grid sizes [[8 8] [16 16]], got %v.", sizes)
	}
	if s := h.StepNumbers(); !eq.Ints(s, []int{10, 20}) {
		t.Errorf("Expected step numbers [10 20], got %v.", s)
	}
	dx := h.Dx()
	if len(dx) != 2 || !eq.Float64s(dx[0], []float64{0.125, 0.125}) ||
		!eq.Float64s(dx[1], []float64{0.0625, 0.0625}) {
		t.Errorf("Expected dx [[0.125 0.125] [0.0625 0.0625]], got %v.", dx)
	}
	if c := h.CoordSystem(); c != 0 {
		t.Errorf("Expected coordinate system 0, got %d.", c)
	}
	if s := h.LevelStep(); s != 10 {
		t.Errorf("Expected level step 10, got %d.", s)
	}

	// The cross-sequence correspondence: every level has as many cells as
	// boxes, and as many centers as boxes.
	for lv := 0; lv <= h.LimitLevel(); lv++ {
		nBox := len(h.Boxes(lv))
		if nBox != 2 {
			t.Errorf("Expected 2 boxes at level %d, got %d.", lv, nBox)
		}
		if n := len(h.Centers(lv)); n != nBox {
			t.Errorf("Level %d has %d boxes but %d centers.", lv, nBox, n)
		}
		if n := len(h.Cells(lv)); n != nBox {
			t.Errorf("Level %d has %d boxes but %d cells.", lv, nBox, n)
		}
	}

	box := h.Boxes(0)[0]
	if box[0] != [2]float64{0, 0.5} || box[1] != [2]float64{0, 1} {
		t.Errorf("Expected level 0 box 0 [[0 0.5] [0 1]], got %v.", box)
	}
	if c := h.Centers(0)[0]; !eq.Float64s(c, []float64{0.25, 0.5}) {
		t.Errorf("Expected level 0 box 0 center [0.25 0.5], got %v.", c)
	}
	if p := h.CellPath(0); p != "Level_0/Cell" {
		t.Errorf("Expected cell path 'Level_0/Cell', got '%s'.", p)
	}
	if p := h.CellPath(1); p != "Level_1/Cell" {
		t.Errorf("Expected cell path 'Level_1/Cell', got '%s'.", p)
	}
}

func TestOpenLimitLevel(t *testing.T) {
	dir := writePlotfile(t, testPlotfileFiles())

	h, err := Open(dir, Config{LimitLevel: 0})
	if err != nil {
		t.Fatalf("Expected valid parse, got error message %s.", err.Error())
	}
	if lv := h.LimitLevel(); lv != 0 {
		t.Errorf("Expected limit level 0, got %d.", lv)
	}
	if lv := h.MaxLevel(); lv != 1 {
		t.Errorf("Expected max level 1, got %d.", lv)
	}
	if n := len(h.Boxes(0)); n != 2 {
		t.Errorf("Expected 2 boxes at level 0, got %d.", n)
	}

	if _, err := Open(dir, Config{LimitLevel: 5}); err == nil {
		t.Errorf("Expected limit level 5 to fail on a max level 1 file.")
	}
}

func TestOpenHeaderOnly(t *testing.T) {
	dir := writePlotfile(t, testPlotfileFiles())
	h, err := Open(dir, Config{LimitLevel: -1, HeaderOnly: true})
	if err != nil {
		t.Fatalf("Expected valid parse, got error message %s.", err.Error())
	}
	for lv := 0; lv <= h.LimitLevel(); lv++ {
		if n := len(h.Cells(lv)); n != 0 {
			t.Errorf("Expected no cells at level %d, got %d.", lv, n)
		}
		if n := len(h.Boxes(lv)); n != 2 {
			t.Errorf("Expected 2 boxes at level %d, got %d.", lv, n)
		}
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open("plotfile_that_does_not_exist"); err == nil {
		t.Errorf("Expected open of a missing plotfile to fail.")
	}
}

func TestOpenMalformed(t *testing.T) {
	tests := []struct {
		name  string
		line  int
		text  string
	}{
		{"bad sanity literal", lineSanity, "1"},
		{"short grid descriptor", lineGridSizes, "((0,0) (7,7) (0,0))"},
		{"non-numeric dimension count", lineNDims, "two"},
		{"inverted domain bounds", lineGeoLow, "2 2"},
		{"short dx line", lineDx0, "0.125"},
		{"non-numeric box bound", lineBox0X, "0 x"},
		{"negative box count", lineLevel0, "0 -1 0.5"},
		{"negative grid-size entry", lineGridSizes,
			"((0,0) (-2,7) (0,0)) ((0,0) (15,15) (0,0))"},
	}

	for i := range tests {
		files := testPlotfileFiles()
		files["Header"][tests[i].line] = tests[i].text
		dir := writePlotfile(t, files)

		_, err := Open(dir)
		if err == nil {
			t.Errorf("Expected parse with %s to fail, but succeeded.",
				tests[i].name)
		} else if !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("Expected %s to give ErrMalformedHeader, got '%s'.",
				tests[i].name, err.Error())
		}
	}
}

func TestOpenTruncated(t *testing.T) {
	files := testPlotfileFiles()
	files["Header"] = files["Header"][:20]
	dir := writePlotfile(t, files)

	_, err := Open(dir)
	if err == nil {
		t.Fatalf("Expected parse of a truncated header to fail.")
	}
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("Expected ErrMalformedHeader, got '%s'.", err.Error())
	}
}

func TestOpenLevelOutOfSequence(t *testing.T) {
	files := testPlotfileFiles()
	files["Header"][lineLevel0] = "1 2 0.5"
	dir := writePlotfile(t, files)

	_, err := Open(dir)
	if err == nil {
		t.Fatalf("Expected an out-of-sequence level descriptor to fail.")
	}
	if !errors.Is(err, ErrStructureMismatch) {
		t.Errorf("Expected ErrStructureMismatch, got '%s'.", err.Error())
	}
}

func TestFieldIndex(t *testing.T) {
	dir := writePlotfile(t, testPlotfileFiles())
	h, err := Open(dir, Config{LimitLevel: -1, HeaderOnly: true})
	if err != nil {
		t.Fatalf("Expected valid parse, got error message %s.", err.Error())
	}

	if i, err := h.FieldIndex("density"); err != nil || i != 0 {
		t.Errorf("Expected FieldIndex(density) = 0, got %d, %v.", i, err)
	}
	if i, err := h.FieldIndex("temp"); err != nil || i != 1 {
		t.Errorf("Expected FieldIndex(temp) = 1, got %d, %v.", i, err)
	}

	_, err = h.FieldIndex("pressure")
	if err == nil {
		t.Fatalf("Expected FieldIndex(pressure) to fail.")
	}
	if !errors.Is(err, ErrFieldNotFound) {
		t.Errorf("Expected ErrFieldNotFound, got '%s'.", err.Error())
	}
	if !strings.Contains(err.Error(), "density, temp") {
		t.Errorf("Expected the error to list the available fields, "+
			"got '%s'.", err.Error())
	}
}
