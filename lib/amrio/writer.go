package amrio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mtessier/plotmeta/lib/geometry"
)

// WriteHeader writes a derived plotfile header to outDir: the same grammar
// Open parses, restricted to the supplied field list and describing exactly
// the supplied box set, one slice per level 0..LimitLevel. The source
// header contributes only its global metadata (version, domain bounds,
// refinement factors, grid sizes, cell widths); time and every step number
// are written as zero, since the result is a derived artifact rather than a
// simulation step.
//
// WriteHeader also creates the mirrored Level_<n>/ directory tree so a
// collaborator can drop the binary cell data in afterward. The source
// header itself is never modified.
func (h *Header) WriteHeader(
	outDir string, boxes [][]geometry.Box, fields []string,
) error {
	if len(fields) == 0 {
		return fmt.Errorf("a derived header needs at least one field.")
	}
	for _, f := range fields {
		if _, err := h.FieldIndex(f); err != nil { return err }
	}
	if len(boxes) != h.limitLevel+1 {
		return fmt.Errorf("boxes were supplied for %d levels, but the "+
			"header describes levels 0 through %d.", len(boxes), h.limitLevel)
	}
	for lv := range boxes {
		for i, box := range boxes[lv] {
			if len(box) != h.ndims {
				return fmt.Errorf("level %d box %d spans %d axes in a "+
					"%d-dimensional plotfile.", lv, i, len(box), h.ndims)
			}
		}
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("cannot create the output directory: %w", err)
	}

	name := filepath.Join(outDir, "Header")
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("cannot create the derived header %s: %w",
			name, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	h.writeGlobalHeader(w, boxes, fields)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("cannot write the derived header %s: %w",
			name, err)
	}

	// Mirror the level directory tree for the binary data.
	for lv := 0; lv <= h.limitLevel; lv++ {
		dir := filepath.Join(outDir, fmt.Sprintf("Level_%d", lv))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create the level directory: %w", err)
		}
	}
	return nil
}

// writeGlobalHeader emits the header grammar to w. bufio's error is sticky,
// so the caller checks it once at Flush.
func (h *Header) writeGlobalHeader(
	w *bufio.Writer, boxes [][]geometry.Box, fields []string,
) {
	fmt.Fprintf(w, "%s\n", h.version)
	fmt.Fprintf(w, "%d\n", len(fields))
	for _, f := range fields {
		fmt.Fprintf(w, "%s\n", f)
	}
	fmt.Fprintf(w, "%d\n", h.ndims)
	fmt.Fprintf(w, "0.0\n")
	fmt.Fprintf(w, "%d\n", h.limitLevel)
	fmt.Fprintf(w, "%s\n", joinFloats(h.geoLow))
	fmt.Fprintf(w, "%s\n", joinFloats(h.geoHigh))

	factors := h.factors
	if len(factors) > h.limitLevel {
		factors = factors[:h.limitLevel]
	}
	fmt.Fprintf(w, "%s\n", joinInts(factors))

	tuples := make([]string, h.limitLevel+1)
	for lv := 0; lv <= h.limitLevel; lv++ {
		tuples[lv] = h.gridSizeTuple(lv)
	}
	fmt.Fprintf(w, "%s\n", strings.Join(tuples, " "))

	steps := make([]int, h.limitLevel+1)
	fmt.Fprintf(w, "%s\n", joinInts(steps))

	for lv := 0; lv <= h.limitLevel; lv++ {
		fmt.Fprintf(w, "%s\n", joinFloats(h.dx[lv]))
	}
	fmt.Fprintf(w, "%d\n", h.coordSys)
	fmt.Fprintf(w, "0\n")

	for lv := 0; lv <= h.limitLevel; lv++ {
		fmt.Fprintf(w, "%d %d 0.0\n", lv, len(boxes[lv]))
		fmt.Fprintf(w, "0\n")
		for _, box := range boxes[lv] {
			for d := 0; d < h.ndims; d++ {
				fmt.Fprintf(w, "%s %s\n",
					floatString(box[d][0]), floatString(box[d][1]))
			}
		}
		fmt.Fprintf(w, "Level_%d/Cell\n", lv)
	}
}

// gridSizeTuple re-derives a level's "((lo) (hi) (lo))" descriptor from
// the stored grid point counts, e.g. "((0,0,0) (7,7,7) (0,0,0))".
func (h *Header) gridSizeTuple(lv int) string {
	zeros := make([]string, h.ndims)
	his := make([]string, h.ndims)
	for d := 0; d < h.ndims; d++ {
		zeros[d] = "0"
		his[d] = strconv.Itoa(h.gridSizes[lv][d] - 1)
	}
	lo := strings.Join(zeros, ",")
	return fmt.Sprintf("((%s) (%s) (%s))", lo, strings.Join(his, ","), lo)
}

func floatString(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func joinFloats(xs []float64) string {
	s := make([]string, len(xs))
	for i := range xs {
		s[i] = floatString(xs[i])
	}
	return strings.Join(s, " ")
}

func joinInts(ns []int) string {
	s := make([]string, len(ns))
	for i := range ns {
		s[i] = strconv.Itoa(ns[i])
	}
	return strings.Join(s, " ")
}
