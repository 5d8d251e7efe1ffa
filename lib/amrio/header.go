package amrio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mtessier/plotmeta/lib/geometry"
)

// Config holds the optional knobs for Open.
type Config struct {
	// LimitLevel caps the finest refinement level that is parsed. A
	// negative value means the max level recorded in the Header file, and
	// values above that max level are rejected.
	LimitLevel int
	// HeaderOnly skips the per-level cell-index files, leaving Cells()
	// empty. It makes geometry-only loads much cheaper on plotfiles with
	// many boxes.
	HeaderOnly bool
}

// DefaultConfig is the configuration used when Open is given no Config.
var DefaultConfig = Config{LimitLevel: -1}

// Open parses the Header file of the plotfile directory dir and, unless
// HeaderOnly is set, the cell-index file of every level up to the limit
// level. The returned Header is immutable. Open never returns a partially
// parsed Header: the first grammar violation aborts the whole parse.
func Open(dir string, config ...Config) (*Header, error) {
	cfg := DefaultConfig
	if len(config) > 0 { cfg = config[0] }

	h := &Header{dir: dir}
	if err := h.readGlobalHeader(cfg); err != nil { return nil, err }

	if !cfg.HeaderOnly {
		for lv := 0; lv <= h.limitLevel; lv++ {
			cells, err := h.readCellIndex(lv)
			if err != nil { return nil, err }
			h.levels[lv].cells = cells
		}
	}

	return h, nil
}

// readGlobalHeader consumes the whole Header file. The grammar is strictly
// sequential and order-dependent, so this reads straight through, line by
// line, and fails on the first violation.
func (h *Header) readGlobalHeader(cfg Config) error {
	name := filepath.Join(h.dir, "Header")
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("cannot open the plotfile header %s: %w", name, err)
	}
	defer f.Close()
	r := newLineReader(name, f)

	if h.version, err = r.text(); err != nil { return err }

	nvars, err := r.intLine()
	if err != nil { return err }
	if nvars < 1 {
		return r.errf("the field count is %d, but at least one field is "+
			"required", nvars)
	}
	h.fields = make([]string, nvars)
	for i := 0; i < nvars; i++ {
		if h.fields[i], err = r.text(); err != nil { return err }
	}

	if h.ndims, err = r.intLine(); err != nil { return err }
	if h.ndims < 1 {
		return r.errf("the dimension count is %d", h.ndims)
	}
	if h.time, err = r.floatLine(); err != nil { return err }
	if h.maxLevel, err = r.intLine(); err != nil { return err }
	if h.maxLevel < 0 {
		return r.errf("the max AMR level is %d", h.maxLevel)
	}

	if h.geoLow, err = r.floatFields(h.ndims); err != nil { return err }
	if h.geoHigh, err = r.floatFields(h.ndims); err != nil { return err }
	for i := 0; i < h.ndims; i++ {
		if h.geoLow[i] >= h.geoHigh[i] {
			return r.errf("the domain bounds on axis %d are inverted: "+
				"[%g, %g]", i, h.geoLow[i], h.geoHigh[i])
		}
	}

	if h.factors, err = r.intFields(); err != nil { return err }
	if err = h.readGridSizes(r); err != nil { return err }
	if h.stepNumbers, err = r.intFields(); err != nil { return err }

	h.dx = make([][]float64, h.maxLevel+1)
	for lv := 0; lv <= h.maxLevel; lv++ {
		if h.dx[lv], err = r.floatFields(h.ndims); err != nil { return err }
		for i := 0; i < h.ndims; i++ {
			if h.dx[lv][i] <= 0 {
				return r.errf("the level %d cell width on axis %d is %g",
					lv, i, h.dx[lv][i])
			}
		}
	}

	if h.coordSys, err = r.intLine(); err != nil { return err }

	sanity, err := r.intLine()
	if err != nil { return err }
	if sanity != 0 {
		return r.errf("the sanity line should be the literal 0, got %d",
			sanity)
	}

	h.limitLevel = cfg.LimitLevel
	if h.limitLevel < 0 {
		h.limitLevel = h.maxLevel
	} else if h.limitLevel > h.maxLevel {
		return fmt.Errorf("a limit level of %d was requested, but the "+
			"plotfile %s only refines down to level %d.",
			h.limitLevel, h.dir, h.maxLevel)
	}

	return h.readBoxes(r)
}

// readGridSizes parses the grid-size descriptor line, which packs one
// "((lo) (hi) (lo))" tuple triple per level. Only the hi tuple matters
// here: its entries plus one are the number of grid points per axis.
func (h *Header) readGridSizes(r *lineReader) error {
	s, err := r.text()
	if err != nil { return err }
	toks := strings.Fields(s)
	if len(toks) != 3*(h.maxLevel+1) {
		return r.errf("the grid-size descriptor has %d tokens, but %d "+
			"levels need %d", len(toks), h.maxLevel+1, 3*(h.maxLevel+1))
	}

	h.gridSizes = make([][]int, h.maxLevel+1)
	for lv := 0; lv <= h.maxLevel; lv++ {
		hi, err := parseIntTuple(toks[3*lv+1])
		if err != nil { return r.errf("%s", err.Error()) }
		if len(hi) != h.ndims {
			return r.errf("the level %d grid-size tuple has %d entries "+
				"in a %d-dimensional plotfile", lv, len(hi), h.ndims)
		}
		size := make([]int, h.ndims)
		for i := range hi {
			if hi[i] < 0 {
				return r.errf("the level %d grid-size tuple %v has a "+
					"negative entry", lv, hi)
			}
			size[i] = hi[i] + 1
		}
		h.gridSizes[lv] = size
	}
	return nil
}

// readBoxes parses the per-level box blocks that follow the global
// metadata: a level descriptor, a step-counter line, ndims (lo, hi) lines
// per box, and the level's cell-data path.
func (h *Header) readBoxes(r *lineReader) error {
	h.levels = make([]level, h.limitLevel+1)
	for lv := 0; lv <= h.limitLevel; lv++ {
		desc, err := r.intoFields(3)
		if err != nil { return err }
		gotLv, err1 := strconv.Atoi(desc[0])
		nBoxes, err2 := strconv.Atoi(desc[1])
		if err1 != nil || err2 != nil || nBoxes < 0 {
			return r.errf("bad level descriptor '%s %s %s'",
				desc[0], desc[1], desc[2])
		}
		if gotLv != lv {
			return fmt.Errorf("%w: %s declares level %d where level %d "+
				"was expected", ErrStructureMismatch, r.name, gotLv, lv)
		}

		// The step counter is only retained for the base level; finer
		// levels repeat it, but nothing downstream reads those copies.
		step, err := r.text()
		if err != nil { return err }
		if lv == 0 {
			if h.levelStep, err = strconv.Atoi(strings.TrimSpace(step)); err != nil {
				return r.errf("the level step counter '%s' is not an "+
					"integer", step)
			}
		}

		boxes := make([]geometry.Box, nBoxes)
		centers := make([][]float64, nBoxes)
		for i := 0; i < nBoxes; i++ {
			box := make(geometry.Box, h.ndims)
			for d := 0; d < h.ndims; d++ {
				bounds, err := r.floatFields(2)
				if err != nil { return err }
				if bounds[0] >= bounds[1] {
					return r.errf("level %d box %d has inverted bounds "+
						"[%g, %g] on axis %d", lv, i, bounds[0], bounds[1], d)
				}
				box[d] = [2]float64{bounds[0], bounds[1]}
			}
			boxes[i] = box
			centers[i] = box.Center()
		}

		path, err := r.text()
		if err != nil { return err }
		h.levels[lv] = level{
			boxes: boxes, centers: centers, cellPath: strings.TrimSpace(path),
		}
	}
	return nil
}

// intoFields reads a line that must split into exactly n whitespace
// separated tokens.
func (r *lineReader) intoFields(n int) ([]string, error) {
	s, err := r.text()
	if err != nil { return nil, err }
	toks := strings.Fields(s)
	if len(toks) != n {
		return nil, r.errf("expected %d tokens, got %d in '%s'",
			n, len(toks), s)
	}
	return toks, nil
}
