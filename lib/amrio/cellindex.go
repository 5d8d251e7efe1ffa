package amrio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readCellIndex parses the cell-index file of level lv, named by the
// level's cell path plus the "_H" suffix. It returns one Cell per box, in
// file order: the i-th record here describes the same cell as the i-th box
// in the Header file, and that correspondence must be preserved verbatim.
func (h *Header) readCellIndex(lv int) ([]Cell, error) {
	name := filepath.Join(h.dir, h.levels[lv].cellPath+"_H")
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("cannot open the level %d cell index %s: %w",
			lv, name, err)
	}
	defer f.Close()
	r := newLineReader(name, f)

	// Two format lines nothing here depends on.
	if _, err = r.text(); err != nil { return nil, err }
	if _, err = r.text(); err != nil { return nil, err }

	// The field count has to agree with the global header before anything
	// else is read, otherwise the binary payload layout wouldn't match the
	// declared fields.
	nvars, err := r.intLine()
	if err != nil { return nil, err }
	if nvars != h.NVars() {
		return nil, fmt.Errorf("%w: %s declares %d fields, but the "+
			"plotfile header declares %d", ErrSchemaMismatch, name,
			nvars, h.NVars())
	}

	if _, err = r.text(); err != nil { return nil, err }

	nCells, err := h.readCellCount(r)
	if err != nil { return nil, err }

	cells := make([]Cell, nCells)
	for i := 0; i < nCells; i++ {
		if cells[i].Window, err = h.readWindow(r); err != nil {
			return nil, err
		}
	}

	if _, err = r.text(); err != nil { return nil, err }

	// The cell count is repeated before the file-location block and both
	// copies have to agree, or the two halves of this file wouldn't be
	// describing the same boxes.
	confirm, err := r.intLine()
	if err != nil { return nil, err }
	if confirm != nCells {
		return nil, fmt.Errorf("%w: %s lists %d index windows but %d "+
			"file locations", ErrStructureMismatch, name, nCells, confirm)
	}

	dataDir := filepath.Dir(h.levels[lv].cellPath)
	for i := 0; i < nCells; i++ {
		toks, err := r.intoFields(3)
		if err != nil { return nil, err }
		offset, err := strconv.ParseInt(toks[2], 10, 64)
		if err != nil {
			return nil, r.errf("the byte offset '%s' is not an integer",
				toks[2])
		}
		cells[i].FileName = filepath.Join(h.dir, dataDir, toks[1])
		cells[i].Offset = offset
	}

	return cells, nil
}

// readCellCount parses the "(N ..." line that opens the index-window block.
func (h *Header) readCellCount(r *lineReader) (int, error) {
	s, err := r.text()
	if err != nil { return 0, err }
	toks := strings.Fields(s)
	if len(toks) == 0 {
		return 0, r.errf("expected a cell-count line, got an empty line")
	}
	n, err := strconv.Atoi(strings.TrimPrefix(toks[0], "("))
	if err != nil || n < 0 {
		return 0, r.errf("the cell count in '%s' is not a valid integer", s)
	}
	return n, nil
}

// readWindow parses one index-window line: a start tuple, a stop tuple, and
// a trailing token nothing depends on.
func (h *Header) readWindow(r *lineReader) (Window, error) {
	toks, err := r.intoFields(3)
	if err != nil { return Window{}, err }

	start, err1 := parseIntTuple(toks[0])
	stop, err2 := parseIntTuple(toks[1])
	if err1 != nil || err2 != nil {
		return Window{}, r.errf("bad index window '%s %s'", toks[0], toks[1])
	}
	if len(start) != h.ndims || len(stop) != h.ndims {
		return Window{}, r.errf("the index window '%s %s' does not have "+
			"%d entries per tuple", toks[0], toks[1], h.ndims)
	}
	return Window{Start: start, Stop: stop}, nil
}
