package amrio

// FileGroup collects every cell of one level that is backed by the same
// binary file, so a consumer can handle them in one sequential pass instead
// of hopping between files. Offsets and Windows are parallel slices.
type FileGroup struct {
	FileName string
	Offsets  []int64
	Windows  []Window
}

// FileGroupIter iterates over the distinct binary files of one level, in
// first-appearance order. Together the groups partition the level's cells:
// every cell lands in exactly one group.
//
// IMPORTANT: the iterator does not provide thread safety.
type FileGroupIter struct {
	cells  []Cell
	order  []string
	byFile map[string][]int
	pos    int
}

// GroupsByBinaryFile returns an iterator over the cells of level lv grouped
// by backing binary file. A level outside 0..LimitLevel, or a header opened
// with HeaderOnly, yields an empty iterator rather than an error.
func (h *Header) GroupsByBinaryFile(lv int) *FileGroupIter {
	it := &FileGroupIter{byFile: map[string][]int{}}
	if lv < 0 || lv > h.limitLevel { return it }

	it.cells = h.levels[lv].cells
	for i, c := range it.cells {
		if _, seen := it.byFile[c.FileName]; !seen {
			it.order = append(it.order, c.FileName)
		}
		it.byFile[c.FileName] = append(it.byFile[c.FileName], i)
	}
	return it
}

// Next moves the iterator to the next file group. It returns false once
// every distinct file has been produced.
func (it *FileGroupIter) Next() bool {
	if it.pos >= len(it.order) { return false }
	it.pos++
	return true
}

// Group returns the file group the iterator is currently on. Only valid
// after a Next call that returned true.
func (it *FileGroupIter) Group() FileGroup {
	name := it.order[it.pos-1]
	idxs := it.byFile[name]
	g := FileGroup{
		FileName: name,
		Offsets:  make([]int64, len(idxs)),
		Windows:  make([]Window, len(idxs)),
	}
	for j, i := range idxs {
		g.Offsets[j] = it.cells[i].Offset
		g.Windows[j] = it.cells[i].Window
	}
	return g
}

// Reset rewinds the iterator to one-before-first so it can be walked again.
func (it *FileGroupIter) Reset() { it.pos = 0 }

// CellPair locates the same physical cell in two compatible plotfiles: the
// shared index window and level, and the (file, offset) each snapshot
// stores that cell's payload at.
type CellPair struct {
	Window           Window
	Level            int
	FileA, FileB     string
	OffsetA, OffsetB int64
}

// CellPairIter iterates over the cell positions of one level across two
// plotfiles, one pair per position.
//
// IMPORTANT: the iterator does not provide thread safety.
type CellPairIter struct {
	a, b []Cell
	lv   int
	pos  int
}

// PairCells returns an iterator pairing the cells of level lv in h with the
// cells at the same positions in other. It is only meaningful when
// Compatible(h, other) holds; the caller is expected to have checked that.
// A level outside 0..LimitLevel of either header yields an empty iterator.
func (h *Header) PairCells(other *Header, lv int) *CellPairIter {
	it := &CellPairIter{lv: lv}
	if lv < 0 || lv > h.limitLevel || lv > other.limitLevel { return it }
	it.a, it.b = h.levels[lv].cells, other.levels[lv].cells
	if len(it.b) < len(it.a) {
		it.a = it.a[:len(it.b)]
	}
	return it
}

// Next moves the iterator to the next cell position. It returns false once
// every position has been produced.
func (it *CellPairIter) Next() bool {
	if it.pos >= len(it.a) { return false }
	it.pos++
	return true
}

// Pair returns the cell pair the iterator is currently on. Only valid after
// a Next call that returned true. The window comes from the first plotfile;
// under Compatible the second plotfile's window is identical.
func (it *CellPairIter) Pair() CellPair {
	i := it.pos - 1
	return CellPair{
		Window:  it.a[i].Window,
		Level:   it.lv,
		FileA:   it.a[i].FileName,
		FileB:   it.b[i].FileName,
		OffsetA: it.a[i].Offset,
		OffsetB: it.b[i].Offset,
	}
}

// Reset rewinds the iterator to one-before-first so it can be walked again.
func (it *CellPairIter) Reset() { it.pos = 0 }
