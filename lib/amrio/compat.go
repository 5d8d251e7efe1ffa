package amrio

import (
	"github.com/mtessier/plotmeta/lib/eq"
	"github.com/mtessier/plotmeta/lib/geometry"
)

// Compatible reports whether two plotfiles share the same mesh topology:
// the same limit level, numerically close boxes at every level, and
// identical index windows. Field sets and binary-file layout are ignored,
// so two snapshots can differ in variables and file distribution and still
// be compatible.
//
// This is a deliberately partial comparison, not value equality. It gates
// operations that walk two plotfiles cell by cell, like differencing or
// field merging. Structural mismatches are an expected outcome and are
// reported as false, never as an error. A header opened with HeaderOnly
// has no index windows to compare, so it is never compatible with
// anything: the windows have to be identical, not merely unknown.
func Compatible(a, b *Header) bool {
	if a.limitLevel != b.limitLevel { return false }

	for lv := 0; lv <= a.limitLevel; lv++ {
		if !geometry.BoxesClose(a.levels[lv].boxes, b.levels[lv].boxes) {
			return false
		}
	}
	for lv := 0; lv <= a.limitLevel; lv++ {
		ca, cb := a.levels[lv].cells, b.levels[lv].cells
		if len(ca) != len(a.levels[lv].boxes) { return false }
		if len(cb) != len(b.levels[lv].boxes) { return false }
		if len(ca) != len(cb) { return false }
		for i := range ca {
			if !eq.Ints(ca[i].Start, cb[i].Start) { return false }
			if !eq.Ints(ca[i].Stop, cb[i].Stop) { return false }
		}
	}
	return true
}
