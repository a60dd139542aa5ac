// Package loading implements the 3D placement engine: the free-space index,
// containers, point orders, container type selection and the greedy loader.
package loading

import (
	"fmt"
	"sort"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// box is an empty axis-aligned region with inclusive corners.
type box struct {
	open, close model.Point
	alive       bool
}

func (b box) String() string {
	return fmt.Sprintf("[%s %s]", b.open, b.close)
}

// within reports whether b lies entirely inside o.
func (b box) within(o box) bool {
	return o.open.LessEq(b.open) && b.close.LessEq(o.close)
}

// FreeSpace tracks the empty space of one container as a set of possibly
// overlapping maximal boxes. Boxes live in an arena and are indexed by their
// opening (lowest) corner.
//
// Every registered box is entirely empty and inside the container.
type FreeSpace struct {
	size   model.Point
	arena  []box
	free   []int
	byOpen map[model.Point][]int
}

// NewFreeSpace returns an index seeded with the whole container.
func NewFreeSpace(spec model.HasVolume) *FreeSpace {
	v := spec.Dimensions()
	if !v.Valid() {
		panic(fmt.Sprintf("loading: degenerate container %+v", v))
	}
	fs := &FreeSpace{size: model.Point{X: v.Length, Y: v.Width, Z: v.Height}}
	fs.Reset()
	return fs
}

// Reset clears the index back to the single full-container box.
func (fs *FreeSpace) Reset() {
	fs.arena = fs.arena[:0]
	fs.free = fs.free[:0]
	fs.byOpen = make(map[model.Point][]int)
	fs.add(model.Origin, fs.size.Sub(model.Point{X: 1, Y: 1, Z: 1}))
}

// OpeningPoints returns every corner that has at least one box, in no
// particular order.
func (fs *FreeSpace) OpeningPoints() []model.Point {
	points := make([]model.Point, 0, len(fs.byOpen))
	for p := range fs.byOpen {
		points = append(points, p)
	}
	return points
}

// Boxes returns the closing corners of all boxes opening at open, sorted.
// It panics when open has no boxes.
func (fs *FreeSpace) Boxes(open model.Point) []model.Point {
	ids, ok := fs.byOpen[open]
	if !ok || len(ids) == 0 {
		panic(fmt.Sprintf("loading: no free box opens at %s", open))
	}
	closes := make([]model.Point, 0, len(ids))
	for _, id := range ids {
		closes = append(closes, fs.arena[id].close)
	}
	sort.Slice(closes, func(i, j int) bool { return pointLess(closes[i], closes[j]) })
	return closes
}

// Len returns the number of registered boxes.
func (fs *FreeSpace) Len() int {
	n := 0
	for _, ids := range fs.byOpen {
		n += len(ids)
	}
	return n
}

// Fits reports whether some box opening at open holds v.
func (fs *FreeSpace) Fits(open model.Point, v model.HasVolume) bool {
	need := v.Dimensions().Extent()
	for _, c := range fs.Boxes(open) {
		if need.LessEq(c.Sub(open).Add(model.Point{X: 1, Y: 1, Z: 1})) {
			return true
		}
	}
	return false
}

// Place removes [open, close] from the free space. When canStack is set the
// top face of the placed item becomes new free space, merged with flush
// neighbouring top boxes.
func (fs *FreeSpace) Place(open, close model.Point, canStack bool) {
	if !open.LessEq(close) || !close.LessEq(fs.size.Sub(model.Point{X: 1, Y: 1, Z: 1})) {
		panic(fmt.Sprintf("loading: invalid placement [%s %s]", open, close))
	}
	used := box{open: open, close: close}

	var bottom, border, top []int
	for id := range fs.arena {
		b := fs.arena[id]
		if !b.alive || !touches(b, used) {
			continue
		}
		switch {
		case b.open.Z == open.Z:
			if flush(b, used) {
				border = append(border, id)
			} else {
				bottom = append(bottom, id)
			}
		default:
			top = append(top, id)
		}
	}

	fs.cropBottom(used, bottom, border)
	if canStack && close.Z+1 < fs.size.Z {
		fs.extendTop(used, top)
	}
}

// touches reports whether b is a bottom or top layer candidate for used: it
// opens at used's floor or right above used's top, and its footprint reaches
// used's footprint or is flush with it.
func touches(b, used box) bool {
	if b.open.Z != used.open.Z && b.open.Z != used.close.Z+1 {
		return false
	}
	return b.open.X <= used.close.X+1 && b.open.Y <= used.close.Y+1 &&
		b.close.X >= used.open.X-1 && b.close.Y >= used.open.Y-1
}

// flush reports whether b only borders used's footprint without overlapping it.
func flush(b, used box) bool {
	return b.open.X == used.close.X+1 || b.open.Y == used.close.Y+1 ||
		b.close.X == used.open.X-1 || b.close.Y == used.open.Y-1
}

func (fs *FreeSpace) cropBottom(used box, bottom, border []int) {
	for _, id := range bottom {
		b := fs.arena[id]
		fs.remove(id)

		if b.open.X < used.open.X {
			border = fs.insertBottom(box{open: b.open, close: b.close.WithX(used.open.X - 1)}, border)
		}
		if b.close.X > used.close.X {
			border = fs.insertBottom(box{open: b.open.WithX(used.close.X + 1), close: b.close}, border)
		}
		if b.open.Y < used.open.Y {
			border = fs.insertBottom(box{open: b.open, close: b.close.WithY(used.open.Y - 1)}, border)
		}
		if b.close.Y > used.close.Y {
			border = fs.insertBottom(box{open: b.open.WithY(used.close.Y + 1), close: b.close}, border)
		}
	}
}

// insertBottom registers a cropped remainder unless a border box already
// covers it, dropping border boxes it covers. It returns the updated border set.
func (fs *FreeSpace) insertBottom(nb box, border []int) []int {
	for _, id := range border {
		if b := fs.arena[id]; b.alive && nb.within(b) {
			return border
		}
	}

	kept := make([]int, 0, len(border)+1)
	for _, id := range border {
		b := fs.arena[id]
		if !b.alive {
			continue
		}
		if b.within(nb) {
			fs.remove(id)
			continue
		}
		kept = append(kept, id)
	}
	if id, added := fs.add(nb.open, nb.close); added {
		kept = append(kept, id)
	}
	return kept
}

// extendTop registers the free column above used, merged with the flush top
// boxes. A merge can leave an extension flush with a top box handled earlier
// in the pass, so passes repeat until one changes nothing, at most
// len(top)+1 times.
func (fs *FreeSpace) extendTop(used box, top []int) {
	ext := []box{{
		open:  used.open.WithZ(used.close.Z + 1),
		close: used.close.WithZ(fs.size.Z - 1),
	}}

	for pass := 0; pass <= len(top); pass++ {
		next := fs.mergeTop(ext, top)
		if sameBoxes(ext, next) {
			break
		}
		ext = next
	}
	ext = maximal(ext)

	for _, id := range top {
		b := fs.arena[id]
		for _, e := range ext {
			if b.within(e) {
				fs.remove(id)
				break
			}
		}
	}
	for _, e := range ext {
		fs.add(e.open, e.close)
	}
}

// mergeTop runs one merge pass of ext against the top boxes.
func (fs *FreeSpace) mergeTop(ext []box, top []int) []box {
	for _, id := range top {
		b := fs.arena[id]
		next := make([]box, 0, len(ext)+1)
		for _, e := range ext {
			merged, ok := mergeFlush(b, e)
			if !ok {
				next = appendUnique(next, e)
				continue
			}
			next = appendUnique(next, merged)
			if !e.within(merged) {
				next = appendUnique(next, e)
			}
		}
		ext = next
	}
	return ext
}

// maximal drops the boxes lying inside another box of the set.
func maximal(boxes []box) []box {
	kept := boxes[:0:0]
	for i, b := range boxes {
		covered := false
		for j, o := range boxes {
			if i != j && b.within(o) {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, b)
		}
	}
	return kept
}

// sameBoxes reports whether a and b hold the same boxes in any order. Both
// are duplicate free.
func sameBoxes(a, b []box) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x.open == y.open && x.close == y.close {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// mergeFlush joins b and e when they share a face along x or y, clipping the
// perpendicular axis to their overlap. The result always lies inside b ∪ e.
func mergeFlush(b, e box) (box, bool) {
	var m box
	switch {
	case b.close.X+1 == e.open.X:
		m = box{
			open:  b.open.WithY(max(b.open.Y, e.open.Y)),
			close: e.close.WithY(min(b.close.Y, e.close.Y)),
		}
	case b.close.Y+1 == e.open.Y:
		m = box{
			open:  b.open.WithX(max(b.open.X, e.open.X)),
			close: e.close.WithX(min(b.close.X, e.close.X)),
		}
	case b.open.X-1 == e.close.X:
		m = box{
			open:  e.open.WithY(max(b.open.Y, e.open.Y)),
			close: b.close.WithY(min(b.close.Y, e.close.Y)),
		}
	case b.open.Y-1 == e.close.Y:
		m = box{
			open:  e.open.WithX(max(b.open.X, e.open.X)),
			close: b.close.WithX(min(b.close.X, e.close.X)),
		}
	default:
		return box{}, false
	}
	if b.open.Z != e.open.Z || !m.open.LessEq(m.close) {
		return box{}, false
	}
	return m, true
}

func appendUnique(boxes []box, b box) []box {
	for _, o := range boxes {
		if o.open == b.open && o.close == b.close {
			return boxes
		}
	}
	return append(boxes, b)
}

// add registers [open, close]. Exact duplicates are ignored.
func (fs *FreeSpace) add(open, close model.Point) (int, bool) {
	if !open.LessEq(close) {
		panic(fmt.Sprintf("loading: box with non-positive extent [%s %s]", open, close))
	}
	for _, id := range fs.byOpen[open] {
		if fs.arena[id].close == close {
			return id, false
		}
	}

	b := box{open: open, close: close, alive: true}
	var id int
	if n := len(fs.free); n > 0 {
		id = fs.free[n-1]
		fs.free = fs.free[:n-1]
		fs.arena[id] = b
	} else {
		id = len(fs.arena)
		fs.arena = append(fs.arena, b)
	}
	fs.byOpen[open] = append(fs.byOpen[open], id)
	return id, true
}

func (fs *FreeSpace) remove(id int) {
	b := fs.arena[id]
	if !b.alive {
		return
	}
	fs.arena[id].alive = false
	fs.free = append(fs.free, id)

	ids := fs.byOpen[b.open]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(fs.byOpen, b.open)
		return
	}
	fs.byOpen[b.open] = ids
}

// snapshot returns all live boxes keyed by opening corner, closings sorted.
func (fs *FreeSpace) snapshot() map[model.Point][]model.Point {
	out := make(map[model.Point][]model.Point, len(fs.byOpen))
	for p := range fs.byOpen {
		out[p] = fs.Boxes(p)
	}
	return out
}

func pointLess(a, b model.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
