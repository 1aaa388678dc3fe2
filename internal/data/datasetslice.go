package data

import (
	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
)

// sliceRange describes one active contiguous sub-range of one Dim.
type sliceRange struct {
	label    dim.Dim
	begin    int
	end      int
	collapse bool
}

// DatasetSlice is a non-owning, read/write window onto a Dataset: zero or
// more active (Dim, begin, end) sub-ranges plus an optional Variable-name
// filter, applied lazily to every Variable it yields. It lets a caller
// iterate a Dataset one outer index at a time, and write values back
// through the same mapping Dataset.SetSlice uses, without materializing
// a per-index copy of the whole Dataset up front.
type DatasetSlice struct {
	ds     *Dataset
	ranges []sliceRange
	names  map[string]bool // nil means every name passes.
}

// NewDatasetSlice returns an unrestricted DatasetSlice over ds: every
// Variable, no active sub-ranges.
func NewDatasetSlice(ds *Dataset) *DatasetSlice {
	return &DatasetSlice{ds: ds}
}

// Select narrows the slice to only Data/Attr Variables with one of the
// given names. Coord Variables (name always "") are never filtered out by
// a name selection, since every Data Variable in a Dataset typically
// shares its coordinates.
func (s *DatasetSlice) Select(names ...string) *DatasetSlice {
	out := s.clone()
	out.names = make(map[string]bool, len(names))
	for _, n := range names {
		out.names[n] = true
	}
	return out
}

// Range narrows the slice to [begin,end) along label, or, if collapse is
// true, to the single index begin with label dropped from every Variable
// that carries it.
func (s *DatasetSlice) Range(label dim.Dim, begin, end int, collapse bool) *DatasetSlice {
	out := s.clone()
	out.ranges = append(out.ranges, sliceRange{label: label, begin: begin, end: end, collapse: collapse})
	return out
}

func (s *DatasetSlice) clone() *DatasetSlice {
	return &DatasetSlice{ds: s.ds, ranges: append([]sliceRange{}, s.ranges...), names: s.names}
}

func (s *DatasetSlice) included(v *Variable) bool {
	if s.names == nil || v.IsCoord() {
		return true
	}
	return s.names[v.Name()]
}

// droppedByCollapse reports whether v is the dimension-coordinate of some
// active collapsed range, in which case it must be dropped from the
// result rather than kept as a misleading 0-d coordinate.
func (s *DatasetSlice) droppedByCollapse(v *Variable) bool {
	if !tag.IsDimensionCoord(v.tag) {
		return false
	}
	for _, r := range s.ranges {
		if r.collapse && tag.CoordDim(v.tag) == r.label {
			return true
		}
	}
	return false
}

// apply walks v through every active range that applies to it (a range
// whose label v's Dimensions does not contain is skipped for v), yielding
// a Variable whose data is a View onto v's buffer.
func (s *DatasetSlice) apply(v *Variable) (*Variable, error) {
	cur := v
	for _, r := range s.ranges {
		if !cur.dims.Contains(r.label) {
			continue
		}
		end := r.end
		if r.collapse {
			end = CollapseSentinel
		}
		var err error
		cur, err = cur.View(r.label, r.begin, end)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Variables returns the sliced, included Variables in document order.
// Each is still a View onto the underlying Dataset's storage.
func (s *DatasetSlice) Variables() ([]*Variable, error) {
	out := make([]*Variable, 0, s.ds.Len())
	for _, v := range s.ds.vars {
		if !s.included(v) || s.droppedByCollapse(v) {
			continue
		}
		sliced, err := s.apply(v)
		if err != nil {
			return nil, err
		}
		out = append(out, sliced)
	}
	return out, nil
}

// Dataset materializes this slice into a standalone, owned Dataset.
func (s *DatasetSlice) Dataset() (*Dataset, error) {
	vars, err := s.Variables()
	if err != nil {
		return nil, err
	}
	out := NewDataset()
	for _, v := range vars {
		if err := out.Insert(v.Clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Add adds every Data-role, included Variable's matching rhs Variable
// into this slice's active sub-range in place, aborting on the first
// failure.
func (s *DatasetSlice) Add(rhs *Dataset) error { return s.applyBinOp(opAdd, rhs) }

// Sub subtracts rhs's matching Variables from this slice's active
// sub-range in place.
func (s *DatasetSlice) Sub(rhs *Dataset) error { return s.applyBinOp(opSub, rhs) }

// Mul multiplies this slice's active sub-range by rhs's matching
// Variables in place.
func (s *DatasetSlice) Mul(rhs *Dataset) error { return s.applyBinOp(opMul, rhs) }

func (s *DatasetSlice) applyBinOp(op binOp, rhs *Dataset) error {
	for _, v := range s.ds.vars {
		if !s.included(v) || v.tag.Role() != tag.Data {
			continue
		}
		other, _ := rhs.find(v.tag, v.name)
		if other == nil {
			return newErr(KindMissingVariable, "right-hand dataset has no variable matching tag=%v name=%q", v.tag, v.name)
		}
		target, err := s.apply(v)
		if err != nil {
			return err
		}
		if err := target.applyBinOp(op, other); err != nil {
			return err
		}
	}
	return nil
}

// CopyFrom writes src's Variables into this slice's active sub-range of
// the underlying Dataset, matched by (tag, name) the same way
// Dataset.SetSlice matches a sub-dataset against a target index.
func (s *DatasetSlice) CopyFrom(src *Dataset) error {
	for _, sv := range src.vars {
		dv, _ := s.ds.find(sv.tag, sv.name)
		if dv == nil {
			return newErr(KindMissingVariable, "target dataset has no variable matching tag=%v name=%q", sv.tag, sv.name)
		}
		if !s.included(dv) || s.droppedByCollapse(dv) {
			continue
		}
		target, err := s.apply(dv)
		if err != nil {
			return err
		}
		if err := copyInto(target, sv); err != nil {
			return err
		}
	}
	return nil
}
