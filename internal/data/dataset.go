package data

import (
	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
)

// key identifies a Variable inside a Dataset: (tag, name). Coord
// variables always carry name == "", so a Dataset can hold at most one
// dimension-coordinate per Dim but, in principle, several differently
// named Coord tags with the same underlying Tag is impossible since name
// must be empty — uniqueness for Coord reduces to uniqueness of tag.
type key struct {
	tag  tag.Tag
	name string
}

// Dataset is an ordered, uniquely-(tag,name)-keyed collection of
// Variables with a coherent union Dimensions cache: for every Dim
// present in any contained Variable, all Variables using that Dim agree
// on its extent, except that a single dimension-coordinate of that Dim
// may carry extent N+1 (bin edges) when every Data variable using it has
// extent N.
type Dataset struct {
	vars  []*Variable
	index map[key]int
	union Dimensions
}

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset {
	return &Dataset{index: make(map[key]int)}
}

// Dimensions returns the Dataset's union Dimensions.
func (d *Dataset) Dimensions() Dimensions { return d.union }

// Len returns the number of Variables in the Dataset.
func (d *Dataset) Len() int { return len(d.vars) }

// At returns the i-th Variable in insertion order.
func (d *Dataset) At(i int) *Variable { return d.vars[i] }

// Contains reports whether a Variable with (tag, name) is present.
func (d *Dataset) Contains(t tag.Tag, name string) bool {
	_, ok := d.index[key{t, name}]
	return ok
}

// find returns the matching Variable and its index, or (nil, -1).
func (d *Dataset) find(t tag.Tag, name string) (*Variable, int) {
	if i, ok := d.index[key{t, name}]; ok {
		return d.vars[i], i
	}
	return nil, -1
}

// dimensionCoordOwner returns the index of the existing Variable (if
// any) that is the dimension-coordinate of label.
func (d *Dataset) dimensionCoordOwner(label dim.Dim) int {
	for i, v := range d.vars {
		if tag.IsDimensionCoord(v.tag) && tag.CoordDim(v.tag) == label {
			return i
		}
	}
	return -1
}

// Insert places v at the end of the Dataset, after validating: (tag,
// name) uniqueness for Data/Attr, at most one dimension-coordinate per
// Dim, and dimension-extent compatibility (with the edge exception) with
// the current union Dimensions.
func (d *Dataset) Insert(v *Variable) error {
	k := key{v.tag, v.name}
	if _, exists := d.index[k]; exists {
		return newErr(KindDuplicateKey, "dataset already contains tag=%v name=%q", v.tag, v.name)
	}
	if tag.IsDimensionCoord(v.tag) {
		label := tag.CoordDim(v.tag)
		if owner := d.dimensionCoordOwner(label); owner >= 0 {
			return newErr(KindDuplicateKey, "dataset already has a dimension-coordinate for %v", label)
		}
	}
	merged, err := d.mergeUnion(v)
	if err != nil {
		return err
	}
	d.index[k] = len(d.vars)
	d.vars = append(d.vars, v)
	d.union = merged
	return nil
}

// mergeUnion computes the union Dimensions that would result from adding
// v, applying the edge exception: a dimension-coordinate of D may carry
// extent N+1 while Data variables using D carry extent N, in which case
// the union records the non-edge extent N (spec.md §3).
func (d *Dataset) mergeUnion(v *Variable) (Dimensions, error) {
	union := d.union
	labels := v.dims.Labels()
	extents := v.dims.Extents()
	for i, label := range labels {
		extent := extents[i]
		existing, err := union.Size(label)
		if err != nil {
			union, err = union.Add(label, extent)
			if err != nil {
				return Dimensions{}, err
			}
			continue
		}
		if existing == extent {
			continue
		}
		vIsEdgeCoord := tag.IsDimensionCoord(v.tag) && tag.CoordDim(v.tag) == label
		switch {
		case vIsEdgeCoord && extent == existing+1:
			// v supplies bin edges one wider than the recorded data extent;
			// the union keeps the non-edge extent.
		case !vIsEdgeCoord && existing == extent+1 && d.dimensionCoordOwner(label) >= 0:
			// The union currently reflects an already-inserted edge
			// coordinate's N+1; v is Data-shaped with extent N, so the
			// union shrinks to the non-edge extent N.
			union, err = union.Resize(label, extent)
			if err != nil {
				return Dimensions{}, err
			}
		default:
			return Dimensions{}, newErr(KindEdgeMismatch, "dimension %s extent %d is incompatible with existing extent %d", label, extent, existing)
		}
	}
	return union, nil
}

// Erase removes the Variable matching (t, name), then shrinks the union
// Dimensions by dropping any Dim no longer referenced by any remaining
// Variable (an incremental shrink, not a blanket recompute, matching
// original_source's dataset.h erase()).
func (d *Dataset) Erase(t tag.Tag, name string) error {
	v, idx := d.find(t, name)
	if v == nil {
		return newErr(KindMissingVariable, "dataset has no variable tag=%v name=%q", t, name)
	}
	dropped := v.dims.Labels()
	d.vars = append(d.vars[:idx], d.vars[idx+1:]...)
	delete(d.index, key{t, name})
	for k, i := range d.index {
		if i > idx {
			d.index[k] = i - 1
		}
	}
	d.shrinkUnion(dropped)
	return nil
}

// shrinkUnion drops from the union any candidate label no longer used by
// any remaining Variable.
func (d *Dataset) shrinkUnion(candidates []dim.Dim) {
	for _, label := range candidates {
		stillUsed := false
		for _, v := range d.vars {
			if v.dims.Contains(label) {
				stillUsed = true
				break
			}
		}
		if !stillUsed {
			d.union, _ = d.union.Erase(label)
		}
	}
}

// Extract removes and returns the Variable matching (t, name).
func (d *Dataset) Extract(t tag.Tag, name string) (*Variable, error) {
	v, _ := d.find(t, name)
	if v == nil {
		return nil, newErr(KindMissingVariable, "dataset has no variable tag=%v name=%q", t, name)
	}
	if err := d.Erase(t, name); err != nil {
		return nil, err
	}
	return v, nil
}

// Merge inserts every Variable from other into d. Conflicts (duplicate
// key, incompatible dimensions) abort the merge; d may be left with a
// subset of other's Variables already inserted (spec.md §7: "do not
// catch and continue").
func (d *Dataset) Merge(other *Dataset) error {
	for _, v := range other.vars {
		if err := d.Insert(v); err != nil {
			return err
		}
	}
	return nil
}

// GetUnique returns the single Variable with tag t, failing with
// KindUniqueness if more than one Variable carries t (ambiguous without
// a name) or KindMissingVariable if none does.
func (d *Dataset) GetUnique(t tag.Tag) (*Variable, error) {
	var match *Variable
	count := 0
	for _, v := range d.vars {
		if v.tag == t {
			match = v
			count++
		}
	}
	switch count {
	case 0:
		return nil, newErr(KindMissingVariable, "dataset has no variable with tag %v", t)
	case 1:
		return match, nil
	default:
		return nil, newErr(KindUniqueness, "tag %v is ambiguous: %d variables share it, specify a name", t, count)
	}
}

// Get returns the Variable matching (t, name).
func (d *Dataset) Get(t tag.Tag, name string) (*Variable, error) {
	v, _ := d.find(t, name)
	if v == nil {
		return nil, newErr(KindMissingVariable, "dataset has no variable tag=%v name=%q", t, name)
	}
	return v, nil
}

// SetSlice writes src into d at position index along dim, for every
// Variable using dim. src must be shape-compatible with d's dim-reduced
// shape (i.e. it matches what View(dim, index, Collapse) on each
// Variable would produce).
func (d *Dataset) SetSlice(src *Dataset, label dim.Dim, index int) error {
	for _, sv := range src.vars {
		dv, _ := d.find(sv.tag, sv.name)
		if dv == nil {
			return newErr(KindMissingVariable, "target dataset has no variable matching tag=%v name=%q", sv.tag, sv.name)
		}
		if !dv.dims.Contains(label) {
			continue
		}
		target, err := dv.View(label, index, CollapseSentinel)
		if err != nil {
			return err
		}
		if err := copyInto(target, sv); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether d and other contain the same multiset of (tag,
// name) keys with pairwise-Equal Variables.
func (d *Dataset) Equal(other *Dataset) bool {
	if len(d.vars) != len(other.vars) {
		return false
	}
	for k, i := range d.index {
		j, ok := other.index[k]
		if !ok {
			return false
		}
		if !d.vars[i].Equal(other.vars[j]) {
			return false
		}
	}
	return true
}
