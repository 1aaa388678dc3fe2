package data

import (
	"sort"

	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
)

// Slice returns a new Dataset restricting every Variable of ds to
// [begin,end) along label (or, if collapse is true, to the single index
// begin with label dropped). Every Variable is materialized into freshly
// owned storage; Variables not varying along label are cloned unchanged.
// If collapse drops label entirely, the dimension-coordinate of label is
// dropped from the result rather than kept as a misleading 0-d coordinate.
func Slice(ds *Dataset, label dim.Dim, begin, end int, collapse bool) (*Dataset, error) {
	out := NewDataset()
	for _, v := range ds.vars {
		if collapse && tag.IsDimensionCoord(v.tag) && tag.CoordDim(v.tag) == label {
			continue
		}
		if !v.dims.Contains(label) {
			if err := out.Insert(v.Clone()); err != nil {
				return nil, err
			}
			continue
		}
		e := end
		if collapse {
			e = CollapseSentinel
		}
		sliced, err := v.View(label, begin, e)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(sliced.Clone()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Split partitions ds into two Datasets at position at along label:
// [0,at) and [at,size).
func Split(ds *Dataset, label dim.Dim, at int) (left, right *Dataset, err error) {
	size, err := ds.Dimensions().Size(label)
	if err != nil {
		return nil, nil, err
	}
	left, err = Slice(ds, label, 0, at, false)
	if err != nil {
		return nil, nil, err
	}
	right, err = Slice(ds, label, at, size, false)
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Concatenate joins a and b along label: every Variable present in one
// must be present in the other, with matching kind and unit. Variables
// not varying along label must already be Equal and are carried through
// unchanged; Variables that are the dimension-coordinate of label get the
// edge-merge-or-fail treatment (spec.md §3's histogram-edge exception
// applies symmetrically to concatenation).
func Concatenate(label dim.Dim, a, b *Dataset) (*Dataset, error) {
	out := NewDataset()
	seen := make(map[key]bool, len(a.vars))
	for _, av := range a.vars {
		bv, _ := b.find(av.tag, av.name)
		if bv == nil {
			return nil, newErr(KindMissingVariable, "concatenate: right-hand dataset has no variable matching tag=%v name=%q", av.tag, av.name)
		}
		seen[key{av.tag, av.name}] = true
		merged, err := concatVariable(label, av, bv)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(merged); err != nil {
			return nil, err
		}
	}
	for _, bv := range b.vars {
		if !seen[key{bv.tag, bv.name}] {
			return nil, newErr(KindMissingVariable, "concatenate: left-hand dataset has no variable matching tag=%v name=%q", bv.tag, bv.name)
		}
	}
	return out, nil
}

func concatVariable(label dim.Dim, a, b *Variable) (*Variable, error) {
	if a.kind != b.kind {
		return nil, newErr(KindTypeMismatch, "cannot concatenate variable %v (%v) with (%v)", a.tag, a.kind, b.kind)
	}
	if a.unit != b.unit {
		return nil, newErr(KindUnit, "cannot concatenate variable %v: units %v and %v differ", a.tag, a.unit, b.unit)
	}
	aHas, bHas := a.dims.Contains(label), b.dims.Contains(label)
	if !aHas && !bHas {
		if !a.Equal(b) {
			return nil, newErr(KindDimensionMismatch, "variable %v does not vary along %v and the two operands differ", a.tag, label)
		}
		return a.Clone(), nil
	}
	if aHas != bHas {
		return nil, newErr(KindDimensionMismatch, "variable %v has %v on only one side of the concatenation", a.tag, label)
	}
	isEdgeCoord := tag.IsDimensionCoord(a.tag) && tag.CoordDim(a.tag) == label
	if isEdgeCoord {
		switch a.kind {
		case tag.KindFloat64:
			return concatEdgeCoordT[float64](label, a, b)
		case tag.KindInt64:
			return concatEdgeCoordT[int64](label, a, b)
		case tag.KindInt32:
			return concatEdgeCoordT[int32](label, a, b)
		case tag.KindString:
			return concatEdgeCoordT[string](label, a, b)
		case tag.KindBool:
			return concatEdgeCoordT[bool](label, a, b)
		default:
			return nil, newErr(KindUnsupportedElement, "edge coordinate %v has unsupported element kind %v", a.tag, a.kind)
		}
	}
	switch a.kind {
	case tag.KindFloat64:
		return concatAlongT[float64](label, a, b)
	case tag.KindInt64:
		return concatAlongT[int64](label, a, b)
	case tag.KindInt32:
		return concatAlongT[int32](label, a, b)
	case tag.KindString:
		return concatAlongT[string](label, a, b)
	case tag.KindBool:
		return concatAlongT[bool](label, a, b)
	case tag.KindDataset:
		return concatAlongT[*Dataset](label, a, b)
	default:
		return nil, newErr(KindUnsupportedElement, "unsupported element kind %v", a.kind)
	}
}

// concatEdgeCoordT concatenates the dimension-coordinate of label,
// requiring a's last edge to equal b's first edge (the shared boundary
// bin edge), then concatenates with that duplicate edge trimmed from b.
func concatEdgeCoordT[T comparable](label dim.Dim, a, b *Variable) (*Variable, error) {
	aExtent, _ := a.dims.Size(label)
	bExtent, _ := b.dims.Size(label)
	aBoundary, err := a.View(label, aExtent-1, CollapseSentinel)
	if err != nil {
		return nil, err
	}
	bBoundary, err := b.View(label, 0, CollapseSentinel)
	if err != nil {
		return nil, err
	}
	if !aBoundary.Equal(bBoundary) {
		return nil, newErr(KindEdgeMismatch, "edge coordinate %v: shared boundary bin edges do not match", a.tag)
	}
	trimmedB, err := b.View(label, 1, bExtent)
	if err != nil {
		return nil, err
	}
	return concatAlongT[T](label, a, trimmedB)
}

func concatAlongT[T any](label dim.Dim, a, b *Variable) (*Variable, error) {
	av, bv := asView[T](a), asView[T](b)
	newDims, err := ConcatDim(label, a.dims, b.dims)
	if err != nil {
		return nil, err
	}
	out := NewBuffer[T](newDims.Volume())
	copyConcat(out.Write(), av, bv, label, newDims)
	return &Variable{tag: a.tag, name: a.name, unit: a.unit, dims: newDims, kind: a.kind, data: out}, nil
}

// copyConcat fills dst (row-major over newDims) from av and bv, both of
// which share newDims' label order except at label's axis.
func copyConcat[T any](dst []T, av, bv *View[T], label dim.Dim, newDims Dimensions) {
	newStrides := newDims.Strides()
	aStrides := av.Dims().Strides()
	bStrides := bv.Dims().Strides()
	labelPos := -1
	for i, l := range newDims.Labels() {
		if l == label {
			labelPos = i
		}
	}
	aExtent, _ := av.Dims().Size(label)
	coords := make([]int, newDims.NDim())
	n := newDims.Volume()
	for i := 0; i < n; i++ {
		rem := i
		for axis, stride := range newStrides {
			coords[axis] = rem / stride
			rem %= stride
		}
		fromA := labelPos < 0 || coords[labelPos] < aExtent
		strides := aStrides
		if !fromA {
			strides = bStrides
		}
		srcIdx := 0
		for axis, c := range coords {
			if axis == labelPos && !fromA {
				c -= aExtent
			}
			srcIdx += c * strides[axis]
		}
		if fromA {
			dst[i] = av.At(srcIdx)
		} else {
			dst[i] = bv.At(srcIdx)
		}
	}
}

// Gather returns a new Variable keeping, along label, only the positions
// listed in indices (in order); Variables not varying along label are
// cloned unchanged. Used by Filter and Sort to apply an arbitrary
// reordering or subselection that Subview's contiguous ranges cannot
// express.
func (v *Variable) Gather(label dim.Dim, indices []int) (*Variable, error) {
	if !v.dims.Contains(label) {
		return v.Clone(), nil
	}
	switch v.kind {
	case tag.KindFloat64:
		return gatherVariable[float64](v, label, indices)
	case tag.KindInt64:
		return gatherVariable[int64](v, label, indices)
	case tag.KindInt32:
		return gatherVariable[int32](v, label, indices)
	case tag.KindString:
		return gatherVariable[string](v, label, indices)
	case tag.KindBool:
		return gatherVariable[bool](v, label, indices)
	case tag.KindDataset:
		return gatherVariable[*Dataset](v, label, indices)
	default:
		return nil, newErr(KindUnsupportedElement, "unsupported element kind %v", v.kind)
	}
}

func gatherVariable[T any](v *Variable, label dim.Dim, indices []int) (*Variable, error) {
	buf, newDims, err := gather(asView[T](v), label, indices)
	if err != nil {
		return nil, err
	}
	return &Variable{tag: v.tag, name: v.name, unit: v.unit, dims: newDims, kind: v.kind, data: buf}, nil
}

func gather[T any](view *View[T], label dim.Dim, indices []int) (*Buffer[T], Dimensions, error) {
	dims := view.Dims()
	newDims, err := dims.Resize(label, len(indices))
	if err != nil {
		return nil, Dimensions{}, err
	}
	labelPos := -1
	for i, l := range dims.Labels() {
		if l == label {
			labelPos = i
		}
	}
	oldStrides := dims.Strides()
	newStrides := newDims.Strides()
	n := newDims.Volume()
	out := NewBuffer[T](n)
	dst := out.Write()
	coords := make([]int, newDims.NDim())
	for i := 0; i < n; i++ {
		rem := i
		for axis, stride := range newStrides {
			coords[axis] = rem / stride
			rem %= stride
		}
		oldIdx := 0
		for axis, c := range coords {
			if axis == labelPos {
				c = indices[c]
			}
			oldIdx += c * oldStrides[axis]
		}
		dst[i] = view.At(oldIdx)
	}
	return out, newDims, nil
}

// Filter returns a new Dataset keeping, along label, only the positions
// where mask is true.
func Filter(ds *Dataset, label dim.Dim, mask []bool) (*Dataset, error) {
	extent, err := ds.Dimensions().Size(label)
	if err != nil {
		return nil, err
	}
	if len(mask) != extent {
		return nil, newErr(KindContract, "filter mask length %d does not match dimension %v extent %d", len(mask), label, extent)
	}
	indices := make([]int, 0, extent)
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	out := NewDataset()
	for _, v := range ds.vars {
		gathered, err := v.Gather(label, indices)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(gathered); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Sort returns a new Dataset with every Variable varying along label
// reordered by a stable sort of the values of key (which must be a
// unique, exactly one-dimensional Variable varying along label).
func Sort(ds *Dataset, label dim.Dim, key tag.Tag) (*Dataset, error) {
	keyVar, err := ds.GetUnique(key)
	if err != nil {
		return nil, err
	}
	if !keyVar.dims.Contains(label) {
		return nil, newErr(KindDimensionMismatch, "sort key %v does not vary along %v", key, label)
	}
	if keyVar.dims.NDim() != 1 {
		return nil, newErr(KindContract, "sort key %v must be exactly one-dimensional, got %v", key, keyVar.dims.Labels())
	}
	extent, _ := keyVar.dims.Size(label)
	perm := make([]int, extent)
	for i := range perm {
		perm[i] = i
	}
	switch keyVar.kind {
	case tag.KindFloat64:
		sortPerm(keyVar, perm, func(a, b float64) bool { return a < b })
	case tag.KindInt64:
		sortPerm(keyVar, perm, func(a, b int64) bool { return a < b })
	case tag.KindInt32:
		sortPerm(keyVar, perm, func(a, b int32) bool { return a < b })
	case tag.KindString:
		sortPerm(keyVar, perm, func(a, b string) bool { return a < b })
	case tag.KindBool:
		sortPerm(keyVar, perm, func(a, b bool) bool { return !a && b })
	default:
		return nil, newErr(KindUnsupportedElement, "cannot sort by element kind %v", keyVar.kind)
	}
	out := NewDataset()
	for _, v := range ds.vars {
		gathered, err := v.Gather(label, perm)
		if err != nil {
			return nil, err
		}
		if err := out.Insert(gathered); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func sortPerm[T any](keyVar *Variable, perm []int, less func(a, b T) bool) {
	view := asView[T](keyVar)
	sort.SliceStable(perm, func(i, j int) bool {
		return less(view.At(perm[i]), view.At(perm[j]))
	})
}
