package data

import "github.com/scicore-go/dataset/dim"

// View is a strided mapping of a target Dimensions onto a parent
// Dimensions over a shared Buffer. Iterating a View walks its own
// (target) Dimensions in row-major order; each target position maps to a
// parent linear offset by summing, for every target label present in the
// parent, coordinate×parent.Offset(label); a target label absent from
// the parent (a broadcast dimension) contributes stride 0.
type View[T any] struct {
	buf        *Buffer[T]
	parentDims Dimensions
	dims       Dimensions
	baseOffset int
}

// NewOwnedView wraps buf as a dense, contiguous View whose target
// Dimensions equals the parent (i.e. represents an owned Variable's own
// buffer treated uniformly with a view onto someone else's).
func NewOwnedView[T any](buf *Buffer[T], dims Dimensions) *View[T] {
	return &View[T]{buf: buf, parentDims: dims, dims: dims, baseOffset: 0}
}

// NewBroadcastView wraps buf (whose natural shape is parentDims) as a
// View with a different, broadcast-or-transposed target shape dims.
func NewBroadcastView[T any](buf *Buffer[T], parentDims, dims Dimensions, baseOffset int) *View[T] {
	return &View[T]{buf: buf, parentDims: parentDims, dims: dims, baseOffset: baseOffset}
}

// Dims returns the view's target Dimensions.
func (v *View[T]) Dims() Dimensions { return v.dims }

// ParentDims returns the Dimensions of the buffer this view maps onto.
func (v *View[T]) ParentDims() Dimensions { return v.parentDims }

// Buffer returns the underlying shared buffer handle.
func (v *View[T]) Buffer() *Buffer[T] { return v.buf }

// strides returns, for each label of v.dims (outer to inner), the stride
// to apply in the parent buffer: parentDims.Offset(label) if label is
// present in parentDims, else 0 (broadcast dimension).
func (v *View[T]) strides() []int {
	labels := v.dims.Labels()
	strides := make([]int, len(labels))
	for i, l := range labels {
		if v.parentDims.Contains(l) {
			off, _ := v.parentDims.Offset(l)
			strides[i] = off
		} else {
			strides[i] = 0
		}
	}
	return strides
}

// ownStrides returns the view's own dense row-major strides over its
// target Dimensions, used to decompose a linear target index into
// per-axis coordinates.
func (v *View[T]) ownStrides() []int {
	return v.dims.Strides()
}

// offsetAt maps linear target index idx (row-major over v.dims) to the
// absolute offset into the shared buffer.
func (v *View[T]) offsetAt(idx int) int {
	own := v.ownStrides()
	parentStride := v.strides()
	offset := v.baseOffset
	for i := range own {
		if own[i] == 0 {
			continue
		}
		coord := idx / own[i]
		idx %= own[i]
		offset += coord * parentStride[i]
	}
	return offset
}

// At returns the element at linear target index idx (row-major).
func (v *View[T]) At(idx int) T {
	return v.buf.Read()[v.offsetAt(idx)]
}

// Set writes val at linear target index idx. It does not check for
// broadcast dimensions: on a view with a zero stride along a label that
// varies, several target indices map onto the same storage slot and each
// Set overwrites it. The kernel only writes through the destination
// operand, never through the broadcast one.
func (v *View[T]) Set(idx int, val T) {
	v.buf.Write()[v.offsetAt(idx)] = val
}

// IsContiguousIn reports whether v's target Dimensions is a contiguous,
// dense run of its parent (possibly after a base-offset shift).
func (v *View[T]) IsContiguousIn(parent Dimensions) bool {
	return v.dims.IsContiguousIn(parent)
}

// Contiguous reports whether this view can be walked as one dense run:
// same labels, same order, as its own parentDims (no broadcast, no
// transpose, no sub-range beyond a dense slice).
func (v *View[T]) Contiguous() bool {
	if !v.dims.SameLabels(v.parentDims) && !v.dims.IsContiguousIn(v.parentDims) {
		return false
	}
	strides := v.strides()
	own := v.ownStrides()
	for i := range strides {
		if strides[i] != own[i] {
			return false
		}
	}
	return true
}

// Subview narrows the view along label to the half-open range
// [begin,end), shifting baseOffset and shrinking the target extent. If
// collapse is true the label is dropped entirely (rank reduces by one)
// and begin must equal end-1.
func (v *View[T]) Subview(label dim.Dim, begin, end int, collapse bool) (*View[T], error) {
	extent, err := v.dims.Size(label)
	if err != nil {
		return nil, err
	}
	if begin < 0 || end > extent || begin > end {
		return nil, newErr(KindContract, "slice range [%d,%d) out of bounds for %s extent %d", begin, end, label, extent)
	}
	stride := 0
	if v.parentDims.Contains(label) {
		stride, _ = v.parentDims.Offset(label)
	}
	newBase := v.baseOffset + begin*stride
	var newDims Dimensions
	if collapse {
		newDims, err = v.dims.Erase(label)
	} else {
		newDims, err = v.dims.Resize(label, end-begin)
	}
	if err != nil {
		return nil, err
	}
	return &View[T]{buf: v.buf, parentDims: v.parentDims, dims: newDims, baseOffset: newBase}, nil
}

// Materialize copies the view's logical contents into a fresh, densely
// packed owned Buffer, breaking any aliasing with its parent. Used to
// resolve the self-overlap aliasing hazard and to implement slice/concat
// (spec.md §4.8, which materialize their results).
func (v *View[T]) Materialize() *Buffer[T] {
	n := v.dims.Volume()
	out := NewBuffer[T](n)
	dst := out.Write()
	for i := 0; i < n; i++ {
		dst[i] = v.At(i)
	}
	return out
}

// CopyInto copies this view's logical contents, element by element in
// row-major target order, into dst (which must have the same Volume()).
func (v *View[T]) CopyInto(dst *View[T]) {
	n := v.dims.Volume()
	for i := 0; i < n; i++ {
		dst.Set(i, v.At(i))
	}
}
