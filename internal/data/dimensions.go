package data

import (
	"github.com/scicore-go/dataset/dim"
)

// MaxDims is the maximum number of labeled axes a Dimensions may carry,
// matching the fixed 6-slot layout of the source this core reimplements.
const MaxDims = 6

// Dimensions is an ordered sequence of (Dim, extent) pairs, at most
// MaxDims long, with no duplicate labels and no dim.Invalid member. The
// order is significant: the last listed label is the innermost
// (fastest-varying, row-major) axis. Equality is order-sensitive.
type Dimensions struct {
	labels  [MaxDims]dim.Dim
	extents [MaxDims]int
	n       int
}

// NewDimensions builds a Dimensions from ordered (Dim, extent) pairs. It
// rejects more than MaxDims entries, dim.Invalid, duplicate labels, and
// negative extents.
func NewDimensions(pairs ...DimExtent) (Dimensions, error) {
	var d Dimensions
	if len(pairs) > MaxDims {
		return d, newErr(KindContract, "at most %d dimensions are supported, got %d", MaxDims, len(pairs))
	}
	for _, p := range pairs {
		if p.Dim == dim.Invalid {
			return d, newErr(KindContract, "dim.Invalid is not a valid dimension")
		}
		if p.Extent < 0 {
			return d, newErr(KindContract, "dimension extent cannot be negative: %s=%d", p.Dim, p.Extent)
		}
		if d.Contains(p.Dim) {
			return d, newErr(KindContract, "duplicate dimension label %s", p.Dim)
		}
		d.labels[d.n] = p.Dim
		d.extents[d.n] = p.Extent
		d.n++
	}
	return d, nil
}

// DimExtent is one (label, extent) pair used to build a Dimensions.
type DimExtent struct {
	Dim    dim.Dim
	Extent int
}

// DE is shorthand for constructing a DimExtent literal.
func DE(d dim.Dim, extent int) DimExtent { return DimExtent{Dim: d, Extent: extent} }

// NDim returns the number of labeled axes.
func (d Dimensions) NDim() int { return d.n }

// Empty reports whether d has no labeled axes (a scalar shape).
func (d Dimensions) Empty() bool { return d.n == 0 }

// Volume returns the product of all extents (1 for a scalar shape).
func (d Dimensions) Volume() int {
	v := 1
	for i := 0; i < d.n; i++ {
		v *= d.extents[i]
	}
	return v
}

// Labels returns the ordered labels, outer to inner.
func (d Dimensions) Labels() []dim.Dim {
	out := make([]dim.Dim, d.n)
	copy(out, d.labels[:d.n])
	return out
}

// Extents returns the ordered extents, outer to inner.
func (d Dimensions) Extents() []int {
	out := make([]int, d.n)
	copy(out, d.extents[:d.n])
	return out
}

// Contains reports whether label is present in d.
func (d Dimensions) Contains(label dim.Dim) bool {
	for i := 0; i < d.n; i++ {
		if d.labels[i] == label {
			return true
		}
	}
	return false
}

// ContainsDims reports whether every label of other is present in d with
// an equal extent.
func (d Dimensions) ContainsDims(other Dimensions) bool {
	for i := 0; i < other.n; i++ {
		idx := d.index(other.labels[i])
		if idx < 0 || d.extents[idx] != other.extents[i] {
			return false
		}
	}
	return true
}

func (d Dimensions) index(label dim.Dim) int {
	for i := 0; i < d.n; i++ {
		if d.labels[i] == label {
			return i
		}
	}
	return -1
}

// Size returns the extent of label, failing with KindDimensionNotFound if
// label is absent.
func (d Dimensions) Size(label dim.Dim) (int, error) {
	idx := d.index(label)
	if idx < 0 {
		return 0, newErr(KindDimensionNotFound, "dimension %s not found in %v", label, d.Labels())
	}
	return d.extents[idx], nil
}

// Offset returns the row-major stride of label: the product of the
// extents of every label listed after it (i.e. the labels inner of it).
// The innermost label always has offset 1.
func (d Dimensions) Offset(label dim.Dim) (int, error) {
	idx := d.index(label)
	if idx < 0 {
		return 0, newErr(KindDimensionNotFound, "dimension %s not found in %v", label, d.Labels())
	}
	stride := 1
	for i := idx + 1; i < d.n; i++ {
		stride *= d.extents[i]
	}
	return stride, nil
}

// Strides returns the row-major stride of every label, outer to inner,
// in one pass (Offset computed for the whole shape at once).
func (d Dimensions) Strides() []int {
	strides := make([]int, d.n)
	if d.n == 0 {
		return strides
	}
	strides[d.n-1] = 1
	for i := d.n - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * d.extents[i+1]
	}
	return strides
}

// Resize changes the extent of an existing label in place.
func (d Dimensions) Resize(label dim.Dim, extent int) (Dimensions, error) {
	idx := d.index(label)
	if idx < 0 {
		return d, newErr(KindDimensionNotFound, "dimension %s not found in %v", label, d.Labels())
	}
	if extent < 0 {
		return d, newErr(KindContract, "dimension extent cannot be negative: %s=%d", label, extent)
	}
	out := d
	out.extents[idx] = extent
	return out, nil
}

// Erase removes label from d, shifting later labels down by one slot.
func (d Dimensions) Erase(label dim.Dim) (Dimensions, error) {
	idx := d.index(label)
	if idx < 0 {
		return d, newErr(KindDimensionNotFound, "dimension %s not found in %v", label, d.Labels())
	}
	var out Dimensions
	out.n = d.n - 1
	j := 0
	for i := 0; i < d.n; i++ {
		if i == idx {
			continue
		}
		out.labels[j] = d.labels[i]
		out.extents[j] = d.extents[i]
		j++
	}
	return out, nil
}

// Add appends label as the new innermost axis.
func (d Dimensions) Add(label dim.Dim, extent int) (Dimensions, error) {
	if d.n >= MaxDims {
		return d, newErr(KindContract, "at most %d dimensions are supported", MaxDims)
	}
	if label == dim.Invalid {
		return d, newErr(KindContract, "dim.Invalid is not a valid dimension")
	}
	if extent < 0 {
		return d, newErr(KindContract, "dimension extent cannot be negative: %s=%d", label, extent)
	}
	if d.Contains(label) {
		return d, newErr(KindContract, "duplicate dimension label %s", label)
	}
	out := d
	out.labels[out.n] = label
	out.extents[out.n] = extent
	out.n++
	return out, nil
}

// Relabel renames the axis at position i (0 = outermost) to label.
func (d Dimensions) Relabel(i int, label dim.Dim) (Dimensions, error) {
	if i < 0 || i >= d.n {
		return d, newErr(KindContract, "relabel index %d out of range [0,%d)", i, d.n)
	}
	out := d
	out.labels[i] = label
	return out, nil
}

// Equal compares labels and extents in order; Dimensions equality is
// order-sensitive.
func (d Dimensions) Equal(other Dimensions) bool {
	if d.n != other.n {
		return false
	}
	for i := 0; i < d.n; i++ {
		if d.labels[i] != other.labels[i] || d.extents[i] != other.extents[i] {
			return false
		}
	}
	return true
}

// SameLabels reports whether d and other carry the same set of labels,
// each with equal extent, regardless of order (i.e. a candidate for
// transpose).
func (d Dimensions) SameLabels(other Dimensions) bool {
	if d.n != other.n {
		return false
	}
	for i := 0; i < d.n; i++ {
		idx := other.index(d.labels[i])
		if idx < 0 || other.extents[idx] != d.extents[i] {
			return false
		}
	}
	return true
}

// IsContiguousIn reports whether d's labels form a contiguous,
// identically-extented outer-to-inner slice of parent's labels: i.e. a
// view with shape d over parent can be walked with parent's own strides
// with no gaps.
func (d Dimensions) IsContiguousIn(parent Dimensions) bool {
	if d.n == 0 {
		return true
	}
	if d.n > parent.n {
		return false
	}
	start := parent.n - d.n
	for i := 0; i < d.n; i++ {
		if d.labels[i] != parent.labels[start+i] || d.extents[i] != parent.extents[start+i] {
			return false
		}
	}
	return true
}

// ConcatDim returns the Dimensions resulting from concatenating a and b
// along dim. If both already contain dim, their extents along dim sum
// (all other labels must already agree, checked by the caller). If
// neither contains dim (the slice-plus-volume case), dim is added as a
// new innermost axis of extent 2.
func ConcatDim(label dim.Dim, a, b Dimensions) (Dimensions, error) {
	aHas, bHas := a.Contains(label), b.Contains(label)
	switch {
	case aHas && bHas:
		ae, _ := a.Size(label)
		be, _ := b.Size(label)
		return a.Resize(label, ae+be)
	case !aHas && !bHas:
		return a.Add(label, 2)
	default:
		return Dimensions{}, newErr(KindDimensionMismatch, "dimension %s present in only one of the two operands", label)
	}
}
