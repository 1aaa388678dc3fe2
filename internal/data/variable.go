package data

import (
	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
	"github.com/scicore-go/dataset/unit"
)

// Variable is a named, tagged, dimensioned, unit-carrying column. Its
// data is either an owned Buffer[T] (T = the tag's declared element
// kind) or a View[T] onto another Variable's buffer. The concrete T is
// erased into `data any`; every access goes through a typed accessor
// matching v.kind, mirroring the closed per-ElementKind dispatch the tag
// registry enforces.
type Variable struct {
	tag  tag.Tag
	name string
	unit unit.Unit
	dims Dimensions
	kind tag.ElementKind
	data any // *Buffer[T] or *View[T] for T matching kind.
}

// Tag returns the Variable's Tag.
func (v *Variable) Tag() tag.Tag { return v.tag }

// Name returns the Variable's name ("" for Coord Variables).
func (v *Variable) Name() string { return v.name }

// Unit returns the Variable's current unit.
func (v *Variable) Unit() unit.Unit { return v.unit }

// Dimensions returns the Variable's shape.
func (v *Variable) Dimensions() Dimensions { return v.dims }

// Kind returns the Variable's element kind.
func (v *Variable) Kind() tag.ElementKind { return v.kind }

// IsCoord reports whether the Variable's tag has Coord role.
func (v *Variable) IsCoord() bool { return v.tag.Role() == tag.Coord }

// IsView reports whether the Variable's data is a View onto another
// Variable's buffer, as opposed to an owned Buffer.
func (v *Variable) IsView() bool {
	switch v.kind {
	case tag.KindFloat64:
		_, ok := v.data.(*View[float64])
		return ok
	case tag.KindInt64:
		_, ok := v.data.(*View[int64])
		return ok
	case tag.KindInt32:
		_, ok := v.data.(*View[int32])
		return ok
	case tag.KindString:
		_, ok := v.data.(*View[string])
		return ok
	case tag.KindBool:
		_, ok := v.data.(*View[bool])
		return ok
	case tag.KindDataset:
		_, ok := v.data.(*View[*Dataset])
		return ok
	default:
		return false
	}
}

// makeZero allocates a fresh owned buffer of n zero-valued elements.
func makeZero[T any](n int) *Buffer[T] {
	return NewBuffer[T](n)
}

// MakeVariable builds a new owned Variable for t with the given
// Dimensions, zero-initialized. t's role must allow name (Coord requires
// name == "").
func MakeVariable(t tag.Tag, name string, dims Dimensions) (*Variable, error) {
	info, err := tag.Lookup(t)
	if err != nil {
		return nil, wrapErr(KindContract, err, "make variable")
	}
	if info.Role == tag.Coord && name != "" {
		return nil, newErr(KindContract, "coordinate variable %v must have an empty name, got %q", t, name)
	}
	n := dims.Volume()
	var data any
	switch info.Kind {
	case tag.KindFloat64:
		data = makeZero[float64](n)
	case tag.KindInt64:
		data = makeZero[int64](n)
	case tag.KindInt32:
		data = makeZero[int32](n)
	case tag.KindString:
		data = makeZero[string](n)
	case tag.KindBool:
		data = makeZero[bool](n)
	case tag.KindDataset:
		data = makeZero[*Dataset](n)
	default:
		return nil, newErr(KindContract, "unregistered element kind for tag %v", t)
	}
	return &Variable{tag: t, name: name, unit: info.Unit, dims: dims, kind: info.Kind, data: data}, nil
}

// MakeVariableFrom builds an owned Variable for t from explicit data.
// len(values) must equal dims.Volume(); otherwise it fails with
// KindContract.
func MakeVariableFrom[T any](t tag.Tag, name string, dims Dimensions, values []T) (*Variable, error) {
	v, err := MakeVariable(t, name, dims)
	if err != nil {
		return nil, err
	}
	if len(values) != dims.Volume() {
		return nil, newErr(KindContract, "dimensions volume %d does not match %d supplied values", dims.Volume(), len(values))
	}
	buf, ok := v.data.(*Buffer[T])
	if !ok {
		return nil, newErr(KindTypeMismatch, "tag %v element type does not match supplied value type", t)
	}
	copy(buf.Write(), values)
	return v, nil
}

// bufferOf[T] returns v's data as an owned *Buffer[T], if it is one.
func bufferOf[T any](v *Variable) (*Buffer[T], bool) {
	b, ok := v.data.(*Buffer[T])
	return b, ok
}

// viewOf[T] returns v's data as a *View[T], if it is one.
func viewOf[T any](v *Variable) (*View[T], bool) {
	b, ok := v.data.(*View[T])
	return b, ok
}

// asView[T] returns a uniform *View[T] over v's data, wrapping an owned
// buffer as a dense identity view if necessary. Used by the kernel so
// arithmetic never needs to special-case "owned vs. view".
func asView[T any](v *Variable) *View[T] {
	if view, ok := viewOf[T](v); ok {
		return view
	}
	buf, ok := bufferOf[T](v)
	if !ok {
		panic("asView: Variable data does not match requested element type")
	}
	return NewOwnedView(buf, v.dims)
}

// Get returns a typed accessor over the Variable's buffer or view.
// Mutable access (Write) on a view-backed Variable propagates to its
// parent's shared buffer, triggering COW there if the parent buffer is
// itself shared.
func Get[T any](v *Variable) (*View[T], error) {
	var dummyKind tag.ElementKind
	switch any(*new(T)).(type) {
	case float64:
		dummyKind = tag.KindFloat64
	case int64:
		dummyKind = tag.KindInt64
	case int32:
		dummyKind = tag.KindInt32
	case string:
		dummyKind = tag.KindString
	case bool:
		dummyKind = tag.KindBool
	case *Dataset:
		dummyKind = tag.KindDataset
	default:
		return nil, newErr(KindTypeMismatch, "unsupported Get element type")
	}
	if dummyKind != v.kind {
		return nil, newErr(KindTypeMismatch, "variable %v holds %v, not %v", v.tag, v.kind, dummyKind)
	}
	return asView[T](v), nil
}

// SetName renames the Variable. Fails with KindContract if the Variable
// is a Coord (coordinates must have an empty name).
func (v *Variable) SetName(name string) error {
	if v.IsCoord() && name != "" {
		return newErr(KindContract, "coordinate variable %v must have an empty name", v.tag)
	}
	v.name = name
	return nil
}

// SetUnit changes the Variable's unit. If the Variable's data is a View
// that does not cover its full parent Dimensions, this fails with
// KindAlias: a partial view must not be able to mutate the parent
// Variable's metadata.
func (v *Variable) SetUnit(u unit.Unit) error {
	if v.IsView() && !v.viewCoversWhole() {
		return newErr(KindAlias, "cannot set unit through a partial view of variable %v", v.tag)
	}
	v.unit = u
	return nil
}

// viewCoversWhole reports whether v's data, if a View, has target
// Dimensions exactly equal to its parent's (no sub-range, no broadcast,
// no transpose-with-dropped-axis): i.e. the view covers the whole
// underlying Variable.
func (v *Variable) viewCoversWhole() bool {
	switch v.kind {
	case tag.KindFloat64:
		view, ok := viewOf[float64](v)
		return ok && view.Dims().Equal(view.ParentDims())
	case tag.KindInt64:
		view, ok := viewOf[int64](v)
		return ok && view.Dims().Equal(view.ParentDims())
	case tag.KindInt32:
		view, ok := viewOf[int32](v)
		return ok && view.Dims().Equal(view.ParentDims())
	case tag.KindString:
		view, ok := viewOf[string](v)
		return ok && view.Dims().Equal(view.ParentDims())
	case tag.KindBool:
		view, ok := viewOf[bool](v)
		return ok && view.Dims().Equal(view.ParentDims())
	case tag.KindDataset:
		view, ok := viewOf[*Dataset](v)
		return ok && view.Dims().Equal(view.ParentDims())
	default:
		return false
	}
}

// SetDimensions resizes the Variable's shape in place, reallocating its
// owned buffer. Fails with KindAlias if the Variable's data is a View
// (a view's shape is derived from its parent and cannot be resized
// independently).
func (v *Variable) SetDimensions(dims Dimensions) error {
	if v.IsView() {
		return newErr(KindAlias, "cannot resize variable %v: its data is a view onto another variable's buffer", v.tag)
	}
	n := dims.Volume()
	switch v.kind {
	case tag.KindFloat64:
		buf, _ := bufferOf[float64](v)
		buf.Resize(n)
	case tag.KindInt64:
		buf, _ := bufferOf[int64](v)
		buf.Resize(n)
	case tag.KindInt32:
		buf, _ := bufferOf[int32](v)
		buf.Resize(n)
	case tag.KindString:
		buf, _ := bufferOf[string](v)
		buf.Resize(n)
	case tag.KindBool:
		buf, _ := bufferOf[bool](v)
		buf.Resize(n)
	case tag.KindDataset:
		buf, _ := bufferOf[*Dataset](v)
		buf.Resize(n)
	}
	v.dims = dims
	return nil
}

// CollapseSentinel, passed as View's end, drops the sliced dimension.
const CollapseSentinel = -1

// View returns a new Variable whose data is a View over this Variable's
// buffer, sliced to [begin,end) along label. If end == CollapseSentinel,
// the dimension is dropped (rank reduces by one) and begin is used as
// the single index.
func (v *Variable) View(label dim.Dim, begin, end int) (*Variable, error) {
	collapse := end == CollapseSentinel
	if collapse {
		end = begin + 1
	}
	name := v.name
	if v.IsCoord() {
		name = ""
	}
	switch v.kind {
	case tag.KindFloat64:
		return viewVariable[float64](v, label, begin, end, collapse, name)
	case tag.KindInt64:
		return viewVariable[int64](v, label, begin, end, collapse, name)
	case tag.KindInt32:
		return viewVariable[int32](v, label, begin, end, collapse, name)
	case tag.KindString:
		return viewVariable[string](v, label, begin, end, collapse, name)
	case tag.KindBool:
		return viewVariable[bool](v, label, begin, end, collapse, name)
	case tag.KindDataset:
		return viewVariable[*Dataset](v, label, begin, end, collapse, name)
	default:
		return nil, newErr(KindContract, "unsupported element kind")
	}
}

func viewVariable[T any](v *Variable, label dim.Dim, begin, end int, collapse bool, name string) (*Variable, error) {
	base := asView[T](v)
	sub, err := base.Subview(label, begin, end, collapse)
	if err != nil {
		return nil, err
	}
	return &Variable{tag: v.tag, name: name, unit: v.unit, dims: sub.Dims(), kind: v.kind, data: sub}, nil
}

// Clone returns an owned, independent copy of v. If v's data is already
// an owned Buffer, the clone shares its storage via Buffer.Clone (O(1),
// refcounted; a subsequent write to either copy triggers copy-on-write).
// If v's data is a View (a sub-range, broadcast, or transpose), the view
// is materialized into a fresh dense buffer, since there is no whole
// buffer to share a handle to.
func (v *Variable) Clone() *Variable {
	switch v.kind {
	case tag.KindFloat64:
		return cloneVariable[float64](v)
	case tag.KindInt64:
		return cloneVariable[int64](v)
	case tag.KindInt32:
		return cloneVariable[int32](v)
	case tag.KindString:
		return cloneVariable[string](v)
	case tag.KindBool:
		return cloneVariable[bool](v)
	case tag.KindDataset:
		return cloneVariable[*Dataset](v)
	default:
		panic("unsupported element kind")
	}
}

func cloneVariable[T any](v *Variable) *Variable {
	if buf, ok := bufferOf[T](v); ok {
		return &Variable{tag: v.tag, name: v.name, unit: v.unit, dims: v.dims, kind: v.kind, data: buf.Clone()}
	}
	view := asView[T](v)
	buf := view.Materialize()
	return &Variable{tag: v.tag, name: v.name, unit: v.unit, dims: v.dims, kind: v.kind, data: buf}
}

// Equal does a deep comparison: tag, name, unit, dims, and elementwise
// data (walking through views as needed). Pointer equality of the
// underlying buffer core short-circuits the elementwise walk.
func (v *Variable) Equal(other *Variable) bool {
	if v.tag != other.tag || v.name != other.name || v.unit != other.unit || v.kind != other.kind {
		return false
	}
	if !v.dims.Equal(other.dims) {
		return false
	}
	switch v.kind {
	case tag.KindFloat64:
		return equalElements[float64](v, other, func(a, b float64) bool { return a == b })
	case tag.KindInt64:
		return equalElements[int64](v, other, func(a, b int64) bool { return a == b })
	case tag.KindInt32:
		return equalElements[int32](v, other, func(a, b int32) bool { return a == b })
	case tag.KindString:
		return equalElements[string](v, other, func(a, b string) bool { return a == b })
	case tag.KindBool:
		return equalElements[bool](v, other, func(a, b bool) bool { return a == b })
	case tag.KindDataset:
		return equalElements[*Dataset](v, other, func(a, b *Dataset) bool {
			if a == b {
				return true
			}
			if a == nil || b == nil {
				return false
			}
			return a.Equal(b)
		})
	default:
		return false
	}
}

// copyInto writes src's elements, in row-major order, over dst's current
// contents. dst and src must agree on element kind and Volume(); dst's
// shape is otherwise left untouched (used by Dataset.SetSlice to write a
// sub-dataset into one index along a Dim of a larger dataset).
func copyInto(dst, src *Variable) error {
	if dst.kind != src.kind {
		return newErr(KindTypeMismatch, "cannot copy variable %v (%v) into %v (%v)", src.tag, src.kind, dst.tag, dst.kind)
	}
	if dst.dims.Volume() != src.dims.Volume() {
		return newErr(KindContract, "cannot copy variable %v: volume %d does not match destination volume %d", src.tag, src.dims.Volume(), dst.dims.Volume())
	}
	switch dst.kind {
	case tag.KindFloat64:
		copyElements[float64](dst, src)
	case tag.KindInt64:
		copyElements[int64](dst, src)
	case tag.KindInt32:
		copyElements[int32](dst, src)
	case tag.KindString:
		copyElements[string](dst, src)
	case tag.KindBool:
		copyElements[bool](dst, src)
	case tag.KindDataset:
		copyElements[*Dataset](dst, src)
	default:
		return newErr(KindContract, "unsupported element kind")
	}
	return nil
}

func copyElements[T any](dst, src *Variable) {
	asView[T](src).CopyInto(asView[T](dst))
}

func equalElements[T any](v, other *Variable, cmp func(a, b T) bool) bool {
	va, vb := asView[T](v), asView[T](other)
	if bufA, ok := bufferOf[T](v); ok {
		if bufB, ok2 := bufferOf[T](other); ok2 && SameStorage(bufA, bufB) {
			return true
		}
	}
	n := va.Dims().Volume()
	for i := 0; i < n; i++ {
		if !cmp(va.At(i), vb.At(i)) {
			return false
		}
	}
	return true
}
