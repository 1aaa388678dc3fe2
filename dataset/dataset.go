// Package dataset provides the public API for typed, dimension-labeled,
// heterogeneous columnar scientific data containers.
//
// The package defines the core types for working with tagged, unit-aware,
// broadcastable data:
//   - Dataset: an ordered, uniquely-keyed collection of Variables
//   - Variable: a named, tagged, dimensioned, unit-carrying column
//   - Dimensions: an ordered labeled shape
//
// Example:
//
//	dims, _ := dataset.NewDimensions(dataset.DE(dim.X, 3))
//	v, _ := dataset.MakeVariableFrom(tag.Value, "signal", dims, []float64{1, 2, 3})
//	ds := dataset.NewDataset()
//	_ = ds.Insert(v)
package dataset

import (
	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/internal/data"
	"github.com/scicore-go/dataset/tag"
)

// Type aliases for the public API.

// Dimensions is an ordered, labeled shape (at most 6 axes).
type Dimensions = data.Dimensions

// DimExtent is one (label, extent) pair used to build a Dimensions.
type DimExtent = data.DimExtent

// MaxDims is the maximum number of labeled axes a Dimensions may carry.
const MaxDims = data.MaxDims

// DE constructs a DimExtent literal.
func DE(d dim.Dim, extent int) DimExtent { return data.DE(d, extent) }

// NewDimensions builds a Dimensions from ordered (Dim, extent) pairs.
func NewDimensions(pairs ...DimExtent) (Dimensions, error) {
	return data.NewDimensions(pairs...)
}

// ConcatDim returns the Dimensions resulting from concatenating a and b
// along label.
func ConcatDim(label dim.Dim, a, b Dimensions) (Dimensions, error) {
	return data.ConcatDim(label, a, b)
}

// Variable is a named, tagged, dimensioned, unit-carrying column.
type Variable = data.Variable

// CollapseSentinel, passed as the end of a Variable.View or Slice call,
// drops the sliced dimension instead of narrowing it to a single-element
// range.
const CollapseSentinel = data.CollapseSentinel

// MakeVariable builds a new owned, zero-initialized Variable for t.
func MakeVariable(t tag.Tag, name string, dims Dimensions) (*Variable, error) {
	return data.MakeVariable(t, name, dims)
}

// MakeVariableFrom builds an owned Variable for t from explicit data.
func MakeVariableFrom[T any](t tag.Tag, name string, dims Dimensions, values []T) (*Variable, error) {
	return data.MakeVariableFrom(t, name, dims, values)
}

// Get returns a typed accessor over v's buffer or view.
func Get[T any](v *Variable) (*View[T], error) {
	return data.Get[T](v)
}

// View is a strided mapping of a target Dimensions onto a parent
// Dimensions over a shared Buffer.
type View[T any] = data.View[T]

// Dataset is an ordered, uniquely-(tag,name)-keyed collection of
// Variables with a coherent union Dimensions.
type Dataset = data.Dataset

// NewDataset returns an empty Dataset.
func NewDataset() *Dataset { return data.NewDataset() }

// DatasetSlice is a non-owning, read/write window onto a Dataset.
type DatasetSlice = data.DatasetSlice

// NewDatasetSlice returns an unrestricted DatasetSlice over ds.
func NewDatasetSlice(ds *Dataset) *DatasetSlice { return data.NewDatasetSlice(ds) }

// Slice returns a new Dataset restricting every Variable of ds to
// [begin,end) along label, materialized into freshly owned storage.
func Slice(ds *Dataset, label dim.Dim, begin, end int, collapse bool) (*Dataset, error) {
	return data.Slice(ds, label, begin, end, collapse)
}

// Split partitions ds into two Datasets at position at along label.
func Split(ds *Dataset, label dim.Dim, at int) (left, right *Dataset, err error) {
	return data.Split(ds, label, at)
}

// Concatenate joins a and b along label.
func Concatenate(label dim.Dim, a, b *Dataset) (*Dataset, error) {
	return data.Concatenate(label, a, b)
}

// Filter returns a new Dataset keeping, along label, only the positions
// where mask is true.
func Filter(ds *Dataset, label dim.Dim, mask []bool) (*Dataset, error) {
	return data.Filter(ds, label, mask)
}

// Sort returns a new Dataset with every Variable varying along label
// reordered by a stable sort of key's values.
func Sort(ds *Dataset, label dim.Dim, key tag.Tag) (*Dataset, error) {
	return data.Sort(ds, label, key)
}

// Rebin redistributes data's bin values from oldCoord's edges onto
// newCoord's edges along label, by linear overlap weighting.
func Rebin(v *Variable, label dim.Dim, oldCoord, newCoord *Variable) (*Variable, error) {
	return data.Rebin(v, label, oldCoord, newCoord)
}

// RebinDataset replaces the dimension-coordinate of label throughout ds
// with newCoord and rebins every Data-role Variable that varies along it.
func RebinDataset(ds *Dataset, label dim.Dim, newCoord *Variable) (*Dataset, error) {
	return data.RebinDataset(ds, label, newCoord)
}

// Add returns a+b as a new, independent Variable, leaving a and b
// unmodified.
func Add(a, b *Variable) (*Variable, error) { return pureBinOp(a, b, (*Variable).Add) }

// Sub returns a-b as a new, independent Variable.
func Sub(a, b *Variable) (*Variable, error) { return pureBinOp(a, b, (*Variable).Sub) }

// Mul returns a*b as a new, independent Variable.
func Mul(a, b *Variable) (*Variable, error) { return pureBinOp(a, b, (*Variable).Mul) }

func pureBinOp(a, b *Variable, op func(*Variable, *Variable) error) (*Variable, error) {
	result := a.Clone()
	if err := op(result, b); err != nil {
		return nil, err
	}
	return result, nil
}

// AddDataset returns a+b as a new, independent Dataset, leaving a and b
// unmodified.
func AddDataset(a, b *Dataset) (*Dataset, error) { return pureDatasetBinOp(a, b, (*Dataset).Add) }

// SubDataset returns a-b as a new, independent Dataset.
func SubDataset(a, b *Dataset) (*Dataset, error) { return pureDatasetBinOp(a, b, (*Dataset).Sub) }

// MulDataset returns a*b as a new, independent Dataset.
func MulDataset(a, b *Dataset) (*Dataset, error) { return pureDatasetBinOp(a, b, (*Dataset).Mul) }

func pureDatasetBinOp(a, b *Dataset, op func(*Dataset, *Dataset) error) (*Dataset, error) {
	result := NewDataset()
	for i := 0; i < a.Len(); i++ {
		if err := result.Insert(a.At(i).Clone()); err != nil {
			return nil, err
		}
	}
	if err := op(result, b); err != nil {
		return nil, err
	}
	return result, nil
}

// Error kinds re-exported for callers that branch on failure category.
const (
	KindDimensionMismatch  = data.KindDimensionMismatch
	KindDimensionNotFound  = data.KindDimensionNotFound
	KindEdgeMismatch       = data.KindEdgeMismatch
	KindUniqueness         = data.KindUniqueness
	KindDuplicateKey       = data.KindDuplicateKey
	KindTypeMismatch       = data.KindTypeMismatch
	KindUnsupportedElement = data.KindUnsupportedElement
	KindUnit               = data.KindUnit
	KindAlias              = data.KindAlias
	KindUnsupported        = data.KindUnsupported
	KindMissingVariable    = data.KindMissingVariable
	KindContract           = data.KindContract
)

// Kind discriminates the failure categories this package's operations
// can raise.
type Kind = data.Kind

// Is reports whether err is a dataset error with the given Kind.
func Is(err error, kind Kind) bool { return data.Is(err, kind) }

// ElementKind is the closed set of element types a Tag's buffer may
// hold, re-exported from the tag package for convenience.
type ElementKind = tag.ElementKind

// Element kind constants.
const (
	KindFloat64 ElementKind = tag.KindFloat64
	KindInt64   ElementKind = tag.KindInt64
	KindInt32   ElementKind = tag.KindInt32
	KindString  ElementKind = tag.KindString
	KindBool    ElementKind = tag.KindBool
	KindDataset ElementKind = tag.KindDataset
)
