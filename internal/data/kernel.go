package data

import (
	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
	"github.com/scicore-go/dataset/unit"
)

// binOp is the closed set of in-place binary operators the kernel
// dispatches.
type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
)

// numeric is the set of element kinds the arithmetic kernel can combine
// elementwise.
type numeric interface {
	float64 | int64 | int32
}

// Add adds src into v in place (v += src), broadcasting and transposing
// src's Dimensions onto v's as needed.
func (v *Variable) Add(src *Variable) error { return v.applyBinOp(opAdd, src) }

// Sub subtracts src from v in place (v -= src).
func (v *Variable) Sub(src *Variable) error { return v.applyBinOp(opSub, src) }

// Mul multiplies v by src in place (v *= src), combining units via
// unit.Mul.
func (v *Variable) Mul(src *Variable) error { return v.applyBinOp(opMul, src) }

func (v *Variable) applyBinOp(op binOp, src *Variable) error {
	if v.kind != src.kind {
		return newErr(KindTypeMismatch, "cannot combine variable %v (%v) with %v (%v)", v.tag, v.kind, src.tag, src.kind)
	}
	if !v.dims.ContainsDims(src.dims) {
		return newErr(KindDimensionMismatch, "variable %v shape %v cannot broadcast operand shape %v", v.tag, v.dims.Labels(), src.dims.Labels())
	}
	if v.kind == tag.KindDataset && op != opAdd {
		return newErr(KindUnsupported, "dataset-valued variable %v only supports += (event-list concatenation)", v.tag)
	}
	resultUnit, err := combineUnits(op, v.unit, src.unit)
	if err != nil {
		return err
	}
	switch v.kind {
	case tag.KindFloat64:
		err = binOpNumeric[float64](op, v, src)
	case tag.KindInt64:
		err = binOpNumeric[int64](op, v, src)
	case tag.KindInt32:
		err = binOpNumeric[int32](op, v, src)
	case tag.KindDataset:
		if !v.dims.Equal(src.dims) {
			return newErr(KindDimensionMismatch, "event-list variable %v requires matching shapes %v and %v, not a broadcast", v.tag, v.dims.Labels(), src.dims.Labels())
		}
		err = binOpDatasetConcat(v, src)
	default:
		return newErr(KindUnsupportedElement, "arithmetic is not supported for element kind %v", v.kind)
	}
	if err != nil {
		return err
	}
	v.unit = resultUnit
	return nil
}

func combineUnits(op binOp, a, b unit.Unit) (unit.Unit, error) {
	switch op {
	case opAdd, opSub:
		if a != b {
			return 0, newErr(KindUnit, "cannot add or subtract operands with units %v and %v", a, b)
		}
		return a, nil
	case opMul:
		result, uerr := unit.Mul(a, b)
		if uerr != nil {
			return 0, wrapErr(KindUnit, uerr, "cannot multiply operands with units %v and %v", a, b)
		}
		return result, nil
	default:
		return 0, newErr(KindContract, "unsupported binary operator")
	}
}

// broadcastIndex maps a row-major linear index over to (the broadcast
// target shape) to the corresponding row-major linear index over from, a
// shape whose every label is assumed present in to with an equal extent.
// A label of to that is absent from from contributes stride 0 (a
// broadcast axis); label order may differ between from and to
// (transpose).
func broadcastIndex(from, to Dimensions, idx int) int {
	toStrides := to.Strides()
	fromOffset := 0
	for i, label := range to.Labels() {
		coord := idx / toStrides[i]
		idx %= toStrides[i]
		if from.Contains(label) {
			off, _ := from.Offset(label)
			fromOffset += coord * off
		}
	}
	return fromOffset
}

// detectAliasAndMaterialize guards the self-overlap aliasing hazard: if
// dst and src are different View handles sharing the same backing
// storage, broadcasting or transposing src onto dst's shape in place
// could read already-overwritten elements. Rather than reproduce that
// hazard, src is materialized into a fresh, unaliased buffer first.
func detectAliasAndMaterialize[T any](dst, src *View[T]) *View[T] {
	if dst == src {
		return src
	}
	if !SameStorage(dst.Buffer(), src.Buffer()) {
		return src
	}
	materialized := src.Materialize()
	return NewOwnedView(materialized, src.Dims())
}

func binOpNumeric[T numeric](op binOp, dst, src *Variable) error {
	dstView := asView[T](dst)
	srcView := detectAliasAndMaterialize(dstView, asView[T](src))
	srcDims := srcView.Dims()

	n := dstView.Dims().Volume()
	for i := 0; i < n; i++ {
		j := broadcastIndex(srcDims, dst.dims, i)
		a, b := dstView.At(i), srcView.At(j)
		switch op {
		case opAdd:
			dstView.Set(i, a+b)
		case opSub:
			dstView.Set(i, a-b)
		case opMul:
			dstView.Set(i, a*b)
		}
	}
	return nil
}

// binOpDatasetConcat implements += for Events/Table variables: each cell
// holds a nested event-list Dataset, and combining two such variables
// concatenates the two lists along dim.Event cell by cell.
func binOpDatasetConcat(dst, src *Variable) error {
	dstView := asView[*Dataset](dst)
	srcView := detectAliasAndMaterialize(dstView, asView[*Dataset](src))
	srcDims := srcView.Dims()

	n := dstView.Dims().Volume()
	for i := 0; i < n; i++ {
		j := broadcastIndex(srcDims, dst.dims, i)
		merged, err := Concatenate(dim.Event, dstView.At(i), srcView.At(j))
		if err != nil {
			return err
		}
		dstView.Set(i, merged)
	}
	return nil
}

// Add adds every Data-role Variable of rhs into the matching Variable of
// d, in document order, aborting on the first failure (spec.md §7: do not
// catch and continue).
func (d *Dataset) Add(rhs *Dataset) error { return d.applyBinOp(opAdd, rhs) }

// Sub subtracts rhs's Data-role Variables from d's matching Variables.
func (d *Dataset) Sub(rhs *Dataset) error { return d.applyBinOp(opSub, rhs) }

// Mul multiplies d's Data-role Variables by rhs's matching Variables.
func (d *Dataset) Mul(rhs *Dataset) error { return d.applyBinOp(opMul, rhs) }

func (d *Dataset) applyBinOp(op binOp, rhs *Dataset) error {
	for _, v := range d.vars {
		if v.tag.Role() != tag.Data {
			continue
		}
		other, _ := rhs.find(v.tag, v.name)
		if other == nil {
			return newErr(KindMissingVariable, "right-hand dataset has no variable matching tag=%v name=%q", v.tag, v.name)
		}
		if err := v.applyBinOp(op, other); err != nil {
			return err
		}
	}
	return nil
}
