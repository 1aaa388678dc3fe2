package data

import (
	"errors"
	"testing"

	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/tag"
	"github.com/scicore-go/dataset/unit"
)

func TestApplyBinOpBroadcastsOntoSupersetShape(t *testing.T) {
	dims, _ := NewDimensions(DE(dim.Y, 2), DE(dim.X, 3))
	v, _ := MakeVariableFrom(tag.Value, "v", dims, []float64{0, 0, 0, 0, 0, 0})

	rowDims, _ := NewDimensions(DE(dim.X, 3))
	row, _ := MakeVariableFrom(tag.Value, "row", rowDims, []float64{1, 2, 3})

	if err := v.Add(row); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got, _ := Get[float64](v)
	want := []float64{1, 2, 3, 1, 2, 3}
	for i, w := range want {
		if got.At(i) != w {
			t.Errorf("At(%d) = %v, want %v", i, got.At(i), w)
		}
	}
}

// TestApplyBinOpTranspose adds an operand whose Dimensions list the same
// labels in a different order, exercising broadcastIndex's per-label
// offset lookup rather than a positional stride walk.
func TestApplyBinOpTranspose(t *testing.T) {
	dstDims, _ := NewDimensions(DE(dim.Y, 2), DE(dim.X, 3))
	dst, _ := MakeVariableFrom(tag.Value, "dst", dstDims, []float64{0, 0, 0, 0, 0, 0})

	srcDims, _ := NewDimensions(DE(dim.X, 3), DE(dim.Y, 2))
	// src(x, y) = 10*x + y, stored row-major with X outer, Y inner.
	src, _ := MakeVariableFrom(tag.Value, "src", srcDims, []float64{0, 1, 10, 11, 20, 21})

	if err := dst.Add(src); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	got, _ := Get[float64](dst)
	// dst(y, x) = src(x, y) = 10*x + y, stored row-major with Y outer, X inner.
	want := []float64{0, 10, 20, 1, 11, 21}
	for i, w := range want {
		if got.At(i) != w {
			t.Errorf("At(%d) = %v, want %v", i, got.At(i), w)
		}
	}
}

func TestApplyBinOpCombinesUnitsThroughMul(t *testing.T) {
	dims, _ := NewDimensions(DE(dim.X, 1))
	a, _ := MakeVariableFrom(tag.Value, "a", dims, []float64{2})
	if err := a.SetUnit(unit.Length); err != nil {
		t.Fatalf("SetUnit failed: %v", err)
	}
	b, _ := MakeVariableFrom(tag.Value, "b", dims, []float64{3})
	if err := b.SetUnit(unit.Length); err != nil {
		t.Fatalf("SetUnit failed: %v", err)
	}

	if err := a.Mul(b); err != nil {
		t.Fatalf("Mul failed: %v", err)
	}
	if a.Unit() != unit.Area {
		t.Errorf("a.Unit() = %v, want %v", a.Unit(), unit.Area)
	}
	got, _ := Get[float64](a)
	if got.At(0) != 6 {
		t.Errorf("a[0] = %v, want 6", got.At(0))
	}
}

// TestApplyBinOpMulUnitFailureWrapsCause confirms an unsupported unit
// product surfaces as a *data.Error{Kind: KindUnit} wrapping the
// underlying *unit.Error, rather than a raw unit package error escaping
// the kernel and breaking Is's type assertion.
func TestApplyBinOpMulUnitFailureWrapsCause(t *testing.T) {
	dims, _ := NewDimensions(DE(dim.X, 1))
	a, _ := MakeVariableFrom(tag.Value, "a", dims, []float64{2})
	if err := a.SetUnit(unit.Time); err != nil {
		t.Fatalf("SetUnit failed: %v", err)
	}
	b, _ := MakeVariableFrom(tag.Value, "b", dims, []float64{3})
	if err := b.SetUnit(unit.Mass); err != nil {
		t.Fatalf("SetUnit failed: %v", err)
	}

	err := a.Mul(b)
	if !Is(err, KindUnit) {
		t.Fatalf("expected KindUnit, got %v", err)
	}
	var uerr *unit.Error
	if !errors.As(err, &uerr) {
		t.Errorf("expected the cause chain to unwrap to a *unit.Error, got %v", err)
	}
}

func TestDetectAliasAndMaterializeIdentityAndDisjointStorage(t *testing.T) {
	dims, _ := NewDimensions(DE(dim.X, 3))
	buf := NewBufferFrom([]float64{1, 2, 3})
	view := NewOwnedView(buf, dims)

	if got := detectAliasAndMaterialize(view, view); got != view {
		t.Error("same View handle should be returned unchanged")
	}

	otherBuf := NewBufferFrom([]float64{4, 5, 6})
	other := NewOwnedView(otherBuf, dims)
	if got := detectAliasAndMaterialize(view, other); got != other {
		t.Error("a View over disjoint storage should be returned unchanged")
	}
}

// TestDetectAliasAndMaterializeSelfOverlap builds two distinct View
// handles over the same backing buffer, one a plain view and one a
// transposed view of the same data, and checks that the transposed
// (aliasing) operand is materialized into independent storage rather
// than returned as-is.
func TestDetectAliasAndMaterializeSelfOverlap(t *testing.T) {
	parentDims, _ := NewDimensions(DE(dim.Y, 2), DE(dim.X, 2))
	buf := NewBufferFrom([]float64{1, 2, 3, 4})
	dst := NewOwnedView(buf, parentDims)

	transposedDims, _ := NewDimensions(DE(dim.X, 2), DE(dim.Y, 2))
	src := NewBroadcastView(buf, parentDims, transposedDims, 0)

	if !SameStorage(dst.Buffer(), src.Buffer()) {
		t.Fatal("dst and src should share storage before materialization")
	}

	resolved := detectAliasAndMaterialize(dst, src)
	if SameStorage(dst.Buffer(), resolved.Buffer()) {
		t.Error("an aliasing operand should be materialized into independent storage")
	}
	n := transposedDims.Volume()
	for i := 0; i < n; i++ {
		if resolved.At(i) != src.At(i) {
			t.Errorf("materialized At(%d) = %v, want %v", i, resolved.At(i), src.At(i))
		}
	}
}

func TestApplyBinOpDatasetConcatenatesEventLists(t *testing.T) {
	eventsA, _ := NewDimensions(DE(dim.Event, 2))
	innerA := NewDataset()
	tofA, _ := MakeVariableFrom(tag.TofData, "tof", eventsA, []float64{1, 2})
	if err := innerA.Insert(tofA); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	eventsB, _ := NewDimensions(DE(dim.Event, 3))
	innerB := NewDataset()
	tofB, _ := MakeVariableFrom(tag.TofData, "tof", eventsB, []float64{3, 4, 5})
	if err := innerB.Insert(tofB); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	cellDims, _ := NewDimensions(DE(dim.X, 1))
	v, _ := MakeVariableFrom(tag.Events, "", cellDims, []*Dataset{innerA})
	src, _ := MakeVariableFrom(tag.Events, "", cellDims, []*Dataset{innerB})

	if err := v.Add(src); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	cells, _ := Get[*Dataset](v)
	merged := cells.At(0)
	tofVar, err := merged.Get(tag.TofData, "tof")
	if err != nil {
		t.Fatalf("merged cell is missing its tof variable: %v", err)
	}
	mergedTof, _ := Get[float64](tofVar)
	want := []float64{1, 2, 3, 4, 5}
	if mergedTof.Dims().Volume() != len(want) {
		t.Fatalf("merged tof has volume %d, want %d", mergedTof.Dims().Volume(), len(want))
	}
	for i, w := range want {
		if mergedTof.At(i) != w {
			t.Errorf("merged tof[%d] = %v, want %v", i, mergedTof.At(i), w)
		}
	}
}

// TestApplyBinOpDatasetRequiresExactShape confirms a dataset-valued
// (Events/Table) operand must match shapes exactly: unlike the numeric
// kinds, per-cell event-list concatenation does not broadcast onto a
// superset shape.
func TestApplyBinOpDatasetRequiresExactShape(t *testing.T) {
	cellDims, _ := NewDimensions(DE(dim.Y, 2), DE(dim.X, 2))
	v, _ := MakeVariableFrom(tag.Events, "", cellDims, []*Dataset{NewDataset(), NewDataset(), NewDataset(), NewDataset()})

	rowDims, _ := NewDimensions(DE(dim.X, 2))
	src, _ := MakeVariableFrom(tag.Events, "", rowDims, []*Dataset{NewDataset(), NewDataset()})

	err := v.Add(src)
	if !Is(err, KindDimensionMismatch) {
		t.Fatalf("expected KindDimensionMismatch for a dataset-valued broadcast, got %v", err)
	}
}

func TestApplyBinOpDatasetRejectsSubAndMul(t *testing.T) {
	cellDims, _ := NewDimensions(DE(dim.X, 1))
	v, _ := MakeVariableFrom(tag.Events, "", cellDims, []*Dataset{NewDataset()})
	src, _ := MakeVariableFrom(tag.Events, "", cellDims, []*Dataset{NewDataset()})

	if err := v.Sub(src); !Is(err, KindUnsupported) {
		t.Errorf("expected KindUnsupported for Sub on a dataset-valued variable, got %v", err)
	}
	if err := v.Mul(src); !Is(err, KindUnsupported) {
		t.Errorf("expected KindUnsupported for Mul on a dataset-valued variable, got %v", err)
	}
}
