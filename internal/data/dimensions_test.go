package data

import (
	"testing"

	"github.com/scicore-go/dataset/dim"
)

func TestDimensionsVolumeAndOffset(t *testing.T) {
	d, err := NewDimensions(DE(dim.Y, 3), DE(dim.X, 2))
	if err != nil {
		t.Fatal(err)
	}
	if d.Volume() != 6 {
		t.Errorf("Volume() = %d, want 6", d.Volume())
	}
	// X is innermost -> offset 1; Y is outer -> offset = extent(X) = 2.
	if off, _ := d.Offset(dim.X); off != 1 {
		t.Errorf("Offset(X) = %d, want 1", off)
	}
	if off, _ := d.Offset(dim.Y); off != 2 {
		t.Errorf("Offset(Y) = %d, want 2", off)
	}
}

func TestDimensionsRejectsInvalidAndDuplicate(t *testing.T) {
	if _, err := NewDimensions(DE(dim.Invalid, 1)); err == nil {
		t.Error("expected error for dim.Invalid")
	}
	if _, err := NewDimensions(DE(dim.X, -1)); err == nil {
		t.Error("expected error for negative extent")
	}
	if _, err := NewDimensions(DE(dim.X, 2), DE(dim.X, 3)); err == nil {
		t.Error("expected error for duplicate label")
	}
}

func TestDimensionsTooMany(t *testing.T) {
	pairs := make([]DimExtent, MaxDims+1)
	for i := range pairs {
		pairs[i] = DE(dim.Dim(100+i), 1)
	}
	if _, err := NewDimensions(pairs...); err == nil {
		t.Error("expected error for too many dimensions")
	}
}

func TestDimensionsEqualityIsOrderSensitive(t *testing.T) {
	a, _ := NewDimensions(DE(dim.Y, 3), DE(dim.X, 2))
	b, _ := NewDimensions(DE(dim.X, 2), DE(dim.Y, 3))
	if a.Equal(b) {
		t.Error("Dimensions equality should be order-sensitive")
	}
	if !a.SameLabels(b) {
		t.Error("SameLabels should ignore order")
	}
}

func TestDimensionsContainsDims(t *testing.T) {
	a, _ := NewDimensions(DE(dim.Y, 3), DE(dim.X, 2))
	b, _ := NewDimensions(DE(dim.X, 2))
	if !a.ContainsDims(b) {
		t.Error("a should contain b's labels with equal extents")
	}
	c, _ := NewDimensions(DE(dim.X, 5))
	if a.ContainsDims(c) {
		t.Error("a should not contain c: extent mismatch")
	}
}

func TestDimensionsIsContiguousIn(t *testing.T) {
	parent, _ := NewDimensions(DE(dim.Y, 3), DE(dim.X, 2))
	child, _ := NewDimensions(DE(dim.X, 2))
	if !child.IsContiguousIn(parent) {
		t.Error("X slice should be contiguous (innermost) in parent")
	}
	notInner, _ := NewDimensions(DE(dim.Y, 3))
	if notInner.IsContiguousIn(parent) {
		t.Error("Y alone is not the contiguous inner slice of (Y,X)")
	}
}

func TestDimensionsEraseResizeAdd(t *testing.T) {
	d, _ := NewDimensions(DE(dim.Y, 3), DE(dim.X, 2))
	resized, err := d.Resize(dim.X, 5)
	if err != nil {
		t.Fatal(err)
	}
	if sz, _ := resized.Size(dim.X); sz != 5 {
		t.Errorf("Size(X) after resize = %d, want 5", sz)
	}
	erased, err := d.Erase(dim.Y)
	if err != nil {
		t.Fatal(err)
	}
	if erased.Contains(dim.Y) {
		t.Error("Y should be erased")
	}
	added, err := erased.Add(dim.Z, 4)
	if err != nil {
		t.Fatal(err)
	}
	if added.NDim() != 2 || added.labels[1] != dim.Z {
		t.Error("Z should be appended as innermost")
	}
}

func TestConcatDimSumsExistingDim(t *testing.T) {
	a, _ := NewDimensions(DE(dim.X, 2))
	b, _ := NewDimensions(DE(dim.X, 3))
	got, err := ConcatDim(dim.X, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if sz, _ := got.Size(dim.X); sz != 5 {
		t.Errorf("ConcatDim sizes = %d, want 5", sz)
	}
}

func TestConcatDimPromotesNewDim(t *testing.T) {
	a, _ := NewDimensions(DE(dim.X, 2))
	b, _ := NewDimensions(DE(dim.X, 2))
	got, err := ConcatDim(dim.Row, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if sz, _ := got.Size(dim.Row); sz != 2 {
		t.Errorf("ConcatDim promoted size = %d, want 2", sz)
	}
}
