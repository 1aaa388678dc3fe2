package tag

import (
	"testing"

	"github.com/scicore-go/dataset/dim"
)

func TestIsDimensionCoord(t *testing.T) {
	if !IsDimensionCoord(TofCoord) {
		t.Error("TofCoord should be a dimension-coordinate")
	}
	if IsDimensionCoord(Value) {
		t.Error("Value is Data, not a dimension-coordinate")
	}
	if IsDimensionCoord(DetectorPosition) {
		t.Error("DetectorPosition is a Coord but not bound to a Dim")
	}
}

func TestCoordDim(t *testing.T) {
	if got := CoordDim(SpectrumNumber); got != dim.Spectrum {
		t.Errorf("CoordDim(SpectrumNumber) = %v, want Spectrum", got)
	}
	if got := CoordDim(Value); got != dim.Invalid {
		t.Errorf("CoordDim(Value) = %v, want Invalid", got)
	}
}

func TestRoles(t *testing.T) {
	if Value.Role() != Data {
		t.Error("Value should be Data role")
	}
	if X.Role() != Coord {
		t.Error("X should be Coord role")
	}
	if ExperimentLog.Role() != Attr {
		t.Error("ExperimentLog should be Attr role")
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup(Tag(9999)); err == nil {
		t.Error("expected error for unregistered tag")
	}
}
