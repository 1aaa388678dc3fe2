// Package tag implements the compile-time Tag registry: a closed mapping
// from each Tag to its element kind, default unit, and role
// (Coord/Data/Attr), plus the sub-table of which Coord tags bind to which
// Dim as that Dim's dimension-coordinate.
package tag

import (
	"fmt"

	"github.com/scicore-go/dataset/dim"
	"github.com/scicore-go/dataset/unit"
)

// Tag is a 16-bit identifier into the registry below.
type Tag uint16

// Role partitions the Tag space into coordinates, data, and attributes.
type Role int

// Roles a Tag can carry.
const (
	Coord Role = iota
	Data
	Attr
)

func (r Role) String() string {
	switch r {
	case Coord:
		return "Coord"
	case Data:
		return "Data"
	case Attr:
		return "Attr"
	default:
		return "Unknown"
	}
}

// ElementKind is the closed set of element types a Tag's buffer may hold.
type ElementKind int

// Supported element kinds.
const (
	KindFloat64 ElementKind = iota
	KindInt64
	KindInt32
	KindString
	KindBool
	KindDataset // nested Dataset per cell, used by Events and Table.
)

func (k ElementKind) String() string {
	switch k {
	case KindFloat64:
		return "float64"
	case KindInt64:
		return "int64"
	case KindInt32:
		return "int32"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindDataset:
		return "Dataset"
	default:
		return "unknown"
	}
}

// Info is the compile-time-configured entry for one Tag.
type Info struct {
	Kind    ElementKind
	Unit    unit.Unit
	Role    Role
	CoordOf dim.Dim // Invalid unless this Coord tag is a dimension-coordinate.
}

// Coord tags: axis labels and instrument-geometry metadata.
const (
	X Tag = iota
	Y
	Z
	TofCoord
	MonitorTofCoord
	DetectorID
	SpectrumNumber
	DetectorIsMonitor
	DetectorMask
	DetectorRotation
	DetectorPosition
	DetectorGrouping
	SpectrumPosition
	RowLabel
	PolarizationCoord
	TemperatureCoord
	FuzzyTemperature
	TimeCoord
	TimeIntervalCoord
	Mask
)

// Data tags: measured/derived values.
const (
	TofData Tag = iota + 100
	PulseTime
	Value
	Variance
	StdDev
	Int
	DimensionSize
	String
	Events
	Table
	History
)

// Attr tags: global annotations, not bound to any Dim.
const (
	ExperimentLog Tag = iota + 200
)

var registry = map[Tag]Info{
	X:                 {Kind: KindFloat64, Unit: unit.Length, Role: Coord, CoordOf: dim.X},
	Y:                 {Kind: KindFloat64, Unit: unit.Length, Role: Coord, CoordOf: dim.Y},
	Z:                 {Kind: KindFloat64, Unit: unit.Length, Role: Coord, CoordOf: dim.Z},
	TofCoord:          {Kind: KindFloat64, Unit: unit.Time, Role: Coord, CoordOf: dim.Tof},
	MonitorTofCoord:   {Kind: KindFloat64, Unit: unit.Time, Role: Coord, CoordOf: dim.MonitorTof},
	DetectorID:        {Kind: KindInt32, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Detector},
	SpectrumNumber:    {Kind: KindInt32, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Spectrum},
	DetectorIsMonitor:  {Kind: KindBool, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Invalid},
	DetectorMask:      {Kind: KindBool, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Invalid},
	DetectorRotation:  {Kind: KindFloat64, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Invalid},
	DetectorPosition:  {Kind: KindFloat64, Unit: unit.Length, Role: Coord, CoordOf: dim.Invalid},
	DetectorGrouping:  {Kind: KindInt32, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Invalid},
	SpectrumPosition:  {Kind: KindFloat64, Unit: unit.Length, Role: Coord, CoordOf: dim.Invalid},
	RowLabel:          {Kind: KindString, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Row},
	PolarizationCoord: {Kind: KindFloat64, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Polarization},
	TemperatureCoord:  {Kind: KindFloat64, Unit: unit.Temperature, Role: Coord, CoordOf: dim.Temperature},
	FuzzyTemperature:  {Kind: KindFloat64, Unit: unit.Temperature, Role: Coord, CoordOf: dim.Invalid},
	TimeCoord:         {Kind: KindFloat64, Unit: unit.Time, Role: Coord, CoordOf: dim.Time},
	TimeIntervalCoord: {Kind: KindFloat64, Unit: unit.Time, Role: Coord, CoordOf: dim.TimeInterval},
	Mask:              {Kind: KindBool, Unit: unit.Dimensionless, Role: Coord, CoordOf: dim.Invalid},

	TofData:       {Kind: KindFloat64, Unit: unit.Time, Role: Data, CoordOf: dim.Invalid},
	PulseTime:     {Kind: KindFloat64, Unit: unit.Time, Role: Data, CoordOf: dim.Invalid},
	Value:         {Kind: KindFloat64, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},
	Variance:      {Kind: KindFloat64, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},
	StdDev:        {Kind: KindFloat64, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},
	Int:           {Kind: KindInt64, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},
	DimensionSize: {Kind: KindInt64, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},
	String:        {Kind: KindString, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},
	Events:        {Kind: KindDataset, Unit: unit.Counts, Role: Data, CoordOf: dim.Invalid},
	Table:         {Kind: KindDataset, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},
	History:       {Kind: KindString, Unit: unit.Dimensionless, Role: Data, CoordOf: dim.Invalid},

	ExperimentLog: {Kind: KindString, Unit: unit.Dimensionless, Role: Attr, CoordOf: dim.Invalid},
}

// Lookup returns the registered Info for t, or an error if t is unknown.
func Lookup(t Tag) (Info, error) {
	info, ok := registry[t]
	if !ok {
		return Info{}, fmt.Errorf("tag: unregistered tag %d", t)
	}
	return info, nil
}

// Role returns t's role, panicking if t is unregistered. Used in contexts
// (e.g. struct literals, hot paths) where the tag is already known-valid.
func (t Tag) Role() Role {
	info, err := Lookup(t)
	if err != nil {
		panic(err)
	}
	return info.Role
}

// Kind returns t's element kind, panicking if t is unregistered.
func (t Tag) Kind() ElementKind {
	info, err := Lookup(t)
	if err != nil {
		panic(err)
	}
	return info.Kind
}

// DefaultUnit returns t's default unit, panicking if t is unregistered.
func (t Tag) DefaultUnit() unit.Unit {
	info, err := Lookup(t)
	if err != nil {
		panic(err)
	}
	return info.Unit
}

// IsDimensionCoord reports whether t is the dimension-coordinate of some
// Dim (i.e. a Coord tag bound to a specific Dim via CoordOf).
func IsDimensionCoord(t Tag) bool {
	info, err := Lookup(t)
	if err != nil {
		return false
	}
	return info.Role == Coord && info.CoordOf != dim.Invalid
}

// CoordDim returns the Dim that t is the dimension-coordinate of, or
// dim.Invalid if t is not a dimension-coordinate.
func CoordDim(t Tag) dim.Dim {
	info, err := Lookup(t)
	if err != nil {
		return dim.Invalid
	}
	return info.CoordOf
}
