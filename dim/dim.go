// Package dim defines the closed set of labeled axes a Dataset's
// Dimensions can be built from.
package dim

// Dim identifies a labeled axis. The set is closed: new members require a
// new release of this package, mirroring how the tag registry is
// compile-time configuration.
type Dim int

// Supported dimension labels. Invalid is the sentinel "absent" dimension
// and is never a valid member of a Dimensions.
const (
	Invalid Dim = iota
	X
	Y
	Z
	Tof
	MonitorTof
	Spectrum
	Detector
	Event
	Row
	Q
	Component
	Time
	TimeInterval
	Polarization
	Temperature
)

// String returns a human-readable label name.
func (d Dim) String() string {
	switch d {
	case Invalid:
		return "Invalid"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	case Tof:
		return "Tof"
	case MonitorTof:
		return "MonitorTof"
	case Spectrum:
		return "Spectrum"
	case Detector:
		return "Detector"
	case Event:
		return "Event"
	case Row:
		return "Row"
	case Q:
		return "Q"
	case Component:
		return "Component"
	case Time:
		return "Time"
	case TimeInterval:
		return "TimeInterval"
	case Polarization:
		return "Polarization"
	case Temperature:
		return "Temperature"
	default:
		return "Unknown"
	}
}
