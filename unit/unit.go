// Package unit implements a small enumerated physical-unit algebra:
// identity Dimensionless plus a multiplication/division table. Products
// outside the table fail rather than silently producing a nonsense unit.
package unit

import "fmt"

// Unit is a closed enumeration of the physical units this core reasons
// about. New units can combine via Mul/Div only along edges present in
// the table below.
type Unit int

// Supported units.
const (
	Dimensionless Unit = iota
	Length
	Area
	Volume
	Time
	InverseLength
	Counts
	Mass
	Temperature
	Energy
)

// String returns a human-readable unit name.
func (u Unit) String() string {
	switch u {
	case Dimensionless:
		return "dimensionless"
	case Length:
		return "m"
	case Area:
		return "m^2"
	case Volume:
		return "m^3"
	case Time:
		return "s"
	case InverseLength:
		return "1/m"
	case Counts:
		return "counts"
	case Mass:
		return "kg"
	case Temperature:
		return "K"
	case Energy:
		return "J"
	default:
		return "unknown"
	}
}

// Error reports an unsupported unit product or quotient.
type Error struct {
	Op     string
	A, B   Unit
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unit: %s(%s, %s): %s", e.Op, e.A, e.B, e.Reason)
	}
	return fmt.Sprintf("unit: unsupported %s(%s, %s)", e.Op, e.A, e.B)
}

type pair struct{ a, b Unit }

// mulTable lists every supported product. Lookup tries (a,b) then (b,a)
// since multiplication is commutative.
var mulTable = map[pair]Unit{
	{Dimensionless, Dimensionless}: Dimensionless,
	{Length, Length}:               Area,
	{Length, Area}:                 Volume,
	{Area, Length}:                 Volume,
	{Length, InverseLength}:        Dimensionless,
	{Counts, Dimensionless}:        Counts,
}

// Mul returns the unit of a product a*b, or an *Error if the product is
// not in the table. Multiplying by Dimensionless always returns the other
// operand's unit.
func Mul(a, b Unit) (Unit, error) {
	if a == Dimensionless {
		return b, nil
	}
	if b == Dimensionless {
		return a, nil
	}
	if r, ok := mulTable[pair{a, b}]; ok {
		return r, nil
	}
	if r, ok := mulTable[pair{b, a}]; ok {
		return r, nil
	}
	return Dimensionless, &Error{Op: "mul", A: a, B: b}
}

// Div returns the unit of a quotient a/b, or an *Error if unsupported.
// a/b is resolved by finding a unit x such that x*b == a (or b == a,
// giving Dimensionless; or b == Dimensionless, giving a).
func Div(a, b Unit) (Unit, error) {
	if b == Dimensionless {
		return a, nil
	}
	if a == b {
		return Dimensionless, nil
	}
	for p, r := range mulTable {
		if r == a {
			if p.a == b {
				return p.b, nil
			}
			if p.b == b {
				return p.a, nil
			}
		}
	}
	return Dimensionless, &Error{Op: "div", A: a, B: b}
}

// MustMul is Mul but panics on error; useful for compile-time-known
// products in tests and tag defaults.
func MustMul(a, b Unit) Unit {
	r, err := Mul(a, b)
	if err != nil {
		panic(err)
	}
	return r
}
