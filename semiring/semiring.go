// Package semiring provides the tropical-algebra kernel shared by every
// other package in this module: the scalar type, the ±∞ sentinels, the
// five supported semiring tags, and the pure ε/e/⊕/⊗ functions that every
// numeric operation elsewhere consults.
//
// Behaviour is branch-minimal but exactly specified: (max,+) and (min,+)
// multiplication widen to 64 bits and saturate at the 32-bit bounds
// instead of wrapping; (max,min)/(min,max) pass infinities through
// unchanged; Boolean treats any non-zero operand as true.
package semiring

import "fmt"

// Scalar is the 32-bit signed integer value type used throughout palma.
// NegInf and PosInf are its two sentinel values, denoting ±∞ in every
// semiring. No other value is reserved.
type Scalar = int32

const (
	// NegInf is the minimum representable Scalar, used as -∞.
	NegInf Scalar = -1 << 31 // math.MinInt32
	// PosInf is the maximum representable Scalar, used as +∞.
	PosInf Scalar = 1<<31 - 1 // math.MaxInt32
)

// Tag identifies one of the five supported idempotent semirings.
type Tag uint8

const (
	// MaxPlus: ⊕ = max, ⊗ = saturating +, ε = -∞, e = 0.
	MaxPlus Tag = iota
	// MinPlus: ⊕ = min, ⊗ = saturating +, ε = +∞, e = 0.
	MinPlus
	// MaxMin: ⊕ = max, ⊗ = min, ε = -∞, e = +∞.
	MaxMin
	// MinMax: ⊕ = min, ⊗ = max, ε = +∞, e = -∞.
	MinMax
	// Boolean: ⊕ = OR, ⊗ = AND, ε = 0, e = 1.
	Boolean
)

// String implements fmt.Stringer, returning the same text as Name.
func (t Tag) String() string { return Name(t) }

// Name returns the canonical display name for tag s.
func Name(s Tag) string {
	switch s {
	case MaxPlus:
		return "MaxPlus"
	case MinPlus:
		return "MinPlus"
	case MaxMin:
		return "MaxMin"
	case MinMax:
		return "MinMax"
	case Boolean:
		return "Boolean"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(s))
	}
}

// Additive (⊕) identities ε for Zero and multiplicative (⊗) identities e
// for One, one entry per semiring.
var zeroTable = [...]Scalar{
	MaxPlus: NegInf,
	MinPlus: PosInf,
	MaxMin:  NegInf,
	MinMax:  PosInf,
	Boolean: 0,
}

var oneTable = [...]Scalar{
	MaxPlus: 0,
	MinPlus: 0,
	MaxMin:  PosInf,
	MinMax:  NegInf,
	Boolean: 1,
}

// Zero returns ε, the additive identity, for semiring s.
// Complexity: O(1).
func Zero(s Tag) Scalar { return zeroTable[s] }

// One returns e, the multiplicative identity, for semiring s.
// Complexity: O(1).
func One(s Tag) Scalar { return oneTable[s] }

// IsZero reports whether a equals ε(s).
// Complexity: O(1).
func IsZero(a Scalar, s Tag) bool { return a == Zero(s) }

// Add computes a ⊕ b under semiring s.
// MaxPlus/MaxMin use max; MinPlus/MinMax use min; Boolean uses logical OR
// over the truthy/falsy interpretation of its operands (see IsZero).
// Complexity: O(1).
func Add(a, b Scalar, s Tag) Scalar {
	switch s {
	case MaxPlus, MaxMin:
		if a > b {
			return a
		}
		return b
	case MinPlus, MinMax:
		if a < b {
			return a
		}
		return b
	case Boolean:
		if a != 0 || b != 0 {
			return 1
		}
		return 0
	default:
		return Zero(s)
	}
}

// Mul computes a ⊗ b under semiring s.
//
// For MaxPlus/MinPlus: if either operand is ε, the result is ε (absorption
// holds even though ε is also a representable magnitude); otherwise the
// sum is computed in 64 bits and clamped to [NegInf, PosInf] on overflow —
// this is the saturation rule spec'd in §4.1 and it is load-bearing for
// testable property 5.
//
// For MaxMin/MinMax: the result is min/max of the two operands respectively;
// infinities pass through with no saturation needed.
//
// For Boolean: the result is the AND of the operands' truthiness.
//
// Complexity: O(1).
func Mul(a, b Scalar, s Tag) Scalar {
	switch s {
	case MaxPlus, MinPlus:
		if a == Zero(s) || b == Zero(s) {
			return Zero(s)
		}
		sum := int64(a) + int64(b)
		if sum > int64(PosInf) {
			return PosInf
		}
		if sum < int64(NegInf) {
			return NegInf
		}
		return Scalar(sum)
	case MaxMin:
		if a < b {
			return a
		}
		return b
	case MinMax:
		if a > b {
			return a
		}
		return b
	case Boolean:
		if a != 0 && b != 0 {
			return 1
		}
		return 0
	default:
		return Zero(s)
	}
}

// Valid reports whether t is one of the five defined tags.
// Complexity: O(1).
func Valid(t Tag) bool { return t <= Boolean }

// IsAdditiveTropical reports whether s is MaxPlus or MinPlus — the two
// semirings where ⊗ is saturating addition and subtraction/normalisation
// (spectral.Eigenvalue, scheduler.CycleTime) is meaningful.
// Complexity: O(1).
func IsAdditiveTropical(s Tag) bool { return s == MaxPlus || s == MinPlus }
